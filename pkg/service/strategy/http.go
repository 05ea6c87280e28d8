package strategy

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultTimeout bounds a single generator round trip
const DefaultTimeout = 15 * time.Second

// maxResponseSize caps the generator response body
const maxResponseSize = 1 << 20

// HTTPGenerator calls an external strategy generator over HTTP. The request
// body is a JSON encoded model.StrategyRequest and a successful response must
// be a JSON object carrying a "strategies" string list.
type HTTPGenerator struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

// HTTPOption configures HTTPGenerator
type HTTPOption func(*HTTPGenerator)

// WithTimeout sets the client timeout. Zero or negative keeps the default.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(g *HTTPGenerator) {
		if timeout > 0 {
			g.timeout = timeout
		}
	}
}

// WithHTTPClient sets the base HTTP client. The generator works on a copy
// whose Timeout is replaced by the configured timeout; client is not modified.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(g *HTTPGenerator) {
		if client == nil {
			return
		}
		c := *client
		g.client = &c
	}
}

// NewHTTPGenerator creates a generator posting to endpoint
func NewHTTPGenerator(endpoint string, opts ...HTTPOption) (*HTTPGenerator, error) {
	if endpoint == "" {
		return nil, goerr.New("strategy generator endpoint is required")
	}

	g := &HTTPGenerator{
		endpoint: endpoint,
		client:   &http.Client{},
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.client.Timeout = g.timeout

	return g, nil
}

// GenerateStrategies posts req to the generator and returns its strategies
func (g *HTTPGenerator) GenerateStrategies(ctx context.Context, req *model.StrategyRequest) ([]string, error) {
	if req == nil || len(req.RiskFactors) == 0 {
		return nil, goerr.Wrap(ErrEmptyRequest, "cannot call strategy generator")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode strategy request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build strategy request", goerr.V(EndpointKey, g.endpoint))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call strategy generator", goerr.V(EndpointKey, g.endpoint))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read strategy response", goerr.V(EndpointKey, g.endpoint))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.Wrap(ErrGeneratorStatus, "strategy generator rejected request",
			goerr.V(EndpointKey, g.endpoint),
			goerr.V(StatusCodeKey, resp.StatusCode),
			goerr.V(ResponseKey, string(raw)))
	}

	return decodeStrategies(raw)
}

// decodeStrategies extracts the "strategies" list from a generator response.
// A missing or non-list field is malformed; an empty list is valid.
func decodeStrategies(raw []byte) ([]string, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, goerr.Wrap(ErrMalformedStrategyResponse, "response is not a JSON object",
			goerr.V(ResponseKey, string(raw)))
	}

	field, ok := body["strategies"]
	if !ok {
		return nil, goerr.Wrap(ErrMalformedStrategyResponse, "strategies field is missing",
			goerr.V(ResponseKey, string(raw)))
	}

	var strategies []string
	if err := json.Unmarshal(field, &strategies); err != nil || strategies == nil {
		return nil, goerr.Wrap(ErrMalformedStrategyResponse, "strategies field is not a string list",
			goerr.V(ResponseKey, string(raw)))
	}

	return strategies, nil
}
