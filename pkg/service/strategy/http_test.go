package strategy_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/domain/types"
	"github.com/dealradar/dealradar/pkg/service/strategy"
	"github.com/m-mizutani/gt"
)

func newRequest() *model.StrategyRequest {
	return &model.StrategyRequest{
		RiskFactors: []model.StrategyRequestFactor{
			{
				Category:    types.RiskCategoryEngagement,
				Title:       "Low Engagement",
				Description: "Customer is not responding",
				Impact:      types.ImpactHigh,
				Weight:      0.8,
			},
		},
	}
}

func TestHTTPGenerator_Success(t *testing.T) {
	var received model.StrategyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPost)
		gt.Value(t, r.Header.Get("Content-Type")).Equal("application/json")
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"strategies":["Book a demo","Send a case study"]}`))
	}))
	defer srv.Close()

	gen, err := strategy.NewHTTPGenerator(srv.URL)
	gt.NoError(t, err).Required()

	got, err := gen.GenerateStrategies(context.Background(), newRequest())
	gt.NoError(t, err).Required()
	gt.Value(t, got).Equal([]string{"Book a demo", "Send a case study"})

	gt.Array(t, received.RiskFactors).Length(1).Required()
	gt.Value(t, received.RiskFactors[0].Category).Equal(types.RiskCategoryEngagement)
	gt.Value(t, received.RiskFactors[0].Weight).Equal(0.8)
}

func TestHTTPGenerator_WireFormat(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"strategies":[]}`))
	}))
	defer srv.Close()

	gen, err := strategy.NewHTTPGenerator(srv.URL)
	gt.NoError(t, err).Required()

	got, err := gen.GenerateStrategies(context.Background(), newRequest())
	gt.NoError(t, err).Required()
	gt.B(t, got != nil).True()
	gt.Array(t, got).Length(0)

	factors, ok := raw["riskFactors"].([]any)
	gt.Bool(t, ok).True().Required()
	gt.Array(t, factors).Length(1).Required()
	factor := factors[0].(map[string]any)
	gt.Value(t, factor["category"]).Equal("engagement")
	gt.Value(t, factor["impact"]).Equal("high")
	gt.Value(t, factor["title"]).Equal("Low Engagement")
}

func TestHTTPGenerator_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantErr: strategy.ErrGeneratorStatus},
		{name: "not found", status: http.StatusNotFound, body: ``, wantErr: strategy.ErrGeneratorStatus},
		{name: "missing strategies", status: http.StatusOK, body: `{"actions":["x"]}`, wantErr: strategy.ErrMalformedStrategyResponse},
		{name: "strategies is a string", status: http.StatusOK, body: `{"strategies":"call them"}`, wantErr: strategy.ErrMalformedStrategyResponse},
		{name: "strategies is null", status: http.StatusOK, body: `{"strategies":null}`, wantErr: strategy.ErrMalformedStrategyResponse},
		{name: "strategies has non string", status: http.StatusOK, body: `{"strategies":[1,2]}`, wantErr: strategy.ErrMalformedStrategyResponse},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantErr: strategy.ErrMalformedStrategyResponse},
		{name: "json array", status: http.StatusOK, body: `["a"]`, wantErr: strategy.ErrMalformedStrategyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			gen, err := strategy.NewHTTPGenerator(srv.URL)
			gt.NoError(t, err).Required()

			got, err := gen.GenerateStrategies(context.Background(), newRequest())
			gt.Value(t, got).Nil()
			gt.Error(t, err).Is(tt.wantErr)
		})
	}
}

// countingTransport counts requests passing through the base client
type countingTransport struct {
	calls int
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls++
	return http.DefaultTransport.RoundTrip(req)
}

func TestHTTPGenerator_WithHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"strategies":["Book a demo"]}`))
	}))
	defer srv.Close()

	transport := &countingTransport{}
	base := &http.Client{Transport: transport, Timeout: time.Minute}

	gen, err := strategy.NewHTTPGenerator(srv.URL,
		strategy.WithHTTPClient(base),
		strategy.WithTimeout(5*time.Second),
	)
	gt.NoError(t, err).Required()

	got, err := gen.GenerateStrategies(context.Background(), newRequest())
	gt.NoError(t, err).Required()
	gt.Value(t, got).Equal([]string{"Book a demo"})

	gt.Number(t, transport.calls).Equal(1)
	gt.Value(t, base.Timeout).Equal(time.Minute)
}

func TestHTTPGenerator_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	gen, err := strategy.NewHTTPGenerator(srv.URL, strategy.WithTimeout(50*time.Millisecond))
	gt.NoError(t, err).Required()

	start := time.Now()
	_, err = gen.GenerateStrategies(context.Background(), newRequest())
	gt.Error(t, err)
	gt.Bool(t, time.Since(start) < 5*time.Second).True()
}

func TestHTTPGenerator_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	gen, err := strategy.NewHTTPGenerator(url)
	gt.NoError(t, err).Required()

	_, err = gen.GenerateStrategies(context.Background(), newRequest())
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, strategy.ErrMalformedStrategyResponse)).False()
}

func TestHTTPGenerator_InvalidInput(t *testing.T) {
	_, err := strategy.NewHTTPGenerator("")
	gt.Error(t, err)

	gen, err := strategy.NewHTTPGenerator("http://127.0.0.1:1")
	gt.NoError(t, err).Required()

	_, err = gen.GenerateStrategies(context.Background(), &model.StrategyRequest{})
	gt.Error(t, err).Is(strategy.ErrEmptyRequest)
}
