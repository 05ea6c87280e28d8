package strategy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// LLMGenerator produces mitigation strategies with an LLM
type LLMGenerator struct {
	llmClient gollem.LLMClient
	timeout   time.Duration
}

// LLMOption configures LLMGenerator
type LLMOption func(*LLMGenerator)

// WithLLMTimeout bounds each generation call. Zero disables the bound.
func WithLLMTimeout(timeout time.Duration) LLMOption {
	return func(g *LLMGenerator) {
		g.timeout = timeout
	}
}

// NewLLMGenerator creates a generator backed by llmClient
func NewLLMGenerator(llmClient gollem.LLMClient, opts ...LLMOption) (*LLMGenerator, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	g := &LLMGenerator{
		llmClient: llmClient,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// GenerateStrategies asks the LLM for mitigation actions covering every risk
// factor in req
func (g *LLMGenerator) GenerateStrategies(ctx context.Context, req *model.StrategyRequest) ([]string, error) {
	if req == nil || len(req.RiskFactors) == 0 {
		return nil, goerr.Wrap(ErrEmptyRequest, "cannot generate strategies")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	session, err := g.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(buildResponseSchema()),
		gollem.WithSessionSystemPrompt(buildSystemPrompt()),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildUserPrompt(req)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content from LLM")
	}
	if resp == nil || len(resp.Texts) == 0 {
		return nil, goerr.Wrap(ErrMalformedStrategyResponse, "LLM returned no content")
	}

	strategies, err := decodeStrategies([]byte(resp.Texts[0]))
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(strategies))
	for _, s := range strategies {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}

	return result, nil
}

func buildSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are a sales coach helping account executives rescue deals at risk.\n\n")
	sb.WriteString("## Instructions:\n\n")
	sb.WriteString("1. Read every risk factor: its category, impact, weight, score and the reasons it was flagged.\n")
	sb.WriteString("2. Propose concrete mitigation actions the account team can take this week.\n")
	sb.WriteString("3. Each action is one imperative sentence, without numbering or bullets.\n")
	sb.WriteString("4. Order actions from most to least effective. Return at most 5.\n")
	sb.WriteString("5. If nothing sensible can be done, return an empty list.\n")

	return sb.String()
}

func buildUserPrompt(req *model.StrategyRequest) string {
	var sb strings.Builder

	sb.WriteString("## Risk factors:\n\n")
	for _, f := range req.RiskFactors {
		fmt.Fprintf(&sb, "### Category: %s\n", f.Category)
		if f.Title != "" {
			fmt.Fprintf(&sb, "**Title:** %s\n", f.Title)
		}
		if f.Description != "" {
			fmt.Fprintf(&sb, "**Description:** %s\n", f.Description)
		}
		if f.Impact != "" {
			fmt.Fprintf(&sb, "**Impact:** %s\n", f.Impact)
		}
		fmt.Fprintf(&sb, "**Weight:** %.2f\n", f.Weight)
		if f.RiskScore > 0 {
			fmt.Fprintf(&sb, "**Risk score:** %d\n", f.RiskScore)
		}
		if len(f.Reasons) > 0 {
			fmt.Fprintf(&sb, "**Reasons:** %s\n", strings.Join(f.Reasons, "; "))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func buildResponseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "MitigationStrategyResponse",
		Description: "Ordered mitigation actions for the given risk factors",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"strategies": {
				Type:        gollem.TypeArray,
				Description: "Mitigation actions, most effective first",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeString,
				},
			},
		},
	}
}
