package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/dealradar/dealradar/pkg/domain/interfaces"
	"github.com/dealradar/dealradar/pkg/service/strategy"
	"github.com/dealradar/dealradar/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/urfave/cli/v3"
)

// Generator holds CLI flags selecting the external strategy generator
type Generator struct {
	url     string
	timeout time.Duration
}

func (x *Generator) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "strategy-generator-url",
			Usage:       "Endpoint of an external HTTP strategy generator. Takes precedence over the LLM generator",
			Category:    "Strategy Generator",
			Destination: &x.url,
			Sources:     cli.EnvVars("DEALRADAR_STRATEGY_GENERATOR_URL"),
		},
		&cli.DurationFlag{
			Name:        "strategy-generator-timeout",
			Usage:       "Timeout of a single strategy generator call",
			Category:    "Strategy Generator",
			Value:       strategy.DefaultTimeout,
			Destination: &x.timeout,
			Sources:     cli.EnvVars("DEALRADAR_STRATEGY_GENERATOR_TIMEOUT"),
		},
	}
}

func (x Generator) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", x.url),
		slog.String("timeout", x.timeout.String()),
	)
}

// Configure selects the generator used by mitigation resolution: the HTTP
// generator when a URL is set, else the LLM generator when llmClient is
// available, else nil (catalog only). The LLM generator is returned
// separately so that it can also be served over HTTP.
func (x *Generator) Configure(ctx context.Context, llmClient gollem.LLMClient) (interfaces.StrategyGenerator, *strategy.LLMGenerator, error) {
	var llmGen *strategy.LLMGenerator
	if llmClient != nil {
		gen, err := strategy.NewLLMGenerator(llmClient, strategy.WithLLMTimeout(x.timeout))
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create LLM strategy generator")
		}
		llmGen = gen
	}

	if x.url != "" {
		gen, err := strategy.NewHTTPGenerator(x.url, strategy.WithTimeout(x.timeout))
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create HTTP strategy generator")
		}
		logging.From(ctx).Info("Using HTTP strategy generator", "url", x.url, "timeout", x.timeout)
		return gen, llmGen, nil
	}

	if llmGen != nil {
		logging.From(ctx).Info("Using LLM strategy generator", "timeout", x.timeout)
		return llmGen, llmGen, nil
	}

	logging.From(ctx).Info("No strategy generator configured, mitigations use the built-in catalog")
	return nil, nil, nil
}
