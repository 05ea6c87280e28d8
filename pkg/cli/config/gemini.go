package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"
)

// DefaultGeminiTemperature keeps generated mitigation actions close to the prompt
const DefaultGeminiTemperature = 0.2

// Gemini holds configuration for the Gemini client backing the LLM strategy generator
type Gemini struct {
	projectID   string
	location    string
	model       string
	temperature float64
}

// Flags returns CLI flags for Gemini configuration
func (g *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API. Enables the LLM strategy generator",
			Category:    "LLM",
			Sources:     cli.EnvVars("DEALRADAR_GEMINI_PROJECT"),
			Destination: &g.projectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Category:    "LLM",
			Value:       "us-central1",
			Sources:     cli.EnvVars("DEALRADAR_GEMINI_LOCATION"),
			Destination: &g.location,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model used to generate mitigation strategies",
			Category:    "LLM",
			Value:       gemini.DefaultModel,
			Sources:     cli.EnvVars("DEALRADAR_GEMINI_MODEL"),
			Destination: &g.model,
		},
		&cli.FloatFlag{
			Name:        "gemini-temperature",
			Usage:       "Sampling temperature for strategy generation (0.0-2.0)",
			Category:    "LLM",
			Value:       DefaultGeminiTemperature,
			Sources:     cli.EnvVars("DEALRADAR_GEMINI_TEMPERATURE"),
			Destination: &g.temperature,
		},
	}
}

func (g Gemini) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("project_id", g.projectID),
		slog.String("location", g.location),
		slog.String("model", g.model),
		slog.Float64("temperature", g.temperature),
	)
}

// Model returns the configured Gemini model
func (g *Gemini) Model() string {
	return g.model
}

// Configure creates a Gemini client for strategy generation.
// Returns nil if projectID is not configured (LLM strategy generation is disabled).
func (g *Gemini) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if g.projectID == "" {
		return nil, nil
	}

	if g.temperature < 0 || g.temperature > 2 {
		return nil, goerr.Wrap(ErrInvalidConfig, "gemini temperature must be between 0.0 and 2.0",
			goerr.V(FlagKey, "gemini-temperature"),
			goerr.V("temperature", g.temperature))
	}

	var opts []gemini.Option
	if g.model != "" {
		opts = append(opts, gemini.WithModel(g.model))
	}
	opts = append(opts, gemini.WithTemperature(float32(g.temperature)))

	client, err := gemini.New(ctx, g.projectID, g.location, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client",
			goerr.V("project_id", g.projectID),
			goerr.V("model", g.model))
	}

	return client, nil
}
