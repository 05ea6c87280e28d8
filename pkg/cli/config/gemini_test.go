package config_test

import (
	"strings"
	"testing"

	"github.com/dealradar/dealradar/pkg/cli/config"
	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"
)

func TestGemini_Flags(t *testing.T) {
	cfg := config.NewGeminiForTest("", "", "", 0)

	usage := map[string]string{}
	for _, f := range cfg.Flags() {
		sf, ok := f.(*cli.StringFlag)
		if !ok {
			continue
		}
		usage[sf.Name] = sf.Usage
	}

	gt.Value(t, len(cfg.Flags())).Equal(4)
	gt.Map(t, usage).HasKey("gemini-project").Required()
	gt.Map(t, usage).HasKey("gemini-model")
	gt.Bool(t, strings.Contains(usage["gemini-project"], "LLM strategy generator")).True()
	gt.Bool(t, strings.Contains(usage["gemini-model"], "mitigation strategies")).True()
}

func TestGemini_Configure(t *testing.T) {
	t.Run("strategy generation disabled without project ID", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "us-central1", "gemini-2.5-flash", 5)
		client, err := cfg.Configure(t.Context())
		gt.NoError(t, err)
		gt.Value(t, client).Nil()
	})

	t.Run("rejects temperature out of range", func(t *testing.T) {
		for _, temp := range []float64{-0.1, 2.5} {
			cfg := config.NewGeminiForTest("my-project", "us-central1", "gemini-2.5-flash", temp)
			client, err := cfg.Configure(t.Context())
			gt.Error(t, err).Is(config.ErrInvalidConfig)
			gt.Value(t, client).Nil()
		}
	})
}

func TestGemini_LogValue(t *testing.T) {
	cfg := config.NewGeminiForTest("my-project", "asia-northeast1", "gemini-2.5-pro", 0.2)
	gt.Value(t, cfg.Model()).Equal("gemini-2.5-pro")

	attrs := map[string]string{}
	for _, a := range cfg.LogValue().Group() {
		attrs[a.Key] = a.Value.String()
	}
	gt.Value(t, attrs["project_id"]).Equal("my-project")
	gt.Value(t, attrs["location"]).Equal("asia-northeast1")
	gt.Value(t, attrs["model"]).Equal("gemini-2.5-pro")
	gt.Map(t, attrs).HasKey("temperature")
}
