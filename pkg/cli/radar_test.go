package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dealradar/dealradar/pkg/cli"
	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/domain/types"
	"github.com/fatih/color"
	"github.com/m-mizutani/gt"
)

func TestPrintRadar(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	closeDate := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	radar := []*model.RiskFactor{
		{
			Opportunity:     &model.Opportunity{ID: "a", Name: "Acme", Stage: types.OpportunityStageEvaluate, CloseDate: &closeDate},
			RiskScore:       7,
			RiskReasons:     []string{"No activity for 7+ days", "Close date approaching"},
			DaysSinceUpdate: 40,
			DaysToClose:     10,
		},
		{
			Opportunity:     &model.Opportunity{ID: "b", Stage: types.OpportunityStageCloseLost},
			RiskScore:       3,
			RiskReasons:     []string{"No activity for 7+ days"},
			DaysSinceUpdate: 100,
		},
		{
			Opportunity: &model.Opportunity{ID: "c", Stage: types.OpportunityStagePropose},
			RiskScore:   2,
			RiskReasons: []string{"Close date approaching"},
		},
	}

	t.Run("all entries", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, cli.PrintRadar(&buf, radar, 0)).Required()

		out := buf.String()
		gt.String(t, out).Contains("Risk #1 score 7 Acme [EVALUATE] updated 40d ago, closes in 10d")
		gt.String(t, out).Contains("    - Close date approaching")
		gt.String(t, out).Contains("Risk #2 score 3 b [CLOSE_LOST] updated 100d ago\n")
		gt.String(t, out).Contains("Risk #3")
		gt.Bool(t, strings.Contains(out, "more")).False()
	})

	t.Run("top entries", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, cli.PrintRadar(&buf, radar, 1)).Required()

		out := buf.String()
		gt.String(t, out).Contains("Risk #1")
		gt.Bool(t, strings.Contains(out, "Risk #2")).False()
		gt.String(t, out).Contains("... and 2 more")
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, cli.PrintRadar(&buf, nil, 0)).Required()
		gt.Value(t, buf.String()).Equal("No opportunities at risk\n")
	})
}

func TestRun_RadarCommand(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"dealradar", "radar", "--no-color",
		"--opportunities-file", writeFile(t, "opps.json", validSeed),
		"--stage", "discover",
	}, "test")
	gt.NoError(t, err)

	err = cli.Run(context.Background(), []string{
		"dealradar", "radar",
		"--stage", "won",
	}, "test")
	gt.Error(t, err)
}

func TestGetIndexConfig(t *testing.T) {
	cfg := cli.GetIndexConfig("")
	gt.Array(t, cfg.Collections).Length(1).Required()
	gt.Value(t, cfg.Collections[0].Name).Equal("opportunities")
	gt.Array(t, cfg.Collections[0].Indexes).Length(1).Required()
	gt.Array(t, cfg.Collections[0].Indexes[0].Fields).Length(2)

	gt.Value(t, cli.GetIndexConfig("staging").Collections[0].Name).Equal("staging_opportunities")
}
