package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dealradar/dealradar/pkg/cli/config"
	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/domain/types"
	"github.com/dealradar/dealradar/pkg/usecase"
	"github.com/dealradar/dealradar/pkg/utils/safe"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdRadar() *cli.Command {
	var repoCfg config.Repository
	var stage string
	var top int
	var noColor bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "stage",
			Usage:       "Only scan opportunities in this stage",
			Destination: &stage,
		},
		&cli.IntFlag{
			Name:        "top",
			Aliases:     []string{"n"},
			Usage:       "Number of risks to print (0 prints all)",
			Destination: &top,
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored output",
			Sources:     cli.EnvVars("NO_COLOR"),
			Destination: &noColor,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "radar",
		Aliases: []string{"r"},
		Usage:   "Print the ranked risk radar",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			var opts []usecase.RiskRadarOption
			if stage != "" {
				opts = append(opts, usecase.WithStage(types.OpportunityStage(strings.ToUpper(stage))))
			}

			radar, err := usecase.New(repo).RiskRadar.GetRiskRadar(ctx, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to build risk radar")
			}

			if noColor {
				color.NoColor = true
			}
			return printRadar(c.Root().Writer, radar, top)
		},
	}
}

var (
	rankColor   = color.New(color.Bold)
	reasonColor = color.New(color.Faint)
)

func scoreColor(score int) *color.Color {
	switch {
	case score >= 6:
		return color.New(color.FgRed, color.Bold)
	case score >= 4:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

// printRadar writes the radar as a ranked list. top <= 0 prints every entry.
func printRadar(w io.Writer, radar []*model.RiskFactor, top int) error {
	if len(radar) == 0 {
		_, err := fmt.Fprintln(w, "No opportunities at risk")
		return err
	}

	shown := radar
	if top > 0 && len(shown) > top {
		shown = shown[:top]
	}

	for i, f := range shown {
		name := f.Opportunity.Name
		if name == "" {
			name = string(f.Opportunity.ID)
		}

		line := fmt.Sprintf("%s %s %s [%s] updated %dd ago",
			rankColor.Sprintf("Risk #%d", i+1),
			scoreColor(f.RiskScore).Sprintf("score %d", f.RiskScore),
			name,
			f.Opportunity.Stage,
			f.DaysSinceUpdate,
		)
		if f.Opportunity.CloseDate != nil {
			line += fmt.Sprintf(", closes in %dd", f.DaysToClose)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return goerr.Wrap(err, "failed to write radar")
		}

		for _, reason := range f.RiskReasons {
			if _, err := fmt.Fprintln(w, "    - "+reasonColor.Sprint(reason)); err != nil {
				return goerr.Wrap(err, "failed to write radar")
			}
		}
	}

	if len(radar) > len(shown) {
		if _, err := fmt.Fprintf(w, "... and %d more\n", len(radar)-len(shown)); err != nil {
			return goerr.Wrap(err, "failed to write radar")
		}
	}

	return nil
}
