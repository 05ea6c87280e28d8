package cli

import (
	"context"

	"github.com/dealradar/dealradar/pkg/cli/config"
	"github.com/dealradar/dealradar/pkg/repository/memory"
	"github.com/dealradar/dealradar/pkg/usecase"
	"github.com/dealradar/dealradar/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var appCfg config.App
	var seedFile string

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "opportunities-file",
		Usage:       "JSON opportunity seed file to validate",
		Sources:     cli.EnvVars("DEALRADAR_OPPORTUNITIES_FILE"),
		Destination: &seedFile,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the risk category configuration and the opportunity seed file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: Load and validate the category configuration
			entries, catalog, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			summary := usecase.SummarizeByImpact(entries)
			logger.Info("Configuration validation passed",
				"path", appCfg.Path(),
				"category_count", summary.Total,
				"critical", summary.Critical,
				"high", summary.High,
				"medium", summary.Medium,
				"low", summary.Low,
				"mitigatable", summary.Mitigatable,
			)
			for _, e := range entries {
				logger.Info("Category validated",
					"id", e.Category,
					"title", e.Title,
					"impact", e.Impact,
					"fallback_strategies", len(catalog.Get(e.Category)),
				)
			}

			// Step 2: Validate the seed file by loading it into a memory repository
			if seedFile == "" {
				logger.Info("No opportunities file specified, skipping seed validation")
				return nil
			}

			opps, err := memory.LoadOpportunities(seedFile)
			if err != nil {
				return goerr.Wrap(err, "opportunities file validation failed")
			}

			repo := memory.New()
			if err := repo.Seed(ctx, opps); err != nil {
				return goerr.Wrap(err, "opportunities file validation failed")
			}

			radar, err := usecase.New(repo).RiskRadar.GetRiskRadar(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to evaluate opportunities")
			}

			logger.Info("Opportunities file validation passed",
				"path", seedFile,
				"opportunity_count", len(opps),
				"at_risk", len(radar),
			)

			return nil
		},
	}
}
