package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dealradar/dealradar/pkg/cli/config"
	httpctrl "github.com/dealradar/dealradar/pkg/controller/http"
	"github.com/dealradar/dealradar/pkg/service/worker"
	"github.com/dealradar/dealradar/pkg/usecase"
	"github.com/dealradar/dealradar/pkg/utils/logging"
	"github.com/dealradar/dealradar/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var appCfg config.App
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var generatorCfg config.Generator
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("DEALRADAR_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, generatorCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("Serve configuration",
				"config", appCfg,
				"repository", repoCfg,
				"gemini", geminiCfg,
				"generator", generatorCfg,
				"slack", slackCfg,
			)

			entries, catalog, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load risk category configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure LLM client")
			}

			generator, llmGenerator, err := generatorCfg.Configure(ctx, llmClient)
			if err != nil {
				return goerr.Wrap(err, "failed to configure strategy generator")
			}

			ucOpts := []usecase.Option{
				usecase.WithCategoryEntries(entries),
				usecase.WithStrategyCatalog(catalog),
			}
			if generator != nil {
				ucOpts = append(ucOpts, usecase.WithStrategyGenerator(generator))
			}
			uc := usecase.New(repo, ucOpts...)

			var httpOpts []httpctrl.Options
			if llmGenerator != nil {
				httpOpts = append(httpOpts, httpctrl.WithStrategyGenerator(llmGenerator))
			}

			// Start radar digest worker if Slack is configured
			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack")
			}
			var digestWorker *worker.RadarDigestWorker
			if slackSvc != nil {
				digestWorker = worker.NewRadarDigestWorker(uc.RiskRadar, slackSvc,
					slackCfg.DigestChannel(), slackCfg.DigestInterval(), slackCfg.DigestTop())
				if err := digestWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start radar digest worker")
				}
				httpOpts = append(httpOpts, httpctrl.WithDigest(digestWorker))
			} else {
				logging.Default().Info("Slack digest not configured, radar digest is disabled")
			}

			httpHandler, err := httpctrl.New(uc, httpOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				if digestWorker != nil {
					digestWorker.Stop()
				}
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if digestWorker != nil {
					digestWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
