package worker

import (
	"context"
	"time"

	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/service/slack"
	"github.com/dealradar/dealradar/pkg/usecase"
	"github.com/dealradar/dealradar/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultDigestTop is the number of radar entries posted when no limit is configured
const DefaultDigestTop = 5

// RadarProvider builds the current risk radar
type RadarProvider interface {
	GetRiskRadar(ctx context.Context, opts ...usecase.RiskRadarOption) ([]*model.RiskFactor, error)
}

// RadarDigestWorker periodically posts the top of the risk radar to a Slack channel
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - Every instance running the worker posts its own digest
type RadarDigestWorker struct {
	radar        RadarProvider
	slackService slack.Service
	channelID    string
	interval     time.Duration
	top          int
	stopCh       chan struct{}
	doneCh       chan struct{}
}

// NewRadarDigestWorker creates a new worker posting digests to channelID
func NewRadarDigestWorker(radar RadarProvider, slackSvc slack.Service, channelID string, interval time.Duration, top int) *RadarDigestWorker {
	if top <= 0 {
		top = DefaultDigestTop
	}
	return &RadarDigestWorker{
		radar:        radar,
		slackService: slackSvc,
		channelID:    channelID,
		interval:     interval,
		top:          top,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Start begins the background digest loop
// - The first digest is posted immediately in a background goroutine
// - Does not block server startup
func (w *RadarDigestWorker) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return goerr.New("digest interval must be positive", goerr.V("interval", w.interval.String()))
	}

	logging.Default().Info("Radar digest worker starting",
		"interval", w.interval.String(),
		"channel", w.channelID,
		"top", w.top)

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *RadarDigestWorker) Stop() {
	logging.Default().Info("Radar digest worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Radar digest worker stopped")
}

func (w *RadarDigestWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.Post(ctx); err != nil {
		logging.Default().Error("Initial radar digest failed (will retry next interval)",
			"error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Post(ctx); err != nil {
				logging.Default().Error("Radar digest failed (will retry next interval)",
					"error", err)
			}

		case <-w.stopCh:
			logging.Default().Info("Radar digest worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Radar digest worker context cancelled")
			return
		}
	}
}

// Post builds the radar once and posts its top entries
func (w *RadarDigestWorker) Post(ctx context.Context) error {
	startTime := time.Now()

	radar, err := w.radar.GetRiskRadar(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to build risk radar")
	}

	top := radar
	if len(top) > w.top {
		top = top[:w.top]
	}

	blocks, text := slack.BuildRadarDigestBlocks(top, len(radar))
	ts, err := w.slackService.PostMessage(ctx, w.channelID, blocks, text)
	if err != nil {
		return goerr.Wrap(err, "failed to post radar digest", goerr.V("channel", w.channelID))
	}

	logging.Default().Info("Radar digest posted",
		"channel", w.channelID,
		"ts", ts,
		"at_risk", len(radar),
		"posted", len(top),
		"duration", time.Since(startTime).String())

	return nil
}
