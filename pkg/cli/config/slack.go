package config

import (
	"log/slog"
	"time"

	"github.com/dealradar/dealradar/pkg/service/slack"
	"github.com/dealradar/dealradar/pkg/service/worker"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for the radar digest posted to Slack
type Slack struct {
	botToken       string
	digestChannel  string
	digestInterval time.Duration
	digestTop      int
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for posting the radar digest)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("DEALRADAR_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "digest-channel",
			Usage:       "Slack channel ID receiving the radar digest",
			Category:    "Slack",
			Destination: &x.digestChannel,
			Sources:     cli.EnvVars("DEALRADAR_DIGEST_CHANNEL"),
		},
		&cli.DurationFlag{
			Name:        "digest-interval",
			Usage:       "Interval between radar digests",
			Category:    "Slack",
			Value:       24 * time.Hour,
			Destination: &x.digestInterval,
			Sources:     cli.EnvVars("DEALRADAR_DIGEST_INTERVAL"),
		},
		&cli.IntFlag{
			Name:        "digest-top",
			Usage:       "Number of radar entries included in a digest",
			Category:    "Slack",
			Value:       worker.DefaultDigestTop,
			Destination: &x.digestTop,
			Sources:     cli.EnvVars("DEALRADAR_DIGEST_TOP"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("digest-channel", x.digestChannel),
		slog.String("digest-interval", x.digestInterval.String()),
		slog.Int("digest-top", x.digestTop),
	)
}

// IsDigestEnabled reports whether both the bot token and the channel are set
func (x *Slack) IsDigestEnabled() bool {
	return x.botToken != "" && x.digestChannel != ""
}

// DigestChannel returns the digest channel ID
func (x *Slack) DigestChannel() string {
	return x.digestChannel
}

// DigestInterval returns the interval between digests
func (x *Slack) DigestInterval() time.Duration {
	return x.digestInterval
}

// DigestTop returns the number of entries per digest
func (x *Slack) DigestTop() int {
	return x.digestTop
}

// Configure creates the Slack service. It returns nil when the digest is not
// enabled, and an error when only one of token and channel is set.
func (x *Slack) Configure() (slack.Service, error) {
	if x.botToken == "" && x.digestChannel == "" {
		return nil, nil
	}
	if x.botToken == "" {
		return nil, goerr.Wrap(ErrMissingDependency, "--digest-channel requires --slack-bot-token",
			goerr.V(FlagKey, "slack-bot-token"))
	}
	if x.digestChannel == "" {
		return nil, goerr.Wrap(ErrMissingDependency, "--slack-bot-token requires --digest-channel",
			goerr.V(FlagKey, "digest-channel"))
	}
	if x.digestInterval <= 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "digest-interval must be positive",
			goerr.V(FlagKey, "digest-interval"))
	}

	svc, err := slack.New(x.botToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}
	return svc, nil
}
