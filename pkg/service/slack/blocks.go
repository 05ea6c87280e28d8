package slack

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/slack-go/slack"
)

// maxSectionTextBytes is the Slack limit for section block text
const maxSectionTextBytes = 3000

// BuildRadarDigestBlocks renders the top of a risk radar as Block Kit blocks.
// total is the size of the whole radar, which may exceed len(radar).
func BuildRadarDigestBlocks(radar []*model.RiskFactor, total int) ([]slack.Block, string) {
	text := fmt.Sprintf("Risk radar: %d opportunities at risk", total)

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "Risk Radar", true, false)),
	}

	if len(radar) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "No opportunities at risk :tada:", false, false),
			nil, nil,
		))
		return blocks, "Risk radar: no opportunities at risk"
	}

	for i, f := range radar {
		var sb strings.Builder
		fmt.Fprintf(&sb, "*Risk #%d* %s (score %d)\n", i+1, opportunityLabel(f.Opportunity), f.RiskScore)
		fmt.Fprintf(&sb, "Stage: `%s` | Last update: %d days ago", f.Opportunity.Stage, f.DaysSinceUpdate)
		if f.Opportunity.CloseDate != nil {
			fmt.Fprintf(&sb, " | Close in %d days", f.DaysToClose)
		}
		sb.WriteString("\n")
		for _, reason := range f.RiskReasons {
			fmt.Fprintf(&sb, "• %s\n", reason)
		}

		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, truncateToMaxBytes(sb.String(), maxSectionTextBytes), false, false),
			nil, nil,
		))
	}

	if total > len(radar) {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("…and %d more", total-len(radar)), false, false),
		))
	}

	return blocks, text
}

func opportunityLabel(opp *model.Opportunity) string {
	if opp.Name != "" {
		return opp.Name
	}
	return string(opp.ID)
}

// truncateToMaxBytes cuts s to at most maxBytes without splitting a UTF-8 rune
func truncateToMaxBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
