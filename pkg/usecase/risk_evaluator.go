package usecase

import (
	"math"
	"time"

	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/domain/types"
)

// Risk reasons, in the order the rules are evaluated
const (
	ReasonNoRecentActivity  = "No activity for 7+ days"
	ReasonDiscoveryStalled  = "Discovery stage stalled"
	ReasonEvaluationTooLong = "Evaluation taking too long"
	ReasonCloseDateNear     = "Close date approaching"
	ReasonLowWinProbability = "Low probability"
)

const (
	inactivityThresholdDays  = 7
	discoveryStallDays       = 14
	evaluationStallDays      = 21
	closeDateWindowDays      = 30
	lowProbabilityPercentage = 20
)

const day = 24 * time.Hour

// riskRule adds score when fires returns true. Rules run in slice order and
// that order is the display order of the reasons.
type riskRule struct {
	reason string
	score  int
	fires  func(opp *model.Opportunity, daysSinceUpdate, daysToClose int) bool
}

var riskRules = []riskRule{
	{
		reason: ReasonNoRecentActivity,
		score:  3,
		fires: func(_ *model.Opportunity, daysSinceUpdate, _ int) bool {
			return daysSinceUpdate > inactivityThresholdDays
		},
	},
	{
		reason: ReasonDiscoveryStalled,
		score:  2,
		fires: func(opp *model.Opportunity, daysSinceUpdate, _ int) bool {
			return opp.Stage == types.OpportunityStageDiscover && daysSinceUpdate > discoveryStallDays
		},
	},
	{
		reason: ReasonEvaluationTooLong,
		score:  2,
		fires: func(opp *model.Opportunity, daysSinceUpdate, _ int) bool {
			return opp.Stage == types.OpportunityStageEvaluate && daysSinceUpdate > evaluationStallDays
		},
	},
	{
		// A missing close date counts as daysToClose == 0 and therefore fires.
		reason: ReasonCloseDateNear,
		score:  2,
		fires: func(opp *model.Opportunity, _, daysToClose int) bool {
			return daysToClose < closeDateWindowDays && !opp.Stage.IsTerminal()
		},
	},
	{
		reason: ReasonLowWinProbability,
		score:  1,
		fires: func(opp *model.Opportunity, _, _ int) bool {
			return opp.Probability != nil && *opp.Probability < lowProbabilityPercentage
		},
	},
}

// DaysSinceUpdate returns the number of whole days elapsed since the last
// recorded activity, rounded down
func DaysSinceUpdate(opp *model.Opportunity, now time.Time) int {
	return int(math.Floor(float64(now.Sub(opp.UpdatedAt)) / float64(day)))
}

// DaysToClose returns the number of days until the expected close date,
// rounded up. It is 0 when no close date is set.
func DaysToClose(opp *model.Opportunity, now time.Time) int {
	if opp.CloseDate == nil {
		return 0
	}
	return int(math.Ceil(float64(opp.CloseDate.Sub(now)) / float64(day)))
}

// EvaluateOpportunity derives the risk factor of a single opportunity at
// now. It returns nil when no rule fires. It never fails: missing optional
// fields only make the corresponding rule not apply.
func EvaluateOpportunity(opp *model.Opportunity, now time.Time) *model.RiskFactor {
	if opp == nil {
		return nil
	}

	daysSinceUpdate := DaysSinceUpdate(opp, now)
	daysToClose := DaysToClose(opp, now)

	score := 0
	var reasons []string
	for _, rule := range riskRules {
		if rule.fires(opp, daysSinceUpdate, daysToClose) {
			score += rule.score
			reasons = append(reasons, rule.reason)
		}
	}

	if score == 0 {
		return nil
	}

	return &model.RiskFactor{
		Opportunity:     opp,
		RiskScore:       score,
		RiskReasons:     reasons,
		DaysSinceUpdate: daysSinceUpdate,
		DaysToClose:     daysToClose,
	}
}
