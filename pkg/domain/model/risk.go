package model

import (
	"github.com/dealradar/dealradar/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// RiskFactor is the derived, per-evaluation record of why an opportunity is at
// risk. It is recomputed on every evaluation and never persisted.
type RiskFactor struct {
	Opportunity     *Opportunity `json:"opportunity"`
	RiskScore       int          `json:"riskScore"`
	RiskReasons     []string     `json:"riskReasons"`
	DaysSinceUpdate int          `json:"daysSinceUpdate"`
	DaysToClose     int          `json:"daysToClose"`
}

// RiskCategoryEntry is the static description of a risk category shown on
// the dashboard. Weight is a relative-importance hint for the UI and takes no
// part in scoring.
type RiskCategoryEntry struct {
	Category           types.RiskCategory `json:"category"`
	Title              string             `json:"title"`
	Description        string             `json:"description,omitempty"`
	Impact             types.ImpactLevel  `json:"impact"`
	Weight             float64            `json:"weight"`
	IsMitigatable      bool               `json:"isMitigatable"`
	MitigationStrategy string             `json:"mitigationStrategy,omitempty"`
}

// Validate checks the entry loaded from configuration
func (e *RiskCategoryEntry) Validate() error {
	if err := e.Category.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidCategory, err.Error(), goerr.V(CategoryKey, e.Category))
	}
	if err := e.Impact.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidCategory, err.Error(), goerr.V(CategoryKey, e.Category))
	}
	if e.Weight < 0 || e.Weight > 1 {
		return goerr.Wrap(ErrInvalidCategory, "weight must be between 0 and 1",
			goerr.V(CategoryKey, e.Category),
			goerr.V(WeightKey, e.Weight))
	}
	return nil
}

// ImpactSummary counts category entries per impact tier
type ImpactSummary struct {
	Critical    int `json:"critical"`
	High        int `json:"high"`
	Medium      int `json:"medium"`
	Low         int `json:"low"`
	Mitigatable int `json:"mitigatable"`
	Total       int `json:"total"`
}

// DefaultRiskCategoryEntries returns the built-in category configuration used
// when no category file is given
func DefaultRiskCategoryEntries() []*RiskCategoryEntry {
	return []*RiskCategoryEntry{
		{
			Category:      types.RiskCategoryEngagement,
			Title:         "Buyer engagement dropping",
			Description:   "Activity with the buying team has slowed or stopped.",
			Impact:        types.ImpactHigh,
			Weight:        0.8,
			IsMitigatable: true,
		},
		{
			Category:      types.RiskCategoryCompetition,
			Title:         "Competitive pressure",
			Description:   "A competing vendor is active in the evaluation.",
			Impact:        types.ImpactCritical,
			Weight:        0.9,
			IsMitigatable: true,
		},
		{
			Category:      types.RiskCategoryStakeholder,
			Title:         "Missing executive sponsor",
			Description:   "No economic buyer or champion has been confirmed.",
			Impact:        types.ImpactHigh,
			Weight:        0.7,
			IsMitigatable: true,
		},
		{
			Category:      types.RiskCategoryTiming,
			Title:         "Close date at risk",
			Description:   "The expected close date is near and the deal has not progressed.",
			Impact:        types.ImpactMedium,
			Weight:        0.6,
			IsMitigatable: true,
		},
		{
			Category:      types.RiskCategoryTechnical,
			Title:         "Technical fit concerns",
			Description:   "Integration or security requirements are unresolved.",
			Impact:        types.ImpactMedium,
			Weight:        0.5,
			IsMitigatable: true,
		},
		{
			Category:      types.RiskCategoryFinancial,
			Title:         "Budget not secured",
			Description:   "Funding for the purchase has not been approved.",
			Impact:        types.ImpactLow,
			Weight:        0.4,
			IsMitigatable: false,
		},
	}
}
