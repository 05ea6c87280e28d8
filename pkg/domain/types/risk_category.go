package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// RiskCategory classifies what kind of risk threatens a deal
type RiskCategory string

const (
	RiskCategoryEngagement  RiskCategory = "engagement"
	RiskCategoryCompetition RiskCategory = "competition"
	RiskCategoryStakeholder RiskCategory = "stakeholder"
	RiskCategoryTiming      RiskCategory = "timing"
	RiskCategoryTechnical   RiskCategory = "technical"
	RiskCategoryFinancial   RiskCategory = "financial"
)

// AllRiskCategories returns every known risk category
func AllRiskCategories() []RiskCategory {
	return []RiskCategory{
		RiskCategoryEngagement,
		RiskCategoryCompetition,
		RiskCategoryStakeholder,
		RiskCategoryTiming,
		RiskCategoryTechnical,
		RiskCategoryFinancial,
	}
}

// IsValid checks if the category is a known risk category
func (c RiskCategory) IsValid() bool {
	switch c {
	case RiskCategoryEngagement,
		RiskCategoryCompetition,
		RiskCategoryStakeholder,
		RiskCategoryTiming,
		RiskCategoryTechnical,
		RiskCategoryFinancial:
		return true
	default:
		return false
	}
}

// Validate returns an error if the category is not a known risk category
func (c RiskCategory) Validate() error {
	if c == "" {
		return goerr.New("risk category cannot be empty")
	}
	if !c.IsValid() {
		return goerr.New("unknown risk category", goerr.V("category", c))
	}
	return nil
}

// String returns the string representation of RiskCategory
func (c RiskCategory) String() string {
	return string(c)
}
