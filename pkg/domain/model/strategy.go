package model

import (
	"github.com/dealradar/dealradar/pkg/domain/types"
)

// StrategyRequest is the batch sent to an external strategy generator
type StrategyRequest struct {
	RiskFactors []StrategyRequestFactor `json:"riskFactors"`
}

// StrategyRequestFactor summarizes one risk for the generator. RiskScore is
// zero when the request is built from a category entry rather than a scored
// opportunity.
type StrategyRequestFactor struct {
	Category    types.RiskCategory `json:"category"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Impact      types.ImpactLevel  `json:"impact,omitempty"`
	Weight      float64            `json:"weight"`
	RiskScore   int                `json:"riskScore"`
	Reasons     []string           `json:"reasons,omitempty"`
}

// StrategyResponse is the success payload of a strategy generator
type StrategyResponse struct {
	Strategies []string `json:"strategies"`
}

// NewStrategyRequestFactor builds the generator summary of a category entry
func NewStrategyRequestFactor(entry *RiskCategoryEntry, category types.RiskCategory) StrategyRequestFactor {
	f := StrategyRequestFactor{Category: category}
	if entry != nil {
		f.Title = entry.Title
		f.Description = entry.Description
		f.Impact = entry.Impact
		f.Weight = entry.Weight
	}
	return f
}
