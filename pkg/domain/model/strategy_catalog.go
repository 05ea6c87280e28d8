package model

import (
	"github.com/dealradar/dealradar/pkg/domain/types"
)

// StrategyCatalog maps a risk category to ordered mitigation strategy
// templates. It is the fallback tier of mitigation resolution and is treated
// as immutable once built.
type StrategyCatalog map[types.RiskCategory][]string

// DefaultStrategyCatalog returns the built-in strategy templates
func DefaultStrategyCatalog() StrategyCatalog {
	return StrategyCatalog{
		types.RiskCategoryEngagement: {
			"Schedule an executive business review to re-engage the buying team",
			"Share a tailored case study from a similar customer",
			"Propose a short working session on the customer's top priority",
			"Ask the champion to identify blockers to momentum",
		},
		types.RiskCategoryCompetition: {
			"Prepare a competitive battle card for the account team",
			"Highlight differentiators with a side-by-side value comparison",
			"Arrange a reference call with a customer who switched from the competitor",
			"Quantify switching costs and total cost of ownership",
		},
		types.RiskCategoryStakeholder: {
			"Map the buying committee and identify gaps in coverage",
			"Request an introduction to the economic buyer",
			"Build a mutual action plan with the champion",
			"Tailor messaging to each stakeholder's success criteria",
		},
		types.RiskCategoryTiming: {
			"Confirm the decision timeline and procurement steps",
			"Agree on a mutual close plan with dated milestones",
			"Identify a compelling event that anchors the close date",
			"Offer a phased rollout to reduce time to first value",
		},
		types.RiskCategoryTechnical: {
			"Schedule a technical deep dive with the solutions engineer",
			"Run a scoped proof of concept against agreed success criteria",
			"Share security and compliance documentation proactively",
			"Provide an integration plan with reference architecture",
		},
		types.RiskCategoryFinancial: {
			"Build a business case with quantified ROI",
			"Offer flexible payment or ramped pricing options",
			"Identify an alternative budget source with the champion",
			"Align the proposal with the customer's fiscal calendar",
		},
	}
}

// Get returns a copy of the templates for category. Unknown categories yield
// an empty, non-nil list.
func (c StrategyCatalog) Get(category types.RiskCategory) []string {
	templates := c[category]
	out := make([]string, len(templates))
	copy(out, templates)
	return out
}

// With returns a new catalog where category's templates are replaced
func (c StrategyCatalog) With(category types.RiskCategory, templates []string) StrategyCatalog {
	out := make(StrategyCatalog, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	replaced := make([]string, len(templates))
	copy(replaced, templates)
	out[category] = replaced
	return out
}
