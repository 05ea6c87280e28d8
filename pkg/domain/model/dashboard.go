package model

// CategoryMitigation pairs a category entry with its resolved strategies.
// Advisory is set when the category is not mitigatable and the strategies
// should be shown as guidance only.
type CategoryMitigation struct {
	Entry      *RiskCategoryEntry `json:"entry"`
	Strategies []string           `json:"strategies"`
	Advisory   bool               `json:"advisory"`
}

// RiskDashboard is the impact-tier summary of the configured risk categories
type RiskDashboard struct {
	Summary    ImpactSummary         `json:"summary"`
	Categories []*CategoryMitigation `json:"categories"`
}
