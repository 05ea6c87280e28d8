package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// ImpactLevel is the severity tier assigned to a risk category. It is used
// for dashboard bucketing only and is never derived from a risk score.
type ImpactLevel string

const (
	ImpactCritical ImpactLevel = "critical"
	ImpactHigh     ImpactLevel = "high"
	ImpactMedium   ImpactLevel = "medium"
	ImpactLow      ImpactLevel = "low"
)

// AllImpactLevels returns impact levels from most to least severe
func AllImpactLevels() []ImpactLevel {
	return []ImpactLevel{
		ImpactCritical,
		ImpactHigh,
		ImpactMedium,
		ImpactLow,
	}
}

// Validate checks if the ImpactLevel is valid
func (i ImpactLevel) Validate() error {
	switch i {
	case ImpactCritical, ImpactHigh, ImpactMedium, ImpactLow:
		return nil
	case "":
		return goerr.New("impact level cannot be empty")
	default:
		return goerr.New("unknown impact level", goerr.V("impact", i))
	}
}

// String returns the string representation of ImpactLevel
func (i ImpactLevel) String() string {
	return string(i)
}
