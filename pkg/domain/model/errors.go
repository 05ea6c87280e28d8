package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrNotFound is returned by snapshot providers for unknown records
	ErrNotFound = goerr.New("not found")

	ErrInvalidOpportunity = goerr.New("invalid opportunity")
	ErrInvalidCategory    = goerr.New("invalid risk category entry")
)

// Context keys for error values
const (
	OpportunityIDKey = "opportunity_id"
	StageKey         = "stage"
	ProbabilityKey   = "probability"
	CategoryKey      = "category"
	WeightKey        = "weight"
)
