package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrInvalidStage         = errors.New("invalid opportunity stage")
	ErrGeneratorUnavailable = errors.New("strategy generator is not configured")
)

// Context keys for error values
const (
	OpportunityIDKey = "opportunity_id"
	StageKey         = "stage"
	CategoryKey      = "category"
)
