package model

import (
	"time"

	"github.com/dealradar/dealradar/pkg/domain/types"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// OpportunityID identifies a sales opportunity in the pipeline
type OpportunityID string

// NewOpportunityID generates a new UUID v4 OpportunityID
func NewOpportunityID() OpportunityID {
	return OpportunityID(uuid.New().String())
}

// String returns the string representation of OpportunityID
func (id OpportunityID) String() string {
	return string(id)
}

// Opportunity is a read-only snapshot of a pipeline opportunity. The risk
// engine never mutates it.
type Opportunity struct {
	ID          OpportunityID          `json:"id"`
	Name        string                 `json:"name,omitempty"`
	Amount      float64                `json:"amount,omitempty"`
	Stage       types.OpportunityStage `json:"stage"`
	UpdatedAt   time.Time              `json:"updatedAt"`
	CloseDate   *time.Time             `json:"closeDate,omitempty"`
	Probability *int                   `json:"probability,omitempty"`
}

// Validate checks fields required by the snapshot provider. The evaluator
// itself never validates and tolerates any field combination.
func (o *Opportunity) Validate() error {
	if o.ID == "" {
		return goerr.Wrap(ErrInvalidOpportunity, "opportunity ID is required")
	}
	if !o.Stage.IsValid() {
		return goerr.Wrap(ErrInvalidOpportunity, "invalid stage",
			goerr.V(OpportunityIDKey, o.ID),
			goerr.V(StageKey, o.Stage))
	}
	if o.UpdatedAt.IsZero() {
		return goerr.Wrap(ErrInvalidOpportunity, "updatedAt is required", goerr.V(OpportunityIDKey, o.ID))
	}
	if o.Probability != nil && (*o.Probability < 0 || *o.Probability > 100) {
		return goerr.Wrap(ErrInvalidOpportunity, "probability must be between 0 and 100",
			goerr.V(OpportunityIDKey, o.ID),
			goerr.V(ProbabilityKey, *o.Probability))
	}
	return nil
}
