package interfaces

import (
	"context"

	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/domain/types"
)

// OpportunityRepository supplies opportunity snapshots to the risk engine.
// The engine only reads; Put exists for seeding and admin tools.
type OpportunityRepository interface {
	// List retrieves all opportunities in a stable order
	List(ctx context.Context) ([]*model.Opportunity, error)

	// ListByStage retrieves opportunities in one stage, oldest activity first
	ListByStage(ctx context.Context, stage types.OpportunityStage) ([]*model.Opportunity, error)

	// Get retrieves an opportunity by ID
	Get(ctx context.Context, id model.OpportunityID) (*model.Opportunity, error)

	// Put creates or replaces an opportunity
	Put(ctx context.Context, opp *model.Opportunity) error
}
