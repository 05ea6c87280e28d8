package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type opportunityRepository struct {
	mu    sync.RWMutex
	opps  map[model.OpportunityID]*model.Opportunity
	order []model.OpportunityID
}

func newOpportunityRepository() *opportunityRepository {
	return &opportunityRepository{
		opps: make(map[model.OpportunityID]*model.Opportunity),
	}
}

// copyOpportunity returns a deep copy so callers never share pointers with the store
func copyOpportunity(opp *model.Opportunity) *model.Opportunity {
	c := *opp
	if opp.CloseDate != nil {
		closeDate := *opp.CloseDate
		c.CloseDate = &closeDate
	}
	if opp.Probability != nil {
		probability := *opp.Probability
		c.Probability = &probability
	}
	return &c
}

func (r *opportunityRepository) List(ctx context.Context) ([]*model.Opportunity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opps := make([]*model.Opportunity, 0, len(r.order))
	for _, id := range r.order {
		opps = append(opps, copyOpportunity(r.opps[id]))
	}
	return opps, nil
}

func (r *opportunityRepository) ListByStage(ctx context.Context, stage types.OpportunityStage) ([]*model.Opportunity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var opps []*model.Opportunity
	for _, id := range r.order {
		if opp := r.opps[id]; opp.Stage == stage {
			opps = append(opps, copyOpportunity(opp))
		}
	}

	sort.SliceStable(opps, func(i, j int) bool {
		return opps[i].UpdatedAt.Before(opps[j].UpdatedAt)
	})
	return opps, nil
}

func (r *opportunityRepository) Get(ctx context.Context, id model.OpportunityID) (*model.Opportunity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opp, exists := r.opps[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "opportunity not found", goerr.V(model.OpportunityIDKey, id))
	}
	return copyOpportunity(opp), nil
}

func (r *opportunityRepository) Put(ctx context.Context, opp *model.Opportunity) error {
	if opp == nil {
		return goerr.New("opportunity is nil")
	}

	stored := copyOpportunity(opp)
	if stored.ID == "" {
		stored.ID = model.NewOpportunityID()
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now().UTC()
	}
	if err := stored.Validate(); err != nil {
		return goerr.Wrap(err, "failed to put opportunity")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.opps[stored.ID]; !exists {
		r.order = append(r.order, stored.ID)
	}
	r.opps[stored.ID] = stored
	opp.ID = stored.ID
	return nil
}
