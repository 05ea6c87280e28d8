package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/dealradar/dealradar/pkg/domain/interfaces"
	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// AggregateRiskRadar evaluates every opportunity, drops those without risk and
// ranks the rest by descending score. Equal scores keep their input order.
// The input slice and its opportunities are not modified.
func AggregateRiskRadar(opps []*model.Opportunity, now time.Time) []*model.RiskFactor {
	radar := make([]*model.RiskFactor, 0, len(opps))
	for _, opp := range opps {
		if factor := EvaluateOpportunity(opp, now); factor != nil {
			radar = append(radar, factor)
		}
	}

	sort.SliceStable(radar, func(i, j int) bool {
		return radar[i].RiskScore > radar[j].RiskScore
	})

	return radar
}

type RiskRadarUseCase struct {
	repo  interfaces.Repository
	clock func() time.Time
}

func NewRiskRadarUseCase(repo interfaces.Repository, clock func() time.Time) *RiskRadarUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &RiskRadarUseCase{
		repo:  repo,
		clock: clock,
	}
}

// RiskRadarOption narrows the opportunities scanned by GetRiskRadar
type RiskRadarOption func(*riskRadarOptions)

type riskRadarOptions struct {
	stage types.OpportunityStage
}

// WithStage limits the radar to opportunities in stage
func WithStage(stage types.OpportunityStage) RiskRadarOption {
	return func(o *riskRadarOptions) {
		o.stage = stage
	}
}

// GetRiskRadar reads a snapshot of the pipeline and returns its risk radar
func (uc *RiskRadarUseCase) GetRiskRadar(ctx context.Context, opts ...RiskRadarOption) ([]*model.RiskFactor, error) {
	var o riskRadarOptions
	for _, opt := range opts {
		opt(&o)
	}

	var opps []*model.Opportunity
	var err error
	if o.stage != "" {
		if !o.stage.IsValid() {
			return nil, goerr.Wrap(ErrInvalidStage, "cannot build risk radar", goerr.V(StageKey, o.stage))
		}
		opps, err = uc.repo.Opportunity().ListByStage(ctx, o.stage)
	} else {
		opps, err = uc.repo.Opportunity().List(ctx)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list opportunities")
	}

	return AggregateRiskRadar(opps, uc.clock()), nil
}

// EvaluateOpportunityByID evaluates a single stored opportunity. The returned
// factor is nil when the opportunity carries no risk.
func (uc *RiskRadarUseCase) EvaluateOpportunityByID(ctx context.Context, id model.OpportunityID) (*model.Opportunity, *model.RiskFactor, error) {
	opp, err := uc.repo.Opportunity().Get(ctx, id)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to get opportunity", goerr.V(OpportunityIDKey, id))
	}
	return opp, EvaluateOpportunity(opp, uc.clock()), nil
}
