package usecase

import (
	"context"

	"github.com/dealradar/dealradar/pkg/domain/interfaces"
	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/domain/types"
	"github.com/dealradar/dealradar/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// MitigationUseCase resolves ordered mitigation strategies for a risk
// category. Resolution is fail-open: any generator failure degrades to the
// static catalog and is never returned to the caller.
type MitigationUseCase struct {
	generator interfaces.StrategyGenerator
	catalog   model.StrategyCatalog
}

// NewMitigationUseCase creates the resolver. generator may be nil, in which
// case every resolution uses the catalog.
func NewMitigationUseCase(generator interfaces.StrategyGenerator, catalog model.StrategyCatalog) *MitigationUseCase {
	if catalog == nil {
		catalog = model.DefaultStrategyCatalog()
	}
	return &MitigationUseCase{
		generator: generator,
		catalog:   catalog,
	}
}

// Resolve returns the mitigation strategies for category. The entry's own
// MitigationStrategy, when set, always comes first. The result is never nil.
func (uc *MitigationUseCase) Resolve(ctx context.Context, entry *model.RiskCategoryEntry, category types.RiskCategory) []string {
	return uc.ResolveForRisk(ctx, entry, category, nil)
}

// ResolveForRisk is Resolve with the scored risk of a specific opportunity
// attached to the generator request. risk may be nil.
func (uc *MitigationUseCase) ResolveForRisk(ctx context.Context, entry *model.RiskCategoryEntry, category types.RiskCategory, risk *model.RiskFactor) []string {
	strategies := []string{}
	if entry != nil && entry.MitigationStrategy != "" {
		strategies = append(strategies, entry.MitigationStrategy)
	}

	factor := model.NewStrategyRequestFactor(entry, category)
	if risk != nil {
		factor.RiskScore = risk.RiskScore
		factor.Reasons = risk.RiskReasons
	}

	generated, err := uc.generate(ctx, &model.StrategyRequest{
		RiskFactors: []model.StrategyRequestFactor{factor},
	})
	if err != nil {
		logging.From(ctx).Warn("strategy generation failed, falling back to catalog",
			"category", category,
			"error", err,
		)
		return append(strategies, uc.catalog.Get(category)...)
	}

	return append(strategies, generated...)
}

// Catalog returns the fallback catalog used by the resolver
func (uc *MitigationUseCase) Catalog() model.StrategyCatalog {
	return uc.catalog
}

func (uc *MitigationUseCase) generate(ctx context.Context, req *model.StrategyRequest) ([]string, error) {
	if uc.generator == nil {
		return nil, goerr.Wrap(ErrGeneratorUnavailable, "no strategy generator")
	}

	strategies, err := uc.generator.GenerateStrategies(ctx, req)
	if err != nil {
		return nil, goerr.Wrap(err, "strategy generator returned error",
			goerr.V(CategoryKey, req.RiskFactors[0].Category))
	}

	return strategies, nil
}
