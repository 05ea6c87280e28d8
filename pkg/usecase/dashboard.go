package usecase

import (
	"context"

	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// dashboardResolveLimit bounds concurrent generator calls per dashboard request
const dashboardResolveLimit = 4

// SummarizeByImpact counts entries per impact tier. Entries with an unknown
// impact are counted in Total only.
func SummarizeByImpact(entries []*model.RiskCategoryEntry) model.ImpactSummary {
	var s model.ImpactSummary
	for _, e := range entries {
		if e == nil {
			continue
		}
		s.Total++
		if e.IsMitigatable {
			s.Mitigatable++
		}
		switch e.Impact {
		case types.ImpactCritical:
			s.Critical++
		case types.ImpactHigh:
			s.High++
		case types.ImpactMedium:
			s.Medium++
		case types.ImpactLow:
			s.Low++
		}
	}
	return s
}

type DashboardUseCase struct {
	entries    []*model.RiskCategoryEntry
	mitigation *MitigationUseCase
}

func NewDashboardUseCase(entries []*model.RiskCategoryEntry, mitigation *MitigationUseCase) *DashboardUseCase {
	return &DashboardUseCase{
		entries:    entries,
		mitigation: mitigation,
	}
}

// Entries returns the configured category entries
func (uc *DashboardUseCase) Entries() []*model.RiskCategoryEntry {
	return uc.entries
}

// Entry returns the configured entry for category, or nil if none is configured
func (uc *DashboardUseCase) Entry(category types.RiskCategory) *model.RiskCategoryEntry {
	for _, e := range uc.entries {
		if e.Category == category {
			return e
		}
	}
	return nil
}

// GetRiskDashboard resolves mitigations for every configured category
// concurrently. The output keeps configuration order.
func (uc *DashboardUseCase) GetRiskDashboard(ctx context.Context) (*model.RiskDashboard, error) {
	results := make([]*model.CategoryMitigation, len(uc.entries))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(dashboardResolveLimit)
	for i, entry := range uc.entries {
		eg.Go(func() error {
			results[i] = &model.CategoryMitigation{
				Entry:      entry,
				Strategies: uc.mitigation.Resolve(egCtx, entry, entry.Category),
				Advisory:   !entry.IsMitigatable,
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to resolve dashboard mitigations")
	}

	return &model.RiskDashboard{
		Summary:    SummarizeByImpact(uc.entries),
		Categories: results,
	}, nil
}
