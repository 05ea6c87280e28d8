package usecase

import (
	"time"

	"github.com/dealradar/dealradar/pkg/domain/interfaces"
	"github.com/dealradar/dealradar/pkg/domain/model"
)

type UseCases struct {
	repo       interfaces.Repository
	generator  interfaces.StrategyGenerator
	catalog    model.StrategyCatalog
	entries    []*model.RiskCategoryEntry
	clock      func() time.Time
	RiskRadar  *RiskRadarUseCase
	Mitigation *MitigationUseCase
	Dashboard  *DashboardUseCase
}

type Option func(*UseCases)

// WithStrategyGenerator sets the external strategy generator
func WithStrategyGenerator(generator interfaces.StrategyGenerator) Option {
	return func(uc *UseCases) {
		uc.generator = generator
	}
}

// WithStrategyCatalog replaces the built-in fallback catalog
func WithStrategyCatalog(catalog model.StrategyCatalog) Option {
	return func(uc *UseCases) {
		uc.catalog = catalog
	}
}

// WithCategoryEntries replaces the built-in risk category configuration
func WithCategoryEntries(entries []*model.RiskCategoryEntry) Option {
	return func(uc *UseCases) {
		uc.entries = entries
	}
}

// WithClock overrides time.Now for risk evaluation
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		catalog: model.DefaultStrategyCatalog(),
		entries: model.DefaultRiskCategoryEntries(),
		clock:   time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.RiskRadar = NewRiskRadarUseCase(repo, uc.clock)
	uc.Mitigation = NewMitigationUseCase(uc.generator, uc.catalog)
	uc.Dashboard = NewDashboardUseCase(uc.entries, uc.Mitigation)

	return uc
}
