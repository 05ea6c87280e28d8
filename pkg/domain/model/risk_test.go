package model_test

import (
	"errors"
	"testing"

	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestRiskCategoryEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   model.RiskCategoryEntry
		wantErr bool
	}{
		{
			name:  "valid",
			entry: model.RiskCategoryEntry{Category: types.RiskCategoryTiming, Impact: types.ImpactHigh, Weight: 0.5},
		},
		{
			name:  "weight bounds are inclusive",
			entry: model.RiskCategoryEntry{Category: types.RiskCategoryTiming, Impact: types.ImpactLow, Weight: 1},
		},
		{
			name:    "unknown category",
			entry:   model.RiskCategoryEntry{Category: "legal", Impact: types.ImpactHigh, Weight: 0.5},
			wantErr: true,
		},
		{
			name:    "unknown impact",
			entry:   model.RiskCategoryEntry{Category: types.RiskCategoryTiming, Impact: "severe", Weight: 0.5},
			wantErr: true,
		},
		{
			name:    "weight above 1",
			entry:   model.RiskCategoryEntry{Category: types.RiskCategoryTiming, Impact: types.ImpactHigh, Weight: 1.5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				gt.Error(t, err)
				gt.Bool(t, errors.Is(err, model.ErrInvalidCategory)).True()
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestDefaultRiskCategoryEntries(t *testing.T) {
	entries := model.DefaultRiskCategoryEntries()
	gt.Array(t, entries).Length(len(types.AllRiskCategories()))

	seen := map[types.RiskCategory]bool{}
	for _, e := range entries {
		gt.NoError(t, e.Validate())
		gt.Bool(t, seen[e.Category]).False()
		seen[e.Category] = true
	}
}

func TestNewStrategyRequestFactor(t *testing.T) {
	t.Run("copies entry fields", func(t *testing.T) {
		entry := &model.RiskCategoryEntry{
			Category:    types.RiskCategoryFinancial,
			Title:       "Budget",
			Description: "No budget",
			Impact:      types.ImpactLow,
			Weight:      0.3,
		}
		f := model.NewStrategyRequestFactor(entry, types.RiskCategoryFinancial)
		gt.Value(t, f.Category).Equal(types.RiskCategoryFinancial)
		gt.Value(t, f.Title).Equal("Budget")
		gt.Value(t, f.Impact).Equal(types.ImpactLow)
		gt.Value(t, f.Weight).Equal(0.3)
	})

	t.Run("nil entry keeps category only", func(t *testing.T) {
		f := model.NewStrategyRequestFactor(nil, types.RiskCategoryTiming)
		gt.Value(t, f.Category).Equal(types.RiskCategoryTiming)
		gt.Value(t, f.Title).Equal("")
	})
}
