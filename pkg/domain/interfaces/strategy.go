package interfaces

import (
	"context"

	"github.com/dealradar/dealradar/pkg/domain/model"
)

// StrategyGenerator produces mitigation strategies for a batch of risks.
// Any returned error means the caller must fall back to static content.
type StrategyGenerator interface {
	GenerateStrategies(ctx context.Context, req *model.StrategyRequest) ([]string, error)
}
