package memory

import (
	"context"
	"encoding/json"
	"os"

	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// LoadOpportunities reads a JSON array of opportunities from path
func LoadOpportunities(path string) ([]*model.Opportunity, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read opportunity seed file", goerr.V("path", path))
	}

	var opps []*model.Opportunity
	if err := json.Unmarshal(data, &opps); err != nil {
		return nil, goerr.Wrap(err, "failed to parse opportunity seed file", goerr.V("path", path))
	}

	return opps, nil
}

// Seed stores opps in the repository in file order
func (m *Memory) Seed(ctx context.Context, opps []*model.Opportunity) error {
	for i, opp := range opps {
		if err := m.opportunity.Put(ctx, opp); err != nil {
			return goerr.Wrap(err, "failed to seed opportunity", goerr.V("index", i))
		}
	}
	return nil
}
