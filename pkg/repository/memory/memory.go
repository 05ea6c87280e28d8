package memory

import (
	"github.com/dealradar/dealradar/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	opportunity *opportunityRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		opportunity: newOpportunityRepository(),
	}
}

func (m *Memory) Opportunity() interfaces.OpportunityRepository {
	return m.opportunity
}

func (m *Memory) Close() error {
	return nil
}
