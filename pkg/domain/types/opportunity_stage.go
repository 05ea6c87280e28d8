package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// OpportunityStage represents the pipeline stage of a sales opportunity
type OpportunityStage string

const (
	OpportunityStageDiscover  OpportunityStage = "DISCOVER"
	OpportunityStageEvaluate  OpportunityStage = "EVALUATE"
	OpportunityStagePropose   OpportunityStage = "PROPOSE"
	OpportunityStageNegotiate OpportunityStage = "NEGOTIATE"
	OpportunityStageCloseWon  OpportunityStage = "CLOSE_WON"
	OpportunityStageCloseLost OpportunityStage = "CLOSE_LOST"
)

// AllOpportunityStages returns all stages in pipeline order
func AllOpportunityStages() []OpportunityStage {
	return []OpportunityStage{
		OpportunityStageDiscover,
		OpportunityStageEvaluate,
		OpportunityStagePropose,
		OpportunityStageNegotiate,
		OpportunityStageCloseWon,
		OpportunityStageCloseLost,
	}
}

// IsValid checks if the stage is one of the known pipeline stages
func (s OpportunityStage) IsValid() bool {
	switch s {
	case OpportunityStageDiscover,
		OpportunityStageEvaluate,
		OpportunityStagePropose,
		OpportunityStageNegotiate,
		OpportunityStageCloseWon,
		OpportunityStageCloseLost:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the opportunity has been closed, won or lost
func (s OpportunityStage) IsTerminal() bool {
	return s == OpportunityStageCloseWon || s == OpportunityStageCloseLost
}

// String returns the string representation of the stage
func (s OpportunityStage) String() string {
	return string(s)
}

// ParseOpportunityStage parses a string into an OpportunityStage
func ParseOpportunityStage(s string) (OpportunityStage, error) {
	stage := OpportunityStage(s)
	if !stage.IsValid() {
		return "", goerr.New("invalid opportunity stage", goerr.V("stage", s))
	}
	return stage, nil
}
