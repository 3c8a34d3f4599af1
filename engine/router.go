package engine

import (
	"github.com/telaro/caseflow/model"
	"github.com/telaro/caseflow/model/graph"
)

const (
	// defaultSolutionScore is used for routing when the decide stage could not
	// obtain a score. An unset score is treated as exactly 85, never as "no
	// opinion".
	defaultSolutionScore = 85
	// escalationThreshold is the score below which a case escalates.
	escalationThreshold = 90
)

// EffectiveScore returns the routing score, substituting the documented
// default when the score is unset.
func EffectiveScore(record *model.CaseRecord) int {
	if record.SolutionScore == nil {
		return defaultSolutionScore
	}
	return *record.SolutionScore
}

// RouteDecision is the pure branch decision invoked after the decide stage:
// escalate when escalation is required or the score is below the threshold,
// otherwise auto-resolve.
func RouteDecision(record *model.CaseRecord) graph.Stage {
	if record.EscalationRequired || EffectiveScore(record) < escalationThreshold {
		return graph.StageEscalate
	}
	return graph.StageAutoResolve
}
