// Package graph defines the fixed stage topology of a case workflow: a named
// sequence of stages with a single conditional branch that reconverges before
// the terminal stage. The topology is encoded as an explicit edge table
// consulted by the engine's driver loop; it is fixed at build time, not
// data-driven.
package graph

import (
	"fmt"

	"github.com/telaro/caseflow/model"
)

// Stage names a unit of workflow logic.
type Stage string

const (
	StageIntake         Stage = "intake"
	StageUnderstand     Stage = "understand"
	StagePrepare        Stage = "prepare"
	StageAsk            Stage = "ask"
	StageWait           Stage = "wait"
	StageRetrieve       Stage = "retrieve"
	StageDecide         Stage = "decide"
	StageEscalate       Stage = "escalate"
	StageAutoResolve    Stage = "auto_resolve"
	StageCreateResponse Stage = "create_response"
	StageUpdateClose    Stage = "update_close"
	StageComplete       Stage = "complete"
)

// Stages returns every stage the graph can visit, in declaration order.
func Stages() []Stage {
	return []Stage{
		StageIntake, StageUnderstand, StagePrepare, StageAsk, StageWait,
		StageRetrieve, StageDecide, StageEscalate, StageAutoResolve,
		StageCreateResponse, StageUpdateClose, StageComplete,
	}
}

// Router selects the next stage at a conditional edge by inspecting the
// current record. It must be pure.
type Router func(record *model.CaseRecord) Stage

// Edge describes the single outgoing transition of a stage. Exactly one kind
// is set: Next for a static edge, or Choose with its allowed Targets for the
// conditional edge.
type Edge struct {
	Next    Stage
	Choose  Router
	Targets []Stage
}

// IsConditional reports whether the edge is resolved by a router.
func (e Edge) IsConditional() bool {
	return e.Choose != nil
}

// Graph is the workflow state machine: an entry stage, a terminal stage and
// one outgoing edge per non-terminal stage.
type Graph struct {
	Entry    Stage
	Terminal Stage
	Edges    map[Stage]Edge
}

// Next resolves the transition out of the given stage. For a conditional edge
// the router's choice must be one of the declared targets.
func (g *Graph) Next(current Stage, record *model.CaseRecord) (Stage, error) {
	edge, ok := g.Edges[current]
	if !ok {
		return "", fmt.Errorf("stage %v has no outgoing edge", current)
	}
	if !edge.IsConditional() {
		return edge.Next, nil
	}
	choice := edge.Choose(record)
	for _, target := range edge.Targets {
		if choice == target {
			return choice, nil
		}
	}
	return "", fmt.Errorf("router selected %v, not a declared target of %v", choice, current)
}

// Validate performs a structural validation of the graph. The returned slice
// is empty when the graph is sound; otherwise it contains human-readable
// error descriptions. Transitions are not executed - only static properties
// are verified.
func (g *Graph) Validate() []error {
	var issues []error

	if g.Entry == "" {
		issues = append(issues, fmt.Errorf("entry stage is empty"))
	}
	if g.Terminal == "" {
		issues = append(issues, fmt.Errorf("terminal stage is empty"))
	}
	if _, ok := g.Edges[g.Terminal]; ok {
		issues = append(issues, fmt.Errorf("terminal stage %v has an outgoing edge", g.Terminal))
	}

	known := map[Stage]bool{g.Terminal: true}
	for stage := range g.Edges {
		known[stage] = true
	}

	for stage, edge := range g.Edges {
		if edge.IsConditional() {
			if len(edge.Targets) < 2 {
				issues = append(issues, fmt.Errorf("conditional edge of %v declares %d targets, need at least 2", stage, len(edge.Targets)))
			}
			for _, target := range edge.Targets {
				if !known[target] {
					issues = append(issues, fmt.Errorf("stage %v targets unknown stage %v", stage, target))
				}
			}
		} else {
			if edge.Next == "" {
				issues = append(issues, fmt.Errorf("stage %v has an empty static edge", stage))
			} else if !known[edge.Next] {
				issues = append(issues, fmt.Errorf("stage %v targets unknown stage %v", stage, edge.Next))
			}
		}
	}

	// DFS with colour set (white/grey/black) to detect back-edge cycles and
	// stages unreachable from the entry.
	const (
		white = 0
		grey  = 1
		black = 2
	)
	colour := map[Stage]int{}

	var dfs func(Stage) bool // reports a cycle
	dfs = func(stage Stage) bool {
		switch colour[stage] {
		case grey:
			return true
		case black:
			return false
		}
		colour[stage] = grey
		edge, ok := g.Edges[stage]
		if ok {
			if edge.IsConditional() {
				for _, target := range edge.Targets {
					if dfs(target) {
						return true
					}
				}
			} else if dfs(edge.Next) {
				return true
			}
		}
		colour[stage] = black
		return false
	}

	if dfs(g.Entry) {
		issues = append(issues, fmt.Errorf("graph contains a cycle"))
	}
	for stage := range known {
		if colour[stage] == white {
			issues = append(issues, fmt.Errorf("stage %v is unreachable from %v", stage, g.Entry))
		}
	}

	return issues
}
