package engine

import (
	"github.com/telaro/caseflow/model/graph"
)

// newGraph encodes the fixed topology: a linear path from intake to decide,
// one conditional edge resolved by the router, and reconvergence at complete.
func newGraph() *graph.Graph {
	return &graph.Graph{
		Entry:    graph.StageIntake,
		Terminal: graph.StageComplete,
		Edges: map[graph.Stage]graph.Edge{
			graph.StageIntake:     {Next: graph.StageUnderstand},
			graph.StageUnderstand: {Next: graph.StagePrepare},
			graph.StagePrepare:    {Next: graph.StageAsk},
			graph.StageAsk:        {Next: graph.StageWait},
			graph.StageWait:       {Next: graph.StageRetrieve},
			graph.StageRetrieve:   {Next: graph.StageDecide},
			graph.StageDecide: {
				Choose:  RouteDecision,
				Targets: []graph.Stage{graph.StageEscalate, graph.StageAutoResolve},
			},
			graph.StageEscalate:       {Next: graph.StageCreateResponse},
			graph.StageAutoResolve:    {Next: graph.StageUpdateClose},
			graph.StageCreateResponse: {Next: graph.StageComplete},
			graph.StageUpdateClose:    {Next: graph.StageComplete},
		},
	}
}

var stageDescriptions = map[graph.Stage]string{
	graph.StageIntake:         "Accepting payload",
	graph.StageUnderstand:     "Parsing request and extracting entities",
	graph.StagePrepare:        "Normalizing, enriching, and calculating flags",
	graph.StageAsk:            "Asking clarification question",
	graph.StageWait:           "Extracting and storing answer",
	graph.StageRetrieve:       "Searching knowledge base",
	graph.StageDecide:         "Evaluating solutions (NON-DETERMINISTIC)",
	graph.StageEscalate:       "Escalating to human agent",
	graph.StageAutoResolve:    "Auto-resolving ticket",
	graph.StageCreateResponse: "Creating escalation response",
	graph.StageUpdateClose:    "Updating and closing ticket",
	graph.StageComplete:       "Outputting final payload",
}
