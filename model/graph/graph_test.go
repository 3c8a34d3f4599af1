package graph

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telaro/caseflow/model"
)

func soundGraph() *Graph {
	return &Graph{
		Entry:    StageIntake,
		Terminal: StageComplete,
		Edges: map[Stage]Edge{
			StageIntake: {Next: StageDecide},
			StageDecide: {
				Choose: func(record *model.CaseRecord) Stage {
					if record.EscalationRequired {
						return StageEscalate
					}
					return StageAutoResolve
				},
				Targets: []Stage{StageEscalate, StageAutoResolve},
			},
			StageEscalate:    {Next: StageComplete},
			StageAutoResolve: {Next: StageComplete},
		},
	}
}

func TestGraph_Validate(t *testing.T) {
	assert.Empty(t, soundGraph().Validate())
}

func TestGraph_ValidateIssues(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(g *Graph)
		message string
	}{
		{
			name:    "empty entry",
			mutate:  func(g *Graph) { g.Entry = "" },
			message: "entry stage is empty",
		},
		{
			name:    "terminal with outgoing edge",
			mutate:  func(g *Graph) { g.Edges[StageComplete] = Edge{Next: StageIntake} },
			message: "has an outgoing edge",
		},
		{
			name:    "unknown static target",
			mutate:  func(g *Graph) { g.Edges[StageEscalate] = Edge{Next: Stage("nowhere")} },
			message: "targets unknown stage",
		},
		{
			name: "conditional edge with single target",
			mutate: func(g *Graph) {
				edge := g.Edges[StageDecide]
				edge.Targets = []Stage{StageEscalate}
				g.Edges[StageDecide] = edge
			},
			message: "need at least 2",
		},
		{
			name:    "cycle",
			mutate:  func(g *Graph) { g.Edges[StageEscalate] = Edge{Next: StageIntake} },
			message: "cycle",
		},
		{
			name: "unreachable stage",
			mutate: func(g *Graph) {
				g.Edges[StageWait] = Edge{Next: StageComplete}
			},
			message: "unreachable",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := soundGraph()
			tc.mutate(g)
			issues := g.Validate()
			require.NotEmpty(t, issues)
			found := false
			for _, issue := range issues {
				if strings.Contains(issue.Error(), tc.message) {
					found = true
				}
			}
			assert.True(t, found, "expected an issue containing %q, got %v", tc.message, issues)
		})
	}
}

func TestGraph_NextStatic(t *testing.T) {
	g := soundGraph()
	record := model.NewCaseRecord("run-1", model.Input{}, time.Now())

	next, err := g.Next(StageIntake, record)
	require.NoError(t, err)
	assert.Equal(t, StageDecide, next)
}

func TestGraph_NextConditional(t *testing.T) {
	g := soundGraph()

	record := model.NewCaseRecord("run-1", model.Input{}, time.Now())
	next, err := g.Next(StageDecide, record)
	require.NoError(t, err)
	assert.Equal(t, StageAutoResolve, next)

	record.EscalationRequired = true
	next, err = g.Next(StageDecide, record)
	require.NoError(t, err)
	assert.Equal(t, StageEscalate, next)
}

func TestGraph_NextRejectsUndeclaredTarget(t *testing.T) {
	g := soundGraph()
	edge := g.Edges[StageDecide]
	edge.Choose = func(record *model.CaseRecord) Stage { return StageWait }
	g.Edges[StageDecide] = edge

	record := model.NewCaseRecord("run-1", model.Input{}, time.Now())
	_, err := g.Next(StageDecide, record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a declared target")
}

func TestGraph_NextMissingEdge(t *testing.T) {
	g := soundGraph()
	record := model.NewCaseRecord("run-1", model.Input{}, time.Now())
	_, err := g.Next(StageComplete, record)
	require.Error(t, err)
}

func TestStages_CoversAllConstants(t *testing.T) {
	assert.Len(t, Stages(), 12)
	assert.Equal(t, StageIntake, Stages()[0])
	assert.Equal(t, StageComplete, Stages()[11])
}
