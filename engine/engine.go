// Package engine drives a customer-support case through the fixed stage
// graph: it owns the case record for the duration of a run, executes one
// stage at a time, merges each stage's patch, resolves the single branch via
// the router and derives the final payload at the terminal stage. Execution
// is strictly single-threaded; concurrent runs each get their own record.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/telaro/caseflow/internal/clock"
	"github.com/telaro/caseflow/internal/idgen"
	"github.com/telaro/caseflow/model"
	"github.com/telaro/caseflow/model/graph"
	"github.com/telaro/caseflow/service/gateway"
	"github.com/telaro/caseflow/tracing"
)

// stageFunc executes one stage against the current record and returns the
// fields it changes. Stages read the record but never mutate it; all writes
// go through the engine's merge.
type stageFunc func(ctx context.Context, record *model.CaseRecord, calls *abilityCalls) (*model.Patch, error)

// Engine executes case workflows against an ability gateway.
type Engine struct {
	gateway gateway.Gateway
	logger  *slog.Logger
	graph   *graph.Graph
	stages  map[graph.Stage]stageFunc
}

// Option customises the engine.
type Option func(*Engine)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New builds an engine over the supplied gateway. The stage graph is fixed at
// build time and validated here.
func New(gw gateway.Gateway, options ...Option) (*Engine, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	e := &Engine{
		gateway: gw,
		logger:  slog.Default(),
		graph:   newGraph(),
	}
	for _, option := range options {
		option(e)
	}
	e.stages = map[graph.Stage]stageFunc{
		graph.StageIntake:         e.intake,
		graph.StageUnderstand:     e.understand,
		graph.StagePrepare:        e.prepare,
		graph.StageAsk:            e.ask,
		graph.StageWait:           e.wait,
		graph.StageRetrieve:       e.retrieve,
		graph.StageDecide:         e.decide,
		graph.StageEscalate:       e.escalate,
		graph.StageAutoResolve:    e.autoResolve,
		graph.StageCreateResponse: e.createResponse,
		graph.StageUpdateClose:    e.updateClose,
		graph.StageComplete:       e.complete,
	}
	if issues := e.graph.Validate(); len(issues) > 0 {
		return nil, fmt.Errorf("invalid stage graph: %w", errors.Join(issues...))
	}
	return e, nil
}

// Run executes one workflow run from the entry stage to the terminal stage
// and returns the final record, including the derived payload. A failure not
// absorbed by stage-level defaulting aborts the run with a *RunError carrying
// the failing stage and the record snapshot.
func (e *Engine) Run(ctx context.Context, input model.Input) (*model.CaseRecord, error) {
	record := model.NewCaseRecord(idgen.New(), input, clock.Now())

	ctx, span := tracing.StartSpan(ctx, "caseflow.run", "INTERNAL")
	span.WithAttributes(map[string]string{
		"run_id":    record.RunID,
		"ticket_id": record.TicketID,
	})
	var runErr error
	defer func() { tracing.EndSpan(span, runErr) }()

	e.logger.Info("run started",
		slog.String("run_id", record.RunID),
		slog.String("ticket_id", record.TicketID),
		slog.String("priority", record.Priority))

	current := e.graph.Entry
	for {
		fn, ok := e.stages[current]
		if !ok {
			runErr = &RunError{Stage: current, Record: record, Err: fmt.Errorf("stage not registered")}
			return nil, runErr
		}

		stageCtx, stageSpan := tracing.StartSpan(ctx, "stage."+string(current), "INTERNAL")
		calls := newAbilityCalls(e.gateway, e.logger, record)
		patch, err := fn(stageCtx, record, calls)
		tracing.EndSpan(stageSpan, err)
		if err != nil {
			runErr = &RunError{Stage: current, Record: record, Err: err}
			return nil, runErr
		}

		if patch == nil {
			patch = &model.Patch{}
		}
		patch.Log = append(calls.entries, patch.Log...)
		record.Apply(string(current), stageDescriptions[current], patch)
		e.logger.Debug("stage completed",
			slog.String("run_id", record.RunID),
			slog.String("stage", string(current)))

		if current == e.graph.Terminal {
			break
		}

		next, err := e.graph.Next(current, record)
		if err != nil {
			runErr = &RunError{Stage: current, Record: record, Err: err}
			return nil, runErr
		}
		if e.graph.Edges[current].IsConditional() {
			record.AppendLog(fmt.Sprintf("[ROUTER] routing -> %s (score: %d)", next, EffectiveScore(record)))
			e.logger.Info("branch resolved",
				slog.String("run_id", record.RunID),
				slog.String("target", string(next)),
				slog.Int("score", EffectiveScore(record)))
		}
		current = next
	}

	record.Finalize()
	completedAt := clock.Now()
	record.CompletedAt = &completedAt

	e.logger.Info("run completed",
		slog.String("run_id", record.RunID),
		slog.String("ticket_id", record.TicketID),
		slog.String("path", record.FinalPayload.PathTaken),
		slog.String("status", record.FinalPayload.Status))
	return record, nil
}

// RunError reports an aborted run: the failing stage, the record snapshot at
// the time of failure and the cause.
type RunError struct {
	Stage  graph.Stage
	Record *model.CaseRecord
	Err    error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
