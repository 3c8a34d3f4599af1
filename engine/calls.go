package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/telaro/caseflow/model"
	"github.com/telaro/caseflow/service/gateway"
	"github.com/telaro/caseflow/tracing"
)

// abilityCalls performs a stage's gateway calls and collects their trace
// entries. Entries are handed back to the engine as part of the stage patch,
// so individual calls never write to the record directly.
type abilityCalls struct {
	gateway gateway.Gateway
	logger  *slog.Logger
	record  *model.CaseRecord
	entries []string
}

func newAbilityCalls(gw gateway.Gateway, logger *slog.Logger, record *model.CaseRecord) *abilityCalls {
	return &abilityCalls{gateway: gw, logger: logger, record: record}
}

// invoke calls one ability with the standard parameter payload assembled from
// the record. Abilities are best-effort enrichments: on failure the result is
// nil and the stage applies its documented default. Only context cancellation
// is fatal.
func (c *abilityCalls) invoke(ctx context.Context, provider gateway.Provider, ability string) (map[string]interface{}, error) {
	callCtx, span := tracing.StartSpan(ctx, "ability."+ability, "CLIENT")
	span.WithAttributes(map[string]string{"provider": string(provider)})
	result, err := c.gateway.Invoke(callCtx, provider, ability, c.params())
	tracing.EndSpan(span, err)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn("ability call failed, applying stage default",
			slog.String("run_id", c.record.RunID),
			slog.String("provider", string(provider)),
			slog.String("ability", ability),
			slog.String("error", err.Error()))
		return nil, nil
	}
	c.entries = append(c.entries, fmt.Sprintf("[MCP] Called %s on %s server", ability, provider))
	return result, nil
}

func (c *abilityCalls) params() map[string]interface{} {
	params := map[string]interface{}{
		"customer_name": c.record.CustomerName,
		"email":         c.record.Email,
		"query":         c.record.Query,
		"priority":      c.record.Priority,
		"ticket_id":     c.record.TicketID,
	}
	if c.record.SolutionScore != nil {
		params["solution_score"] = *c.record.SolutionScore
	}
	return params
}
