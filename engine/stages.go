package engine

import (
	"context"

	"github.com/telaro/caseflow/model"
	"github.com/telaro/caseflow/service/gateway"
	"github.com/viant/toolbox"
)

// The workflow stages. Each reads the record, performs its gateway
// calls one after another (later calls may assume earlier ones completed) and
// returns the fields it changes. Failed calls are defaulted, never fatal.

func (e *Engine) intake(ctx context.Context, record *model.CaseRecord, calls *abilityCalls) (*model.Patch, error) {
	return &model.Patch{}, nil
}

func (e *Engine) understand(ctx context.Context, record *model.CaseRecord, calls *abilityCalls) (*model.Patch, error) {
	parsed, err := calls.invoke(ctx, gateway.ProviderCommon, "parse_request_text")
	if err != nil {
		return nil, err
	}
	entities, err := calls.invoke(ctx, gateway.ProviderAtlas, "extract_entities")
	if err != nil {
		return nil, err
	}
	return &model.Patch{
		ParsedRequest:     orEmpty(parsed),
		ExtractedEntities: orEmpty(entities),
	}, nil
}

func (e *Engine) prepare(ctx context.Context, record *model.CaseRecord, calls *abilityCalls) (*model.Patch, error) {
	normalized, err := calls.invoke(ctx, gateway.ProviderCommon, "normalize_fields")
	if err != nil {
		return nil, err
	}
	enriched, err := calls.invoke(ctx, gateway.ProviderAtlas, "enrich_records")
	if err != nil {
		return nil, err
	}
	flags, err := calls.invoke(ctx, gateway.ProviderCommon, "add_flags_calculations")
	if err != nil {
		return nil, err
	}
	return &model.Patch{
		NormalizedData:    orEmpty(normalized),
		EnrichedData:      orEmpty(enriched),
		FlagsCalculations: orEmpty(flags),
	}, nil
}

func (e *Engine) ask(ctx context.Context, record *model.CaseRecord, calls *abilityCalls) (*model.Patch, error) {
	result, err := calls.invoke(ctx, gateway.ProviderAtlas, "clarify_question")
	if err != nil {
		return nil, err
	}
	needed := true
	return &model.Patch{
		ClarificationQuestion: stringField(result, "question"),
		ClarificationNeeded:   &needed,
	}, nil
}

func (e *Engine) wait(ctx context.Context, record *model.CaseRecord, calls *abilityCalls) (*model.Patch, error) {
	result, err := calls.invoke(ctx, gateway.ProviderAtlas, "extract_answer")
	if err != nil {
		return nil, err
	}
	if _, err = calls.invoke(ctx, gateway.ProviderInternal, "store_answer"); err != nil {
		return nil, err
	}
	needed := false
	return &model.Patch{
		CustomerResponse:    stringField(result, "answer"),
		ClarificationNeeded: &needed,
	}, nil
}

func (e *Engine) retrieve(ctx context.Context, record *model.CaseRecord, calls *abilityCalls) (*model.Patch, error) {
	result, err := calls.invoke(ctx, gateway.ProviderAtlas, "knowledge_base_search")
	if err != nil {
		return nil, err
	}
	if _, err = calls.invoke(ctx, gateway.ProviderInternal, "store_data"); err != nil {
		return nil, err
	}
	return &model.Patch{
		KBResults: mappingsField(result, "results"),
	}, nil
}

func (e *Engine) decide(ctx context.Context, record *model.CaseRecord, calls *abilityCalls) (*model.Patch, error) {
	evaluation, err := calls.invoke(ctx, gateway.ProviderCommon, "solution_evaluation")
	if err != nil {
		return nil, err
	}
	// The score is load-bearing for routing: a missing or failed result maps
	// to the explicit default, not to "unset".
	score := intField(evaluation, "score", defaultSolutionScore)

	decision, err := calls.invoke(ctx, gateway.ProviderAtlas, "escalation_decision")
	if err != nil {
		return nil, err
	}
	escalate := boolField(decision, "escalate")
	return &model.Patch{
		SolutionScore:      &score,
		EscalationRequired: &escalate,
		DecisionRationale:  stringField(decision, "reason"),
	}, nil
}

func (e *Engine) escalate(ctx context.Context, record *model.CaseRecord, calls *abilityCalls) (*model.Patch, error) {
	result, err := calls.invoke(ctx, gateway.ProviderAtlas, "update_ticket")
	if err != nil {
		return nil, err
	}
	updated := boolField(result, "updated")
	path := true
	return &model.Patch{
		TicketUpdated:  &updated,
		EscalationPath: &path,
	}, nil
}

func (e *Engine) autoResolve(ctx context.Context, record *model.CaseRecord, calls *abilityCalls) (*model.Patch, error) {
	result, err := calls.invoke(ctx, gateway.ProviderAtlas, "update_ticket")
	if err != nil {
		return nil, err
	}
	updated := boolField(result, "updated")
	path := false
	return &model.Patch{
		TicketUpdated:  &updated,
		EscalationPath: &path,
	}, nil
}

func (e *Engine) createResponse(ctx context.Context, record *model.CaseRecord, calls *abilityCalls) (*model.Patch, error) {
	result, err := calls.invoke(ctx, gateway.ProviderCommon, "response_generation")
	if err != nil {
		return nil, err
	}
	return &model.Patch{
		GeneratedResponse: stringField(result, "response"),
	}, nil
}

func (e *Engine) updateClose(ctx context.Context, record *model.CaseRecord, calls *abilityCalls) (*model.Patch, error) {
	response, err := calls.invoke(ctx, gateway.ProviderCommon, "response_generation")
	if err != nil {
		return nil, err
	}
	closing, err := calls.invoke(ctx, gateway.ProviderAtlas, "close_ticket")
	if err != nil {
		return nil, err
	}
	apiCalls, err := calls.invoke(ctx, gateway.ProviderAtlas, "execute_api_calls")
	if err != nil {
		return nil, err
	}
	notifications, err := calls.invoke(ctx, gateway.ProviderAtlas, "trigger_notifications")
	if err != nil {
		return nil, err
	}
	closed := boolField(closing, "closed")
	return &model.Patch{
		GeneratedResponse: stringField(response, "response"),
		TicketClosed:      &closed,
		APICallsExecuted:  stringsField(apiCalls, "api_calls"),
		NotificationsSent: stringsField(notifications, "notifications"),
	}, nil
}

func (e *Engine) complete(ctx context.Context, record *model.CaseRecord, calls *abilityCalls) (*model.Patch, error) {
	if _, err := calls.invoke(ctx, gateway.ProviderInternal, "output_payload"); err != nil {
		return nil, err
	}
	// The payload itself is derived by the engine once this update is merged,
	// so it snapshots the completed record.
	return &model.Patch{}, nil
}

// Result-mapping coercion helpers. Remote replies are JSON mappings, so
// numbers arrive as float64 and lists as []interface{}; the stage is
// responsible for defaulting any missing expected key.

func orEmpty(result map[string]interface{}) map[string]interface{} {
	if result == nil {
		return map[string]interface{}{}
	}
	return result
}

func stringField(result map[string]interface{}, key string) *string {
	value, ok := result[key]
	if !ok || value == nil {
		return nil
	}
	text := toolbox.AsString(value)
	return &text
}

func intField(result map[string]interface{}, key string, fallback int) int {
	value, ok := result[key]
	if !ok || value == nil {
		return fallback
	}
	return toolbox.AsInt(value)
}

func boolField(result map[string]interface{}, key string) bool {
	value, ok := result[key]
	if !ok || value == nil {
		return false
	}
	return toolbox.AsBoolean(value)
}

func stringsField(result map[string]interface{}, key string) []string {
	items := []string{}
	value, ok := result[key]
	if !ok || value == nil {
		return items
	}
	list, ok := value.([]interface{})
	if !ok {
		return items
	}
	for _, item := range list {
		items = append(items, toolbox.AsString(item))
	}
	return items
}

func mappingsField(result map[string]interface{}, key string) []map[string]interface{} {
	items := []map[string]interface{}{}
	value, ok := result[key]
	if !ok || value == nil {
		return items
	}
	list, ok := value.([]interface{})
	if !ok {
		return items
	}
	for _, item := range list {
		if mapping, ok := item.(map[string]interface{}); ok {
			items = append(items, mapping)
		}
	}
	return items
}
