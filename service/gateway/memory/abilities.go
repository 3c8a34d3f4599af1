package memory

import (
	"github.com/telaro/caseflow/service/gateway"
	"github.com/viant/toolbox"
)

// Handler computes one ability's canned result from the invocation parameters.
type Handler func(params map[string]interface{}) map[string]interface{}

// Abilities returns the demo ability set of the given remote provider. The
// same handlers back the in-process gateway and the standalone ability
// servers, so both backends stay in lockstep.
func Abilities(provider gateway.Provider) map[string]Handler {
	switch provider {
	case gateway.ProviderCommon:
		return commonAbilities()
	case gateway.ProviderAtlas:
		return atlasAbilities()
	default:
		return nil
	}
}

func commonAbilities() map[string]Handler {
	return map[string]Handler{
		"parse_request_text": func(map[string]interface{}) map[string]interface{} {
			return map[string]interface{}{"intent": "billing_inquiry", "urgency": "medium"}
		},
		"normalize_fields": func(map[string]interface{}) map[string]interface{} {
			return map[string]interface{}{"priority": "high", "ticket_id": "TKT-12345"}
		},
		"add_flags_calculations": func(map[string]interface{}) map[string]interface{} {
			return map[string]interface{}{"sla_risk": "low", "priority_score": 65}
		},
		"solution_evaluation": func(map[string]interface{}) map[string]interface{} {
			return map[string]interface{}{"score": 85, "confidence": "high"}
		},
		"response_generation": func(params map[string]interface{}) map[string]interface{} {
			name := "Customer"
			if value, ok := params["customer_name"]; ok && value != nil {
				if text := toolbox.AsString(value); text != "" {
					name = text
				}
			}
			return map[string]interface{}{"response": "Dear " + name + ", inquiry resolved."}
		},
	}
}

func atlasAbilities() map[string]Handler {
	return map[string]Handler{
		"extract_entities": func(map[string]interface{}) map[string]interface{} {
			return map[string]interface{}{"account_id": "ACC123456", "product": "Premium Plan"}
		},
		"enrich_records": func(map[string]interface{}) map[string]interface{} {
			return map[string]interface{}{"customer_tier": "gold", "previous_tickets": 2}
		},
		"clarify_question": func(map[string]interface{}) map[string]interface{} {
			return map[string]interface{}{"question": "Please provide account number?"}
		},
		"extract_answer": func(map[string]interface{}) map[string]interface{} {
			return map[string]interface{}{"answer": "ACC123456", "confidence": 0.95}
		},
		"knowledge_base_search": func(map[string]interface{}) map[string]interface{} {
			return map[string]interface{}{
				"results": []interface{}{
					map[string]interface{}{"title": "Billing FAQ", "relevance": 0.9},
				},
			}
		},
		"escalation_decision": func(params map[string]interface{}) map[string]interface{} {
			score := 85
			if value, ok := params["solution_score"]; ok && value != nil {
				score = toolbox.AsInt(value)
			}
			return map[string]interface{}{"escalate": score < 90, "reason": "Score threshold"}
		},
		"update_ticket": func(map[string]interface{}) map[string]interface{} {
			return map[string]interface{}{"updated": true, "status": "in_progress"}
		},
		"close_ticket": func(map[string]interface{}) map[string]interface{} {
			return map[string]interface{}{"closed": true, "resolution": "Resolved"}
		},
		"execute_api_calls": func(map[string]interface{}) map[string]interface{} {
			return map[string]interface{}{"api_calls": []interface{}{"billing_update"}, "status": "success"}
		},
		"trigger_notifications": func(map[string]interface{}) map[string]interface{} {
			return map[string]interface{}{"notifications": []interface{}{"email_sent"}, "status": "success"}
		},
	}
}
