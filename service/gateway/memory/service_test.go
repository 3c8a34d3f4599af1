package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telaro/caseflow/service/gateway"
)

func TestService_InvokeCannedResult(t *testing.T) {
	svc := New()
	result, err := svc.Invoke(context.Background(), gateway.ProviderCommon, "parse_request_text", nil)
	require.NoError(t, err)
	assert.Equal(t, "billing_inquiry", result["intent"])
}

func TestService_InvokeInternal(t *testing.T) {
	svc := New()
	result, err := svc.Invoke(context.Background(), gateway.ProviderInternal, "store_answer", nil)
	require.NoError(t, err)
	assert.Equal(t, "Internal store_answer executed", result["result"])
}

func TestService_InvokeUnknownAbility(t *testing.T) {
	svc := New()
	_, err := svc.Invoke(context.Background(), gateway.ProviderCommon, "no_such_ability", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, gateway.ErrAbility)
}

func TestService_InvokeCancelled(t *testing.T) {
	svc := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Invoke(ctx, gateway.ProviderCommon, "parse_request_text", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_WithResult(t *testing.T) {
	svc := New(WithResult(gateway.ProviderCommon, "solution_evaluation",
		map[string]interface{}{"score": 95}))
	result, err := svc.Invoke(context.Background(), gateway.ProviderCommon, "solution_evaluation", nil)
	require.NoError(t, err)
	assert.Equal(t, 95, result["score"])
}

func TestService_WithFailure(t *testing.T) {
	svc := New(WithFailure(gateway.ProviderAtlas, "update_ticket",
		gateway.NewUnavailableError(gateway.ProviderAtlas, "update_ticket", fmt.Errorf("down"))))
	_, err := svc.Invoke(context.Background(), gateway.ProviderAtlas, "update_ticket", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, gateway.ErrAbilityUnavailable)

	// Other abilities of the provider stay healthy.
	_, err = svc.Invoke(context.Background(), gateway.ProviderAtlas, "extract_entities", nil)
	assert.NoError(t, err)
}

func TestService_WithProviderDown(t *testing.T) {
	svc := New(WithProviderDown(gateway.ProviderAtlas))
	for ability := range Abilities(gateway.ProviderAtlas) {
		_, err := svc.Invoke(context.Background(), gateway.ProviderAtlas, ability, nil)
		assert.ErrorIs(t, err, gateway.ErrAbilityUnavailable, ability)
	}
	_, err := svc.Invoke(context.Background(), gateway.ProviderCommon, "parse_request_text", nil)
	assert.NoError(t, err)
}

// TestAbilities_EscalationDecision verifies the canned decision tracks the
// score passed in the invocation parameters against the threshold of 90.
func TestAbilities_EscalationDecision(t *testing.T) {
	svc := New()
	testCases := []struct {
		name     string
		params   map[string]interface{}
		escalate bool
	}{
		{"default score escalates", nil, true},
		{"low score escalates", map[string]interface{}{"solution_score": 40}, true},
		{"score at threshold resolves", map[string]interface{}{"solution_score": 90}, false},
		{"high score resolves", map[string]interface{}{"solution_score": 95}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Invoke(context.Background(), gateway.ProviderAtlas, "escalation_decision", tc.params)
			require.NoError(t, err)
			assert.Equal(t, tc.escalate, result["escalate"])
		})
	}
}

func TestAbilities_ResponseGenerationUsesCustomerName(t *testing.T) {
	svc := New()
	result, err := svc.Invoke(context.Background(), gateway.ProviderCommon, "response_generation",
		map[string]interface{}{"customer_name": "John Smith"})
	require.NoError(t, err)
	assert.Equal(t, "Dear John Smith, inquiry resolved.", result["response"])

	result, err = svc.Invoke(context.Background(), gateway.ProviderCommon, "response_generation", nil)
	require.NoError(t, err)
	assert.Equal(t, "Dear Customer, inquiry resolved.", result["response"])
}

func TestAbilities_UnknownProvider(t *testing.T) {
	assert.Nil(t, Abilities(gateway.Provider("OTHER")))
}
