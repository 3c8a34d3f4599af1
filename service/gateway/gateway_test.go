package gateway

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clientFunc func(ctx context.Context, ability string, params map[string]interface{}) (map[string]interface{}, error)

func (f clientFunc) CallAbility(ctx context.Context, ability string, params map[string]interface{}) (map[string]interface{}, error) {
	return f(ctx, ability, params)
}

func TestDispatcher_RoutesToProviderClient(t *testing.T) {
	var calledProvider Provider
	common := clientFunc(func(ctx context.Context, ability string, params map[string]interface{}) (map[string]interface{}, error) {
		calledProvider = ProviderCommon
		return map[string]interface{}{"ok": true}, nil
	})
	atlas := clientFunc(func(ctx context.Context, ability string, params map[string]interface{}) (map[string]interface{}, error) {
		calledProvider = ProviderAtlas
		return map[string]interface{}{"ok": true}, nil
	})
	d := NewDispatcher(common, atlas)

	_, err := d.Invoke(context.Background(), ProviderCommon, "parse_request_text", nil)
	require.NoError(t, err)
	assert.Equal(t, ProviderCommon, calledProvider)

	_, err = d.Invoke(context.Background(), ProviderAtlas, "extract_entities", nil)
	require.NoError(t, err)
	assert.Equal(t, ProviderAtlas, calledProvider)
}

// TestDispatcher_InternalShortCircuit checks internal abilities never reach a
// remote client.
func TestDispatcher_InternalShortCircuit(t *testing.T) {
	remote := clientFunc(func(ctx context.Context, ability string, params map[string]interface{}) (map[string]interface{}, error) {
		t.Fatal("remote client must not be called for the internal provider")
		return nil, nil
	})
	d := NewDispatcher(remote, remote)

	result, err := d.Invoke(context.Background(), ProviderInternal, "output_payload", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"result": "Internal output_payload executed"}, result)
}

func TestDispatcher_UnknownProvider(t *testing.T) {
	d := NewDispatcher(nil, nil)
	_, err := d.Invoke(context.Background(), Provider("OTHER"), "anything", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAbilityUnavailable)
}

func TestCallError_Classification(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	testCases := []struct {
		name string
		err  error
		kind error
	}{
		{"unavailable", NewUnavailableError(ProviderCommon, "parse_request_text", cause), ErrAbilityUnavailable},
		{"ability", NewAbilityError(ProviderAtlas, "update_ticket", cause), ErrAbility},
		{"malformed", NewMalformedResultError(ProviderAtlas, "extract_entities", cause), ErrMalformedResult},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.err, tc.kind)
			for _, other := range []error{ErrAbilityUnavailable, ErrAbility, ErrMalformedResult} {
				if other != tc.kind {
					assert.NotErrorIs(t, tc.err, other)
				}
			}
			assert.ErrorIs(t, tc.err, cause)

			var callErr *CallError
			require.True(t, errors.As(tc.err, &callErr))
			assert.NotEmpty(t, callErr.Ability)
			assert.Contains(t, tc.err.Error(), callErr.Ability)
		})
	}
}
