// Package gateway defines the narrow contract the workflow engine depends on
// to reach ability backends: given a provider, an ability name and a parameter
// mapping, return a result mapping or fail. Remote providers are synchronous
// and at-most-once per invocation; the internal provider never leaves the
// process.
package gateway

import (
	"context"
	"fmt"
)

// Provider is a logical grouping of abilities.
type Provider string

const (
	// ProviderCommon groups the stateless text-processing abilities.
	ProviderCommon Provider = "COMMON"
	// ProviderAtlas groups the abilities that touch external systems.
	ProviderAtlas Provider = "ATLAS"
	// ProviderInternal groups in-process no-op abilities. Calls to it return
	// immediately with a trivial acknowledgement and perform no I/O; it exists
	// so stages can record local side effects through the same call shape.
	ProviderInternal Provider = "internal"
)

// Gateway resolves ability invocations. Implementations must be safe for use
// from concurrent runs.
type Gateway interface {
	Invoke(ctx context.Context, provider Provider, ability string, params map[string]interface{}) (map[string]interface{}, error)
}

// Client reaches the abilities of a single remote provider.
type Client interface {
	CallAbility(ctx context.Context, ability string, params map[string]interface{}) (map[string]interface{}, error)
}

// Dispatcher routes invocations to per-provider clients and short-circuits the
// internal provider in-process.
type Dispatcher struct {
	clients map[Provider]Client
}

// NewDispatcher builds a dispatcher over the two remote providers.
func NewDispatcher(common, atlas Client) *Dispatcher {
	return &Dispatcher{
		clients: map[Provider]Client{
			ProviderCommon: common,
			ProviderAtlas:  atlas,
		},
	}
}

// Invoke implements Gateway.
func (d *Dispatcher) Invoke(ctx context.Context, provider Provider, ability string, params map[string]interface{}) (map[string]interface{}, error) {
	if provider == ProviderInternal {
		return InternalResult(ability), nil
	}
	client, ok := d.clients[provider]
	if !ok || client == nil {
		return nil, NewUnavailableError(provider, ability, fmt.Errorf("no client configured for provider %v", provider))
	}
	return client.CallAbility(ctx, ability, params)
}

// InternalResult is the trivial acknowledgement every internal ability returns.
func InternalResult(ability string) map[string]interface{} {
	return map[string]interface{}{"result": fmt.Sprintf("Internal %s executed", ability)}
}
