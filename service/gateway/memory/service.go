// Package memory provides an in-process Gateway backed by canned ability
// results. It is a complete second implementation of the gateway contract,
// selected by configuration - never an error-path fallback - and doubles as
// the fault-injection harness for engine tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/telaro/caseflow/service/gateway"
)

type abilityKey struct {
	provider gateway.Provider
	ability  string
}

// Service implements gateway.Gateway entirely in memory.
type Service struct {
	mux      sync.RWMutex
	handlers map[abilityKey]Handler
	failures map[abilityKey]error
}

// Option customises the mock gateway.
type Option func(*Service)

// WithResult overrides one ability with a fixed result mapping.
func WithResult(provider gateway.Provider, ability string, result map[string]interface{}) Option {
	return func(s *Service) {
		s.handlers[abilityKey{provider, ability}] = func(map[string]interface{}) map[string]interface{} {
			return result
		}
	}
}

// WithHandler overrides one ability with a custom handler.
func WithHandler(provider gateway.Provider, ability string, handler Handler) Option {
	return func(s *Service) {
		s.handlers[abilityKey{provider, ability}] = handler
	}
}

// WithFailure makes one ability fail with the supplied error.
func WithFailure(provider gateway.Provider, ability string, err error) Option {
	return func(s *Service) {
		s.failures[abilityKey{provider, ability}] = err
	}
}

// WithProviderDown makes every ability of the provider fail as unreachable.
func WithProviderDown(provider gateway.Provider) Option {
	return func(s *Service) {
		for ability := range Abilities(provider) {
			key := abilityKey{provider, ability}
			s.failures[key] = gateway.NewUnavailableError(provider, ability, fmt.Errorf("provider down"))
		}
	}
}

// New builds a mock gateway preloaded with the demo ability set.
func New(options ...Option) *Service {
	s := &Service{
		handlers: make(map[abilityKey]Handler),
		failures: make(map[abilityKey]error),
	}
	for _, provider := range []gateway.Provider{gateway.ProviderCommon, gateway.ProviderAtlas} {
		for ability, handler := range Abilities(provider) {
			s.handlers[abilityKey{provider, ability}] = handler
		}
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Invoke implements gateway.Gateway.
func (s *Service) Invoke(ctx context.Context, provider gateway.Provider, ability string, params map[string]interface{}) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if provider == gateway.ProviderInternal {
		return gateway.InternalResult(ability), nil
	}
	key := abilityKey{provider, ability}
	s.mux.RLock()
	failure := s.failures[key]
	handler := s.handlers[key]
	s.mux.RUnlock()

	if failure != nil {
		return nil, failure
	}
	if handler == nil {
		return nil, gateway.NewAbilityError(provider, ability, fmt.Errorf("ability %s not found", ability))
	}
	return handler(params), nil
}
