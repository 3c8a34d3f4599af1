package gateway

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is against a returned error to classify it.
var (
	// ErrAbilityUnavailable indicates the gateway could not reach the provider.
	ErrAbilityUnavailable = errors.New("ability unavailable")
	// ErrAbility indicates the provider was reached and reported a failure.
	ErrAbility = errors.New("ability error")
	// ErrMalformedResult indicates the reply could not be decoded into a
	// result mapping.
	ErrMalformedResult = errors.New("malformed ability result")
)

// CallError carries the provider and ability of a failed invocation together
// with its kind and cause.
type CallError struct {
	Provider Provider
	Ability  string
	Kind     error
	Cause    error
}

func (e *CallError) Error() string {
	msg := fmt.Sprintf("%v: %s on %s", e.Kind, e.Ability, e.Provider)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *CallError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func (e *CallError) Unwrap() error {
	return e.Cause
}

// NewUnavailableError reports a transport or connection failure.
func NewUnavailableError(provider Provider, ability string, cause error) error {
	return &CallError{Provider: provider, Ability: ability, Kind: ErrAbilityUnavailable, Cause: cause}
}

// NewAbilityError reports an application failure surfaced by the provider.
func NewAbilityError(provider Provider, ability string, cause error) error {
	return &CallError{Provider: provider, Ability: ability, Kind: ErrAbility, Cause: cause}
}

// NewMalformedResultError reports a reply the caller cannot safely decode.
func NewMalformedResultError(provider Provider, ability string, cause error) error {
	return &CallError{Provider: provider, Ability: ability, Kind: ErrMalformedResult, Cause: cause}
}
