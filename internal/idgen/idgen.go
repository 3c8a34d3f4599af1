// Package idgen generates workflow run identifiers.
package idgen

import "github.com/google/uuid"

// NewFunc returns a new globally unique run id. Override in tests to make
// record identities predictable.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new run id via NewFunc.
func New() string { return NewFunc() }
