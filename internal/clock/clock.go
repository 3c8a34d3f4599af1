// Package clock provides the engine's time source. Run timestamps go through
// NowFunc so tests can pin time for deterministic records.
package clock

import "time"

// NowFunc returns the current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }
