// Package model contains the in-memory representation of a case workflow
// run: the input a run starts from, the shared case record with its patch
// merge semantics, and the final payload derived when a run completes.
//
// The stage topology lives in the `graph` sub-package; the root model package
// holds only data and pure derivations, so it can be imported from any part
// of the code base without dragging in engine or transport concerns.
package model
