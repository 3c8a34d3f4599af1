// Package tracing integrates observability back-ends with the caseflow
// engine: one span per run, a child span per stage and per ability call. All
// instrumentation is kept in a separate package so that applications which do
// not require tracing can exclude it from their build.
package tracing
