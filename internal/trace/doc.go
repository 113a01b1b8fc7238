// Package trace records what a prim run spent its time on.
//
// A Tracer receives span and point events. Spans nest: a run (driver
// scope) contains one span per file (file scope), which contains the lex
// and print phases (pass scope).
//
//	prim fmt --trace=- --trace-level=detail src/
//
// Implementations:
//
//   - Nop: tracing disabled
//   - StreamTracer: writes every event as text or NDJSON
//   - RingTracer: keeps the last N events for a post-mortem dump
//   - MultiTracer: fans out to several tracers
//
// The active tracer travels through context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, 0)
//	defer span.End("")
package trace
