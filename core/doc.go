// Package core defines the shared types used across the linelog library.
//
// It provides the Level type for severity filtering, the Entry type that
// represents a single log event, the Field type for zero-allocation
// structured key-value pairs, and LineOptions, the per-call flags that
// drive same-line and overwrite output in cursor-aware handlers.
//
// Entry objects are pooled via sync.Pool to keep the hot path
// allocation-free. Callers get an Entry with GetEntry and must return it
// with PutEntry once the handler has consumed it. The pool reset clears
// the Fields slice, the message, the caller info, and the LineOptions,
// so a recycled entry never inherits cursor-control flags from a
// previous log call.
//
// Field encodes values into fixed-size numeric fields (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap. The Any field exists as a fallback for
// arbitrary types but will cause an allocation.
package core
