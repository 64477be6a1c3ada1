package handler

import (
	"fmt"
	"os"
	"time"

	"github.com/linelog/linelog/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// ErrorFunc receives failures that a handler recovered from instead of
// returning to the logging call site, such as writes to a broken
// stream. Implementations must not log through the same handler.
type ErrorFunc func(err error)

// defaultErrorFunc reports a handler failure to stderr with diagnostic
// context. It is the fallback when no ErrorFunc is configured, so a
// dead output stream leaves a trace without crashing the caller.
func defaultErrorFunc(err error) {
	fmt.Fprintf(os.Stderr, "linelog: %s handler error: %v\n", time.Now().Format(time.RFC3339), err)
}
