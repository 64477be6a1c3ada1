// Package handler provides the Handler interface and its built-in
// implementations for dispatching log entries to various outputs.
//
// ProgressHandler is the package's reason to exist: a synchronous
// terminal handler that understands the per-entry cursor-control flags
// in core.LineOptions. With SameLine set, consecutive records append to
// the current output line (mid-line records are written as the raw
// message body, without the formatted prefix). With Overwrite set, the
// handler rewinds the cursor with backspace characters over the raw
// body it just wrote, so the next record replaces it visually. The two
// flags compose: a progress bar is one Overwrite record for the
// background followed by SameLine records for the fill. Write failures
// are routed to a configurable ErrorFunc instead of the logging call
// site; a broken terminal never crashes the application.
//
// ConsoleHandler is the plain output path: one terminated line per
// entry, written to any io.Writer (default: stdout). It supports both
// synchronous and asynchronous operation. In async mode, entries are
// sent to a bounded channel and processed by a background goroutine,
// which keeps the caller's hot path fast even under slow I/O. When the
// async queue is full, the handler applies a per-level OverflowPolicy:
// DropNewest (default for Debug/Info/Warn), DropOldest, or Block with
// a configurable timeout (default for Error). Dropped, blocked, and
// processed counts are tracked via the Stats type.
//
// Handlers own the line terminator; formatters emit terminator-free
// records. Neither handler closes its writer.
package handler
