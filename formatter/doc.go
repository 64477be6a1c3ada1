// Package formatter defines how log entries are serialized into bytes.
//
// It exposes three interfaces: Formatter, which returns a []byte,
// WriterFormatter, which writes directly to an io.Writer, and
// BufferFormatter, which formats into a caller-provided buffer.
// Handlers check for the optional interfaces at construction time and
// prefer them when available, eliminating intermediate allocations on
// the write path.
//
// Formatted output never includes a trailing line terminator. The
// terminator belongs to the handler, because the progress handler must
// decide per record whether a line ends at all (same-line runs) and
// where the cursor lands afterwards (overwrite rewinds). Plain handlers
// simply append their terminator after each formatted record.
//
// Both built-in formatters (TextFormatter and JSONFormatter) use a
// pooled bytes.Buffer internally and rely on Go's Append-style
// functions (time.AppendFormat, strconv.AppendInt) to avoid per-call
// allocations. The TextFormatter additionally pre-computes level
// bracket strings (" [INFO] ", etc.) so that the most common path is a
// single WriteString call.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
