package handler

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/linelog/linelog/core"
	"github.com/linelog/linelog/formatter"
)

// backspace is the ASCII control character used to rewind the cursor.
const backspace byte = 0x08

// ProgressHandler writes log entries to a terminal stream with
// cursor-control support: consecutive records can share one output line
// (Entry.Line.SameLine), and a record can be rewound over so the next
// record redraws it in place (Entry.Line.Overwrite). This is the
// building block for textual progress bars and status counters.
//
// The handler tracks two pieces of state across records: whether the
// cursor currently sits mid-line, and whether the last record left the
// cursor rewound over an overwritable message. Records written mid-line
// carry only the raw message body, without the formatted prefix.
//
// Write failures are reported through OnError and never returned to the
// logging call site; panics are not recovered.
type ProgressHandler struct {
	mu              sync.Mutex
	writer          io.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	terminator      string
	onError         ErrorFunc

	// Emission state, mutated only inside emit.
	onSameLine  bool
	overwriting bool

	buf    bytes.Buffer // scratch for formatted records
	bs     []byte       // reusable backspace run
	closed bool
}

// ProgressConfig holds configuration for the progress handler
type ProgressConfig struct {
	// Writer to write to (default: os.Stderr)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Terminator is the line-ending sequence (default: "\n")
	Terminator string
	// OnError receives recovered write failures (default: stderr diagnostic)
	OnError ErrorFunc
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(cfg ProgressConfig) *ProgressHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.Terminator == "" {
		cfg.Terminator = "\n"
	}
	if cfg.OnError == nil {
		cfg.OnError = defaultErrorFunc
	}

	h := &ProgressHandler{
		writer:     cfg.Writer,
		formatter:  cfg.Formatter,
		terminator: cfg.Terminator,
		onError:    cfg.OnError,
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	h.buf.Grow(256)

	return h
}

// Handle writes one entry, sequencing terminator, content, and
// backspace bytes so that consecutive records compose into separate
// lines, continued same-line output, or in-place overwrites. Write
// failures go to OnError; the caller always gets nil.
func (h *ProgressHandler) Handle(entry *core.Entry) error {
	h.mu.Lock()
	err := h.emit(entry)
	h.mu.Unlock()

	if err != nil {
		h.onError(fmt.Errorf("progress handler: emit %q: %w", entry.Message, err))
	}
	return nil
}

// emit runs the state machine for a single entry. Caller holds mu.
func (h *ProgressHandler) emit(entry *core.Entry) error {
	sameLine := entry.Line.SameLine
	overwrite := entry.Line.Overwrite

	// Close out a previous same-line run before starting an unrelated
	// new line. A pending overwrite suppresses this: the cursor is
	// already rewound to where the replacement text must land.
	if h.onSameLine && !sameLine && !h.overwriting {
		if err := h.writeTerminator(); err != nil {
			return err
		}
	}

	// Mid-line records carry only the raw body, no prefix.
	var err error
	if h.onSameLine {
		_, err = io.WriteString(h.writer, entry.Message)
	} else {
		err = h.writeFormatted(entry)
	}
	if err != nil {
		return err
	}

	if overwrite {
		// Rewind over the raw body. The count tracks the body's rune
		// length, not the formatted length, so the cursor lands exactly
		// where the body began.
		if err := h.rewind(utf8.RuneCountInString(entry.Message)); err != nil {
			return err
		}
		h.overwriting = true
	} else {
		h.overwriting = false
	}

	if sameLine || overwrite {
		h.onSameLine = true
	} else {
		if err := h.writeTerminator(); err != nil {
			return err
		}
		h.onSameLine = false
	}

	return h.flush()
}

// writeFormatted writes the fully formatted record.
func (h *ProgressHandler) writeFormatted(entry *core.Entry) error {
	if h.bufferFormatter != nil {
		h.buf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.buf)
		_, err := h.writer.Write(h.buf.Bytes())
		return err
	}

	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(data)
	return err
}

func (h *ProgressHandler) writeTerminator() error {
	_, err := io.WriteString(h.writer, h.terminator)
	return err
}

// rewind writes n backspace characters from a reusable run.
func (h *ProgressHandler) rewind(n int) error {
	if n == 0 {
		return nil
	}
	if len(h.bs) < n {
		h.bs = bytes.Repeat([]byte{backspace}, n)
	}
	_, err := h.writer.Write(h.bs[:n])
	return err
}

// flush pushes buffered bytes through writers that support it, so
// partial lines become visible immediately. Unbuffered writers like
// os.Stderr have nothing to flush.
func (h *ProgressHandler) flush() error {
	if f, ok := h.writer.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// CanRecycleEntry returns true because the handler consumes entries synchronously
func (h *ProgressHandler) CanRecycleEntry() bool {
	return true
}

// Close terminates a pending same-line run so the cursor does not end
// up mid-line, and marks the handler closed. It is idempotent and does
// not close the underlying writer.
func (h *ProgressHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	if h.onSameLine {
		h.onSameLine = false
		h.overwriting = false
		if err := h.writeTerminator(); err != nil {
			h.onError(fmt.Errorf("progress handler: close: %w", err))
		}
	}
	return nil
}
