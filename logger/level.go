package logger

import (
	"strings"

	"github.com/linelog/linelog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	DebugLevel = core.DebugLevel
	InfoLevel  = core.InfoLevel
	WarnLevel  = core.WarnLevel
	ErrorLevel = core.ErrorLevel
	FatalLevel = core.FatalLevel
	PanicLevel = core.PanicLevel
)

// LineOptions Re-export for convenience
type LineOptions = core.LineOptions

// SameLine returns LineOptions that keep the next record on the
// current output line.
func SameLine() LineOptions {
	return LineOptions{SameLine: true}
}

// Overwrite returns LineOptions that rewind the cursor over the
// message so the next record can redraw it in place. An overwritten
// record implicitly stays on the current line.
func Overwrite() LineOptions {
	return LineOptions{Overwrite: true}
}

// ParseLevel converts a string to a Level
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "FATAL":
		return FatalLevel
	case "PANIC":
		return PanicLevel
	default:
		return InfoLevel
	}
}
