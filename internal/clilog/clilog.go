// Package clilog wires apex/log as the command-line logger and adapts it to
// the diffconfig.Logger interface the diff engines log through.
package clilog

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/erraggy/outdiff/diffconfig"
)

// EnvVar selects the log level: trace, debug, info, warn or error.
const EnvVar = "OUTDIFF_LOG"

// ParseLevel maps an OUTDIFF_LOG value to an apex level. Unknown and empty
// values mean error, so the CLI stays quiet unless asked. trace is accepted
// as an alias of debug.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	default:
		return log.ErrorLevel
	}
}

// New returns a logger writing to w at level.
func New(w io.Writer, level log.Level) *log.Logger {
	return &log.Logger{Handler: NewHandler(w), Level: level}
}

// Handler formats entries as one line each:
//
//	2026-01-02 15:04:05 D text diff complete added=3 removed=1
type Handler struct {
	mu sync.Mutex
	w  io.Writer
}

// NewHandler returns a Handler writing to w.
func NewHandler(w io.Writer) *Handler {
	return &Handler{w: w}
}

// HandleLog implements log.Handler.
func (h *Handler) HandleLog(e *log.Entry) error {
	var b strings.Builder
	b.WriteString(e.Timestamp.Format("2006-01-02 15:04:05"))
	b.WriteByte(' ')
	b.WriteString(levelLetter(e.Level))
	b.WriteByte(' ')
	b.WriteString(e.Message)

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields[name])
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func levelLetter(l log.Level) string {
	switch l {
	case log.DebugLevel:
		return "D"
	case log.InfoLevel:
		return "I"
	case log.WarnLevel:
		return "W"
	case log.ErrorLevel:
		return "E"
	case log.FatalLevel:
		return "F"
	default:
		return "?"
	}
}

// Logger adapts an apex/log logger or entry to diffconfig.Logger.
type Logger struct {
	l log.Interface
}

var _ diffconfig.Logger = (*Logger)(nil)

// NewLogger wraps l.
func NewLogger(l log.Interface) *Logger {
	return &Logger{l: l}
}

// Debug logs at debug level.
func (a *Logger) Debug(msg string, attrs ...any) { a.with(attrs).Debug(msg) }

// Info logs at info level.
func (a *Logger) Info(msg string, attrs ...any) { a.with(attrs).Info(msg) }

// Warn logs at warn level.
func (a *Logger) Warn(msg string, attrs ...any) { a.with(attrs).Warn(msg) }

// Error logs at error level.
func (a *Logger) Error(msg string, attrs ...any) { a.with(attrs).Error(msg) }

// With returns a Logger that adds attrs to every entry.
func (a *Logger) With(attrs ...any) diffconfig.Logger {
	return &Logger{l: a.with(attrs)}
}

func (a *Logger) with(attrs []any) log.Interface {
	if len(attrs) == 0 {
		return a.l
	}
	return a.l.WithFields(fields(attrs))
}

// fields converts slog-style alternating key/value attrs. A key that is not
// a string, or a trailing value without a key, is recorded under !BADKEY as
// log/slog does.
func fields(attrs []any) log.Fields {
	f := make(log.Fields, (len(attrs)+1)/2)
	for i := 0; i < len(attrs); {
		key, ok := attrs[i].(string)
		if !ok || i+1 == len(attrs) {
			f["!BADKEY"] = attrs[i]
			i++
			continue
		}
		f[key] = attrs[i+1]
		i += 2
	}
	return f
}
