package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelSilent:
		return "SILENT"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name (case-insensitive) to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "silent", "off":
		return LevelSilent, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Logger provides structured logging with configurable levels
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
	SetLevel(level Level)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value any
}

// F is a convenience function for creating fields
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

var levelStyles = map[Level]lipgloss.Style{
	LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
}

var fieldKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

// state is shared between a logger and the children created by WithFields,
// so SetLevel on any of them applies to all.
type state struct {
	mu    sync.Mutex
	level Level
	out   io.Writer
	now   func() time.Time
}

type standardLogger struct {
	st     *state
	fields []Field
}

// NewLogger creates a new logger with the specified level and output
func NewLogger(level Level, out io.Writer) Logger {
	if out == nil {
		out = os.Stderr
	}
	return &standardLogger{
		st: &state{level: level, out: out, now: time.Now},
	}
}

// NewDefaultLogger creates a logger with Info level writing to stderr.
// Stdout is reserved for reports so that `nightjar chase --format json`
// can be piped.
func NewDefaultLogger() Logger {
	return NewLogger(LevelInfo, os.Stderr)
}

// NewSilentLogger creates a logger that outputs nothing
func NewSilentLogger() Logger {
	return NewLogger(LevelSilent, io.Discard)
}

func (l *standardLogger) SetLevel(level Level) {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	l.st.level = level
}

// WithFields returns a child logger carrying additional persistent fields.
func (l *standardLogger) WithFields(fields ...Field) Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &standardLogger{st: l.st, fields: merged}
}

func (l *standardLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *standardLogger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *standardLogger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *standardLogger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

func (l *standardLogger) log(level Level, msg string, fields []Field) {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()

	if level < l.st.level || l.st.level == LevelSilent {
		return
	}

	var b strings.Builder
	b.WriteString(l.st.now().Format("15:04:05"))
	b.WriteByte(' ')
	b.WriteString(levelStyles[level].Render(fmt.Sprintf("%-5s", level.String())))
	b.WriteByte(' ')
	b.WriteString(msg)

	all := append(append([]Field(nil), l.fields...), fields...)
	if len(all) > 0 {
		b.WriteString(" |")
		for _, f := range all {
			b.WriteByte(' ')
			b.WriteString(fieldKeyStyle.Render(f.Key + "="))
			b.WriteString(fmt.Sprintf("%v", f.Value))
		}
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(l.st.out, b.String())
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewDefaultLogger()
)

// SetDefault sets the global default logger
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Default returns the global default logger
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

func Debug(msg string, fields ...Field) { Default().Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { Default().Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { Default().Warn(msg, fields...) }
func Error(msg string, fields ...Field) { Default().Error(msg, fields...) }
