// Package logging is a leveled wrapper over the standard logger.
package logging

import (
	"io"
	"log"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

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
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Logger filters by level before formatting
// Safe for concurrent use; level may change at runtime
type Logger struct {
	logger *log.Logger
	level  atomic.Int32
	prefix string
}

// New creates a logger writing to out
func New(out io.Writer, level Level) *Logger {
	l := &Logger{logger: log.New(out, "", log.LstdFlags|log.Lmicroseconds)}
	l.level.Store(int32(level))
	return l
}

// Std wraps the process-wide standard logger so output follows log.SetOutput
func Std(level Level) *Logger {
	l := &Logger{logger: log.Default()}
	l.level.Store(int32(level))
	return l
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New(io.Discard, LevelNone)
}

// With returns a logger sharing output and level with a component prefix
func (l *Logger) With(component string) *Logger {
	c := &Logger{logger: l.logger, prefix: l.prefix + "[" + component + "] "}
	c.level.Store(l.level.Load())
	return c
}

func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

func (l *Logger) Debugf(format string, v ...any) { l.logf(LevelDebug, format, v...) }
func (l *Logger) Infof(format string, v ...any)  { l.logf(LevelInfo, format, v...) }
func (l *Logger) Warnf(format string, v ...any)  { l.logf(LevelWarn, format, v...) }
func (l *Logger) Errorf(format string, v ...any) { l.logf(LevelError, format, v...) }

func (l *Logger) logf(level Level, format string, v ...any) {
	if l == nil || level < l.Level() {
		return
	}
	l.logger.Printf(level.String()+": "+l.prefix+format, v...)
}
