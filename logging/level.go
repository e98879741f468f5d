package logging

import (
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap/zapcore"
)

// Level represents a logging level for filtering which log lines are emitted.
type Level int32

// The supported logging levels, ordered from most to least verbose.
const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// AsZap converts a Level into the equivalent zapcore.Level used by the underlying
// zap encoders.
func (level Level) AsZap() zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// String returns the canonical lowercase name of the level.
func (level Level) String() string {
	switch level {
	case DEBUG:
		return "debug"
	case INFO:
		return "info"
	case WARN:
		return "warn"
	case ERROR:
		return "error"
	default:
		return "unknown"
	}
}

// LevelFromString parses a level name, case-insensitively, into a Level.
func LevelFromString(name string) (Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return DEBUG, nil
	case "info", "":
		return INFO, nil
	case "warn":
		return WARN, nil
	case "error":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", name)
	}
}

// AtomicLevel is a Level that can be read and mutated concurrently without locking.
type AtomicLevel struct {
	bits int32
}

// NewAtomicLevelAt constructs an AtomicLevel initialized to the given Level.
func NewAtomicLevelAt(level Level) AtomicLevel {
	var a AtomicLevel
	a.Set(level)
	return a
}

// Set updates the level.
func (a *AtomicLevel) Set(level Level) {
	atomic.StoreInt32(&a.bits, int32(level))
}

// Get returns the current level.
func (a *AtomicLevel) Get() Level {
	return Level(atomic.LoadInt32(&a.bits))
}
