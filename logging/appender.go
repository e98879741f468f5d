package logging

import (
	"os"

	"go.uber.org/zap/zapcore"
)

// DefaultTimeFormatStr is the timestamp format used by the stdout and test appenders.
const DefaultTimeFormatStr = "2006-01-02T15:04:05.000Z0700"

// Appender is a destination for log entries. It mirrors the subset of zapcore.Core
// that this package actually drives by hand, plus Sync for flushing.
type Appender interface {
	Write(entry zapcore.Entry, fields []zapcore.Field) error
	Sync() error
}

type stdoutAppender struct {
	encoder zapcore.Encoder
}

// NewStdoutAppender returns an Appender that writes console-formatted lines to stdout.
func NewStdoutAppender() Appender {
	return &stdoutAppender{encoder: zapcore.NewConsoleEncoder(consoleEncoderConfig())}
}

// NewStdoutTestAppender is identical to NewStdoutAppender but is named separately so
// that test-only call sites are easy to grep for.
func NewStdoutTestAppender() Appender {
	return NewStdoutAppender()
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(DefaultTimeFormatStr),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func (sa *stdoutAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	buf, err := sa.encoder.EncodeEntry(entry, fields)
	if err != nil {
		return err
	}
	defer buf.Free()
	_, err = os.Stdout.Write(buf.Bytes())
	return err
}

func (sa *stdoutAppender) Sync() error {
	return os.Stdout.Sync()
}

func callerToString(caller *zapcore.EntryCaller) string {
	if caller == nil || !caller.Defined {
		return ""
	}
	return caller.TrimmedPath()
}
