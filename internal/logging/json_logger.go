package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// JSONLogger writes each message as a zerolog JSON object with
// "level", "time" and "message" fields.
type JSONLogger struct {
	logger zerolog.Logger
}

// NewJSONLogger creates a JSONLogger writing to out (os.Stdout when nil).
// Verbose messages are emitted at debug level and only when verbose is true.
func NewJSONLogger(out io.Writer, verbose bool) *JSONLogger {
	if out == nil {
		out = os.Stdout
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return &JSONLogger{
		logger: zerolog.New(zerolog.SyncWriter(out)).Level(level).With().Timestamp().Logger(),
	}
}

func (l *JSONLogger) Verbose(format string, args ...interface{}) {
	l.emit(l.logger.Debug(), format, args)
}

func (l *JSONLogger) Info(format string, args ...interface{}) {
	l.emit(l.logger.Info(), format, args)
}

func (l *JSONLogger) Error(format string, args ...interface{}) {
	l.emit(l.logger.Error(), format, args)
}

func (l *JSONLogger) emit(e *zerolog.Event, format string, args []interface{}) {
	if len(args) == 0 {
		e.Msg(format)
		return
	}
	e.Msgf(format, args...)
}
