// Package logging sets up the zerolog diagnostics channel shared by the shell
// and the Wails runtime.
package logging

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/logger"
)

// New returns a console logger writing to w. Unknown levels fall back to info.
func New(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// WailsLevel maps a zerolog level to the closest Wails log level.
func WailsLevel(level zerolog.Level) logger.LogLevel {
	switch {
	case level <= zerolog.TraceLevel:
		return logger.TRACE
	case level == zerolog.DebugLevel:
		return logger.DEBUG
	case level == zerolog.InfoLevel:
		return logger.INFO
	case level == zerolog.WarnLevel:
		return logger.WARNING
	default:
		return logger.ERROR
	}
}

// WailsLogger routes Wails runtime messages into a zerolog logger.
type WailsLogger struct {
	log zerolog.Logger
}

var _ logger.Logger = (*WailsLogger)(nil)

// NewWailsLogger tags every message with component=wails.
func NewWailsLogger(log zerolog.Logger) *WailsLogger {
	return &WailsLogger{log: log.With().Str("component", "wails").Logger()}
}

func (l *WailsLogger) Print(message string)   { l.log.Log().Msg(message) }
func (l *WailsLogger) Trace(message string)   { l.log.Trace().Msg(message) }
func (l *WailsLogger) Debug(message string)   { l.log.Debug().Msg(message) }
func (l *WailsLogger) Info(message string)    { l.log.Info().Msg(message) }
func (l *WailsLogger) Warning(message string) { l.log.Warn().Msg(message) }
func (l *WailsLogger) Error(message string)   { l.log.Error().Msg(message) }

// Fatal logs and exits the process, matching the Wails default logger.
func (l *WailsLogger) Fatal(message string) { l.log.Fatal().Msg(message) }
