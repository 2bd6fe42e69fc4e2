// Package stdlogger exposes the global zerolog logger through printf style methods,
// for libraries that expect a Printf logger (gorm among them).
package stdlogger

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to zerolog.
type Logger struct {
	// PrintfLevel is the level Printf writes with.
	PrintfLevel zerolog.Level
}

// New returns a Logger writing Printf calls at debug level.
func New() *Logger {
	return &Logger{PrintfLevel: zerolog.DebugLevel}
}

// Printf implements the gorm logger.Writer interface.
func (l *Logger) Printf(format string, args ...interface{}) {
	log.WithLevel(l.PrintfLevel).Msgf(format, args...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}
