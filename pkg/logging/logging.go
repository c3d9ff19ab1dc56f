// logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger. It is replaced by Init.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Level is a name of log level.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
	OffLevel   Level = "off"
)

type Config struct {
	Level      Level
	JSONOutput bool

	// default: os.Stderr
	Output io.Writer
}

// AsZerologLevel converts Level. Unknown levels are treated as "info".
func (l Level) AsZerologLevel() zerolog.Level {
	switch l {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case OffLevel:
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Init replaces Logger.
func Init(cfg Config) zerolog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if !cfg.JSONOutput {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	Logger = zerolog.New(output).Level(cfg.Level.AsZerologLevel()).With().Timestamp().Logger()
	return Logger
}

// WithComponent creates a child logger with component field.
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}
