// Where: cli/internal/infra/logging/logging.go
// What: zerolog construction for the CLI.
// Why: Diagnostics go to stderr at a level chosen by -v or the environment.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LevelForVerbosity maps the -v count to a level; zero keeps only warnings.
func LevelForVerbosity(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// ResolveLevel prefers an explicit -v count, then a named level, then the warn default.
func ResolveLevel(verbosity int, named string) (zerolog.Level, error) {
	if verbosity > 0 {
		return LevelForVerbosity(verbosity), nil
	}
	named = strings.TrimSpace(named)
	if named == "" {
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(named))
	if err != nil {
		return zerolog.WarnLevel, fmt.Errorf("invalid log level %q: %w", named, err)
	}
	return level, nil
}

// New returns a console logger on out at level.
// Caller information is attached at debug and below.
func New(out io.Writer, level zerolog.Level, noColor bool) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}
	logger := zerolog.New(consoleWriter).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	logger.Debug().Str("level", level.String()).Msg("Logger initialized")
	return logger
}

// Component returns logger tagged with a component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// StartOperation logs the start of an operation and returns a function to log its completion.
func StartOperation(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
