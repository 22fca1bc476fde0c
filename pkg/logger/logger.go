// Package logger holds the process-wide structured logger backed by zerolog.
//
// Call Setup once from main, then grab the logger anywhere via L.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	root = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Setup configures the shared logger. env selects the output format:
// anything other than "production" gets a human-readable console writer,
// production emits JSON. level is one of trace, debug, info, warn, error
// (unknown values fall back to info).
func Setup(env, level string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	if env != "production" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	lvl := levelFromString(level)
	zerolog.SetGlobalLevel(lvl)

	l := zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "crm-api").
		Logger()

	mu.Lock()
	root = l
	mu.Unlock()
	return l
}

// L returns the shared logger. Before Setup runs it is a plain JSON logger
// on stdout, so packages may log safely during early startup and in tests.
func L() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

func levelFromString(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
