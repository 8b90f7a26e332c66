// Package logger configures the zerolog loggers used across the server.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls the root logger.
type Options struct {
	Level  string
	Format string // console or json
	File   string // optional rotating log file
	Output io.Writer
}

var (
	mu   sync.RWMutex
	root = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// Init replaces the root logger. It is safe to call more than once.
func Init(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var w io.Writer = out
	if opts.Format != "json" {
		w = consoleWriter(out, false)
	}

	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename: opts.File,
			MaxSize:  10,
			MaxAge:   15,
			Compress: true,
		}
		if opts.Format == "json" {
			w = zerolog.MultiLevelWriter(w, file)
		} else {
			w = zerolog.MultiLevelWriter(w, consoleWriter(file, true))
		}
	}

	l := zerolog.New(w).With().Timestamp().Logger().Level(ParseLevel(opts.Level))

	mu.Lock()
	root = l
	mu.Unlock()
}

func consoleWriter(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    noColor,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		},
	}
}

// ParseLevel converts a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
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

// New returns a child of the root logger tagged with a component name.
func New(component string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.With().Str("component", component).Logger()
}

// Root returns the root logger.
func Root() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}
