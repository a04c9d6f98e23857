// Package logger builds the process logger on zerolog.
//
// Levels, lowest first: trace, debug, info, warn, error.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Options controls logger construction.
type Options struct {
	// Level is the minimum level. Empty means info.
	Level string
	// Pretty switches from JSON lines to zerolog's console writer.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service is stamped on every entry as the "service" field when set.
	Service string
}

// New returns a logger for opts. Unknown levels are an error so a typo in
// LOG_LEVEL does not silently change verbosity.
func New(opts Options) (zerolog.Logger, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	if lvl <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), nil
}

// Init builds the logger and installs it as zerolog's package-level logger and
// as the fallback for zerolog.Ctx.
func Init(opts Options) (zerolog.Logger, error) {
	l, err := New(opts)
	if err != nil {
		return l, err
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zlog.Logger = l
	zerolog.DefaultContextLogger = &l
	return l, nil
}

// ParseLevel accepts zerolog level names plus "warning". Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logger: unknown level %q", s)
	}
	return lvl, nil
}
