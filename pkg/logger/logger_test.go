package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StampsServiceAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "warn", Output: &buf, Service: "social-api"})
	require.NoError(t, err)

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), "expected a single JSON entry, got %q", buf.String())
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "social-api", entry["service"])
	assert.NotContains(t, entry, "caller")
}

func TestNew_DebugAddsCaller(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Output: &buf})
	require.NoError(t, err)

	log.Debug().Msg("here")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Contains(t, entry, "caller")
	assert.NotContains(t, entry, "service")
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.ErrorContains(t, err, `"loud"`)
}

func TestInit_InstallsPackageLogger(t *testing.T) {
	prevGlobal, prevCtx := zlog.Logger, zerolog.DefaultContextLogger
	t.Cleanup(func() {
		zlog.Logger = prevGlobal
		zerolog.DefaultContextLogger = prevCtx
	})

	var buf bytes.Buffer
	_, err := Init(Options{Output: &buf, Service: "social-api"})
	require.NoError(t, err)

	zerolog.Ctx(context.Background()).Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")
	assert.Contains(t, buf.String(), `"service":"social-api"`)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("bogus")
	assert.Error(t, err)
}
