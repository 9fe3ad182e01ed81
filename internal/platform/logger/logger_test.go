package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"DEBUG":   Debug,
		"":        Info,
		"info":    Info,
		"warning": Warn,
		"Warn":    Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat(" JSON "))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestLogger_JSON_IncludesAppAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "dog-match", Output: &buf})

	l.With(map[string]any{"workspace": "ws-1"}).Warn("search failed", map[string]any{
		"error":  errors.New("boom"),
		"status": 502,
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "search failed", entry["message"])
	assert.Equal(t, "dog-match", entry["app"])
	assert.Equal(t, "ws-1", entry["workspace"])
	assert.Equal(t, "boom", entry["error"])
	assert.EqualValues(t, 502, entry["status"])
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Format: FormatJSON, Output: &buf})

	l.Debug("hidden", nil)
	l.Info("hidden too", nil)
	assert.Zero(t, buf.Len())

	l.Error("shown", nil)
	assert.True(t, strings.Contains(buf.String(), "shown"))
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop().With(map[string]any{"k": "v"})
	l.Info("nothing", map[string]any{"a": 1})
}
