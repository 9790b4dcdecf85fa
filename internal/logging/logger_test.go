// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// resetLogger restores the default global logger after a test reconfigures it.
func resetLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { Init(DefaultConfig()) })
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.Caller {
		t.Error("Caller = true, want false")
	}
	if !cfg.Timestamp {
		t.Error("Timestamp = false, want true")
	}
}

func TestInit(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer

	Init(Config{
		Level:     "debug",
		Format:    "json",
		Timestamp: true,
		Service:   "georec",
		Region:    "eu-west-1",
		Output:    &buf,
	})

	Info().Msg("test message")

	output := buf.String()
	for _, want := range []string{"test message", `"level":"info"`, `"service":"georec"`, `"region":"eu-west-1"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer

	Init(Config{Level: "warn", Output: &buf})

	Debug().Msg("debug line")
	Info().Msg("info line")
	Warn().Msg("warn line")
	Error().Msg("error line")

	output := buf.String()
	if strings.Contains(output, "debug line") || strings.Contains(output, "info line") {
		t.Errorf("lines below warn were written: %s", output)
	}
	if !strings.Contains(output, "warn line") || !strings.Contains(output, "error line") {
		t.Errorf("warn/error lines missing: %s", output)
	}
	if !IsLevelEnabled(zerolog.ErrorLevel) || IsLevelEnabled(zerolog.InfoLevel) {
		t.Error("IsLevelEnabled disagrees with configured level")
	}
}

func TestWith(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	logger := With().Str("component", "model-store").Logger()
	logger.Info().Err(errors.New("boom")).Msg("loaded")

	output := buf.String()
	for _, want := range []string{`"component":"model-store"`, `"error":"boom"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
}

func TestConsoleFormat(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer

	Init(Config{Level: "info", Format: "console", Output: &buf})
	Info().Str("region", "us-east-1").Msg("console line")

	output := buf.String()
	if !strings.Contains(output, "console line") {
		t.Errorf("console output missing message: %s", output)
	}
	if strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Errorf("console output looks like JSON: %s", output)
	}
}

func TestNew_DoesNotTouchGlobal(t *testing.T) {
	resetLogger(t)
	var global, local bytes.Buffer
	SetLogger(NewTestLogger(&global))

	l := New(Config{Level: "error", Region: "ap-south-1", Output: &local})
	l.Warn().Msg("dropped")
	l.Error().Msg("kept")

	if global.Len() != 0 {
		t.Errorf("global logger written to: %s", global.String())
	}
	output := local.String()
	if strings.Contains(output, "dropped") {
		t.Errorf("warn line passed an error-level logger: %s", output)
	}
	if !strings.Contains(output, "kept") || !strings.Contains(output, `"region":"ap-south-1"`) {
		t.Errorf("unexpected output: %s", output)
	}
}
