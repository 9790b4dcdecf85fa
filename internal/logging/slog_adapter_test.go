// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return m
}

func TestSlogHandlerHandle(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(zerolog.New(&buf))

	logger.Info("service started",
		"supervisor", "georec",
		"restarts", 3,
		"healthy", true,
		"backoff", 2*time.Second,
	)

	line := decodeLine(t, &buf)
	if line["message"] != "service started" {
		t.Errorf("message = %v, want service started", line["message"])
	}
	if line["level"] != "info" {
		t.Errorf("level = %v, want info", line["level"])
	}
	if line["supervisor"] != "georec" {
		t.Errorf("supervisor = %v, want georec", line["supervisor"])
	}
	if line["restarts"] != float64(3) {
		t.Errorf("restarts = %v, want 3", line["restarts"])
	}
	if line["healthy"] != true {
		t.Errorf("healthy = %v, want true", line["healthy"])
	}
	if _, ok := line["backoff"]; !ok {
		t.Error("backoff field missing")
	}
}

func TestSlogHandlerError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(zerolog.New(&buf))

	logger.Error("service failed", "err", errors.New("train timeout"))

	line := decodeLine(t, &buf)
	if line["level"] != "error" {
		t.Errorf("level = %v, want error", line["level"])
	}
	if line["err"] != "train timeout" {
		t.Errorf("err = %v, want train timeout", line["err"])
	}
}

func TestSlogHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(zerolog.New(&buf)).
		With("layer", "model").
		WithGroup("event").
		With("kind", "restart")

	logger.Warn("backoff", slog.Group("service", slog.String("name", "model-service")))

	line := decodeLine(t, &buf)
	tests := map[string]interface{}{
		"layer":              "model",
		"event.kind":         "restart",
		"event.service.name": "model-service",
	}

	for key, want := range tests {
		if got := line[key]; got != want {
			t.Errorf("%s = %v, want %v", key, got, want)
		}
	}
}

func TestSlogHandlerEnabled(t *testing.T) {
	handler := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	ctx := context.Background()

	tests := []struct {
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, false},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := handler.Enabled(ctx, tt.level); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		want  zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		if got := slogToZerologLevel(tt.level); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestJoinKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix, key, want string
	}{
		{"", "a", "a"},
		{"g", "", "g"},
		{"g", "a", "g.a"},
		{"g.h", "a", "g.h.a"},
	}
	for _, tt := range tests {
		if got := joinKey(tt.prefix, tt.key); got != tt.want {
			t.Errorf("joinKey(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
		}
	}
	if strings.Contains(joinKey("", ""), ".") {
		t.Error("joinKey of empty parts produced a separator")
	}
}
