// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/georec/internal/recommend"
)

// mockModelEngine fails the first loadFailures LoadOrTrain calls.
type mockModelEngine struct {
	mu           sync.Mutex
	ready        bool
	loadFailures int
	loadCalls    int
	refreshCalls int
	refreshErr   error
}

func (m *mockModelEngine) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

func (m *mockModelEngine) LoadOrTrain(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls++
	if m.loadCalls <= m.loadFailures {
		return recommend.ErrDataUnavailable
	}
	m.ready = true
	return nil
}

func (m *mockModelEngine) Refresh(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshCalls++
	return m.refreshErr
}

func (m *mockModelEngine) counts() (loads, refreshes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls, m.refreshCalls
}

// runFor runs svc until d elapses and returns Serve's result.
func runFor(svc suture.Service, d time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return svc.Serve(ctx)
}

func TestModelService_Interface(t *testing.T) {
	var _ suture.Service = (*ModelService)(nil)
	var _ ModelEngine = (*recommend.Engine)(nil)
}

func TestNewModelService_Defaults(t *testing.T) {
	svc := NewModelService(&mockModelEngine{}, ModelServiceConfig{}, zerolog.Nop())
	if svc.config.RetryInterval != time.Minute {
		t.Errorf("RetryInterval = %v, want 1m", svc.config.RetryInterval)
	}
	if svc.config.UpdateInterval != 24*time.Hour {
		t.Errorf("UpdateInterval = %v, want 24h", svc.config.UpdateInterval)
	}
}

func TestModelService_InitialLoad(t *testing.T) {
	tests := []struct {
		name         string
		loadFailures int
		wantLoads    int
		wantReady    bool
	}{
		{"first attempt succeeds", 0, 1, true},
		{"retries until success", 2, 3, true},
		{"keeps retrying", 100, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mockModelEngine{loadFailures: tt.loadFailures}
			svc := NewModelService(engine, ModelServiceConfig{
				RetryInterval:  10 * time.Millisecond,
				UpdateInterval: time.Hour,
			}, zerolog.Nop())

			err := runFor(svc, 150*time.Millisecond)
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Serve() error = %v, want context.DeadlineExceeded", err)
			}

			loads, refreshes := engine.counts()
			if tt.wantLoads > 0 && loads != tt.wantLoads {
				t.Errorf("LoadOrTrain calls = %d, want %d", loads, tt.wantLoads)
			}
			if !tt.wantReady && loads < 3 {
				t.Errorf("LoadOrTrain calls = %d, want several retries", loads)
			}
			if engine.Ready() != tt.wantReady {
				t.Errorf("Ready() = %v, want %v", engine.Ready(), tt.wantReady)
			}
			if refreshes != 0 {
				t.Errorf("Refresh calls = %d, want 0", refreshes)
			}
		})
	}
}

func TestModelService_SkipsLoadWhenReady(t *testing.T) {
	engine := &mockModelEngine{ready: true}
	svc := NewModelService(engine, ModelServiceConfig{UpdateInterval: time.Hour}, zerolog.Nop())

	_ = runFor(svc, 50*time.Millisecond)

	if loads, _ := engine.counts(); loads != 0 {
		t.Errorf("LoadOrTrain calls = %d, want 0", loads)
	}
}

func TestModelService_ScheduledRefresh(t *testing.T) {
	tests := []struct {
		name       string
		refreshErr error
	}{
		{"success", nil},
		{"failure keeps running", errors.New("object store down")},
		{"in progress", recommend.ErrRefreshInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mockModelEngine{refreshErr: tt.refreshErr}
			svc := NewModelService(engine, ModelServiceConfig{
				RetryInterval:  10 * time.Millisecond,
				UpdateInterval: 30 * time.Millisecond,
			}, zerolog.Nop())

			_ = runFor(svc, 150*time.Millisecond)

			if _, refreshes := engine.counts(); refreshes < 2 {
				t.Errorf("Refresh calls = %d, want >= 2", refreshes)
			}
		})
	}
}

func TestModelService_String(t *testing.T) {
	svc := NewModelService(&mockModelEngine{}, ModelServiceConfig{}, zerolog.Nop())
	if got := svc.String(); got != "model-service" {
		t.Errorf("String() = %q, want model-service", got)
	}
}
