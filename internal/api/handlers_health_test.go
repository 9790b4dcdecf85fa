// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/tomtom215/georec/internal/cache"
	"github.com/tomtom215/georec/internal/models"
	"github.com/tomtom215/georec/internal/objectstore"
	"github.com/tomtom215/georec/internal/recommend"
)

// pingFailCache is a cache whose backend is unreachable.
type pingFailCache struct {
	cache.Cache
}

func (c *pingFailCache) Ping(context.Context) error { return errPing }

func newObjectStore(t *testing.T, createProcessed bool) objectstore.Store {
	t.Helper()
	db, err := objectstore.OpenBadger("", true)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := objectstore.NewBadgerStore(db)
	if createProcessed {
		if err := store.CreateBucket(context.Background(), objectstore.ProcessedBucket("us-east-1")); err != nil {
			t.Fatalf("CreateBucket() error = %v", err)
		}
	}
	return store
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, func(cfg *HandlerConfig) { cfg.Version = "2.1.0" })

	rec := ts.do(t, http.MethodGet, "/api/v1/health/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp models.HealthResponse
	decodeBody(t, rec, &resp)
	if resp.Status != models.HealthHealthy {
		t.Errorf("Status = %q, want %q", resp.Status, models.HealthHealthy)
	}
	if resp.Region != "us-east-1" {
		t.Errorf("Region = %q, want us-east-1", resp.Region)
	}
	if resp.Version != "2.1.0" {
		t.Errorf("Version = %q, want 2.1.0", resp.Version)
	}
}

func TestHealthLive(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.engine.ready = false

	rec := ts.do(t, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp models.APIResponse
	decodeBody(t, rec, &resp)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data = %T, want map", resp.Data)
	}
	if data["status"] != models.HealthAlive {
		t.Errorf("status = %v, want %s", data["status"], models.HealthAlive)
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		ready      bool
		lastError  string
		wantStatus int
		wantBody   string
	}{
		{"ready", true, "", http.StatusOK, models.HealthReady},
		{"loading", false, "interaction data unavailable", http.StatusServiceUnavailable, models.HealthNotReady},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			ts.engine.ready = tt.ready
			ts.engine.stats = recommend.Stats{LastError: tt.lastError}

			rec := ts.do(t, http.MethodGet, "/api/v1/health/ready", "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp models.ReadinessResponse
			decodeBody(t, rec, &resp)
			if resp.Status != tt.wantBody {
				t.Errorf("Status = %q, want %q", resp.Status, tt.wantBody)
			}
			if resp.ModelsLoaded != tt.ready {
				t.Errorf("ModelsLoaded = %v, want %v", resp.ModelsLoaded, tt.ready)
			}
			if resp.LastError != tt.lastError {
				t.Errorf("LastError = %q, want %q", resp.LastError, tt.lastError)
			}
		})
	}
}

func TestHealthDetailed(t *testing.T) {
	tests := []struct {
		name          string
		modelsLoaded  bool
		bucketExists  bool
		failCache     bool
		wantStatus    string
		wantUnhealthy string
	}{
		{name: "all healthy", modelsLoaded: true, bucketExists: true, wantStatus: models.HealthHealthy},
		{name: "model loading", modelsLoaded: false, bucketExists: true, wantStatus: models.HealthDegraded, wantUnhealthy: "model"},
		{name: "bucket missing", modelsLoaded: true, bucketExists: false, wantStatus: models.HealthDegraded, wantUnhealthy: "object_store"},
		{name: "cache down", modelsLoaded: true, bucketExists: true, failCache: true, wantStatus: models.HealthDegraded, wantUnhealthy: "cache"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newObjectStore(t, tt.bucketExists)
			ts := newTestServer(t, func(cfg *HandlerConfig) {
				cfg.Objects = store
			})
			if tt.failCache {
				ts.handler.cache = &pingFailCache{Cache: ts.cache}
			}
			ts.engine.stats = recommend.Stats{ModelsLoaded: tt.modelsLoaded, UserCount: 4}

			rec := ts.do(t, http.MethodGet, "/api/v1/health/detailed", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			var resp models.DetailedHealthResponse
			decodeBody(t, rec, &resp)
			if resp.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", resp.Status, tt.wantStatus)
			}
			for _, name := range []string{"model", "object_store", "cache"} {
				svc, ok := resp.Services[name]
				if !ok {
					t.Errorf("service %q missing", name)
					continue
				}
				healthy := svc.Status == models.HealthHealthy
				if name == tt.wantUnhealthy && healthy {
					t.Errorf("%s status = %q, want unhealthy", name, svc.Status)
				}
				if name != tt.wantUnhealthy && !healthy {
					t.Errorf("%s status = %q, want healthy", name, svc.Status)
				}
			}
		})
	}
}

func TestHealthDetailed_OptionalDependencies(t *testing.T) {
	ts := newTestServer(t, func(cfg *HandlerConfig) { cfg.Cache = nil })
	ts.engine.stats = recommend.Stats{ModelsLoaded: true}

	rec := ts.do(t, http.MethodGet, "/api/v1/health/detailed", "")
	var resp models.DetailedHealthResponse
	decodeBody(t, rec, &resp)
	if len(resp.Services) != 1 {
		t.Errorf("services = %v, want only model", resp.Services)
	}
	if resp.Status != models.HealthHealthy {
		t.Errorf("Status = %q, want %q", resp.Status, models.HealthHealthy)
	}
}

var errPing = errors.New("connection refused")
