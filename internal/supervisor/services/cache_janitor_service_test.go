// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/georec/internal/cache"
)

type countingCache struct {
	calls atomic.Int32
}

func (c *countingCache) CleanupExpired(context.Context) int {
	c.calls.Add(1)
	return 1
}

func TestCacheJanitorService_Interface(t *testing.T) {
	var _ ExpiringCache = (cache.Cache)(nil)
}

func TestCacheJanitorService_DefaultInterval(t *testing.T) {
	svc := NewCacheJanitorService(&countingCache{}, 0, zerolog.Nop())
	if svc.interval != 5*time.Minute {
		t.Errorf("interval = %v, want 5m", svc.interval)
	}
	if got := svc.String(); got != "cache-janitor" {
		t.Errorf("String() = %q, want cache-janitor", got)
	}
}

func TestCacheJanitorService_Serve(t *testing.T) {
	c := &countingCache{}
	svc := NewCacheJanitorService(c, 20*time.Millisecond, zerolog.Nop())

	err := runFor(svc, 110*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want context.DeadlineExceeded", err)
	}
	if got := c.calls.Load(); got < 3 {
		t.Errorf("CleanupExpired calls = %d, want >= 3", got)
	}
}

func TestCacheJanitorService_RemovesExpiredEntries(t *testing.T) {
	mem := cache.NewMemoryCache(10, time.Minute)
	ctx := context.Background()
	_ = mem.Set(ctx, "short", []byte("x"), 10*time.Millisecond)
	_ = mem.Set(ctx, "long", []byte("y"), time.Hour)

	svc := NewCacheJanitorService(mem, 20*time.Millisecond, zerolog.Nop())
	_ = runFor(svc, 100*time.Millisecond)

	if size := mem.Stats(ctx).Size; size != 1 {
		t.Errorf("cache size = %d, want 1", size)
	}
}
