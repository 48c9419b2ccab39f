package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"worklog/internal/cache"
	"worklog/internal/core"
	"worklog/internal/memory"
)

type countingStore struct {
	*memory.Store
	lists atomic.Int32
}

func (c *countingStore) ListAll(ctx context.Context) ([]core.WorkEntry, error) {
	c.lists.Add(1)
	return c.Store.ListAll(ctx)
}

func TestStatisticsCachedPerVersion(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: memory.New()}
	entries := NewEntryService(store, nil)
	stats := NewStatisticsService(entries, cache.NewLRUCache[core.Statistics](4, time.Minute))

	entries.Add(ctx, newEntry(2025, 5, 5, "a", 100, 0))

	for i := 0; i < 3; i++ {
		if _, err := stats.Statistics(ctx); err != nil {
			t.Fatalf("statistics: %v", err)
		}
	}
	if n := store.lists.Load(); n != 1 {
		t.Fatalf("expected one snapshot, got %d", n)
	}

	entries.Add(ctx, newEntry(2025, 5, 6, "b", 100, 0))
	months, err := stats.Months(ctx)
	if err != nil {
		t.Fatalf("months: %v", err)
	}
	if months[0].TotalSalary != 200 {
		t.Fatalf("stale statistics after write: %+v", months[0].Totals)
	}
	if n := store.lists.Load(); n != 2 {
		t.Fatalf("expected recompute after write, got %d snapshots", n)
	}
}

func TestStatisticsWithoutCache(t *testing.T) {
	ctx := context.Background()
	entries := NewEntryService(memory.New(), nil)
	stats := NewStatisticsService(entries, nil)
	entries.Add(ctx, newEntry(2024, 12, 30, "a", 100, 100))

	years, err := stats.Years(ctx)
	if err != nil || len(years) != 1 || years[0].Year != 2024 {
		t.Fatalf("years = %+v, %v", years, err)
	}
	weeks, _ := stats.Weeks(ctx)
	if weeks[0].Label != "2025-W01" {
		t.Fatalf("week label = %q", weeks[0].Label)
	}
	m, ok, err := stats.Month(ctx, 2024, 12)
	if err != nil || !ok || m.PaidSalary != 100 {
		t.Fatalf("Month = %+v, %v, %v", m, ok, err)
	}
	if _, ok, _ := stats.Month(ctx, 2025, 1); ok {
		t.Fatalf("unexpected January bucket")
	}
}

func TestStatisticsConcurrentCallers(t *testing.T) {
	ctx := context.Background()
	entries := NewEntryService(memory.New(), nil)
	stats := NewStatisticsService(entries, cache.NewLRUCache[core.Statistics](4, time.Minute))
	for d := 1; d <= 20; d++ {
		entries.Add(ctx, newEntry(2025, 7, d, "a", 10, 0))
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := stats.Statistics(ctx)
			if err != nil {
				t.Errorf("statistics: %v", err)
				return
			}
			if s.Years[0].TotalSalary != 200 {
				t.Errorf("total = %d", s.Years[0].TotalSalary)
			}
		}()
	}
	wg.Wait()
}

func TestStatisticsStorageError(t *testing.T) {
	store := &flakyStore{Store: memory.New()}
	store.setBroken(true)
	stats := NewStatisticsService(NewEntryService(store, nil), nil)
	if _, err := stats.Statistics(context.Background()); err == nil {
		t.Fatalf("expected storage error")
	}
}

// ctxStore fails reads whose context is already done, like a driver would.
type ctxStore struct {
	*memory.Store
}

func (c ctxStore) ListAll(ctx context.Context) ([]core.WorkEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.Store.ListAll(ctx)
}

func TestStatisticsIgnoresCallerCancellation(t *testing.T) {
	store := ctxStore{Store: memory.New()}
	entries := NewEntryService(store, nil)
	if _, err := entries.Add(context.Background(), newEntry(2025, 3, 10, "task", 100, 0)); err != nil {
		t.Fatalf("add: %v", err)
	}
	stats := NewStatisticsService(entries, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := stats.Statistics(ctx)
	if err != nil {
		t.Fatalf("shared recompute failed with caller cancellation: %v", err)
	}
	if len(got.Months) != 1 || got.Months[0].TotalSalary != 100 {
		t.Fatalf("stats = %+v", got)
	}
}
