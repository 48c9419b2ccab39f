package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"worklog/internal/cache"
	"worklog/internal/core"
	"worklog/internal/memory"
)

func TestListViewRecomputesOnQueryChange(t *testing.T) {
	ctx := context.Background()
	entries := NewEntryService(memory.New(), nil)
	entries.Add(ctx, newEntry(2025, 6, 1, "Cafe", 1000, 0))
	entries.Add(ctx, newEntry(2025, 6, 2, "Tutoring", 1000, 1000))
	entries.Add(ctx, newEntry(2025, 6, 3, "Delivery", 1000, 400))

	v := NewListView(entries)
	var notified int
	v.Subscribe(func(ListState) { notified++ })

	if err := v.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	st := v.State()
	if st.Total != 3 || len(st.Entries) != 3 || st.Entries[0].Task != "Delivery" {
		t.Fatalf("state after reload = %+v", st)
	}
	if st.Counts[core.StatusPartial] != 1 {
		t.Fatalf("counts = %v", st.Counts)
	}

	v.SetFilter(core.FilterUnpaid)
	if st := v.State(); len(st.Entries) != 1 || st.Entries[0].Task != "Cafe" {
		t.Fatalf("unpaid filter = %+v", st.Entries)
	}
	v.SetFilter(core.FilterAll)
	v.SetSort(core.SortNameAsc)
	v.SetSearch("t")
	st = v.State()
	if len(st.Entries) != 1 || st.Entries[0].Task != "Tutoring" {
		t.Fatalf("search = %+v", st.Entries)
	}
	if st.Total != 3 {
		t.Fatalf("search must not change the total, got %d", st.Total)
	}
	if notified != 5 {
		t.Fatalf("notified %d times, want 5", notified)
	}
}

func TestListViewKeepsDataOnReloadFailure(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: memory.New()}
	entries := NewEntryService(store, nil)
	entries.Add(ctx, newEntry(2025, 6, 1, "Cafe", 1000, 0))

	v := NewListView(entries)
	if err := v.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}

	store.setBroken(true)
	err := v.Reload(ctx)
	var se *core.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected storage error, got %v", err)
	}
	st := v.State()
	if st.Err == nil || len(st.Entries) != 1 {
		t.Fatalf("previous data should survive a failed reload: %+v", st)
	}

	store.setBroken(false)
	if err := v.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if v.State().Err != nil {
		t.Fatalf("error should clear after a successful reload")
	}
}

func TestStatsViewSelectAndReload(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: memory.New()}
	entries := NewEntryService(store, nil)
	stats := NewStatisticsService(entries, cache.NewLRUCache[core.Statistics](4, time.Minute))
	entries.Add(ctx, newEntry(2025, 6, 1, "Cafe", 1000, 0))

	v := NewStatsView(stats)
	var last StatsState
	v.Subscribe(func(s StatsState) { last = s })

	if err := v.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	v.SelectPeriod(PeriodMonth)
	if last.Period != PeriodMonth || !last.Loaded || len(last.Stats.Months) != 1 {
		t.Fatalf("state = %+v", last)
	}

	entries.Add(ctx, newEntry(2025, 7, 1, "Cafe", 1000, 0))
	store.setBroken(true)
	if err := v.Reload(ctx); err == nil {
		t.Fatalf("expected reload error")
	}
	st := v.State()
	if st.Err == nil || len(st.Stats.Months) != 1 {
		t.Fatalf("stats should keep the previous snapshot: %+v", st)
	}
}

func TestParsePeriod(t *testing.T) {
	if p, ok := ParsePeriod(""); !ok || p != PeriodWeek {
		t.Fatalf("default period = %s", p)
	}
	if p, ok := ParsePeriod("year"); !ok || p != PeriodYear {
		t.Fatalf("ParsePeriod(year) = %s", p)
	}
	if _, ok := ParsePeriod("decade"); ok {
		t.Fatalf("unknown period accepted")
	}
}
