package services

import (
	"context"
	"slices"
	"sync"

	"worklog/internal/core"
)

// ListState is what a list screen renders.
type ListState struct {
	Query   core.ListQuery
	Entries []core.WorkEntry
	Counts  map[core.PaymentStatus]int
	Total   int
	// Err is the last reload failure. Entries still hold the previous snapshot.
	Err error
}

// ListView keeps the raw entries and the current query, and recomputes the
// visible list whenever either changes.
type ListView struct {
	mu          sync.Mutex
	entries     *EntryService
	query       core.ListQuery
	all         []core.WorkEntry
	err         error
	state       ListState
	subscribers []func(ListState)
}

func NewListView(entries *EntryService) *ListView {
	v := &ListView{entries: entries, query: core.DefaultListQuery()}
	v.state = v.computeLocked()
	return v
}

// Subscribe registers fn to receive every new state.
func (v *ListView) Subscribe(fn func(ListState)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.subscribers = append(v.subscribers, fn)
}

func (v *ListView) State() ListState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Reload fetches a fresh snapshot. On failure the previous entries are kept.
func (v *ListView) Reload(ctx context.Context) error {
	all, err := v.entries.List(ctx)
	v.update(func() {
		v.err = err
		if err == nil {
			v.all = all
		}
	})
	return err
}

func (v *ListView) SetSearch(q string) {
	v.update(func() { v.query.Search = q })
}

func (v *ListView) SetFilter(f core.Filter) {
	v.update(func() { v.query.Filter = f })
}

func (v *ListView) SetSort(k core.SortKey) {
	v.update(func() { v.query.Sort = k })
}

func (v *ListView) update(mutate func()) {
	v.mu.Lock()
	mutate()
	v.state = v.computeLocked()
	state := v.state
	subs := slices.Clone(v.subscribers)
	v.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

func (v *ListView) computeLocked() ListState {
	return ListState{
		Query:   v.query,
		Entries: core.ApplyListQuery(v.all, v.query),
		Counts:  core.CountByStatus(v.all),
		Total:   len(v.all),
		Err:     v.err,
	}
}

// Period selects which bucket list a statistics screen shows.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return Period(s), true
	case "":
		return PeriodWeek, true
	}
	return "", false
}

type StatsState struct {
	Period Period
	Stats  core.Statistics
	Loaded bool
	Err    error
}

// StatsView holds the last aggregated statistics and the selected period.
type StatsView struct {
	mu          sync.Mutex
	stats       *StatisticsService
	state       StatsState
	subscribers []func(StatsState)
}

func NewStatsView(stats *StatisticsService) *StatsView {
	return &StatsView{stats: stats, state: StatsState{Period: PeriodWeek}}
}

func (v *StatsView) Subscribe(fn func(StatsState)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.subscribers = append(v.subscribers, fn)
}

func (v *StatsView) State() StatsState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Reload recomputes the statistics. On failure the previous buckets are kept.
func (v *StatsView) Reload(ctx context.Context) error {
	stats, err := v.stats.Statistics(ctx)
	v.update(func(s *StatsState) {
		s.Err = err
		if err == nil {
			s.Stats = stats
			s.Loaded = true
		}
	})
	return err
}

func (v *StatsView) SelectPeriod(p Period) {
	v.update(func(s *StatsState) { s.Period = p })
}

func (v *StatsView) update(mutate func(*StatsState)) {
	v.mu.Lock()
	mutate(&v.state)
	state := v.state
	subs := slices.Clone(v.subscribers)
	v.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
