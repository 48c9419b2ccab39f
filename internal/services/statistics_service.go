package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"worklog/internal/cache"
	"worklog/internal/core"
	"worklog/internal/ports"
)

type snapshotSource interface {
	Snapshot(ctx context.Context) ([]core.WorkEntry, uint64, error)
	Version() uint64
}

// StatisticsService recomputes the week, month and year buckets from a full
// snapshot. Results are cached per store version; concurrent callers share one
// recomputation.
type StatisticsService struct {
	source snapshotSource
	cache  cache.Cache[core.Statistics]
	group  singleflight.Group
}

// NewStatisticsService wires the service to entries. A nil cache disables caching.
func NewStatisticsService(entries *EntryService, c cache.Cache[core.Statistics]) *StatisticsService {
	s := &StatisticsService{source: entries, cache: c}
	if c != nil {
		entries.OnChange(func(ports.EntryEvent) { c.Purge() })
	}
	return s
}

func (s *StatisticsService) Statistics(ctx context.Context) (core.Statistics, error) {
	key := cacheKey(s.source.Version())
	if s.cache != nil {
		if stats, ok := s.cache.Get(key); ok {
			return stats, nil
		}
	}

	// Callers share the result, so one caller's cancellation must not fail the rest.
	shareCtx := context.WithoutCancel(ctx)
	v, err, shared := s.group.Do(key, func() (any, error) {
		entries, version, err := s.source.Snapshot(shareCtx)
		if err != nil {
			return core.Statistics{}, err
		}
		stats := core.Aggregate(entries)
		if s.cache != nil {
			s.cache.Set(cacheKey(version), stats)
		}
		slog.DebugContext(ctx, "Statistics recomputed",
			"entries", len(entries),
			"version", version,
			"weeks", len(stats.Weeks),
			"months", len(stats.Months))
		return stats, nil
	})
	if err != nil {
		return core.Statistics{}, fmt.Errorf("aggregate statistics: %w", err)
	}
	if shared {
		slog.DebugContext(ctx, "Statistics recomputation shared", "key", key)
	}
	return v.(core.Statistics), nil
}

func (s *StatisticsService) Weeks(ctx context.Context) ([]core.WeekStat, error) {
	stats, err := s.Statistics(ctx)
	return stats.Weeks, err
}

func (s *StatisticsService) Months(ctx context.Context) ([]core.MonthStat, error) {
	stats, err := s.Statistics(ctx)
	return stats.Months, err
}

func (s *StatisticsService) Years(ctx context.Context) ([]core.YearStat, error) {
	stats, err := s.Statistics(ctx)
	return stats.Years, err
}

// Month returns the bucket for year/month, with ok false when it has no entries.
func (s *StatisticsService) Month(ctx context.Context, year, month int) (core.MonthStat, bool, error) {
	stats, err := s.Statistics(ctx)
	if err != nil {
		return core.MonthStat{}, false, err
	}
	m, ok := stats.FindMonth(year, month)
	return m, ok, nil
}

func cacheKey(version uint64) string {
	return fmt.Sprintf("stats:v%d", version)
}
