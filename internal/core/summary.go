package core

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Totals holds the per-bucket sums shared by every granularity.
type Totals struct {
	TotalSalary int64
	// PaidSalary sums the salary of entries marked IsPaid. A partially paid
	// entry contributes nothing here; see PaidAmount for the partial-aware sum.
	PaidSalary int64
	// PaidAmount sums min(PaidAmount, Salary) over the members.
	PaidAmount    int64
	SurplusAmount int64
	UnpaidCount   int
	TotalMinutes  int
}

// UnpaidSalary is what the legacy rule still reports as outstanding.
func (t Totals) UnpaidSalary() int64 {
	return t.TotalSalary - t.PaidSalary
}

// HourlyRate is the bucket's salary per worked hour.
func (t Totals) HourlyRate() decimal.Decimal {
	return hourlyRate(t.TotalSalary, t.TotalMinutes)
}

type WeekStat struct {
	Label     string // "2025-W03"
	Year      int    // ISO week-based year
	Week      int
	StartDate Date // earliest member date
	EndDate   Date // latest member date
	Entries   []WorkEntry
	Totals
}

type MonthStat struct {
	Label   string // "2025-01"
	Year    int
	Month   int
	Entries []WorkEntry
	Totals
}

type YearStat struct {
	Label   string
	Year    int
	Entries []WorkEntry
	Totals
}

// Statistics is one full aggregation pass over an entry snapshot.
type Statistics struct {
	Weeks  []WeekStat
	Months []MonthStat
	Years  []YearStat
}

// Aggregate buckets entries by ISO week, calendar month and calendar year.
// Every call recomputes from scratch; entries is not modified.
func Aggregate(entries []WorkEntry) Statistics {
	return Statistics{
		Weeks:  AggregateWeeks(entries),
		Months: AggregateMonths(entries),
		Years:  AggregateYears(entries),
	}
}

type weekKey struct{ year, week int }

type monthKey struct{ year, month int }

// AggregateWeeks groups entries by ISO-8601 week (Monday start, week 1 holds
// the year's first Thursday). Buckets are sorted newest first.
func AggregateWeeks(entries []WorkEntry) []WeekStat {
	groups := groupBy(entries, func(e WorkEntry) weekKey {
		y, w := e.Date.ISOWeek()
		return weekKey{y, w}
	})

	stats := make([]WeekStat, 0, len(groups))
	for k, members := range groups {
		sorted := sortMembers(members)
		stats = append(stats, WeekStat{
			Label:     WeekLabel(k.year, k.week),
			Year:      k.year,
			Week:      k.week,
			StartDate: sorted[len(sorted)-1].Date,
			EndDate:   sorted[0].Date,
			Entries:   sorted,
			Totals:    sumTotals(sorted),
		})
	}
	slices.SortFunc(stats, func(a, b WeekStat) int {
		if c := cmp.Compare(b.Year, a.Year); c != 0 {
			return c
		}
		return cmp.Compare(b.Week, a.Week)
	})
	return stats
}

// AggregateMonths groups entries by calendar month, newest first.
func AggregateMonths(entries []WorkEntry) []MonthStat {
	groups := groupBy(entries, func(e WorkEntry) monthKey {
		return monthKey{e.Date.Year(), int(e.Date.Month())}
	})

	stats := make([]MonthStat, 0, len(groups))
	for k, members := range groups {
		sorted := sortMembers(members)
		stats = append(stats, MonthStat{
			Label:   MonthLabel(k.year, k.month),
			Year:    k.year,
			Month:   k.month,
			Entries: sorted,
			Totals:  sumTotals(sorted),
		})
	}
	slices.SortFunc(stats, func(a, b MonthStat) int {
		if c := cmp.Compare(b.Year, a.Year); c != 0 {
			return c
		}
		return cmp.Compare(b.Month, a.Month)
	})
	return stats
}

// AggregateYears groups entries by calendar year, newest first.
func AggregateYears(entries []WorkEntry) []YearStat {
	groups := groupBy(entries, func(e WorkEntry) int {
		return e.Date.Year()
	})

	stats := make([]YearStat, 0, len(groups))
	for year, members := range groups {
		sorted := sortMembers(members)
		stats = append(stats, YearStat{
			Label:   fmt.Sprintf("%04d", year),
			Year:    year,
			Entries: sorted,
			Totals:  sumTotals(sorted),
		})
	}
	slices.SortFunc(stats, func(a, b YearStat) int {
		return cmp.Compare(b.Year, a.Year)
	})
	return stats
}

// WeekLabel formats an ISO week as "YYYY-Www" with a zero-padded week so the
// labels also sort correctly as strings.
func WeekLabel(year, week int) string {
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func MonthLabel(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// FindMonth returns the bucket for year/month, if any entry falls in it.
func (s Statistics) FindMonth(year, month int) (MonthStat, bool) {
	for _, m := range s.Months {
		if m.Year == year && m.Month == month {
			return m, true
		}
	}
	return MonthStat{}, false
}

func groupBy[K comparable](entries []WorkEntry, key func(WorkEntry) K) map[K][]WorkEntry {
	groups := make(map[K][]WorkEntry)
	for _, e := range entries {
		k := key(e)
		groups[k] = append(groups[k], e)
	}
	return groups
}

// sortMembers returns a copy ordered most recent first. Entries on the same
// day are ordered by start time, then id, both descending.
func sortMembers(members []WorkEntry) []WorkEntry {
	out := slices.Clone(members)
	slices.SortStableFunc(out, func(a, b WorkEntry) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		if c := cmp.Compare(b.StartTime.Minutes(), a.StartTime.Minutes()); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out
}

func sumTotals(members []WorkEntry) Totals {
	var t Totals
	for _, e := range members {
		t.TotalSalary += e.Salary
		t.TotalMinutes += e.WorkedMinutes()
		t.SurplusAmount += e.Surplus()
		t.PaidAmount += min(e.PaidAmount, e.Salary)
		if e.IsPaid {
			t.PaidSalary += e.Salary
		} else {
			t.UnpaidCount++
		}
	}
	return t
}
