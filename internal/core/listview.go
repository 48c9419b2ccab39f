package core

import (
	"cmp"
	"slices"
	"strings"
)

const (
	FilterAll     Filter = "ALL"
	FilterPaid    Filter = "PAID"
	FilterUnpaid  Filter = "UNPAID"
	FilterPartial Filter = "PARTIAL"
)

const (
	SortDateDesc   SortKey = "DATE_DESC"
	SortDateAsc    SortKey = "DATE_ASC"
	SortSalaryDesc SortKey = "SALARY_DESC"
	SortSalaryAsc  SortKey = "SALARY_ASC"
	SortNameAsc    SortKey = "NAME_ASC"
	SortNameDesc   SortKey = "NAME_DESC"
)

type (
	Filter  string
	SortKey string

	// ListQuery is the user's current search, filter and sort selection.
	ListQuery struct {
		Search string
		Filter Filter
		Sort   SortKey
	}
)

// DefaultListQuery shows everything, newest first.
func DefaultListQuery() ListQuery {
	return ListQuery{Filter: FilterAll, Sort: SortDateDesc}
}

// ApplyListQuery produces the list shown to the user: search, then filter,
// then a stable sort. The input slice is left untouched.
func ApplyListQuery(entries []WorkEntry, q ListQuery) []WorkEntry {
	out := make([]WorkEntry, 0, len(entries))
	needle := strings.ToLower(q.Search)
	for _, e := range entries {
		if needle != "" && !matchesSearch(e, needle) {
			continue
		}
		if !matchesFilter(e, q.Filter) {
			continue
		}
		out = append(out, e)
	}
	slices.SortStableFunc(out, comparator(q.Sort))
	return out
}

// CountByStatus returns how many entries fall under each amount-based status.
func CountByStatus(entries []WorkEntry) map[PaymentStatus]int {
	counts := map[PaymentStatus]int{StatusPaid: 0, StatusUnpaid: 0, StatusPartial: 0}
	for _, e := range entries {
		counts[StatusOf(e)]++
	}
	return counts
}

func matchesSearch(e WorkEntry, needle string) bool {
	return strings.Contains(strings.ToLower(e.Task), needle) ||
		strings.Contains(strings.ToLower(e.Notes), needle)
}

func matchesFilter(e WorkEntry, f Filter) bool {
	switch f {
	case FilterPaid:
		return StatusOf(e) == StatusPaid
	case FilterUnpaid:
		return StatusOf(e) == StatusUnpaid
	case FilterPartial:
		return StatusOf(e) == StatusPartial
	default:
		return true
	}
}

func comparator(k SortKey) func(a, b WorkEntry) int {
	switch k {
	case SortDateAsc:
		return func(a, b WorkEntry) int { return a.Date.Compare(b.Date) }
	case SortSalaryDesc:
		return func(a, b WorkEntry) int { return cmp.Compare(b.Salary, a.Salary) }
	case SortSalaryAsc:
		return func(a, b WorkEntry) int { return cmp.Compare(a.Salary, b.Salary) }
	case SortNameAsc:
		return func(a, b WorkEntry) int { return strings.Compare(a.Task, b.Task) }
	case SortNameDesc:
		return func(a, b WorkEntry) int { return strings.Compare(b.Task, a.Task) }
	default:
		return func(a, b WorkEntry) int { return b.Date.Compare(a.Date) }
	}
}

// ParseFilter accepts the enum names case-insensitively; empty means ALL.
func ParseFilter(s string) (Filter, bool) {
	switch f := Filter(strings.ToUpper(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, true
	case FilterAll, FilterPaid, FilterUnpaid, FilterPartial:
		return f, true
	}
	return "", false
}

// ParseSort accepts the enum names case-insensitively; empty means DATE_DESC.
func ParseSort(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToUpper(strings.TrimSpace(s))); k {
	case "":
		return SortDateDesc, true
	case SortDateDesc, SortDateAsc, SortSalaryDesc, SortSalaryAsc, SortNameAsc, SortNameDesc:
		return k, true
	}
	return "", false
}
