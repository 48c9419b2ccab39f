package google

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"worklog/internal/core"
)

func headerRow() []any {
	return []any{"Month", "Total", "Paid", "Unpaid count", "Hours"}
}

// monthRow renders a month bucket. Hours keep two decimals.
func monthRow(m core.MonthStat) []any {
	hours := decimal.NewFromInt(int64(m.TotalMinutes)).
		Div(decimal.NewFromInt(60)).
		StringFixed(2)
	return []any{m.Label, m.TotalSalary, m.PaidSalary, m.UnpaidCount, hours}
}

// monthRowIndex maps January to row 2, right under the header.
func monthRowIndex(month int) int {
	return month + 1
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}

// quoteSheet quotes a sheet title for use in A1 notation.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
