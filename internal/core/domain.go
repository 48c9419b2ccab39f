package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ThemeLight  ThemeMode = "LIGHT"
	ThemeDark   ThemeMode = "DARK"
	ThemeSystem ThemeMode = "SYSTEM"
)

type (
	ThemeMode string

	// Date is a calendar date without a time zone. The wrapped time is always
	// midnight UTC so that comparisons only look at the day.
	Date struct {
		time.Time
	}

	// TimeOfDay is a wall-clock time with minute precision.
	TimeOfDay struct {
		Hour   int
		Minute int
	}

	WorkEntry struct {
		ID           int64 // 0 until the store assigns one
		Date         Date
		StartTime    TimeOfDay
		EndTime      TimeOfDay
		BreakMinutes int
		Task         string
		Salary       int64 // minor units
		PaidAmount   int64 // minor units, may exceed Salary
		IsPaid       bool  // derived, see Reconcile
		Notes        string
	}

	Note struct {
		ID        int64
		Title     string
		Content   string
		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the clock and zone of t, keeping its local calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	return d.Time.Compare(o.Time)
}

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

// ParseTimeOfDay accepts "HH:MM" (and "HH:MM:SS", seconds are dropped).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = time.TimeOnly
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.Minutes() < o.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// WorkedMinutes is the span between start and end minus the break, never negative.
func (e WorkEntry) WorkedMinutes() int {
	m := e.EndTime.Minutes() - e.StartTime.Minutes() - e.BreakMinutes
	if m < 0 {
		return 0
	}
	return m
}

// Remaining is what is still owed on the entry.
func (e WorkEntry) Remaining() int64 {
	if e.PaidAmount >= e.Salary {
		return 0
	}
	return e.Salary - e.PaidAmount
}

// Surplus is the amount paid beyond the salary.
func (e WorkEntry) Surplus() int64 {
	if e.PaidAmount <= e.Salary {
		return 0
	}
	return e.PaidAmount - e.Salary
}

// HourlyRate returns the salary earned per worked hour, rounded to whole units.
// Entries without worked time report zero.
func (e WorkEntry) HourlyRate() decimal.Decimal {
	return hourlyRate(e.Salary, e.WorkedMinutes())
}

func hourlyRate(salary int64, minutes int) decimal.Decimal {
	if minutes <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(salary).
		Mul(decimal.NewFromInt(60)).
		Div(decimal.NewFromInt(int64(minutes))).
		Round(0)
}

// ParseThemeMode maps a stored value back to a mode; anything unknown is SYSTEM.
func ParseThemeMode(s string) ThemeMode {
	switch ThemeMode(strings.ToUpper(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeSystem
	}
}

func (m ThemeMode) IsValid() bool {
	switch m {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

func (m ThemeMode) String() string {
	return string(m)
}
