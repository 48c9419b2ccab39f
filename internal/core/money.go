// Package core provides money parsing and handling utilities.
//
// This file contains the currency text codec used by amount input fields.
// Amounts are whole minor units (the currency has no fractional part), typed
// by the user with "." as the grouping separator, e.g. "1.086.700".
package core

import (
	"strconv"
	"strings"
)

const (
	// GroupSeparator is inserted every three digits from the right.
	GroupSeparator = '.'
	// CurrencySuffix is appended by FormatCurrency.
	CurrencySuffix = "VNĐ"
)

// ParseAmount extracts the integer amount from user input.
//
// Every character that is not an ASCII digit is discarded (grouping dots,
// commas, spaces, the currency suffix). It reports false when no digit is left
// or the value does not fit an int64. It never fails loudly: callers treat
// false as zero.
//
// Examples:
//
//	ParseAmount("1.086.700")     -> 1086700, true
//	ParseAmount("500 000 VNĐ")   -> 500000, true
//	ParseAmount("")              -> 0, false
func ParseAmount(input string) (int64, bool) {
	digits := digitsOnly(input)
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseAmountOrZero is ParseAmount with the "missing means zero" rule applied.
func ParseAmountOrZero(input string) int64 {
	v, _ := ParseAmount(input)
	return v
}

// FormatAmount renders v with grouping separators. Zero renders as the empty
// string so that an input field shows its placeholder instead of "0".
func FormatAmount(v int64) string {
	if v == 0 {
		return ""
	}
	s := strconv.FormatInt(v, 10)
	if strings.HasPrefix(s, "-") {
		return "-" + groupDigits(s[1:])
	}
	return groupDigits(s)
}

// FormatCurrency renders v for read-only display, e.g. "1.086.700 VNĐ".
func FormatCurrency(v int64) string {
	if v == 0 {
		return "0 " + CurrencySuffix
	}
	return FormatAmount(v) + " " + CurrencySuffix
}

// FormatLiveInput re-derives the display string from whatever has been typed
// so far. Existing separators are dropped and re-inserted from the digits
// alone, which makes the function idempotent.
func FormatLiveInput(raw string) string {
	digits := digitsOnly(raw)
	if digits == "" {
		return ""
	}
	return groupDigits(digits)
}

// MapCaretForward maps a caret offset in the typed text to the formatted text.
//
// The digits before the caret determine how many separators a formatted
// string of that length holds; separators already typed before the caret are
// subtracted. The result is clamped to the formatted text.
func MapCaretForward(offset int, original, formatted string) int {
	orig := []rune(original)
	offset = clamp(offset, 0, len(orig))

	digits, dots := 0, 0
	for _, r := range orig[:offset] {
		switch {
		case isDigit(r):
			digits++
		case r == GroupSeparator:
			dots++
		}
	}
	toAdd := 0
	if digits > 0 {
		toAdd = (digits - 1) / 3
	}
	return clamp(offset+toAdd-dots, 0, len([]rune(formatted)))
}

// MapCaretBackward maps a caret offset in the formatted text back to the
// typed text by removing the separators that precede it.
func MapCaretBackward(offset int, formatted, original string) int {
	fmtd := []rune(formatted)
	offset = clamp(offset, 0, len(fmtd))

	dots := 0
	for _, r := range fmtd[:offset] {
		if r == GroupSeparator {
			dots++
		}
	}
	return clamp(offset-dots, 0, len([]rune(original)))
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func groupDigits(digits string) string {
	n := len(digits)
	if n < 4 {
		return digits
	}
	var b strings.Builder
	b.Grow(n + (n-1)/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteRune(GroupSeparator)
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
