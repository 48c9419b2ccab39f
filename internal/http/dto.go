package http

import (
	"strconv"
	"strings"
	"time"

	"worklog/internal/core"
)

// Monetary request fields are free text run through the currency codec, so
// "1.086.700", "1086700" and "1.086.700 VNĐ" are all accepted.

type entryRequest struct {
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime      string `json:"end_time" validate:"required,datetime=15:04"`
	BreakMinutes int    `json:"break_minutes"`
	Task         string `json:"task" validate:"max=200"`
	Salary       string `json:"salary" validate:"max=40"`
	PaidAmount   string `json:"paid_amount" validate:"max=40"`
	Notes        string `json:"notes" validate:"max=2000"`
}

func (req entryRequest) toEntry(id int64) (core.WorkEntry, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.WorkEntry{}, core.NewValidationError("date must match 2006-01-02")
	}
	start, err := core.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return core.WorkEntry{}, core.NewValidationError("start_time must match 15:04")
	}
	end, err := core.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return core.WorkEntry{}, core.NewValidationError("end_time must match 15:04")
	}
	return core.WorkEntry{
		ID:           id,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: req.BreakMinutes,
		Task:         strings.TrimSpace(req.Task),
		Salary:       core.ParseAmountOrZero(req.Salary),
		PaidAmount:   core.ParseAmountOrZero(req.PaidAmount),
		Notes:        req.Notes,
	}, nil
}

// paymentRequest either records an amount or applies a shortcut action.
type paymentRequest struct {
	PaidAmount string `json:"paid_amount" validate:"required_without=Action,max=40"`
	Action     string `json:"action" validate:"omitempty,oneof=paid unpaid"`
}

type entryResponse struct {
	ID            int64  `json:"id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	BreakMinutes  int    `json:"break_minutes"`
	WorkedMinutes int    `json:"worked_minutes"`
	Task          string `json:"task"`
	Salary        int64  `json:"salary"`
	SalaryText    string `json:"salary_text"`
	PaidAmount    int64  `json:"paid_amount"`
	PaidText      string `json:"paid_text"`
	Remaining     int64  `json:"remaining"`
	Surplus       int64  `json:"surplus"`
	IsPaid        bool   `json:"is_paid"`
	Status        string `json:"status"`
	HourlyRate    string `json:"hourly_rate"`
	Notes         string `json:"notes"`
}

func newEntryResponse(e core.WorkEntry) entryResponse {
	return entryResponse{
		ID:            e.ID,
		Date:          e.Date.String(),
		StartTime:     e.StartTime.String(),
		EndTime:       e.EndTime.String(),
		BreakMinutes:  e.BreakMinutes,
		WorkedMinutes: e.WorkedMinutes(),
		Task:          e.Task,
		Salary:        e.Salary,
		SalaryText:    core.FormatCurrency(e.Salary),
		PaidAmount:    e.PaidAmount,
		PaidText:      core.FormatCurrency(e.PaidAmount),
		Remaining:     e.Remaining(),
		Surplus:       e.Surplus(),
		IsPaid:        e.IsPaid,
		Status:        string(core.StatusOf(e)),
		HourlyRate:    e.HourlyRate().String(),
		Notes:         e.Notes,
	}
}

func newEntryResponses(entries []core.WorkEntry) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = newEntryResponse(e)
	}
	return out
}

type listResponse struct {
	Search  string          `json:"search"`
	Filter  core.Filter     `json:"filter"`
	Sort    core.SortKey    `json:"sort"`
	Total   int             `json:"total"`
	Counts  map[string]int  `json:"counts"`
	Entries []entryResponse `json:"entries"`
}

type totalsResponse struct {
	TotalSalary   int64  `json:"total_salary"`
	TotalText     string `json:"total_text"`
	PaidSalary    int64  `json:"paid_salary"`
	PaidText      string `json:"paid_text"`
	UnpaidSalary  int64  `json:"unpaid_salary"`
	PaidAmount    int64  `json:"paid_amount"`
	SurplusAmount int64  `json:"surplus_amount"`
	UnpaidCount   int    `json:"unpaid_count"`
	TotalMinutes  int    `json:"total_minutes"`
	HourlyRate    string `json:"hourly_rate"`
}

func newTotalsResponse(t core.Totals) totalsResponse {
	return totalsResponse{
		TotalSalary:   t.TotalSalary,
		TotalText:     core.FormatCurrency(t.TotalSalary),
		PaidSalary:    t.PaidSalary,
		PaidText:      core.FormatCurrency(t.PaidSalary),
		UnpaidSalary:  t.UnpaidSalary(),
		PaidAmount:    t.PaidAmount,
		SurplusAmount: t.SurplusAmount,
		UnpaidCount:   t.UnpaidCount,
		TotalMinutes:  t.TotalMinutes,
		HourlyRate:    t.HourlyRate().String(),
	}
}

type bucketResponse struct {
	Label     string `json:"label"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Entries   int    `json:"entries"`
	totalsResponse
}

type statsResponse struct {
	Weeks  []bucketResponse `json:"weeks"`
	Months []bucketResponse `json:"months"`
	Years  []bucketResponse `json:"years"`
}

func weekBuckets(ws []core.WeekStat) []bucketResponse {
	out := make([]bucketResponse, len(ws))
	for i, w := range ws {
		out[i] = bucketResponse{
			Label:          w.Label,
			StartDate:      w.StartDate.String(),
			EndDate:        w.EndDate.String(),
			Entries:        len(w.Entries),
			totalsResponse: newTotalsResponse(w.Totals),
		}
	}
	return out
}

func monthBuckets(ms []core.MonthStat) []bucketResponse {
	out := make([]bucketResponse, len(ms))
	for i, m := range ms {
		out[i] = bucketResponse{Label: m.Label, Entries: len(m.Entries), totalsResponse: newTotalsResponse(m.Totals)}
	}
	return out
}

func yearBuckets(ys []core.YearStat) []bucketResponse {
	out := make([]bucketResponse, len(ys))
	for i, y := range ys {
		out[i] = bucketResponse{Label: y.Label, Entries: len(y.Entries), totalsResponse: newTotalsResponse(y.Totals)}
	}
	return out
}

type noteRequest struct {
	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content" validate:"max=20000"`
}

type noteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newNoteResponse(n core.Note) noteResponse {
	return noteResponse{ID: n.ID, Title: n.Title, Content: n.Content, CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt}
}

type themeRequest struct {
	Mode string `json:"mode" validate:"required"`
}

type themeResponse struct {
	Mode core.ThemeMode `json:"mode"`
}

// currencyRequest is one keystroke of a live amount field.
type currencyRequest struct {
	Input string `json:"input" validate:"max=64"`
	Caret int    `json:"caret" validate:"min=0"`
}

type currencyResponse struct {
	Formatted string `json:"formatted"`
	Amount    int64  `json:"amount"`
	Valid     bool   `json:"valid"`
	Caret     int    `json:"caret"`
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, core.NewValidationError("invalid id " + strconv.Quote(s))
	}
	return id, nil
}
