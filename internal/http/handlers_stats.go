package http

import (
	"net/http"

	"worklog/internal/core"
	"worklog/internal/services"
)

// handleStats returns the week, month and year buckets. ?by= narrows the
// response to one period; the others are null.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	by := r.URL.Query().Get("by")
	var period services.Period
	if by != "" {
		p, ok := services.ParsePeriod(by)
		if !ok {
			writeError(w, r, core.NewValidationError("by must be week, month or year"))
			return
		}
		period = p
	}

	stats, err := s.svc.Stats.Statistics(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var resp statsResponse
	if period == "" || period == services.PeriodWeek {
		resp.Weeks = weekBuckets(stats.Weeks)
	}
	if period == "" || period == services.PeriodMonth {
		resp.Months = monthBuckets(stats.Months)
	}
	if period == "" || period == services.PeriodYear {
		resp.Years = yearBuckets(stats.Years)
	}
	writeJSON(w, http.StatusOK, resp)
}
