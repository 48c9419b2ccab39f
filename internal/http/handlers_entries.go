package http

import (
	"net/http"
	"strconv"

	"worklog/internal/core"
	"worklog/internal/log"
)

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, ok := core.ParseFilter(q.Get("filter"))
	if !ok {
		writeError(w, r, core.NewValidationError("unknown filter "+q.Get("filter")))
		return
	}
	sortKey, ok := core.ParseSort(q.Get("sort"))
	if !ok {
		writeError(w, r, core.NewValidationError("unknown sort "+q.Get("sort")))
		return
	}
	query := core.ListQuery{Search: q.Get("q"), Filter: filter, Sort: sortKey}

	all, err := s.svc.Entries.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	counts := map[string]int{}
	for status, n := range core.CountByStatus(all) {
		counts[string(status)] = n
	}
	writeJSON(w, http.StatusOK, listResponse{
		Search:  query.Search,
		Filter:  query.Filter,
		Sort:    query.Sort,
		Total:   len(all),
		Counts:  counts,
		Entries: newEntryResponses(core.ApplyListQuery(all, query)),
	})
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := s.svc.Entries.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newEntryResponse(e))
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := req.toEntry(0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.svc.Entries.Add(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logEntryChanged(r, log.OpCreate, created)
	w.Header().Set("Location", "/api/entries/"+strconv.FormatInt(created.ID, 10))
	writeJSON(w, http.StatusCreated, newEntryResponse(created))
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := req.toEntry(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.svc.Entries.Edit(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logEntryChanged(r, log.OpUpdate, updated)
	writeJSON(w, http.StatusOK, newEntryResponse(updated))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Entries.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Work entry deleted",
		log.FieldEntryID, id, log.FieldOperation, log.OpDelete)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePayment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var e core.WorkEntry
	switch req.Action {
	case "paid":
		e, err = s.svc.Entries.MarkPaid(r.Context(), id)
	case "unpaid":
		e, err = s.svc.Entries.MarkUnpaid(r.Context(), id)
	default:
		amount, ok := core.ParseAmount(req.PaidAmount)
		if !ok {
			writeError(w, r, core.NewValidationError("paid_amount must contain digits"))
			return
		}
		e, err = s.svc.Entries.ReconcilePayment(r.Context(), id, amount)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	logEntryChanged(r, log.OpReconcile, e)
	writeJSON(w, http.StatusOK, newEntryResponse(e))
}

func logEntryChanged(r *http.Request, op string, e core.WorkEntry) {
	log.NewStructuredLogger(log.FromContext(r.Context())).
		LogEntryChanged(r.Context(), op, e.ID, e.Date.String(), e.Salary, e.PaidAmount, e.IsPaid)
}
