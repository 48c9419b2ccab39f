package http

import (
	"net/http"

	"worklog/internal/core"
)

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	mode, err := s.svc.Settings.Theme(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Mode: mode})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	mode, err := s.svc.Settings.SetTheme(r.Context(), req.Mode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Mode: mode})
}

// handleCurrencyFormat reformats a live amount field and moves the caret to
// the same digit in the new text.
func handleCurrencyFormat(w http.ResponseWriter, r *http.Request) {
	var req currencyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	formatted := core.FormatLiveInput(req.Input)
	amount, ok := core.ParseAmount(req.Input)
	writeJSON(w, http.StatusOK, currencyResponse{
		Formatted: formatted,
		Amount:    amount,
		Valid:     ok,
		Caret:     core.MapCaretForward(req.Caret, req.Input, formatted),
	})
}
