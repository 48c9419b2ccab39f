package http

import (
	"net/http"

	"worklog/internal/core"
)

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.svc.Notes.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]noteResponse, len(notes))
	for i, n := range notes {
		out[i] = newNoteResponse(n)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	s.saveNote(w, r, 0, http.StatusCreated)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.saveNote(w, r, id, http.StatusOK)
}

func (s *Server) saveNote(w http.ResponseWriter, r *http.Request, id int64, status int) {
	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	n, err := s.svc.Notes.Save(r.Context(), core.Note{ID: id, Title: req.Title, Content: req.Content})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, newNoteResponse(n))
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Notes.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
