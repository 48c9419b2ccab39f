package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"worklog/internal/core"
	"worklog/internal/ports"
)

type NoteService struct {
	store ports.NoteStore
}

func NewNoteService(store ports.NoteStore) *NoteService {
	return &NoteService{store: store}
}

// List returns notes whose title or content contains query (case-insensitive),
// most recently updated first. An empty query returns every note.
func (s *NoteService) List(ctx context.Context, query string) ([]core.Note, error) {
	notes, err := s.store.ListNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		if needle == "" ||
			strings.Contains(strings.ToLower(n.Title), needle) ||
			strings.Contains(strings.ToLower(n.Content), needle) {
			out = append(out, n)
		}
	}
	slices.SortStableFunc(out, func(a, b core.Note) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

func (s *NoteService) Get(ctx context.Context, id int64) (core.Note, error) {
	n, err := s.store.GetNote(ctx, id)
	if err != nil {
		return core.Note{}, fmt.Errorf("get note %d: %w", id, err)
	}
	return n, nil
}

// Save inserts n when it has no id yet and updates it otherwise.
func (s *NoteService) Save(ctx context.Context, n core.Note) (core.Note, error) {
	n.Title = strings.TrimSpace(n.Title)
	if err := n.Validate(); err != nil {
		return core.Note{}, err
	}

	if n.ID == 0 {
		id, err := s.store.InsertNote(ctx, n)
		if err != nil {
			return core.Note{}, fmt.Errorf("save note: %w", err)
		}
		slog.InfoContext(ctx, "Note created", "id", id)
		return s.Get(ctx, id)
	}

	if err := s.store.UpdateNote(ctx, n); err != nil {
		return core.Note{}, fmt.Errorf("update note %d: %w", n.ID, err)
	}
	return s.Get(ctx, n.ID)
}

func (s *NoteService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	slog.InfoContext(ctx, "Note deleted", "id", id)
	return nil
}
