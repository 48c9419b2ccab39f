package memory

import (
	"context"
	"sync"
	"time"

	"worklog/internal/core"
)

// Store keeps entries, notes and the theme preference in process memory.
// Ids start at 1 and are never reused.
type Store struct {
	mu        sync.Mutex
	entries   map[int64]core.WorkEntry
	notes     map[int64]core.Note
	theme     core.ThemeMode
	nextEntry int64
	nextNote  int64
	now       func() time.Time
}

func New() *Store {
	return &Store{
		entries:   map[int64]core.WorkEntry{},
		notes:     map[int64]core.Note{},
		theme:     core.ThemeSystem,
		nextEntry: 1,
		nextNote:  1,
		now:       time.Now,
	}
}

// NewWithEntries seeds the store, assigning ids to entries that have none.
func NewWithEntries(entries []core.WorkEntry) *Store {
	s := New()
	for _, e := range entries {
		if e.ID == 0 {
			e.ID = s.nextEntry
		}
		if e.ID >= s.nextEntry {
			s.nextEntry = e.ID + 1
		}
		s.entries[e.ID] = e
	}
	return s
}

func (s *Store) ListAll(_ context.Context) ([]core.WorkEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.WorkEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) GetByID(_ context.Context, id int64) (core.WorkEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return core.WorkEntry{}, core.ErrNotFound
	}
	return e, nil
}

func (s *Store) Insert(_ context.Context, e core.WorkEntry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextEntry
	s.nextEntry++
	s.entries[e.ID] = e
	return e.ID, nil
}

func (s *Store) Update(_ context.Context, e core.WorkEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[e.ID]; !ok {
		return core.ErrNotFound
	}
	s.entries[e.ID] = e
	return nil
}

func (s *Store) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *Store) ListNotes(_ context.Context) ([]core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n)
	}
	return out, nil
}

func (s *Store) GetNote(_ context.Context, id int64) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return core.Note{}, core.ErrNotFound
	}
	return n, nil
}

func (s *Store) InsertNote(_ context.Context, n core.Note) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n.ID = s.nextNote
	s.nextNote++
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now
	s.notes[n.ID] = n
	return n.ID, nil
}

func (s *Store) UpdateNote(_ context.Context, n core.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.notes[n.ID]
	if !ok {
		return core.ErrNotFound
	}
	n.CreatedAt = old.CreatedAt
	n.UpdatedAt = s.now()
	s.notes[n.ID] = n
	return nil
}

func (s *Store) DeleteNote(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *Store) GetTheme(_ context.Context) (core.ThemeMode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme, nil
}

func (s *Store) SetTheme(_ context.Context, mode core.ThemeMode) error {
	if !mode.IsValid() {
		return core.ErrInvalidTheme
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = mode
	return nil
}

func (s *Store) Close() error { return nil }
