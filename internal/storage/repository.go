package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"worklog/internal/core"

	_ "modernc.org/sqlite"
)

const themePreferenceKey = "theme_mode"

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	now     func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time; sqlite serialises writes anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := RunMigrations(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("SQLite repository ready", "path", dbPath, "schema_version", version)

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		now:     time.Now,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListAll implements ports.EntryStore
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.WorkEntry, error) {
	rows, err := r.queries.ListWorkEntries(ctx)
	if err != nil {
		return nil, core.NewStorageError("list entries", err)
	}
	out := make([]core.WorkEntry, 0, len(rows))
	for _, row := range rows {
		e, err := toDomainEntry(row)
		if err != nil {
			return nil, core.NewStorageError("decode entry", err)
		}
		out = append(out, e)
	}
	return out, nil
}

// GetByID implements ports.EntryStore
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (core.WorkEntry, error) {
	row, err := r.queries.GetWorkEntry(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.WorkEntry{}, core.ErrNotFound
	}
	if err != nil {
		return core.WorkEntry{}, core.NewStorageError("get entry", err)
	}
	e, err := toDomainEntry(row)
	if err != nil {
		return core.WorkEntry{}, core.NewStorageError("decode entry", err)
	}
	return e, nil
}

// Insert implements ports.EntryStore
func (r *SQLiteRepository) Insert(ctx context.Context, e core.WorkEntry) (int64, error) {
	now := r.now().UnixMilli()
	id, err := r.queries.CreateWorkEntry(ctx, CreateWorkEntryParams{
		Date:         e.Date.String(),
		StartTime:    e.StartTime.String(),
		EndTime:      e.EndTime.String(),
		BreakMinutes: int64(e.BreakMinutes),
		Task:         e.Task,
		Salary:       e.Salary,
		PaidAmount:   e.PaidAmount,
		IsPaid:       boolToInt(e.IsPaid),
		Notes:        e.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return 0, core.NewStorageError("insert entry", err)
	}

	slog.DebugContext(ctx, "Work entry saved to SQLite",
		"id", id,
		"date", e.Date.String(),
		"salary", e.Salary)

	return id, nil
}

// Update implements ports.EntryStore
func (r *SQLiteRepository) Update(ctx context.Context, e core.WorkEntry) error {
	n, err := r.queries.UpdateWorkEntry(ctx, UpdateWorkEntryParams{
		Date:         e.Date.String(),
		StartTime:    e.StartTime.String(),
		EndTime:      e.EndTime.String(),
		BreakMinutes: int64(e.BreakMinutes),
		Task:         e.Task,
		Salary:       e.Salary,
		PaidAmount:   e.PaidAmount,
		IsPaid:       boolToInt(e.IsPaid),
		Notes:        e.Notes,
		UpdatedAt:    r.now().UnixMilli(),
		ID:           e.ID,
	})
	if err != nil {
		return core.NewStorageError("update entry", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// DeleteByID implements ports.EntryStore
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteWorkEntry(ctx, id)
	if err != nil {
		return core.NewStorageError("delete entry", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	slog.DebugContext(ctx, "Work entry deleted from SQLite", "id", id)
	return nil
}

// ListNotes implements ports.NoteStore
func (r *SQLiteRepository) ListNotes(ctx context.Context) ([]core.Note, error) {
	rows, err := r.queries.ListNotes(ctx)
	if err != nil {
		return nil, core.NewStorageError("list notes", err)
	}
	out := make([]core.Note, len(rows))
	for i, row := range rows {
		out[i] = toDomainNote(row)
	}
	return out, nil
}

// GetNote implements ports.NoteStore
func (r *SQLiteRepository) GetNote(ctx context.Context, id int64) (core.Note, error) {
	row, err := r.queries.GetNote(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Note{}, core.ErrNotFound
	}
	if err != nil {
		return core.Note{}, core.NewStorageError("get note", err)
	}
	return toDomainNote(row), nil
}

// InsertNote implements ports.NoteStore
func (r *SQLiteRepository) InsertNote(ctx context.Context, n core.Note) (int64, error) {
	now := r.now()
	created := n.CreatedAt
	if created.IsZero() {
		created = now
	}
	id, err := r.queries.CreateNote(ctx, CreateNoteParams{
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: created.UnixMilli(),
		UpdatedAt: now.UnixMilli(),
	})
	if err != nil {
		return 0, core.NewStorageError("insert note", err)
	}
	return id, nil
}

// UpdateNote implements ports.NoteStore
func (r *SQLiteRepository) UpdateNote(ctx context.Context, n core.Note) error {
	affected, err := r.queries.UpdateNote(ctx, UpdateNoteParams{
		Title:     n.Title,
		Content:   n.Content,
		UpdatedAt: r.now().UnixMilli(),
		ID:        n.ID,
	})
	if err != nil {
		return core.NewStorageError("update note", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

// DeleteNote implements ports.NoteStore
func (r *SQLiteRepository) DeleteNote(ctx context.Context, id int64) error {
	affected, err := r.queries.DeleteNote(ctx, id)
	if err != nil {
		return core.NewStorageError("delete note", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

// GetTheme implements ports.ThemeStore. A missing or unknown value reads as SYSTEM.
func (r *SQLiteRepository) GetTheme(ctx context.Context) (core.ThemeMode, error) {
	v, err := r.queries.GetPreference(ctx, themePreferenceKey)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ThemeSystem, nil
	}
	if err != nil {
		return core.ThemeSystem, core.NewStorageError("get theme", err)
	}
	return core.ParseThemeMode(v), nil
}

// SetTheme implements ports.ThemeStore
func (r *SQLiteRepository) SetTheme(ctx context.Context, mode core.ThemeMode) error {
	if !mode.IsValid() {
		return core.ErrInvalidTheme
	}
	if err := r.queries.SetPreference(ctx, themePreferenceKey, mode.String()); err != nil {
		return core.NewStorageError("set theme", err)
	}
	return nil
}

func toDomainEntry(row WorkEntry) (core.WorkEntry, error) {
	date, err := core.ParseDate(row.Date)
	if err != nil {
		return core.WorkEntry{}, err
	}
	start, err := core.ParseTimeOfDay(row.StartTime)
	if err != nil {
		return core.WorkEntry{}, err
	}
	end, err := core.ParseTimeOfDay(row.EndTime)
	if err != nil {
		return core.WorkEntry{}, err
	}
	return core.WorkEntry{
		ID:           row.ID,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: int(row.BreakMinutes),
		Task:         row.Task,
		Salary:       row.Salary,
		PaidAmount:   row.PaidAmount,
		IsPaid:       row.IsPaid != 0,
		Notes:        row.Notes,
	}, nil
}

func toDomainNote(row Note) core.Note {
	return core.Note{
		ID:        row.ID,
		Title:     row.Title,
		Content:   row.Content,
		CreatedAt: time.UnixMilli(row.CreatedAt),
		UpdatedAt: time.UnixMilli(row.UpdatedAt),
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
