package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"worklog/internal/core"
	"worklog/internal/ports"
)

var (
	_ ports.EntryStore = (*SQLiteRepository)(nil)
	_ ports.NoteStore  = (*SQLiteRepository)(nil)
	_ ports.ThemeStore = (*SQLiteRepository)(nil)
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "worklog.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func sampleEntry() core.WorkEntry {
	return core.Reconcile(core.WorkEntry{
		Date:         core.NewDate(2025, 3, 31),
		StartTime:    core.NewTimeOfDay(8, 30),
		EndTime:      core.NewTimeOfDay(17, 0),
		BreakMinutes: 45,
		Task:         "Stocktake",
		Salary:       500000,
		Notes:        "warehouse",
	}, 200000)
}

func TestEntryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	id, err := repo.Insert(ctx, sampleEntry())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id != 1 {
		t.Fatalf("first id = %d, want 1", id)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := sampleEntry()
	want.ID = id
	if got.Date.Compare(want.Date) != 0 {
		t.Fatalf("date = %s, want %s", got.Date, want.Date)
	}
	got.Date = want.Date
	if got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	got = core.Reconcile(got, 500000)
	got.Task = "Stocktake (full)"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, _ := repo.GetByID(ctx, id)
	if !again.IsPaid || again.PaidAmount != 500000 || again.Task != "Stocktake (full)" {
		t.Fatalf("update not persisted: %+v", again)
	}

	if err := repo.DeleteByID(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMissingEntry(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	e := sampleEntry()
	e.ID = 42
	if err := repo.Update(ctx, e); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Update missing = %v", err)
	}
	if err := repo.DeleteByID(ctx, 42); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("DeleteByID missing = %v", err)
	}
}

func TestListAll(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	for _, d := range []int{1, 3, 2} {
		e := sampleEntry()
		e.Date = core.NewDate(2025, 4, d)
		if _, err := repo.Insert(ctx, e); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d entries", len(all))
	}
	if all[0].Date.Compare(core.NewDate(2025, 4, 3)) != 0 {
		t.Fatalf("expected newest first, got %s", all[0].Date)
	}
}

func TestNotes(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	id, err := repo.InsertNote(ctx, core.Note{Title: "Rates", Content: "ask for raise"})
	if err != nil {
		t.Fatalf("insert note: %v", err)
	}
	n, err := repo.GetNote(ctx, id)
	if err != nil || n.Title != "Rates" || n.CreatedAt.IsZero() {
		t.Fatalf("GetNote = %+v, %v", n, err)
	}

	n.Content = "raise granted"
	if err := repo.UpdateNote(ctx, n); err != nil {
		t.Fatalf("update note: %v", err)
	}
	notes, _ := repo.ListNotes(ctx)
	if len(notes) != 1 || notes[0].Content != "raise granted" {
		t.Fatalf("ListNotes = %+v", notes)
	}

	if err := repo.DeleteNote(ctx, id); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	if _, err := repo.GetNote(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestThemePreference(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if m, err := repo.GetTheme(ctx); err != nil || m != core.ThemeSystem {
		t.Fatalf("default theme = %s, %v", m, err)
	}
	if err := repo.SetTheme(ctx, core.ThemeLight); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if err := repo.SetTheme(ctx, core.ThemeDark); err != nil {
		t.Fatalf("set theme again: %v", err)
	}
	if m, _ := repo.GetTheme(ctx); m != core.ThemeDark {
		t.Fatalf("theme = %s", m)
	}

	// an unknown stored value reads back as SYSTEM
	if err := repo.queries.SetPreference(ctx, themePreferenceKey, "sepia"); err != nil {
		t.Fatalf("raw set: %v", err)
	}
	if m, _ := repo.GetTheme(ctx); m != core.ThemeSystem {
		t.Fatalf("unknown theme read as %s", m)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.db")
	v1, err := RunMigrations(path)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	v2, err := RunMigrations(path)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if v1 != 1 || v2 != 1 {
		t.Fatalf("versions = %d, %d", v1, v2)
	}
}
