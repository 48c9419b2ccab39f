package ports

import (
	"context"

	"worklog/internal/core"
)

// Ports for outbound adapters.
type (
	// EntryStore persists work entries. ListAll is the single bulk read used to
	// obtain a consistent snapshot; callers never rely on its order.
	EntryStore interface {
		ListAll(ctx context.Context) ([]core.WorkEntry, error)
		// GetByID returns core.ErrNotFound when id does not exist.
		GetByID(ctx context.Context, id int64) (core.WorkEntry, error)
		Insert(ctx context.Context, e core.WorkEntry) (int64, error)
		Update(ctx context.Context, e core.WorkEntry) error
		DeleteByID(ctx context.Context, id int64) error
	}

	NoteStore interface {
		ListNotes(ctx context.Context) ([]core.Note, error)
		GetNote(ctx context.Context, id int64) (core.Note, error)
		InsertNote(ctx context.Context, n core.Note) (int64, error)
		UpdateNote(ctx context.Context, n core.Note) error
		DeleteNote(ctx context.Context, id int64) error
	}

	ThemeStore interface {
		GetTheme(ctx context.Context) (core.ThemeMode, error)
		SetTheme(ctx context.Context, mode core.ThemeMode) error
	}

	// EventPublisher announces committed entry changes to downstream consumers.
	EventPublisher interface {
		PublishEntryChanged(ctx context.Context, ev EntryEvent) error
	}

	// ReportWriter exports aggregated month statistics somewhere outside the app.
	ReportWriter interface {
		WriteMonth(ctx context.Context, m core.MonthStat) error
	}
)

const (
	ActionCreated EntryAction = "created"
	ActionUpdated EntryAction = "updated"
	ActionPaid    EntryAction = "payment"
	ActionDeleted EntryAction = "deleted"
)

type EntryAction string

// EntryEvent identifies the entry and the month bucket a change touched.
type EntryEvent struct {
	ID     int64
	Action EntryAction
	Year   int
	Month  int
}
