package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"worklog/internal/core"
	"worklog/internal/ports"
)

// EntryService owns every write to the entry store. Writes are serialized so a
// read-modify-write such as a payment reconciliation never loses an update.
type EntryService struct {
	mu        sync.Mutex
	store     ports.EntryStore
	publisher ports.EventPublisher
	version   uint64
	listeners []func(ports.EntryEvent)
}

func NewEntryService(store ports.EntryStore, publisher ports.EventPublisher) *EntryService {
	return &EntryService{
		store:     store,
		publisher: publisher,
	}
}

// OnChange registers fn to run after each committed write, outside the writer lock.
func (s *EntryService) OnChange(fn func(ports.EntryEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Version increases after every committed write.
func (s *EntryService) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// List returns every entry in the store, in no particular order.
func (s *EntryService) List(ctx context.Context) ([]core.WorkEntry, error) {
	entries, _, err := s.Snapshot(ctx)
	return entries, err
}

// Snapshot reads all entries together with the version they correspond to.
func (s *EntryService) Snapshot(ctx context.Context) ([]core.WorkEntry, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}
	return entries, s.version, nil
}

// Query runs the list engine over a fresh snapshot.
func (s *EntryService) Query(ctx context.Context, q core.ListQuery) ([]core.WorkEntry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return core.ApplyListQuery(entries, q), nil
}

func (s *EntryService) Get(ctx context.Context, id int64) (core.WorkEntry, error) {
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		return core.WorkEntry{}, fmt.Errorf("get entry %d: %w", id, err)
	}
	return e, nil
}

// Add validates e, derives IsPaid from its amounts and stores it under a new id.
func (s *EntryService) Add(ctx context.Context, e core.WorkEntry) (core.WorkEntry, error) {
	if err := e.Validate(); err != nil {
		return core.WorkEntry{}, err
	}
	if err := core.ValidatePayment(e.PaidAmount); err != nil {
		return core.WorkEntry{}, err
	}
	e = core.Normalize(e)
	e.ID = 0

	s.mu.Lock()
	id, err := s.store.Insert(ctx, e)
	if err != nil {
		s.mu.Unlock()
		return core.WorkEntry{}, fmt.Errorf("save entry: %w", err)
	}
	e.ID = id
	ev := s.commitLocked(e, ports.ActionCreated)
	s.mu.Unlock()

	slog.InfoContext(ctx, "Work entry created",
		"id", e.ID,
		"date", e.Date.String(),
		"salary", e.Salary,
		"paid_amount", e.PaidAmount)
	s.afterCommit(ctx, ev)
	return e, nil
}

// Edit replaces the stored entry with e. The id must already exist.
func (s *EntryService) Edit(ctx context.Context, e core.WorkEntry) (core.WorkEntry, error) {
	if err := e.Validate(); err != nil {
		return core.WorkEntry{}, err
	}
	if err := core.ValidatePayment(e.PaidAmount); err != nil {
		return core.WorkEntry{}, err
	}
	e = core.Normalize(e)

	s.mu.Lock()
	prev, err := s.store.GetByID(ctx, e.ID)
	if err != nil {
		s.mu.Unlock()
		return core.WorkEntry{}, fmt.Errorf("update entry %d: %w", e.ID, err)
	}
	if err := s.store.Update(ctx, e); err != nil {
		s.mu.Unlock()
		return core.WorkEntry{}, fmt.Errorf("update entry %d: %w", e.ID, err)
	}
	evs := []ports.EntryEvent{s.commitLocked(e, ports.ActionUpdated)}
	// A date moved to another month changes that month's totals too.
	if left := eventFor(prev, ports.ActionUpdated); left.Year != evs[0].Year || left.Month != evs[0].Month {
		evs = append(evs, left)
	}
	s.mu.Unlock()

	slog.InfoContext(ctx, "Work entry updated", "id", e.ID, "is_paid", e.IsPaid, "months", len(evs))
	s.afterCommit(ctx, evs...)
	return e, nil
}

func (s *EntryService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	ev := s.commitLocked(e, ports.ActionDeleted)
	s.mu.Unlock()

	slog.InfoContext(ctx, "Work entry deleted", "id", id)
	s.afterCommit(ctx, ev)
	return nil
}

// ReconcilePayment records paidAmount against the entry and re-derives IsPaid.
func (s *EntryService) ReconcilePayment(ctx context.Context, id int64, paidAmount int64) (core.WorkEntry, error) {
	if err := core.ValidatePayment(paidAmount); err != nil {
		return core.WorkEntry{}, err
	}
	return s.updatePayment(ctx, id, func(e core.WorkEntry) core.WorkEntry {
		return core.Reconcile(e, paidAmount)
	})
}

func (s *EntryService) MarkPaid(ctx context.Context, id int64) (core.WorkEntry, error) {
	return s.updatePayment(ctx, id, core.MarkPaid)
}

func (s *EntryService) MarkUnpaid(ctx context.Context, id int64) (core.WorkEntry, error) {
	return s.updatePayment(ctx, id, core.MarkUnpaid)
}

func (s *EntryService) updatePayment(ctx context.Context, id int64, apply func(core.WorkEntry) core.WorkEntry) (core.WorkEntry, error) {
	s.mu.Lock()
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return core.WorkEntry{}, fmt.Errorf("reconcile entry %d: %w", id, err)
	}
	e = apply(e)
	if err := s.store.Update(ctx, e); err != nil {
		s.mu.Unlock()
		return core.WorkEntry{}, fmt.Errorf("reconcile entry %d: %w", id, err)
	}
	ev := s.commitLocked(e, ports.ActionPaid)
	s.mu.Unlock()

	slog.InfoContext(ctx, "Payment reconciled",
		"id", e.ID,
		"salary", e.Salary,
		"paid_amount", e.PaidAmount,
		"is_paid", e.IsPaid)
	s.afterCommit(ctx, ev)
	return e, nil
}

func (s *EntryService) commitLocked(e core.WorkEntry, action ports.EntryAction) ports.EntryEvent {
	s.version++
	return eventFor(e, action)
}

func eventFor(e core.WorkEntry, action ports.EntryAction) ports.EntryEvent {
	return ports.EntryEvent{
		ID:     e.ID,
		Action: action,
		Year:   e.Date.Year(),
		Month:  int(e.Date.Month()),
	}
}

func (s *EntryService) afterCommit(ctx context.Context, evs ...ports.EntryEvent) {
	s.mu.Lock()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, ev := range evs {
		for _, fn := range listeners {
			fn(ev)
		}

		if err := s.publish(ctx, ev); err != nil {
			// The write is committed locally; downstream export catches up on its schedule.
			slog.ErrorContext(ctx, "Failed to publish entry change",
				"id", ev.ID, "action", ev.Action, "month", ev.Month, "error", err)
		}
	}
}

func (s *EntryService) publish(ctx context.Context, ev ports.EntryEvent) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "Event publisher not available, skipping entry change message")
		return nil
	}
	return s.publisher.PublishEntryChanged(ctx, ev)
}

// IsNotFound reports whether err means the entry or note does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, core.ErrNotFound)
}
