package storage

import (
	"context"
)

const workEntryColumns = `id, date, start_time, end_time, break_minutes, task, salary, paid_amount, is_paid, notes, created_at, updated_at`

const listWorkEntries = `SELECT ` + workEntryColumns + `
FROM work_entries
ORDER BY date DESC, start_time DESC, id DESC`

func (q *Queries) ListWorkEntries(ctx context.Context) ([]WorkEntry, error) {
	rows, err := q.db.QueryContext(ctx, listWorkEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WorkEntry
	for rows.Next() {
		var i WorkEntry
		if err := scanWorkEntry(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getWorkEntry = `SELECT ` + workEntryColumns + `
FROM work_entries
WHERE id = ?`

func (q *Queries) GetWorkEntry(ctx context.Context, id int64) (WorkEntry, error) {
	row := q.db.QueryRowContext(ctx, getWorkEntry, id)
	var i WorkEntry
	err := scanWorkEntry(row, &i)
	return i, err
}

const createWorkEntry = `INSERT INTO work_entries (
    date, start_time, end_time, break_minutes, task, salary, paid_amount, is_paid, notes, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`

type CreateWorkEntryParams struct {
	Date         string
	StartTime    string
	EndTime      string
	BreakMinutes int64
	Task         string
	Salary       int64
	PaidAmount   int64
	IsPaid       int64
	Notes        string
	CreatedAt    int64
	UpdatedAt    int64
}

func (q *Queries) CreateWorkEntry(ctx context.Context, arg CreateWorkEntryParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createWorkEntry,
		arg.Date,
		arg.StartTime,
		arg.EndTime,
		arg.BreakMinutes,
		arg.Task,
		arg.Salary,
		arg.PaidAmount,
		arg.IsPaid,
		arg.Notes,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const updateWorkEntry = `UPDATE work_entries
SET date = ?, start_time = ?, end_time = ?, break_minutes = ?, task = ?,
    salary = ?, paid_amount = ?, is_paid = ?, notes = ?, updated_at = ?
WHERE id = ?`

type UpdateWorkEntryParams struct {
	Date         string
	StartTime    string
	EndTime      string
	BreakMinutes int64
	Task         string
	Salary       int64
	PaidAmount   int64
	IsPaid       int64
	Notes        string
	UpdatedAt    int64
	ID           int64
}

func (q *Queries) UpdateWorkEntry(ctx context.Context, arg UpdateWorkEntryParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateWorkEntry,
		arg.Date,
		arg.StartTime,
		arg.EndTime,
		arg.BreakMinutes,
		arg.Task,
		arg.Salary,
		arg.PaidAmount,
		arg.IsPaid,
		arg.Notes,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteWorkEntry = `DELETE FROM work_entries WHERE id = ?`

func (q *Queries) DeleteWorkEntry(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteWorkEntry, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listNotes = `SELECT id, title, content, created_at, updated_at
FROM notes
ORDER BY updated_at DESC, id DESC`

func (q *Queries) ListNotes(ctx context.Context) ([]Note, error) {
	rows, err := q.db.QueryContext(ctx, listNotes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Note
	for rows.Next() {
		var i Note
		if err := rows.Scan(&i.ID, &i.Title, &i.Content, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getNote = `SELECT id, title, content, created_at, updated_at FROM notes WHERE id = ?`

func (q *Queries) GetNote(ctx context.Context, id int64) (Note, error) {
	row := q.db.QueryRowContext(ctx, getNote, id)
	var i Note
	err := row.Scan(&i.ID, &i.Title, &i.Content, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const createNote = `INSERT INTO notes (title, content, created_at, updated_at)
VALUES (?, ?, ?, ?)
RETURNING id`

type CreateNoteParams struct {
	Title     string
	Content   string
	CreatedAt int64
	UpdatedAt int64
}

func (q *Queries) CreateNote(ctx context.Context, arg CreateNoteParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createNote, arg.Title, arg.Content, arg.CreatedAt, arg.UpdatedAt)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const updateNote = `UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?`

type UpdateNoteParams struct {
	Title     string
	Content   string
	UpdatedAt int64
	ID        int64
}

func (q *Queries) UpdateNote(ctx context.Context, arg UpdateNoteParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateNote, arg.Title, arg.Content, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteNote = `DELETE FROM notes WHERE id = ?`

func (q *Queries) DeleteNote(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteNote, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getPreference = `SELECT value FROM preferences WHERE key = ?`

func (q *Queries) GetPreference(ctx context.Context, key string) (string, error) {
	row := q.db.QueryRowContext(ctx, getPreference, key)
	var value string
	err := row.Scan(&value)
	return value, err
}

const setPreference = `INSERT INTO preferences (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`

func (q *Queries) SetPreference(ctx context.Context, key, value string) error {
	_, err := q.db.ExecContext(ctx, setPreference, key, value)
	return err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkEntry(s scanner, i *WorkEntry) error {
	return s.Scan(
		&i.ID,
		&i.Date,
		&i.StartTime,
		&i.EndTime,
		&i.BreakMinutes,
		&i.Task,
		&i.Salary,
		&i.PaidAmount,
		&i.IsPaid,
		&i.Notes,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
}
