package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db: tx,
	}
}

type WorkEntry struct {
	ID           int64
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

type Note struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt int64
	UpdatedAt int64
}
