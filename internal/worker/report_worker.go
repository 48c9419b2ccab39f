package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"worklog/internal/amqp"
	"worklog/internal/core"
	"worklog/internal/log"
	"worklog/internal/ports"
)

// MonthSource is the read side the worker exports from.
type MonthSource interface {
	Month(ctx context.Context, year, month int) (core.MonthStat, bool, error)
	Months(ctx context.Context) ([]core.MonthStat, error)
}

// ReportWorker keeps the external report in step with the entry store. Entry
// change messages refresh the touched month; a scheduled full export recovers
// from lost messages or downtime.
type ReportWorker struct {
	stats  MonthSource
	writer ports.ReportWriter
	logger *log.StructuredLogger
}

func NewReportWorker(stats MonthSource, writer ports.ReportWriter) *ReportWorker {
	logger := log.New(log.Config{Component: log.ComponentWorker, Handler: slog.Default().Handler()})
	return &ReportWorker{stats: stats, writer: writer, logger: log.NewStructuredLogger(logger)}
}

// HandleEntryChanged re-exports the month bucket named by msg. A month left
// without entries, e.g. after a delete, is written as an all-zero row.
func (w *ReportWorker) HandleEntryChanged(ctx context.Context, msg *amqp.EntryChangedMessage) error {
	slog.InfoContext(ctx, "Processing entry change message",
		"id", msg.ID,
		"action", msg.Action,
		"year", msg.Year,
		"month", msg.Month)

	return w.ExportMonth(ctx, msg.Year, msg.Month)
}

func (w *ReportWorker) ExportMonth(ctx context.Context, year, month int) error {
	m, ok, err := w.stats.Month(ctx, year, month)
	if err != nil {
		return fmt.Errorf("load month %s: %w", core.MonthLabel(year, month), err)
	}
	if !ok {
		m = core.MonthStat{Label: core.MonthLabel(year, month), Year: year, Month: month}
	}
	if err := w.writer.WriteMonth(ctx, m); err != nil {
		return fmt.Errorf("export month %s: %w", m.Label, err)
	}
	return nil
}

// ExportAll writes every month that has entries. It keeps going past failures
// and returns them joined.
func (w *ReportWorker) ExportAll(ctx context.Context) error {
	months, err := w.stats.Months(ctx)
	if err != nil {
		return fmt.Errorf("load months: %w", err)
	}

	var errs []error
	for _, m := range months {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.writer.WriteMonth(ctx, m); err != nil {
			w.logger.LogError(ctx, "Failed to export month", err, log.ComponentSheets, log.OpExport,
				log.NewFields().WithPeriod(m.Year, m.Month))
			errs = append(errs, fmt.Errorf("export month %s: %w", m.Label, err))
		}
	}

	slog.InfoContext(ctx, "Full report export completed",
		"months", len(months),
		"errors", len(errs))
	return errors.Join(errs...)
}

// Schedule runs ExportAll on spec (standard cron syntax or descriptors such as
// "@every 1h") until ctx is done. Overlapping runs are skipped.
func (w *ReportWorker) Schedule(ctx context.Context, spec string) (*cron.Cron, error) {
	logger := cronLogger{slog.Default().With("component", "worker")}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(spec, func() {
		if err := w.ExportAll(ctx); err != nil {
			slog.ErrorContext(ctx, "Scheduled export failed", "error", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid export schedule %q: %w", spec, err)
	}

	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return c, nil
}

// cronLogger routes cron's internal logging to slog.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(msg, append(keysAndValues, "error", err)...)
}
