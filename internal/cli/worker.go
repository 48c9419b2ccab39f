package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"worklog/internal/amqp"
	"worklog/internal/config"
	"worklog/internal/sheets/google"
	"worklog/internal/worker"
)

func newWorkerCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume entry changes and export monthly statistics to Google Sheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := SignalContext(cmd.Context())
			defer stop()
			return runWorker(ctx, st)
		},
	}
}

func runWorker(ctx context.Context, st *state) error {
	cfg, logger := st.cfg, st.logger
	if cfg.DataBackend != config.BackendSQLite {
		return errors.New("worker needs DATA_BACKEND=sqlite to read the server's data")
	}
	if cfg.AMQPURL == "" {
		return errors.New("worker needs AMQP_URL")
	}
	if !cfg.ExportEnabled() {
		return errors.New("worker needs GOOGLE_SPREADSHEET_ID")
	}

	// The server owns writes, so statistics are always recomputed here.
	app, err := NewApp(ctx, cfg, logger, appOptions{statsCache: false})
	if err != nil {
		return err
	}
	defer app.Close()

	writer, err := newReportWriter(ctx, cfg)
	if err != nil {
		return err
	}

	consumer, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("connect AMQP: %w", err)
	}
	defer consumer.Close()

	rw := worker.NewReportWorker(app.Stats, writer)

	logger.Info("Performing startup export")
	if err := rw.ExportAll(ctx); err != nil {
		logger.Error("Startup export failed", "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	if _, err := rw.Schedule(gctx, cfg.ExportSchedule); err != nil {
		return err
	}
	g.Go(func() error {
		err := consumer.ConsumeEntryChanged(gctx, rw.HandleEntryChanged)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	logger.Info("Worker started", "queue", cfg.AMQPQueue, "schedule", cfg.ExportSchedule)
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Worker stopped")
	return nil
}

func newReportWriter(ctx context.Context, cfg *config.Config) (*google.Client, error) {
	creds, err := google.LoadCredentials(cfg.GoogleServiceAccountJSON, cfg.GoogleServiceAccountFile)
	if err != nil {
		return nil, err
	}
	return google.New(ctx, google.Options{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		SheetName:       cfg.GoogleSheetName,
		CredentialsJSON: creds,
	})
}
