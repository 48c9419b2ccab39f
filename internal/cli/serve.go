package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apphttp "worklog/internal/http"
	"worklog/internal/log"
	"worklog/internal/worker"
)

func newServeCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := SignalContext(cmd.Context())
			defer stop()
			return runServe(ctx, st)
		},
	}
}

func runServe(ctx context.Context, st *state) error {
	cfg, logger := st.cfg, st.logger

	app, err := NewApp(ctx, cfg, logger, appOptions{statsCache: true})
	if err != nil {
		return err
	}
	defer app.Close()

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Services{
		Entries:  app.Entries,
		Stats:    app.Stats,
		Notes:    app.Notes,
		Settings: app.Settings,
	}, logger.WithComponent(log.ComponentHTTP))

	g, gctx := errgroup.WithContext(ctx)

	// Without a broker the server exports on the schedule itself.
	if cfg.ExportEnabled() && cfg.AMQPURL == "" {
		writer, err := newReportWriter(ctx, cfg)
		if err != nil {
			return err
		}
		if _, err := worker.NewReportWorker(app.Stats, writer).Schedule(gctx, cfg.ExportSchedule); err != nil {
			return err
		}
		logger.Info("Scheduled report export", "schedule", cfg.ExportSchedule)
	}

	g.Go(func() error {
		logger.Info("Starting worklog server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
