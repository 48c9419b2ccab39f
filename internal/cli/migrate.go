package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"worklog/internal/config"
	"worklog/internal/storage"
)

func newMigrateCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQLite schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if st.cfg.DataBackend != config.BackendSQLite {
				return errors.New("migrate needs DATA_BACKEND=sqlite")
			}
			version, err := storage.RunMigrations(st.cfg.SQLiteDBPath)
			if err != nil {
				return err
			}
			st.logger.Info("Migrations applied", "db", st.cfg.SQLiteDBPath, "version", version)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return err
		},
	}
}
