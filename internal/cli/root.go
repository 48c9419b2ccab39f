package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"worklog/internal/config"
	"worklog/internal/log"
)

// state is filled by the root command before any subcommand runs.
type state struct {
	cfg    *config.Config
	logger *log.Logger
}

func NewRootCommand() *cobra.Command {
	st := &state{}
	root := &cobra.Command{
		Use:   "worklog",
		Short: "Timesheet and earnings tracker",
		Long: `worklog records work sessions, reconciles payments against them and
reports weekly, monthly and yearly earnings. Configuration is read from the
environment and an optional .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			LoadEnvFile()
			cfg, err := LoadAndValidateConfig()
			if err != nil {
				return err
			}
			st.cfg = cfg
			st.logger = SetupLogger(cfg, cmd.Name())
			return nil
		},
	}

	root.AddCommand(
		newServeCommand(st),
		newWorkerCommand(st),
		newReportCommand(st),
		newListCommand(st),
		newMigrateCommand(st),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
