package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"worklog/internal/core"
	"worklog/internal/services"
)

func newReportCommand(st *state) *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print earnings statistics grouped by week, month or year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, ok := services.ParsePeriod(by)
			if !ok {
				return fmt.Errorf("invalid --by %q: must be week, month or year", by)
			}

			app, err := NewApp(cmd.Context(), st.cfg, st.logger, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			view := services.NewStatsView(app.Stats)
			view.SelectPeriod(period)
			if err := view.Reload(cmd.Context()); err != nil {
				return err
			}
			return renderStats(cmd.OutOrStdout(), view.State())
		},
	}
	cmd.Flags().StringVar(&by, "by", string(services.PeriodWeek), "grouping: week, month or year")
	return cmd
}

// bucketLine is the printable part shared by week, month and year buckets.
type bucketLine struct {
	label   string
	entries int
	totals  core.Totals
}

func statsLines(s services.StatsState) []bucketLine {
	var lines []bucketLine
	switch s.Period {
	case services.PeriodMonth:
		for _, m := range s.Stats.Months {
			lines = append(lines, bucketLine{m.Label, len(m.Entries), m.Totals})
		}
	case services.PeriodYear:
		for _, y := range s.Stats.Years {
			lines = append(lines, bucketLine{y.Label, len(y.Entries), y.Totals})
		}
	default:
		for _, w := range s.Stats.Weeks {
			lines = append(lines, bucketLine{w.Label, len(w.Entries), w.Totals})
		}
	}
	return lines
}

func renderStats(w io.Writer, s services.StatsState) error {
	lines := statsLines(s)
	if len(lines) == 0 {
		_, err := fmt.Fprintln(w, "No entries yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PERIOD\tENTRIES\tTOTAL\tPAID\tUNPAID\tOPEN\tHOURS\tRATE\t")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%d\t%s\t%s\t\n",
			l.label,
			l.entries,
			core.FormatCurrency(l.totals.TotalSalary),
			core.FormatCurrency(l.totals.PaidSalary),
			core.FormatCurrency(l.totals.UnpaidSalary()),
			l.totals.UnpaidCount,
			hours(l.totals.TotalMinutes),
			l.totals.HourlyRate().StringFixed(0))
	}
	return tw.Flush()
}

func hours(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
