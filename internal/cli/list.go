package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"worklog/internal/core"
	"worklog/internal/services"
)

func newListCommand(st *state) *cobra.Command {
	var search, filter, sortKey string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work entries with search, status filter and sort order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := core.ParseFilter(filter)
			if !ok {
				return fmt.Errorf("invalid --filter %q: must be all, paid, unpaid or partial", filter)
			}
			s, ok := core.ParseSort(sortKey)
			if !ok {
				return fmt.Errorf("invalid --sort %q", sortKey)
			}

			app, err := NewApp(cmd.Context(), st.cfg, st.logger, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			view := services.NewListView(app.Entries)
			view.SetSearch(search)
			view.SetFilter(f)
			view.SetSort(s)
			if err := view.Reload(cmd.Context()); err != nil {
				return err
			}
			return renderList(cmd.OutOrStdout(), view.State())
		},
	}
	cmd.Flags().StringVarP(&search, "q", "q", "", "case-insensitive search in task and notes")
	cmd.Flags().StringVar(&filter, "filter", string(core.FilterAll), "payment status: all, paid, unpaid, partial")
	cmd.Flags().StringVar(&sortKey, "sort", string(core.SortDateDesc), "date_desc, date_asc, salary_desc, salary_asc, name_asc, name_desc")
	return cmd
}

func renderList(w io.Writer, s services.ListState) error {
	if len(s.Entries) == 0 {
		_, err := fmt.Fprintf(w, "No entries match (0 of %d).\n", s.Total)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tTASK\tSALARY\tPAID\tSTATUS")
	for _, e := range s.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%s-%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Date,
			e.StartTime,
			e.EndTime,
			e.Task,
			core.FormatCurrency(e.Salary),
			core.FormatCurrency(e.PaidAmount),
			core.StatusOf(e))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d of %d entries (paid %d, unpaid %d, partial %d)\n",
		len(s.Entries), s.Total,
		s.Counts[core.StatusPaid], s.Counts[core.StatusUnpaid], s.Counts[core.StatusPartial])
	return err
}
