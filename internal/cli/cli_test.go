package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"worklog/internal/core"
	"worklog/internal/memory"
	"worklog/internal/services"
)

func sampleEntries() []core.WorkEntry {
	return []core.WorkEntry{
		{
			ID: 1, Date: core.NewDate(2025, 3, 10),
			StartTime: core.NewTimeOfDay(9, 0), EndTime: core.NewTimeOfDay(10, 30),
			Task: "Tutoring", Salary: 300000, PaidAmount: 300000, IsPaid: true,
		},
		{
			ID: 2, Date: core.NewDate(2025, 3, 12),
			StartTime: core.NewTimeOfDay(14, 0), EndTime: core.NewTimeOfDay(15, 0),
			Task: "Translation", Salary: 200000,
		},
	}
}

func TestRenderList(t *testing.T) {
	entries := services.NewEntryService(memory.NewWithEntries(sampleEntries()), nil)
	view := services.NewListView(entries)
	view.SetFilter(core.FilterUnpaid)
	if err := view.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	var buf bytes.Buffer
	if err := renderList(&buf, view.State()); err != nil {
		t.Fatalf("renderList: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Translation", "200.000 VNĐ", "UNPAID", "1 of 2 entries (paid 1, unpaid 1, partial 0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Tutoring") {
		t.Errorf("paid entry not filtered out:\n%s", out)
	}
}

func TestRenderStats(t *testing.T) {
	entries := services.NewEntryService(memory.NewWithEntries(sampleEntries()), nil)
	stats := services.NewStatisticsService(entries, nil)

	tests := []struct {
		period services.Period
		label  string
	}{
		{services.PeriodWeek, "2025-W11"},
		{services.PeriodMonth, "2025-03"},
		{services.PeriodYear, "2025"},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			view := services.NewStatsView(stats)
			view.SelectPeriod(tt.period)
			if err := view.Reload(context.Background()); err != nil {
				t.Fatalf("Reload: %v", err)
			}
			var buf bytes.Buffer
			if err := renderStats(&buf, view.State()); err != nil {
				t.Fatalf("renderStats: %v", err)
			}
			out := buf.String()
			for _, want := range []string{tt.label, "500.000 VNĐ", "300.000 VNĐ", "2:30"} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRenderStatsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := renderStats(&buf, services.StatsState{Period: services.PeriodMonth}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "No entries yet.\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestHours(t *testing.T) {
	tests := map[int]string{0: "0:00", 59: "0:59", 90: "1:30", 600: "10:00"}
	for in, want := range tests {
		if got := hours(in); got != want {
			t.Errorf("hours(%d) = %q, want %q", in, got, want)
		}
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("AMQP_URL", "")
	t.Setenv("PORT", "8081")
	t.Setenv("LOG_LEVEL", "error")

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListCommandOnEmptyBackend(t *testing.T) {
	out, err := runCLI(t, "list", "--filter", "paid")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No entries match (0 of 0).") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestReportCommandOnEmptyBackend(t *testing.T) {
	out, err := runCLI(t, "report", "--by", "year")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, "No entries yet.") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCommandFlagErrors(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"list", "--filter", "maybe"}, "invalid --filter"},
		{[]string{"list", "--sort", "random"}, "invalid --sort"},
		{[]string{"report", "--by", "decade"}, "invalid --by"},
		{[]string{"migrate"}, "DATA_BACKEND=sqlite"},
		{[]string{"worker"}, "DATA_BACKEND=sqlite"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}
