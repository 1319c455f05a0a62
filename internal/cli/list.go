package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/existflow/mandarina/internal/calendar"
	"github.com/existflow/mandarina/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List a month of tasks",
	Long: `List the tasks scheduled in one month, grouped by day.

Examples:
  mandarina list
  mandarina list --month 2025-03
  mandarina list --pending`,
	RunE: runList,
}

var (
	listMonth   string
	listPending bool
)

func init() {
	listCmd.Flags().StringVarP(&listMonth, "month", "m", "", "Month as yyyy-mm (default current month)")
	listCmd.Flags().BoolVar(&listPending, "pending", false, "Hide completed tasks")
}

// parseMonth reads "yyyy-mm"; empty means the month of today
func parseMonth(s string, today calendar.Date) (int, time.Month, error) {
	if s == "" {
		return today.Year, today.Month, nil
	}
	d, err := calendar.ParseDate(s + "-01")
	if err != nil {
		return 0, 0, fmt.Errorf("month %q: want yyyy-mm", s)
	}
	return d.Year, d.Month, nil
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := configFrom(cmd)
	year, month, err := parseMonth(listMonth, calendar.Today())
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	tasks, err := store.ListByMonth(cmd.Context(), cfg.UserID, year, month)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	if listPending {
		kept := tasks[:0]
		for _, t := range tasks {
			if !t.IsCompleted() {
				kept = append(kept, t)
			}
		}
		tasks = kept
	}

	if len(tasks) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing scheduled in %s %d. Add one with: mandarina add \"Your task\"\n", month, year)
		return nil
	}
	printTasksByDay(cmd.OutOrStdout(), tasks, cfg.Format())
	return nil
}

// printTasksByDay prints tasks, already ordered by date and time, under a heading per day
func printTasksByDay(w io.Writer, tasks []model.Task, f calendar.HourFormat) {
	var current calendar.Date
	for _, t := range tasks {
		if t.Date != current {
			current = t.Date
			pending := 0
			for _, o := range tasks {
				if o.Date == current && !o.IsCompleted() {
					pending++
				}
			}
			fmt.Fprintf(w, "\n📅 %s %s (%d pending)\n", current.Time().Weekday().String()[:3], current, pending)
			fmt.Fprintln(w, strings.Repeat("─", 60))
		}
		printTask(w, t, f)
	}
	fmt.Fprintln(w)
}

func printTask(w io.Writer, t model.Task, f calendar.HourFormat) {
	icon := "[ ]"
	switch {
	case t.IsCompleted():
		icon = "[x]"
	case t.IsOverdue(time.Now()):
		icon = "[!]"
	}

	priority := "  " + t.Priority.String()
	if t.Priority == model.PriorityHigh {
		priority = "▲ " + t.Priority.String()
	}

	title := t.Title
	if r := []rune(title); len(r) > 36 {
		title = string(r[:33]) + "..."
	}

	fmt.Fprintf(w, "  %s  %-8s  %8s  %-36s  %s\n", icon, t.ID[:8], t.Time(f), title, priority)
}
