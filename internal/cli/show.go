package cli

import (
	"fmt"
	"io"

	"github.com/existflow/mandarina/internal/calendar"
	"github.com/existflow/mandarina/internal/model"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show a task in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func printDetail(w io.Writer, t model.Task, f calendar.HourFormat) {
	status := "[ ]"
	if t.IsCompleted() {
		status = "[x]"
	}
	fmt.Fprintf(w, "%s %s\n", status, t.Title)
	fmt.Fprintf(w, "  ID:       %s\n", t.ID)
	fmt.Fprintf(w, "  When:     %s %s at %s\n", t.Date.Time().Weekday().String()[:3], t.Date, t.Time(f))
	fmt.Fprintf(w, "  Priority: %s\n", t.Priority)
	fmt.Fprintf(w, "  Status:   %s\n", t.Status)
	fmt.Fprintf(w, "  Created:  %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04"))
	if t.Content != "" {
		fmt.Fprintf(w, "\n  %s\n", t.Content)
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := configFrom(cmd)
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	task, err := store.GetByPrefix(cmd.Context(), args[0])
	if err != nil {
		return lookupError(args[0], err)
	}
	printDetail(cmd.OutOrStdout(), task, cfg.Format())
	return nil
}
