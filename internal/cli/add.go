package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/existflow/mandarina/internal/calendar"
	"github.com/existflow/mandarina/internal/logger"
	"github.com/existflow/mandarina/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Schedule a new task",
	Long: `Schedule a new task at a date and time.

Examples:
  mandarina add "Buy groceries"
  mandarina add "Dentist" --date 2025-03-15 --time "2:30 pm" -p high
  mandarina add "Standup" --time 09:15 --content "Room 4"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDate     string
	addTime     string
	addPriority string
	addContent  string
)

func init() {
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Date as yyyy-mm-dd (default today)")
	addCmd.Flags().StringVarP(&addTime, "time", "t", "09:00", "Time as HH:MM or h:mm am/pm")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "low", "Priority (low, medium, high)")
	addCmd.Flags().StringVarP(&addContent, "content", "c", "", "Longer description")
}

// buildDraft turns the add flags into a draft for owner
func buildDraft(title, date, clock, priority, content, owner string) (model.Draft, error) {
	d := calendar.Today()
	if date != "" {
		parsed, err := calendar.ParseDate(date)
		if err != nil {
			return model.Draft{}, err
		}
		d = parsed
	}

	hour, minute, err := calendar.ParseClock(clock)
	if err != nil {
		return model.Draft{}, err
	}

	p, err := model.ParsePriority(priority)
	if err != nil {
		return model.Draft{}, err
	}

	return model.Draft{
		Title:    title,
		Content:  content,
		Priority: p,
		Date:     d,
		Hour:     hour,
		Minute:   minute,
		OwnerID:  owner,
	}, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg := configFrom(cmd)
	draft, err := buildDraft(strings.Join(args, " "), addDate, addTime, addPriority, addContent, cfg.UserID)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	task, err := store.Insert(cmd.Context(), draft)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("task rejected: %s", verr.Reason)
		}
		logger.Error("Failed to add task", logger.F("error", err))
		return fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added: \"%s\" on %s at %s (%s) [%s]\n",
		task.Title, task.Date, task.Time(cfg.Format()), task.Priority, task.ID[:8])
	return nil
}
