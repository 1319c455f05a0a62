package cli

import (
	"errors"
	"fmt"

	"github.com/existflow/mandarina/internal/db"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as completed",
	Long: `Mark a task as completed. Any unique prefix of the id works.

Examples:
  mandarina done 3f2a9c1e`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

// lookupError turns store lookup errors into messages for the id the user typed
func lookupError(id string, err error) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return fmt.Errorf("task not found: %s", id)
	case errors.Is(err, db.ErrAmbiguousID):
		return fmt.Errorf("id %q matches more than one task, type more of it", id)
	}
	return err
}

func runDone(cmd *cobra.Command, args []string) error {
	store, err := openStore(configFrom(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	task, err := store.GetByPrefix(ctx, args[0])
	if err != nil {
		return lookupError(args[0], err)
	}

	if task.IsCompleted() {
		fmt.Fprintf(cmd.OutOrStdout(), "Already completed: \"%s\"\n", task.Title)
		return nil
	}

	if _, err := store.Complete(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Completed: \"%s\"\n", task.Title)
	return nil
}
