package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/horizon/internal/board"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task between todo and completed",
	Long: `Toggle a task between todo and completed. Running it twice restores the task.
The id may be shortened to any unique prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: withBoard(func(ctx context.Context, b *board.Board, args []string) error {
		id, err := b.ResolveID(args[0])
		if err != nil {
			return err
		}
		call, err := b.ToggleStatus(id)
		if err != nil {
			return err
		}
		if err := b.Run(ctx, call); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		task, _ := b.Task(id)
		if task.IsCompleted() {
			fmt.Printf("✅ Marked task %s as done: %s\n", shortID(id), task.Title)
			fmt.Printf("Record what you learned with: horizon learn %s \"...\"\n", shortID(id))
		} else {
			fmt.Printf("↩️  Marked task %s back to todo: %s\n", shortID(id), task.Title)
		}
		return nil
	}),
}
