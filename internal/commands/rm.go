package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/horizon/internal/board"
)

var rmCmd = &cobra.Command{
	Use:     "rm [task-id]",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: withBoard(func(ctx context.Context, b *board.Board, args []string) error {
		id, err := b.ResolveID(args[0])
		if err != nil {
			return err
		}
		task, _ := b.Task(id)

		call, err := b.DeleteTask(id)
		if err != nil {
			return err
		}
		if err := b.Run(ctx, call); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		fmt.Printf("🗑️  Deleted task %s: %s\n", shortID(id), task.Title)
		return nil
	}),
}
