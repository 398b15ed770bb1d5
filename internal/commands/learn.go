package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/horizon/internal/board"
)

var learnCmd = &cobra.Command{
	Use:   "learn [task-id] [text]",
	Short: "Record learnings on a completed task",
	Long: `Record what you learned on a completed task. The text replaces any
previous learnings; pass an empty string to clear them.`,
	Args: cobra.MinimumNArgs(2),
	RunE: withBoard(func(ctx context.Context, b *board.Board, args []string) error {
		id, err := b.ResolveID(args[0])
		if err != nil {
			return err
		}
		task, _ := b.Task(id)
		if !task.IsCompleted() {
			return errors.New("complete this task first: horizon done " + shortID(id))
		}

		call, err := b.EditLearnings(id, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		if err := b.Run(ctx, call); err != nil {
			return fmt.Errorf("failed to save learnings: %w", err)
		}
		fmt.Printf("📝 Saved learnings for task %s: %s\n", shortID(id), task.Title)
		return nil
	}),
}
