package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/balkashynov/horizon/internal/board"
	"github.com/balkashynov/horizon/internal/models"
)

var mvCmd = &cobra.Command{
	Use:   "mv [task-id] [monthly|weekly|daily] [index]",
	Short: "Move a task to another bucket",
	Long: `Move a task into a bucket at the given index (default 0, the top).
Indexes past the end of the bucket place the task last.

Examples:
  horizon mv 3f2a weekly
  horizon mv 3f2a daily 2`,
	Args: cobra.RangeArgs(2, 3),
	RunE: withBoard(func(ctx context.Context, b *board.Board, args []string) error {
		id, err := b.ResolveID(args[0])
		if err != nil {
			return err
		}
		typ, err := models.ParseType(args[1])
		if err != nil {
			return err
		}
		index := 0
		if len(args) == 3 {
			index, err = strconv.Atoi(args[2])
			if err != nil || index < 0 {
				return fmt.Errorf("invalid index '%s'", args[2])
			}
		}

		call, err := b.Recategorize(id, typ, index)
		if err != nil {
			return err
		}
		if call == nil {
			fmt.Println("Task is already there.")
			return nil
		}
		if err := b.Run(ctx, call); err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}

		task, _ := b.Task(id)
		fmt.Printf("📦 Moved task %s to %s (position %d): %s\n", shortID(id), typ.Label(), b.ColumnIndex(id), task.Title)
		return nil
	}),
}
