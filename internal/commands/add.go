package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/horizon/internal/board"
	"github.com/balkashynov/horizon/internal/models"
	"github.com/balkashynov/horizon/internal/parser"
)

var addCmd = &cobra.Command{
	Use:   "add [task title]",
	Short: "Add a new task",
	Long: `Add a new task. New tasks start as todo in the Monthly bucket unless told otherwise.

Smart parsing syntax:
  @monthly @weekly @daily  - Bucket (short forms @m @w @d)
  +done                    - Mark completed right away

Examples:
  horizon add "Plan Q1"
  horizon add "Review notes @weekly" -d "from the retro"
  horizon add "Stand-up" -t daily`,
	Args: cobra.MinimumNArgs(1),
	RunE: withBoard(func(ctx context.Context, b *board.Board, args []string) error {
		parsed := parser.ParseTitle(strings.Join(args, " "))
		if len(parsed.Errors) > 0 {
			return fmt.Errorf("%s", strings.Join(parsed.Errors, ", "))
		}

		typ := parsed.Type
		if addType != "" {
			t, err := models.ParseType(addType)
			if err != nil {
				return err
			}
			typ = t
		}

		b.SetDraft(board.Draft{Title: parsed.Title, Description: addDescription, Type: typ})
		call, err := b.CreateTask()
		if err != nil {
			return err
		}
		before := len(b.Tasks())
		if err := b.Run(ctx, call); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		tasks := b.Tasks()
		if len(tasks) == before {
			return fmt.Errorf("failed to create task: empty response")
		}
		task := tasks[len(tasks)-1]

		if parsed.Done {
			call, err := b.ToggleStatus(task.ID)
			if err != nil {
				return err
			}
			if err := b.Run(ctx, call); err != nil {
				return fmt.Errorf("task created but could not be completed: %w", err)
			}
			task, _ = b.Task(task.ID)
		}

		fmt.Printf("✅ New task \"%s\" added to %s - ID: %s\n", task.Title, task.Type.Label(), shortID(task.ID))
		if task.IsCompleted() {
			fmt.Println("Status: completed")
		}
		return nil
	}),
}

var (
	addDescription string
	addType        string
)

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
	addCmd.Flags().StringVarP(&addType, "type", "t", "", "Bucket: monthly|weekly|daily")
}
