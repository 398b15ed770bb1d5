package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/balkashynov/horizon/internal/board"
	"github.com/balkashynov/horizon/internal/models"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks by bucket",
	Long:    "List tasks grouped into Monthly Goals, Weekly Objectives and Daily Tasks",
	Args:    cobra.NoArgs,
	RunE: withBoard(func(ctx context.Context, b *board.Board, args []string) error {
		types := models.Types()
		if listType != "" {
			t, err := models.ParseType(listType)
			if err != nil {
				return err
			}
			types = []models.Type{t}
		}

		if listJSON {
			var out []models.Task
			for _, t := range types {
				out = append(out, b.Column(t)...)
			}
			if out == nil {
				out = []models.Task{}
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		if len(b.Tasks()) == 0 {
			fmt.Println("No tasks found. Use 'horizon add \"task title\"' to create your first task.")
			return nil
		}

		for _, t := range types {
			printColumn(t, b.Column(t), b.BucketProgress(t))
		}
		p := b.Progress()
		fmt.Printf("%d/%d completed (%d%%)\n", p.Completed, p.Total, p.Percent())
		return nil
	}),
}

var (
	listJSON bool
	listType string
)

func printColumn(t models.Type, tasks []models.Task, c board.Counts) {

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))

	fmt.Printf("%s %s\n", header.Render(t.Label()), muted.Render(fmt.Sprintf("(%d/%d, %d%%)", c.Completed, c.Total, c.Percent())))
	if len(tasks) == 0 {
		fmt.Println(muted.Render("  no tasks"))
	}
	for _, task := range tasks {
		mark := "○"
		if task.IsCompleted() {
			mark = doneStyle.Render("✓")
		}
		fmt.Printf("  %s %-8s %s\n", mark, shortID(task.ID), truncate(task.Title, 50))
		if task.IsCompleted() && task.Learnings != "" {
			fmt.Println(muted.Render("             ↳ " + strings.ReplaceAll(task.Learnings, "\n", " ")))
		}
	}
	fmt.Println()
}

// truncate shortens s to n runes, ending in "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "JSON output")
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "Only one bucket: monthly|weekly|daily")
}
