package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/horizon/internal/board"
)

// RunBoard starts the interactive task board
func RunBoard(b *board.Board, opts Options) error {
	p := tea.NewProgram(NewBoardModel(b, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	// Print a summary after the TUI closes
	progress := b.Progress()
	fmt.Printf("✅ %d/%d tasks completed (%d%%)\n", progress.Completed, progress.Total, progress.Percent())
	if n := b.Inflight(); n > 0 {
		fmt.Printf("⚠️  %d change(s) were still syncing when the board closed\n", n)
	}
	if err := b.Err(); err != nil {
		fmt.Printf("❌ Last error: %v\n", err)
	}
	return nil
}
