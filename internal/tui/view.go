package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/horizon/internal/board"
	"github.com/balkashynov/horizon/internal/models"
)

// View renders the TUI
func (m BoardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch {
	case m.board.FormOpen():
		return m.overlay(m.form.view(m.width))
	case m.mode == ModeLearnings:
		return m.overlay(m.renderLearnings())
	case m.mode == ModeConfirmDelete:
		return m.overlay(m.renderConfirmDelete())
	case m.showProgress:
		return m.overlay(m.renderProgress())
	}

	colWidth := (m.width - 2) / len(m.rows)
	var columns []string
	for i, t := range models.Types() {
		columns = append(columns, m.renderColumn(i, t, colWidth))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		m.renderDetails(m.width-2),
		m.renderStatusLine(),
		m.help.View(m.keys),
	)
}

func (m BoardModel) overlay(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m BoardModel) renderHeader() string {
	logo := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentMain)).Render("horizon")
	p := m.board.Progress()
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).
		Render(fmt.Sprintf("  %d/%d completed (%d%%)", p.Completed, p.Total, p.Percent()))
	return lipgloss.NewStyle().Padding(0, 1).Render(logo + summary)
}

func (m BoardModel) renderColumn(i int, t models.Type, width int) string {
	tasks := m.board.Column(t)
	done := m.board.BucketProgress(t).Completed

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(bucketColor(t)).Render(t.Label()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).
		Render(fmt.Sprintf("%d/%d done · %d todo", done, len(tasks), len(tasks)-done)))
	b.WriteString("\n\n")

	if len(tasks) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Italic(true).Render("No tasks"))
	}

	// Scroll so the selected card stays visible
	visible := max(3, m.height-18)
	start := 0
	if i == m.col && m.rows[i] >= visible {
		start = m.rows[i] - visible + 1
	}
	end := min(start+visible, len(tasks))
	for j := start; j < end; j++ {
		b.WriteString(m.renderCard(tasks[j], i == m.col && j == m.rows[i], width-4))
		b.WriteString("\n")
	}
	if end < len(tasks) {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).
			Render(fmt.Sprintf("  +%d more", len(tasks)-end)))
	}

	border := lipgloss.Color(ColorBorder)
	if i == m.col {
		border = lipgloss.Color(ColorAccentMain)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2).
		Render(b.String())
}

func (m BoardModel) renderCard(task models.Task, selected bool, width int) string {
	mark := "○"
	if task.IsCompleted() {
		mark = "✓"
	}
	mark = lipgloss.NewStyle().Foreground(statusColor(task.Status)).Render(mark)
	title := truncate(task.Title, width-4)

	if selected {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorAccentBright)).
			Render(mark + " " + m.shimmer.Render(title))
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	if task.IsCompleted() {
		style = style.Foreground(lipgloss.Color(ColorDisabledText)).Strikethrough(true)
	}
	return " " + mark + " " + style.Render(title)
}

// renderDetails shows the selected card in full
func (m BoardModel) renderDetails(width int) string {
	task, ok := m.selected()
	if !ok {
		return ""
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).Render(task.Title))
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().Foreground(statusColor(task.Status)).Render(task.Status.Label()))
	b.WriteString(muted.Render(" · " + task.Type.Short() + " · " + shortID(task.ID)))
	b.WriteString("\n")

	if task.Description != "" {
		b.WriteString(muted.Render(task.Description))
		b.WriteString("\n")
	}
	if task.Content != "" {
		b.WriteString(muted.Render(task.Content))
		b.WriteString("\n")
	}
	if task.IsCompleted() {
		if task.Learnings != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render("Learnings: "))
			b.WriteString(task.Learnings)
		} else {
			b.WriteString(muted.Italic(true).Render("No learnings yet, press e to add them"))
		}
	} else {
		b.WriteString(muted.Italic(true).Render("Complete this task to record learnings"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Width(width).
		Render(b.String())
}

func (m BoardModel) renderStatusLine() string {
	var parts []string
	if n := m.board.Inflight(); n > 0 {
		parts = append(parts, m.spinner.View()+fmt.Sprintf(" syncing %d", n))
	}
	if err := m.board.Err(); err != nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).
			Render(fmt.Sprintf("last error: %v (%d failed)", err, m.board.Failures())))
	}
	if m.status != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render(m.status))
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(parts, "  "))
}

func (m BoardModel) renderLearnings() string {
	task, _ := m.board.Task(m.editingID)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentMain)).Render("Learnings"))
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render("  " + task.Title))
	b.WriteString("\n\n")
	b.WriteString(m.learnings.View())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).Render("ctrl+s save · esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(1, 2).
		Render(b.String())
}

func (m BoardModel) renderConfirmDelete() string {
	task, _ := m.board.Task(m.deletingID)
	text := fmt.Sprintf("Delete \"%s\"?\n\n", truncate(task.Title, 50)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Render("y confirm · any other key cancels")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorError)).
		Padding(1, 2).
		Render(text)
}

func (m BoardModel) renderProgress() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentMain)).Render("Progress"))
	b.WriteString("\n\n")

	for _, t := range models.Types() {
		c := m.board.BucketProgress(t)
		label := lipgloss.NewStyle().Foreground(bucketColor(t)).Width(10).Render(t.Short())
		b.WriteString(fmt.Sprintf("%s %s %d/%d\n", label, progressBar(c, 30), c.Completed, c.Total))
	}

	total := m.board.Progress()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%-10s %s %d%%", "Overall", progressBar(total, 30), total.Percent()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).Render("p close"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(1, 2).
		Render(b.String())
}

func progressBar(c board.Counts, width int) string {
	filled := 0
	if c.Total > 0 {
		filled = c.Completed * width / c.Total
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder)).Render(strings.Repeat("░", width-filled))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
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
