package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/horizon/internal/board"
	"github.com/balkashynov/horizon/internal/models"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldType
	fieldCount
)

// formModel is the new-task form. It mirrors its values into the board draft.
type formModel struct {
	inputs []textinput.Model
	typ    models.Type
	focus  int
	err    string
}

func newFormModel(d board.Draft) formModel {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Prompt = ""
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	}
	inputs[fieldTitle].Placeholder = "What needs doing?"
	inputs[fieldTitle].CharLimit = 200
	inputs[fieldTitle].SetValue(d.Title)
	inputs[fieldDescription].Placeholder = "Optional details"
	inputs[fieldDescription].SetValue(d.Description)
	inputs[fieldTitle].Focus()

	typ := d.Type
	if !typ.Valid() {
		typ = models.TypeMonthly
	}
	return formModel{inputs: inputs, typ: typ}
}

func (f formModel) draft() board.Draft {
	return board.Draft{
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDescription].Value(),
		Type:        f.typ,
	}
}

// setFocus moves focus to field i, wrapping around
func (f formModel) setFocus(i int) (formModel, tea.Cmd) {
	f.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return f, cmd
}

// update handles messages that stay inside the form. Submit and cancel are
// handled by the board model.
func (f formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			return f.setFocus(f.focus + 1)
		case "shift+tab", "up":
			return f.setFocus(f.focus - 1)
		}

		if f.focus == fieldType {
			switch msg.String() {
			case "left", "h":
				f.typ = f.typ.Prev()
			case "right", "l", " ":
				f.typ = f.typ.Next()
			case "m":
				f.typ = models.TypeMonthly
			case "w":
				f.typ = models.TypeWeekly
			case "d":
				f.typ = models.TypeDaily
			}
			return f, nil
		}
		f.err = ""
	}

	if f.focus == fieldType {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f formModel) view(width int) string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Width(13)
	active := label.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)

	row := func(i int, name, value string) string {
		l := label
		if f.focus == i {
			l = active
		}
		return l.Render(name) + value
	}

	var types []string
	for _, t := range models.Types() {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(ColorDisabledText))
		if t == f.typ {
			style = style.Foreground(lipgloss.Color(ColorPrimaryText)).Background(bucketColor(t)).Bold(true)
		}
		types = append(types, style.Render(t.Short()))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentMain)).Render("New task"))
	b.WriteString("\n\n")
	b.WriteString(row(fieldTitle, "Title", f.inputs[fieldTitle].View()))
	b.WriteString("\n")
	b.WriteString(row(fieldDescription, "Description", f.inputs[fieldDescription].View()))
	b.WriteString("\n")
	b.WriteString(row(fieldType, "Bucket", strings.Join(types, " ")))
	b.WriteString("\n\n")
	if f.err != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render(f.err))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).
		Render("tab next field · ←/→ bucket · enter create · esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(1, 2).
		Width(min(width-4, 70)).
		Render(b.String())
}
