package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/horizon/internal/board"
	"github.com/balkashynov/horizon/internal/logger"
	"github.com/balkashynov/horizon/internal/models"
)

// Mode is what currently receives key presses
type Mode int

const (
	ModeBoard Mode = iota
	ModeLearnings
	ModeConfirmDelete
)

// outcomeMsg carries a finished store request back into Update
type outcomeMsg struct {
	board.Outcome
}

// Options tunes the board program
type Options struct {
	// Timeout bounds each store request; zero means no extra bound.
	Timeout time.Duration
	Shimmer ShimmerConfig
}

// BoardModel is the bubbletea model for the three-column task board
type BoardModel struct {
	board   *board.Board
	ctx     context.Context
	timeout time.Duration

	width  int
	height int

	// Selection: focused column and the selected row in each column
	col  int
	rows []int

	mode         Mode
	form         formModel
	creating     bool
	learnings    textarea.Model
	editingID    string
	deletingID   string
	showProgress bool

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	shimmer *shimmer

	status string
}

// NewBoardModel creates the board TUI model around b
func NewBoardModel(b *board.Board, opts Options) BoardModel {
	ta := textarea.New()
	ta.Placeholder = "What did you learn?"
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetWidth(60)
	ta.SetHeight(6)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return BoardModel{
		board:     b,
		ctx:       context.Background(),
		timeout:   opts.Timeout,
		rows:      make([]int, len(models.Types())),
		learnings: ta,
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		shimmer:   newShimmer(opts.Shimmer),
	}
}

// Init loads the board and starts the animations
func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(m.run(m.board.Load()), m.spinner.Tick, m.shimmer.tick())
}

// run turns a board call into a command whose result comes back as outcomeMsg
func (m BoardModel) run(call board.Call) tea.Cmd {
	if call == nil {
		return nil
	}
	ctx, timeout := m.ctx, m.timeout
	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return outcomeMsg{call(ctx)}
	}
}

// act runs call, or reports err in the status line
func (m *BoardModel) act(call board.Call, err error) tea.Cmd {
	if err != nil {
		m.status = err.Error()
		return nil
	}
	return m.run(call)
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.learnings.SetWidth(min(msg.Width-10, 70))
		return m, nil

	case outcomeMsg:
		return m.applyOutcome(msg.Outcome), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case shimmerTickMsg:
		if task, ok := m.selected(); ok {
			m.shimmer.advance(len([]rune(task.Title)))
		}
		return m, m.shimmer.tick()

	case tea.KeyMsg:
		if m.board.FormOpen() {
			return m.updateForm(msg)
		}
		switch m.mode {
		case ModeLearnings:
			return m.updateLearnings(msg)
		case ModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateBoard(msg)
		}
	}

	// Cursor blinks and the like go to whichever input is active
	var cmd tea.Cmd
	switch {
	case m.board.FormOpen():
		m.form, cmd = m.form.update(msg)
	case m.mode == ModeLearnings:
		m.learnings, cmd = m.learnings.Update(msg)
	}
	return m, cmd
}

func (m BoardModel) applyOutcome(o board.Outcome) BoardModel {
	m.board.Apply(o)

	if o.Op == board.OpCreate {
		m.creating = false
	}
	if o.Failed() {
		logger.Error("%s request failed: %v", o.Op, o.Err)
		if o.Op == board.OpCreate && m.board.FormOpen() {
			m.form.err = "Could not create task: " + o.Err.Error()
		}
		m.clamp()
		return m
	}

	switch o.Op {
	case board.OpLoad:
		logger.Info("board loaded with %d tasks", len(o.Tasks))
		m.status = fmt.Sprintf("Loaded %d tasks", len(o.Tasks))
	case board.OpCreate:
		if o.Task != nil {
			m.col = o.Task.Type.Index()
			m.rows[m.col] = len(m.board.Column(o.Task.Type)) - 1
			m.shimmer.Reset()
			m.status = fmt.Sprintf("Created \"%s\"", o.Task.Title)
		}
	}
	m.clamp()
	return m
}

func (m BoardModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	task, ok := m.selected()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Progress):
		m.showProgress = !m.showProgress

	case key.Matches(msg, m.keys.Reload):
		return m, m.run(m.board.Load())

	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
			m.shimmer.Reset()
		}

	case key.Matches(msg, m.keys.Right):
		if m.col < len(m.rows)-1 {
			m.col++
			m.shimmer.Reset()
		}

	case key.Matches(msg, m.keys.Up):
		if m.rows[m.col] > 0 {
			m.rows[m.col]--
			m.shimmer.Reset()
		}

	case key.Matches(msg, m.keys.Down):
		m.rows[m.col]++
		m.shimmer.Reset()

	case key.Matches(msg, m.keys.New):
		m.board.OpenForm()
		m.form = newFormModel(m.board.Draft())
		return m, textinput.Blink

	case !ok:
		// Everything below needs a selected card

	case key.Matches(msg, m.keys.Toggle):
		cmd := m.act(m.board.ToggleStatus(task.ID))
		return m, cmd

	case key.Matches(msg, m.keys.MovePrev), key.Matches(msg, m.keys.MoveNext):
		dest := task.Type.Next()
		if key.Matches(msg, m.keys.MovePrev) {
			dest = task.Type.Prev()
		}
		cmd := m.act(m.board.Recategorize(task.ID, dest, 0))
		m.col = dest.Index()
		m.rows[m.col] = 0
		return m, cmd

	case key.Matches(msg, m.keys.MoveUp):
		row := m.rows[m.col]
		if row == 0 {
			break
		}
		cmd := m.act(m.board.Recategorize(task.ID, task.Type, row-1))
		m.rows[m.col] = row - 1
		return m, cmd

	case key.Matches(msg, m.keys.MoveDown):
		row := m.rows[m.col]
		if row >= len(m.board.Column(task.Type))-1 {
			break
		}
		cmd := m.act(m.board.Recategorize(task.ID, task.Type, row+1))
		m.rows[m.col] = row + 1
		return m, cmd

	case key.Matches(msg, m.keys.Learn):
		if !task.IsCompleted() {
			m.status = "Complete this task before recording learnings"
			break
		}
		m.mode = ModeLearnings
		m.editingID = task.ID
		m.learnings.SetValue(task.Learnings)
		return m, m.learnings.Focus()

	case key.Matches(msg, m.keys.Delete):
		m.mode = ModeConfirmDelete
		m.deletingID = task.ID
	}

	m.clamp()
	return m, nil
}

func (m BoardModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.board.CloseForm()
		m.creating = false
		return m, nil

	case "enter":
		if m.creating {
			return m, nil
		}
		m.board.SetDraft(m.form.draft())
		call, err := m.board.CreateTask()
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.creating = true
		return m, m.run(call)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m BoardModel) updateLearnings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeBoard
		m.learnings.Blur()
		return m, nil

	case "ctrl+s":
		m.mode = ModeBoard
		m.learnings.Blur()
		cmd := m.act(m.board.EditLearnings(m.editingID, m.learnings.Value()))
		return m, cmd
	}

	var cmd tea.Cmd
	m.learnings, cmd = m.learnings.Update(msg)
	return m, cmd
}

func (m BoardModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeBoard
	switch msg.String() {
	case "y", "Y", "enter":
		cmd := m.act(m.board.DeleteTask(m.deletingID))
		m.clamp()
		return m, cmd
	}
	m.status = "Delete cancelled"
	return m, nil
}

// selected returns the card under the cursor
func (m BoardModel) selected() (models.Task, bool) {
	tasks := m.board.Column(models.Types()[m.col])
	row := m.rows[m.col]
	if row < 0 || row >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[row], true
}

// clamp keeps every row selection inside its column
func (m *BoardModel) clamp() {
	for i, t := range models.Types() {
		n := len(m.board.Column(t))
		if m.rows[i] >= n {
			m.rows[i] = n - 1
		}
		if m.rows[i] < 0 {
			m.rows[i] = 0
		}
	}
}
