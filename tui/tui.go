// ABOUTME: Terminal user interface using bubbletea
// ABOUTME: Interactive dashboard with task completion and streak display
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kindling-crm/kindling/dashboard"
)

// Model is the dashboard TUI model.
type Model struct {
	svc     *dashboard.Service
	data    *dashboard.Data
	loading bool
	spinner spinner.Model
	cursor  int
	status  string
	err     error

	width  int
	height int
}

type loadedMsg struct {
	data *dashboard.Data
	err  error
}

type taskCompletedMsg struct {
	streak string
	err    error
}

// NewModel creates the dashboard model. A cached snapshot, when present,
// paints the first frame while the real load runs.
func NewModel(svc *dashboard.Service) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return Model{
		svc:     svc,
		data:    svc.CachedSnapshot(),
		loading: true,
		spinner: s,
		width:   80,
		height:  24,
	}
}

// Run starts the interactive dashboard.
func Run(svc *dashboard.Service) error {
	p := tea.NewProgram(NewModel(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		data, err := m.svc.Load(context.Background())
		return loadedMsg{data: data, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.data = msg.data
		m.err = nil
		if m.cursor >= len(m.data.Tasks) {
			m.cursor = 0
		}
		return m, nil

	case taskCompletedMsg:
		if msg.err != nil {
			m.status = "Could not complete task"
			return m, nil
		}
		m.status = msg.streak
		m.loading = true
		return m, m.loadCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		m.loading = true
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())

	case "g":
		m.loading = true
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			if _, err := m.svc.GenerateDailyTasks(context.Background()); err != nil {
				return loadedMsg{err: err}
			}
			data, err := m.svc.Load(context.Background())
			return loadedMsg{data: data, err: err}
		})

	case "j", "down":
		if m.data != nil && m.cursor < len(m.data.Tasks)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "enter", " ":
		return m.completeSelected()
	}
	return m, nil
}

func (m Model) completeSelected() (tea.Model, tea.Cmd) {
	if m.data == nil || m.cursor >= len(m.data.Tasks) {
		return m, nil
	}
	task := m.data.Tasks[m.cursor]
	if task.Completed {
		m.status = "Already done"
		return m, nil
	}
	return m, func() tea.Msg {
		streak, err := m.svc.CompleteTask(context.Background(), task.ID)
		if err != nil {
			return taskCompletedMsg{err: err}
		}
		return taskCompletedMsg{streak: streakLine(streak)}
	}
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208")).
			MarginBottom(1)

	scoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("114"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	warmStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	coolingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	coldStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)
