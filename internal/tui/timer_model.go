package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mcapelli/chrono/internal/lifecycle"
	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/store"
)

// TimerModel is the TUI model for the live block timer.
type TimerModel struct {
	width  int
	height int

	store  *store.Store
	engine *lifecycle.Engine
	block  *models.TimeBlock

	elapsed time.Duration
	err     error

	// completed is set when the user finished the block from the timer;
	// detached means the user left with the timer still running.
	completed bool
	detached  bool
}

// timerTickMsg is sent every second to update the elapsed display
type timerTickMsg struct{}

// NewTimerModel creates a timer model for an already started block.
func NewTimerModel(st *store.Store, eng *lifecycle.Engine, block *models.TimeBlock) TimerModel {
	return TimerModel{
		store:   st,
		engine:  eng,
		block:   block,
		elapsed: eng.Elapsed(block, time.Now()),
	}
}

// Init starts the per-second tick.
func (m TimerModel) Init() tea.Cmd {
	return timerTick()
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.elapsed = m.engine.Elapsed(m.block, time.Now())
		if m.completed || m.detached {
			return m, nil
		}
		return m, timerTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "p", "P":
			m.err = m.togglePause()
			return m, nil
		case "c", "C":
			if err := m.engine.Complete(m.block); err != nil {
				m.err = err
				return m, nil
			}
			if err := m.store.SaveTransition(m.block); err != nil {
				m.err = err
				return m, nil
			}
			m.completed = true
			m.elapsed = m.engine.Elapsed(m.block, time.Now())
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			// Leave the TUI; the block keeps its current status.
			m.detached = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m TimerModel) togglePause() error {
	var err error
	switch m.block.Status {
	case models.StatusActive:
		err = m.engine.Pause(m.block)
	case models.StatusPaused:
		err = m.engine.Resume(m.block)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	return m.store.SaveTransition(m.block)
}

// View renders the timer panel.
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	panel := m.renderTimerPanel()
	helpBar := m.renderHelpBar()
	return lipgloss.JoinVertical(lipgloss.Left, panel, helpBar)
}

func (m TimerModel) renderTimerPanel() string {
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText))

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true)

	status := string(m.block.Status)
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain))
	switch m.block.Status {
	case models.StatusPaused:
		statusStyle = statusStyle.Foreground(lipgloss.Color(ColorWarning))
	case models.StatusCompleted:
		statusStyle = statusStyle.Foreground(lipgloss.Color(ColorSuccess))
		status = "completed ✔"
	}

	category := labelStyle.Render(string(m.block.Category))
	if info, ok := models.CategoryByID(m.block.Category); ok {
		category = lipgloss.NewStyle().Foreground(lipgloss.Color(info.Color)).Render(info.Name)
	}

	lines := []string{
		titleStyle.Render(m.block.Title),
		labelStyle.Render(fmt.Sprintf("%s – %s", m.block.StartTime, m.block.EndTime)) + "  " + category,
		"",
		clockStyle.Render(formatElapsed(m.elapsed)),
		statusStyle.Render(status),
	}
	if m.err != nil {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render(m.err.Error()))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m TimerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	return helpStyle.Render("  p pause/resume • c complete • q leave timer running")
}

// formatElapsed renders a duration as H:MM:SS, or M:SS under an hour.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
