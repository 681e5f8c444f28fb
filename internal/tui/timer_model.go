package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/focustache/focustache/internal/models"
	"github.com/focustache/focustache/internal/session"
)

// FocusTimerModel is the TUI model driving one focus session. It is the
// client in the session protocol: a tick every second reports the new
// elapsed time to the engine, which owns all state transitions.
type FocusTimerModel struct {
	engine  *session.Engine
	userID  string
	session *models.FocusSession

	width  int
	height int

	cycleBar progress.Model

	// Set when the engine auto-completes the session at the last cycle
	autoCompleted bool
	// Break length reported by the engine after a completed work cycle
	lastBreakSeconds int

	stopping   bool // user pressed S, complete on exit
	cancelling bool // user pressed C, cancel on exit
	exiting    bool // user left the session running
	err        error
}

// timerTickMsg is sent every second to report elapsed time
type timerTickMsg struct{}

// NewFocusTimerModel creates the timer TUI model for an active session
func NewFocusTimerModel(engine *session.Engine, userID string, sess *models.FocusSession) FocusTimerModel {
	bar := progress.New(
		progress.WithGradient(ColorAccentMain, ColorAccentBright),
		progress.WithoutPercentage(),
	)
	return FocusTimerModel{
		engine:   engine,
		userID:   userID,
		session:  sess,
		cycleBar: bar,
	}
}

// Init starts the one-second tick loop
func (m FocusTimerModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

// Update handles messages
func (m FocusTimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if m.stopping || m.cancelling || m.exiting || m.autoCompleted {
			return m, nil
		}

		if m.session.TimerRunning {
			result, err := m.engine.UpdateElapsed(m.userID, m.session.ID, m.session.ElapsedSeconds+1)
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.session = result.Session
			if result.NextBreakSeconds > 0 {
				m.lastBreakSeconds = result.NextBreakSeconds
			}
			if result.SessionCompleted {
				m.autoCompleted = true
				return m, tea.Quit
			}
		}
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := m.width - 24
		if barWidth > 60 {
			barWidth = 60
		}
		if barWidth > 0 {
			m.cycleBar.Width = barWidth
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "p", "P":
			action := session.TimerActionPause
			if m.session.TimerPaused {
				action = session.TimerActionResume
			}
			updated, err := m.engine.SetTimer(m.userID, m.session.ID, action)
			if err == nil {
				m.session = updated
			}
			return m, nil
		case "s", "S":
			m.stopping = true
			return m, tea.Quit
		case "c", "C":
			m.cancelling = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.exiting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the timer
func (m FocusTimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var components []string

	header := "⏱  FOCUS SESSION"
	if m.session.PomodoroEnabled {
		header = "🍅  CHRONODORO SESSION"
	}
	components = append(components, lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(header))

	title := fmt.Sprintf("#%d %s", m.session.TaskID, m.session.Task.Title)
	components = append(components, lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(title))

	components = append(components, m.renderClock())

	if m.session.PomodoroEnabled {
		components = append(components, m.renderCyclePanel())
	} else if m.session.PlannedSeconds > 0 {
		components = append(components, m.renderPlannedPanel())
	}

	info := fmt.Sprintf("Started at %s · %d pauses · efficiency %d%%",
		m.session.StartedAt.Format("15:04:05"),
		m.session.PauseCount,
		m.session.EfficiencyPercent)
	components = append(components, lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(info))

	content := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderHelpBar())
}

// renderClock renders the elapsed time, coloured by timer state
func (m FocusTimerModel) renderClock() string {
	elapsed := m.session.ElapsedSeconds
	hours := elapsed / 3600
	minutes := (elapsed % 3600) / 60
	seconds := elapsed % 60

	var clock string
	if hours > 0 {
		clock = fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	} else {
		clock = fmt.Sprintf("%02d:%02d", minutes, seconds)
	}

	color := ColorAccentBright
	suffix := ""
	if m.session.TimerPaused {
		color = ColorWarning
		suffix = "  ⏸ PAUSED"
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(clock + suffix)
}

// renderCyclePanel renders Pomodoro cycle state and the cycle progress bar
func (m FocusTimerModel) renderCyclePanel() string {
	s := m.session

	kindLabel := "WORK"
	kindColor := ColorAccentBright
	if s.CurrentCycleKind == models.CycleKindBreak {
		kindLabel = "BREAK"
		kindColor = ColorWarning
	}

	workCycle := s.CyclesElapsed/2 + 1
	if workCycle > s.TotalCyclesPlanned {
		workCycle = s.TotalCyclesPlanned
	}

	line := fmt.Sprintf("%s · cycle %d/%d · %s left",
		lipgloss.NewStyle().Foreground(lipgloss.Color(kindColor)).Bold(true).Render(kindLabel),
		workCycle, s.TotalCyclesPlanned,
		formatShort(session.RemainingInCycle(s)))

	bar := m.cycleBar.ViewAs(session.CycleProgressPercent(s) / 100)

	centered := lipgloss.NewStyle().Align(lipgloss.Center).Width(m.width)
	return centered.Render(line) + "\n" + centered.Render(bar)
}

// renderPlannedPanel renders progress toward the planned duration
func (m FocusTimerModel) renderPlannedPanel() string {
	s := m.session
	ratio := float64(s.ElapsedSeconds) / float64(s.PlannedSeconds)
	if ratio > 1 {
		ratio = 1
	}

	line := fmt.Sprintf("planned %s · %s left",
		formatShort(s.PlannedSeconds),
		formatShort(maxInt(0, s.PlannedSeconds-s.ElapsedSeconds)))

	bar := m.cycleBar.ViewAs(ratio)

	centered := lipgloss.NewStyle().Align(lipgloss.Center).Width(m.width)
	return centered.Render(line) + "\n" + centered.Render(bar)
}

// renderHelpBar renders the help bar at the bottom
func (m FocusTimerModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render("p pause/resume · s complete · c cancel · esc/q leave running")
}

// RunFocusTimer runs the timer TUI for an active session
func RunFocusTimer(engine *session.Engine, userID string, sess *models.FocusSession) error {
	model := NewFocusTimerModel(engine, userID, sess)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m := finalModel.(FocusTimerModel)
	if m.err != nil {
		return m.err
	}

	switch {
	case m.autoCompleted:
		fmt.Printf("🎉 All %d chronodoro cycles done! Session #%d completed automatically.\n",
			m.session.TotalCyclesPlanned, m.session.ID)
		fmt.Printf("📊 %s focused, efficiency %d%%\n",
			formatShort(m.session.ElapsedSeconds), m.session.EfficiencyPercent)

	case m.stopping:
		stopped, err := engine.Stop(userID, m.session.ID, session.StopActionComplete, "")
		if err != nil {
			return fmt.Errorf("failed to complete session: %w", err)
		}
		fmt.Printf("⏹️  Session #%d completed for task #%d\n", stopped.ID, stopped.TaskID)
		fmt.Printf("📊 %s focused, efficiency %d%%\n",
			formatShort(stopped.ElapsedSeconds), stopped.EfficiencyPercent)

	case m.cancelling:
		if _, err := engine.Stop(userID, m.session.ID, session.StopActionCancel, ""); err != nil {
			return fmt.Errorf("failed to cancel session: %w", err)
		}
		fmt.Printf("🚫 Session #%d cancelled\n", m.session.ID)

	case m.exiting:
		fmt.Printf("\n💡 Session #%d is still active for task #%d\n", m.session.ID, m.session.TaskID)
		fmt.Printf("   Use 'focustache status' to check it or 'focustache stop' to finish.\n")
	}

	return nil
}

// formatShort formats a second count in a human-readable way
func formatShort(seconds int) string {
	d := time.Duration(seconds) * time.Second
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.0fs", d.Seconds())
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
