// Package ui renders the interactive focus timer.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/perennial/grove/internal/domain/session"
	"github.com/perennial/grove/internal/domain/stats"
)

// statsPort is the slice of the stats service the timer view reads.
type statsPort interface {
	CurrentStreak(ctx context.Context) (int, error)
	TodaysTreeCount(ctx context.Context) (int, error)
	TotalFocusTime(ctx context.Context) (stats.FocusTime, error)
}

type tickMsg time.Time

type statsLoadedMsg struct {
	streak int
	today  int
	focus  stats.FocusTime
	err    error
}

type actionDoneMsg struct{ err error }

type keyMap struct {
	Start  key.Binding
	Pause  key.Binding
	Resume key.Binding
	Cancel key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Resume, k.Cancel, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Resume},
		{k.Cancel, k.Reset, k.Quit},
	}
}

var defaultKeys = keyMap{
	Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
	Pause:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
	Resume: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
	Cancel: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "give up")),
	Reset:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	clockStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).
			Padding(0, 2)
	treeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Padding(0, 2)
	stateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("108"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	frameStyle  = lipgloss.NewStyle().Padding(1, 3)
	legendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// treeArt maps each growth stage to its sprite.
var treeArt = map[int]string{
	1: "    .\n    |",
	2: "   \\|/\n    |",
	3: "   \\|/\n  --|--\n    |",
	4: "   ***\n  \\*|*/\n  --|--\n    |",
	5: "  *****\n ***|***\n  \\*|*/\n  --|--\n    |",
}

// Model is the bubbletea model for the focus timer.
type Model struct {
	engine *session.Engine
	stats  statsPort

	keys keyMap
	help help.Model

	prevState session.State
	streak    int
	today     int
	focus     stats.FocusTime
	errLine   string
	width     int
}

// New creates the timer model over a running engine.
func New(engine *session.Engine, statsSvc statsPort) Model {
	return Model{
		engine:    engine,
		stats:     statsSvc,
		keys:      defaultKeys,
		help:      help.New(),
		prevState: engine.State(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStats(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadStats() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		streak, err := m.stats.CurrentStreak(ctx)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		today, err := m.stats.TodaysTreeCount(ctx)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		focus, err := m.stats.TotalFocusTime(ctx)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		return statsLoadedMsg{streak: streak, today: today, focus: focus}
	}
}

func (m Model) act(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: fn(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		state := m.engine.State()
		cmds := []tea.Cmd{tick()}
		// A completion that happened since the last frame changes the
		// forest and the streak; reload them once.
		if state != m.prevState && state == session.StateCompleted {
			cmds = append(cmds, m.loadStats())
		}
		m.prevState = state
		return m, tea.Batch(cmds...)

	case statsLoadedMsg:
		if msg.err != nil {
			m.errLine = msg.err.Error()
			return m, nil
		}
		m.streak = msg.streak
		m.today = msg.today
		m.focus = msg.focus
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.errLine = msg.err.Error()
		} else {
			m.errLine = ""
		}
		return m, m.loadStats()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Start):
			return m, m.act(m.engine.Start)
		case key.Matches(msg, m.keys.Pause):
			return m, m.act(m.engine.Pause)
		case key.Matches(msg, m.keys.Resume):
			return m, m.act(m.engine.Resume)
		case key.Matches(msg, m.keys.Cancel):
			return m, m.act(m.engine.Cancel)
		case key.Matches(msg, m.keys.Reset):
			return m, m.act(func(context.Context) error { return m.engine.Reset() })
		}
	}
	return m, nil
}

func (m Model) View() string {
	remaining := m.engine.RemainingSeconds()
	stage := m.engine.CurrentStage()
	state := m.engine.State()

	var b []string
	b = append(b, titleStyle.Render("grove"))
	b = append(b, clockStyle.Render(fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)))
	b = append(b, treeStyle.Render(treeArt[stage]))
	b = append(b, stateStyle.Render(stateLine(state)))
	b = append(b, statsStyle.Render(fmt.Sprintf(
		"today %d · streak %d · total %s", m.today, m.streak, m.focus,
	)))
	if m.errLine != "" {
		b = append(b, errorStyle.Render(m.errLine))
	}
	b = append(b, legendStyle.Render(m.help.View(m.keys)))

	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, b...))
}

func stateLine(state session.State) string {
	switch state {
	case session.StateActive:
		return "focusing, stay planted"
	case session.StatePaused:
		return "paused"
	case session.StateCompleted:
		return "complete! your tree is fully grown"
	case session.StateAbandoned:
		return "abandoned, the tree withered"
	default:
		return "press s to plant a tree"
	}
}

// Run starts the timer UI and blocks until the user quits.
func Run(engine *session.Engine, statsSvc statsPort) error {
	program := tea.NewProgram(New(engine, statsSvc), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running timer ui: %w", err)
	}
	return nil
}
