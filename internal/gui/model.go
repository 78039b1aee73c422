// Package gui is the windowed front-end of the installer: an Install and an Exit
// button above a scrolling log of the checklist.
package gui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/temu-compare/extinstall/internal/extension"
	"github.com/temu-compare/extinstall/internal/installer"
)

const (
	defaultLogWidth  = 70
	defaultLogHeight = 15
)

type button int

const (
	buttonInstall button = iota
	buttonExit
)

// ContextFactory builds a fresh installation context that logs into log.
type ContextFactory func(log installer.Logger) (*installer.Context, error)

// stepDoneMsg carries the result and output of one checklist step.
type stepDoneMsg struct {
	index  int
	result installer.StepResult
	lines  []installer.Line
}

// Model is the bubbletea model of the graphical installer.
type Model struct {
	installer  *installer.Installer
	newContext ContextFactory

	steps   []installer.Step
	ctx     *installer.Context
	log     *installer.LineLogger
	running bool
	// runs counts completed or aborted install passes
	runs int

	focus    button
	viewport viewport.Model
	lines    []string
	width    int
}

// New returns a model that runs in's graphical checklist against contexts made
// by newContext.
func New(in *installer.Installer, newContext ContextFactory) *Model {
	vp := viewport.New(defaultLogWidth, defaultLogHeight)
	return &Model{
		installer:  in,
		newContext: newContext,
		steps:      in.Steps(installer.ModeGraphical),
		log:        &installer.LineLogger{},
		viewport:   vp,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 4
		if w > 100 {
			w = 100
		}
		if w < 30 {
			w = 30
		}
		h := msg.Height - 12
		if h < 5 {
			h = 5
		}
		m.viewport.Width = w
		m.viewport.Height = h
		m.refresh()
		return m, nil

	case stepDoneMsg:
		return m.handleStepDone(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "left", "right", "tab", "shift+tab", "h", "l":
		if m.focus == buttonInstall {
			m.focus = buttonExit
		} else {
			m.focus = buttonInstall
		}
		return m, nil

	case "enter", " ":
		if m.focus == buttonExit {
			return m, tea.Quit
		}
		return m, m.startInstall()

	case "up", "down", "pgup", "pgdown", "k", "j":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// startInstall begins a new pass from the first step. Presses while a pass is
// running are ignored.
func (m *Model) startInstall() tea.Cmd {
	if m.running {
		return nil
	}
	m.appendLines(installer.Line{Level: installer.LevelInfo, Text: "Starting installation..."})

	ctx, err := m.newContext(m.log)
	if err != nil {
		m.appendLines(installer.Line{Level: installer.LevelError, Text: err.Error()})
		m.runs++
		return nil
	}
	m.ctx = ctx
	m.running = true
	return m.runStep(0)
}

func (m *Model) runStep(index int) tea.Cmd {
	ctx, step, log := m.ctx, m.steps[index], m.log
	return func() tea.Msg {
		result := installer.RunStep(ctx, step)
		return stepDoneMsg{index: index, result: result, lines: log.Drain()}
	}
}

func (m *Model) handleStepDone(msg stepDoneMsg) (tea.Model, tea.Cmd) {
	m.appendLines(msg.lines...)

	if msg.result.Halts() {
		m.appendLines(installer.Line{
			Level: installer.LevelError,
			Text:  titleCase(msg.result.Failure()),
		})
		m.finish()
		return m, nil
	}

	if next := msg.index + 1; next < len(m.steps) {
		return m, m.runStep(next)
	}

	m.appendLines(
		installer.Line{Level: installer.LevelPlain, Text: ""},
		installer.Line{Level: installer.LevelSuccess, Text: "Installation completed!"},
		installer.Line{Level: installer.LevelPlain, Text: "Follow the steps shown in Chrome to complete the installation."},
	)
	m.finish()
	return m, nil
}

func (m *Model) finish() {
	m.running = false
	m.runs++
}

func (m *Model) appendLines(lines ...installer.Line) {
	for _, l := range lines {
		m.lines = append(m.lines, renderLine(l))
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func renderLine(l installer.Line) string {
	switch l.Level {
	case installer.LevelSuccess:
		return successStyle.Render("✔ " + l.Text)
	case installer.LevelError:
		return errorStyle.Render("✘ " + l.Text)
	case installer.LevelWarning:
		return warningStyle.Render("! " + l.Text)
	case installer.LevelInfo:
		return infoStyle.Render("• " + l.Text)
	default:
		return l.Text
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(extension.ExtensionName + " Extension"))
	b.WriteString("\n")
	b.WriteString(logBoxStyle.Render(m.viewport.View()))
	b.WriteString("\n")

	install, exit := buttonStyle, buttonStyle
	if m.focus == buttonInstall {
		install = installFocusedStyle
	} else {
		exit = exitFocusedStyle
	}
	label := "Install Extension"
	if m.running {
		label = "Installing..."
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, install.Render(label), exit.Render("Exit")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("←/→ select • enter press • ↑/↓ scroll log • q quit"))
	return b.String()
}

// Run shows the installer window until the user exits.
func Run(in *installer.Installer, newContext ContextFactory) error {
	p := tea.NewProgram(New(in, newContext), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
