package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/handheld/internal/config"
	"github.com/vovakirdan/handheld/internal/core"
	"github.com/vovakirdan/handheld/internal/host"
	"github.com/vovakirdan/handheld/internal/platform/shell"
	"github.com/vovakirdan/handheld/internal/registry"
)

// Model is the Bubble Tea model wrapping one handheld host.
//
// Terminals only report key presses, so each press holds its button down for
// a fixed time. Auto-repeat of a held key keeps extending the hold.
type Model struct {
	host      *host.Host
	shell     *shell.Controller
	keys      KeyMap
	help      help.Model
	renderer  *lipgloss.Renderer
	frameRate int
	hold      time.Duration
	held      [core.ButtonCount]time.Time
	now       func() time.Time
	screen    string
	quitting  bool
}

// NewModel creates a model driving h. The host is powered on by Init.
func NewModel(h *host.Host, cfg config.Config, games []registry.GameInfo) Model {
	hp := help.New()
	hp.ShowAll = false

	return Model{
		host:      h,
		shell:     shell.New(h, games),
		keys:      DefaultKeyMap(),
		help:      hp,
		renderer:  lipgloss.DefaultRenderer(),
		frameRate: cfg.FrameRate,
		hold:      time.Duration(cfg.TUI.KeyHoldMs) * time.Millisecond,
		now:       time.Now,
	}
}

// WithRenderer returns a copy of the model drawing through r, used for SSH
// sessions whose color profile differs from the server's terminal.
func (m Model) WithRenderer(r *lipgloss.Renderer) Model {
	m.renderer = r
	return m
}

// Host returns the wrapped host.
func (m Model) Host() *host.Host {
	return m.host
}

// Init powers the handheld on and starts the frame loop.
func (m Model) Init() tea.Cmd {
	m.host.SetPower(true)
	return tickCmd(m.frameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.host.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Power):
		m.releaseAll()
		m.shell.TogglePower()
		return m, nil

	case key.Matches(msg, m.keys.NextGame):
		m.releaseAll()
		m.shell.NextGame()
		return m, nil
	}

	if slot, ok := m.keys.GameSlot(msg); ok {
		m.releaseAll()
		m.shell.SelectSlot(slot)
		return m, nil
	}

	if b, ok := m.keys.Button(msg); ok {
		m.held[b] = m.now().Add(m.hold)
		m.host.SetButton(b, true)
	}
	return m, nil
}

// handleTick releases expired holds and runs one host frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.expire(now)
	m.screen = RenderSurface(m.renderer, m.host.Frame(now))
	return m, tickCmd(m.frameRate)
}

// expire releases every button whose hold ended before now.
func (m *Model) expire(now time.Time) {
	for b := core.Button(0); b < core.ButtonCount; b++ {
		if !m.held[b].IsZero() && !now.Before(m.held[b]) {
			m.held[b] = time.Time{}
			m.host.SetButton(b, false)
		}
	}
}

// releaseAll forgets pending holds. The shell releases the host's buttons.
func (m *Model) releaseAll() {
	m.held = [core.ButtonCount]time.Time{}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := m.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("HANDHELD"))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(m.shell.Status()))
	b.WriteString("\n")

	if m.screen != "" {
		b.WriteString(m.screen)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run starts the Bubble Tea program for h and closes the host on exit.
func Run(ctx context.Context, h *host.Host, cfg config.Config, games []registry.GameInfo) error {
	defer h.Close()

	p := tea.NewProgram(
		NewModel(h, cfg, games),
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
