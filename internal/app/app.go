// Package app is the keycast demo: a tiny counter pad whose key bindings
// are wrapped with the chord overlay, so every shortcut press flashes the
// pressed chord over the view.
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chatter/keycast/internal/keymap"
	"github.com/chatter/keycast/internal/logger"
	"github.com/chatter/keycast/internal/overlay"
	"github.com/chatter/keycast/internal/theme"
)

// Model is the demo application model.
type Model struct {
	version   string
	themePath string
	log       *logger.Logger

	overlay  *overlay.Overlay
	bindings []keymap.Binding

	watcher *theme.Watcher

	width  int
	height int

	count  int
	status string
}

// New creates the demo model with its bindings run through the overlay
// interceptor.
func New(version, themePath string, styles overlay.Styles, log *logger.Logger) Model {
	ov := overlay.New(styles)

	m := Model{
		version:   version,
		themePath: themePath,
		log:       log,
		overlay:   ov,
	}
	m.bindings = keymap.Intercept(defaultBindings(), ov)

	return m
}

// Init starts the theme watcher when a theme file is configured.
func (m Model) Init() tea.Cmd {
	if m.themePath == "" {
		return nil
	}
	return m.startWatcher()
}

func (m Model) startWatcher() tea.Cmd {
	return func() tea.Msg {
		watcher, err := theme.NewWatcher(m.themePath, m.log)
		if err != nil {
			// Live reload is a convenience; run without it.
			return watcherStartedMsg{watcher: nil, err: err}
		}
		return watcherStartedMsg{watcher: watcher}
	}
}

func (m Model) waitForThemeChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}

	return func() tea.Msg {
		if _, ok := <-m.watcher.Events(); !ok {
			return nil
		}
		return themeChangedMsg{}
	}
}

// Message types
type incrementMsg struct{}

type resetMsg struct{}

type clearMsg struct{}

type quitMsg struct{}

type watcherStartedMsg struct {
	watcher *theme.Watcher
	err     error
}

type themeChangedMsg struct{}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, ok := keymap.Dispatch(msg, m.bindings); ok && cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.overlay.SetWidth(msg.Width)

	case incrementMsg:
		m.count++
		m.status = fmt.Sprintf("count is %d", m.count)

	case resetMsg:
		m.count = 0
		m.status = "count reset"

	case clearMsg:
		m.status = ""

	case quitMsg:
		m.teardown()
		return m, tea.Quit

	case watcherStartedMsg:
		if msg.err != nil {
			m.log.Warn("theme live reload disabled", "err", msg.err)
		}
		m.watcher = msg.watcher
		if msg.watcher != nil {
			cmds = append(cmds, m.waitForThemeChange())
		}

	case themeChangedMsg:
		m.reloadTheme()
		cmds = append(cmds, m.waitForThemeChange())
	}

	// The overlay owns its hide and fade messages.
	if cmd := m.overlay.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// teardown cancels the overlay's pending timers and stops the watcher.
// Safe to call more than once: quit is bound to several keys and messages
// keep flowing until tea.QuitMsg is processed.
func (m *Model) teardown() {
	m.overlay.Close()
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
}

func (m *Model) reloadTheme() {
	styles, err := theme.Load(m.themePath)
	if err != nil {
		m.log.Warn("theme reload failed, keeping current styles", "err", err)
		return
	}

	m.overlay.SetStyles(styles)
	m.log.Info("theme reloaded", "path", m.themePath)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	countStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	hintKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	hintDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777"))

	hintSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))
)

// View renders the demo pad and composes the overlay over it.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		titleStyle.Render("keycast "+m.version),
		"",
		countStyle.Render(fmt.Sprintf("%d", m.count)),
		"",
		statusStyle.Render(m.status),
	)

	base := lipgloss.Place(
		m.width, m.height-1,
		lipgloss.Center, lipgloss.Center,
		content,
	)

	base = lipgloss.JoinVertical(lipgloss.Left, base, m.renderHints())

	return m.overlay.Compose(base)
}

// renderHints renders one status line of key hints from the binding set.
func (m Model) renderHints() string {
	sep := hintSepStyle.Render(" • ")

	var line string
	for _, b := range m.bindings {
		if !b.Key.Enabled() {
			continue
		}
		help := b.Key.Help()
		if help.Desc == "" {
			continue
		}
		if line != "" {
			line += sep
		}
		line += hintKeyStyle.Render(help.Key) + " " + hintDescStyle.Render(help.Desc)
	}

	return line
}
