package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatter/keycast/internal/chord"
	"github.com/chatter/keycast/internal/keymap"
)

// defaultBindings returns the demo's chord bindings. Actions only emit
// messages; all state changes happen in Update.
func defaultBindings() []keymap.Binding {
	return []keymap.Binding{
		keymap.NewBinding(
			chord.Chord{Ctrl: true, Key: "a"},
			"increment",
			func() tea.Cmd {
				return func() tea.Msg { return incrementMsg{} }
			},
		),
		keymap.NewBinding(
			chord.Chord{Ctrl: true, Key: "x"},
			"reset",
			func() tea.Cmd {
				return func() tea.Msg { return resetMsg{} }
			},
		),
		keymap.NewBinding(
			chord.Chord{Key: "esc"},
			"clear status",
			func() tea.Cmd {
				return func() tea.Msg { return clearMsg{} }
			},
		),
		keymap.NewBinding(
			chord.Chord{Key: "q"},
			"quit",
			func() tea.Cmd {
				return func() tea.Msg { return quitMsg{} }
			},
		),
		keymap.NewBinding(
			chord.Chord{Ctrl: true, Key: "c"},
			"", // duplicate of q, hidden from hints
			func() tea.Cmd {
				return func() tea.Msg { return quitMsg{} }
			},
		),
	}
}
