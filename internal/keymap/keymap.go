// Package keymap wires chord bindings to actions and decorates each action
// with the overlay's show/hide side effects, without changing which keys
// dispatch to what.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatter/keycast/internal/chord"
	"github.com/chatter/keycast/internal/overlay"
)

// Action executes a binding's behavior. Actions take no arguments; any
// follow-up work is returned as a bubbletea command.
type Action func() tea.Cmd

// Binding pairs a chord with its dispatch key and action. A nil Do makes
// the binding display-only.
type Binding struct {
	Chord chord.Chord
	Key   key.Binding
	Do    Action
}

// NewBinding builds a Binding whose dispatch key and help text are derived
// from the chord.
func NewBinding(c chord.Chord, desc string, do Action) Binding {
	return Binding{
		Chord: c,
		Key:   c.Binding(desc),
		Do:    do,
	}
}

// Intercept returns an equivalent binding set where every action is wrapped
// with the overlay's display side effects. Each wrapped action, in order:
// shows the chord's tokens (before the original action runs), invokes the
// original action, and schedules the hide. Scheduling bumps the overlay's
// generation, so any earlier pending hide is invalidated. Nil actions stay
// nil; dispatch semantics are otherwise untouched.
func Intercept(bindings []Binding, ov *overlay.Overlay) []Binding {
	wrapped := make([]Binding, len(bindings))
	for i, b := range bindings {
		wrapped[i] = b
		if b.Do == nil {
			continue
		}

		c, do := b.Chord, b.Do
		wrapped[i].Do = func() tea.Cmd {
			hide := ov.Trigger(c)
			cmd := do()
			return tea.Batch(cmd, hide)
		}
	}
	return wrapped
}

// Dispatch runs the first enabled binding matching the key message.
// Display-only bindings are skipped. Reports whether a binding matched.
func Dispatch(msg tea.KeyMsg, bindings []Binding) (tea.Cmd, bool) {
	for _, b := range bindings {
		if b.Do != nil && key.Matches(msg, b.Key) {
			return b.Do(), true
		}
	}
	return nil, false
}
