// Package chord models keyboard chords: a set of modifier flags plus one
// trigger key. It derives the display tokens the overlay shows and the
// bubbletea key strings used for dispatch.
package chord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// ErrEmptyKey is returned when a chord string has no trigger key.
var ErrEmptyKey = errors.New("chord has no trigger key")

// Chord describes a keyboard shortcut: modifier flags plus a trigger key.
// Key uses bubbletea key names ("a", "esc", "enter", "up", ...).
// A Chord is an immutable value; construct a new one to rebind.
type Chord struct {
	Alt   bool
	Ctrl  bool
	Shift bool
	Key   string
}

// Tokens derives the display tokens for the chord. The order is fixed:
// Alt, Ctrl, Shift, then the humanized key label. Modifier tokens appear
// only when the corresponding flag is set. The result is never empty.
func (c Chord) Tokens() []string {
	tokens := make([]string, 0, 4)
	if c.Alt {
		tokens = append(tokens, "Alt")
	}
	if c.Ctrl {
		tokens = append(tokens, "Ctrl")
	}
	if c.Shift {
		tokens = append(tokens, "Shift")
	}
	return append(tokens, KeyLabel(c.Key))
}

// KeyString builds the bubbletea key string the chord matches against,
// e.g. "ctrl+a" or "alt+ctrl+a". bubbletea folds shift into the key itself
// (uppercase rune for letters, "shift+tab" for special keys), and prefixes
// "alt+" last, so the string is assembled inside out.
func (c Chord) KeyString() string {
	s := strings.ToLower(c.Key)
	if c.Shift {
		if len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
			s = strings.ToUpper(s)
		} else {
			s = "shift+" + s
		}
	}
	if c.Ctrl {
		s = "ctrl+" + s
	}
	if c.Alt {
		s = "alt+" + s
	}
	return s
}

// String returns the canonical chord string, same format Parse accepts.
func (c Chord) String() string {
	return c.KeyString()
}

// Binding builds a bubbles key binding that matches this chord. The help
// key column shows the display tokens joined with "+".
func (c Chord) Binding(desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(c.KeyString()),
		key.WithHelp(strings.Join(c.Tokens(), "+"), desc),
	)
}

// Parse parses a chord string like "ctrl+alt+a" or "esc". Modifiers may
// appear in any order; the final segment is the trigger key. Duplicate
// modifiers and empty segments are errors.
func Parse(s string) (Chord, error) {
	var c Chord

	parts := strings.Split(s, "+")
	for i, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))

		if i == len(parts)-1 {
			if part == "" {
				return Chord{}, fmt.Errorf("parsing chord %q: %w", s, ErrEmptyKey)
			}
			c.Key = part
			return c, nil
		}

		switch part {
		case "alt":
			if c.Alt {
				return Chord{}, fmt.Errorf("parsing chord %q: duplicate modifier %q", s, part)
			}
			c.Alt = true
		case "ctrl", "control":
			if c.Ctrl {
				return Chord{}, fmt.Errorf("parsing chord %q: duplicate modifier %q", s, part)
			}
			c.Ctrl = true
		case "shift":
			if c.Shift {
				return Chord{}, fmt.Errorf("parsing chord %q: duplicate modifier %q", s, part)
			}
			c.Shift = true
		default:
			return Chord{}, fmt.Errorf("parsing chord %q: unknown modifier %q", s, part)
		}
	}

	return Chord{}, fmt.Errorf("parsing chord %q: %w", s, ErrEmptyKey)
}

// keyLabels maps bubbletea key names to human-readable labels.
var keyLabels = map[string]string{
	"esc":       "Escape",
	"escape":    "Escape",
	"enter":     "Enter",
	"return":    "Enter",
	" ":         "Space",
	"space":     "Space",
	"tab":       "Tab",
	"backspace": "Backspace",
	"delete":    "Delete",
	"insert":    "Insert",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PgUp",
	"pgdown":    "PgDown",
	"up":        "↑",
	"down":      "↓",
	"left":      "←",
	"right":     "→",
}

// KeyLabel humanizes a bubbletea key name for display: special keys get
// their spelled-out name, single letters are upper-cased, anything else is
// title-cased.
func KeyLabel(name string) string {
	if label, ok := keyLabels[strings.ToLower(name)]; ok {
		return label
	}
	if name == "" {
		return ""
	}
	if len(name) == 1 {
		return strings.ToUpper(name)
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}
