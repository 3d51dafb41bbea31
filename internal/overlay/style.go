package overlay

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Easing maps animation progress in [0,1] to eased progress in [0,1].
type Easing func(t float64) float64

// EaseLinear is the identity curve.
func EaseLinear(t float64) float64 { return t }

// EaseOutCubic decelerates toward the end of the animation.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// Styles configures the overlay's look and timing. It is a pure value
// object, fixed at construction; swap the whole thing to restyle.
type Styles struct {
	// Hold is how long the chips stay fully visible after a trigger.
	Hold time.Duration

	// Fade is how long the fade-out takes once the hold elapses.
	Fade time.Duration

	// Curve shapes the fade-out progression.
	Curve Easing

	// Separator is the glyph rendered between chips.
	Separator string

	// Align is the horizontal placement of the chip row.
	Align lipgloss.Position

	// Offset is how many rows above the bottom edge the chips sit.
	Offset int

	// Chip colors as hex strings so they can be blended during fade-out.
	Foreground string
	Background string

	Bold    bool
	Padding int
	Margin  int
}

// DefaultStyles returns the stock look: bold white text on dark-blue chips,
// a "+" separator, bottom-centered two rows up, 2s hold and 1s ease-out fade.
func DefaultStyles() Styles {
	return Styles{
		Hold:       2 * time.Second,
		Fade:       time.Second,
		Curve:      EaseOutCubic,
		Separator:  "+",
		Align:      lipgloss.Center,
		Offset:     2,
		Foreground: "#FFFFFF",
		Background: "#27408B",
		Bold:       true,
		Padding:    1,
		Margin:     1,
	}
}
