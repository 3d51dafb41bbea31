package overlay

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/chatter/keycast/internal/chord"
)

// frameInterval is the fade-out animation frame period.
const frameInterval = 50 * time.Millisecond

// fadeTarget is the color chips blend toward while fading out.
const fadeTarget = "#000000"

// hideMsg fires when a shown chord's hold duration elapses. It carries the
// generation captured at show time so stale timers are ignored.
type hideMsg struct {
	gen uint64
}

// fadeMsg advances the fade-out animation by one frame.
type fadeMsg struct {
	gen uint64
}

// Overlay is the bubbletea component that flashes chord chips over the
// host view. Trigger shows a chord and schedules its hide; Update consumes
// the scheduled messages; Compose splices the chips into a rendered frame.
type Overlay struct {
	state  State
	styles Styles
	width  int

	// Fade-out bookkeeping (rendering only; visibility lives in state).
	fading  bool
	fadeGen uint64
	frame   int
	frames  int

	fg     colorful.Color
	bg     colorful.Color
	fadeTo colorful.Color
}

// New creates an overlay with the given styles.
func New(styles Styles) *Overlay {
	o := &Overlay{}
	o.SetStyles(styles)
	return o
}

// SetStyles replaces the overlay's styles, e.g. on a theme reload.
func (o *Overlay) SetStyles(styles Styles) {
	if styles.Curve == nil {
		styles.Curve = EaseOutCubic
	}
	o.styles = styles
	o.fg = parseColor(styles.Foreground, "#FFFFFF")
	o.bg = parseColor(styles.Background, "#27408B")
	o.fadeTo, _ = colorful.Hex(fadeTarget)
}

// SetWidth sets the width the chip row is placed into.
func (o *Overlay) SetWidth(width int) {
	o.width = width
}

// Trigger shows the chord's tokens immediately and returns the command
// that schedules the hide after the hold duration. Showing bumps the
// generation, so any earlier pending hide becomes stale. Returns nil after
// Close.
func (o *Overlay) Trigger(c chord.Chord) tea.Cmd {
	gen, ok := o.state.Show(c.Tokens())
	if !ok {
		return nil
	}

	o.fading = false

	return tea.Tick(o.styles.Hold, func(time.Time) tea.Msg {
		return hideMsg{gen: gen}
	})
}

// Update consumes the overlay's scheduled messages. Messages that don't
// belong to the overlay, stale hide timers and post-teardown messages all
// return nil without touching state.
func (o *Overlay) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case hideMsg:
		if !o.state.Expire(msg.gen) {
			return nil
		}

		o.fading = true
		o.fadeGen = msg.gen
		o.frame = 0
		o.frames = max(int(o.styles.Fade/frameInterval), 1)

		return o.fadeTick()

	case fadeMsg:
		if o.state.Closed() || !o.fading || msg.gen != o.fadeGen {
			return nil
		}

		o.frame++
		if o.frame >= o.frames {
			o.fading = false
			return nil
		}

		return o.fadeTick()
	}

	return nil
}

func (o *Overlay) fadeTick() tea.Cmd {
	gen := o.fadeGen
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return fadeMsg{gen: gen}
	})
}

// Close tears the overlay down. Pending hide and fade messages become
// no-ops; no further state transitions are observable.
func (o *Overlay) Close() {
	o.state.Close()
	o.fading = false
}

// Visible reports whether a chord is currently shown (hold phase).
func (o *Overlay) Visible() bool { return o.state.Visible() }

// Tokens returns the tokens currently held by the display state.
func (o *Overlay) Tokens() []string { return o.state.Tokens() }

// Active reports whether there is anything to draw: shown or still fading.
func (o *Overlay) Active() bool { return o.state.Visible() || o.fading }

// View renders the chip row placed into the configured width. Empty when
// there is nothing to draw.
func (o *Overlay) View() string {
	if !o.Active() || o.width <= 0 {
		return ""
	}

	alpha := 1.0
	if o.fading {
		alpha = 1 - o.styles.Curve(float64(o.frame)/float64(o.frames))
	}

	fg := o.fadeTo.BlendRgb(o.fg, alpha)
	bg := o.fadeTo.BlendRgb(o.bg, alpha)

	chipStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex())).
		Bold(o.styles.Bold).
		Padding(0, o.styles.Padding)

	sepStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(fg.Hex()))
	gap := strings.Repeat(" ", max(o.styles.Margin, 0))

	tokens := o.state.Tokens()
	parts := make([]string, 0, 2*len(tokens)-1)
	for i, tok := range tokens {
		if i > 0 {
			parts = append(parts, gap+sepStyle.Render(o.styles.Separator)+gap)
		}
		parts = append(parts, chipStyle.Render(tok))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center, parts...)

	return lipgloss.PlaceHorizontal(o.width, o.styles.Align, row)
}

// Compose splices the chip row into an already rendered base view, Offset
// rows above the bottom edge. The base is returned unchanged when the
// overlay has nothing to draw.
func (o *Overlay) Compose(base string) string {
	row := o.View()
	if row == "" {
		return base
	}

	lines := strings.Split(base, "\n")
	idx := len(lines) - 1 - o.styles.Offset
	if idx < 0 {
		idx = 0
	}
	lines[idx] = row

	return strings.Join(lines, "\n")
}

// parseColor parses a hex color, falling back when the string is invalid
// so a bad theme never breaks rendering.
func parseColor(hex, fallback string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(fallback)
	}
	return c
}
