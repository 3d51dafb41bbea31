// Package overlay renders the currently pressed keyboard chord as a row of
// styled chips over a bubbletea view, holds it for a configured duration
// and fades it out. The visibility state machine lives in State; Overlay
// wraps it with scheduling and rendering.
package overlay

// State is the transient display state machine: Hidden or Visible plus the
// current display tokens. Every show bumps a generation counter; a pending
// hide only takes effect when its captured generation is still current, so
// re-triggering cancels earlier hides without relying on timer cancellation.
//
// State is not safe for concurrent use. In a bubbletea program all
// transitions happen on the update loop, which is exactly the intended use.
type State struct {
	visible bool
	tokens  []string
	gen     uint64
	closed  bool
}

// Show makes the state visible with the given tokens, replacing any
// previous token set wholesale. It returns the new generation to capture in
// the hide timer. ok is false (and nothing changes) after Close or for an
// empty token set.
func (s *State) Show(tokens []string) (gen uint64, ok bool) {
	if s.closed || len(tokens) == 0 {
		return 0, false
	}

	s.gen++
	s.visible = true
	// Fresh allocation: callers may retain a previous Tokens() result.
	s.tokens = append([]string(nil), tokens...)

	return s.gen, true
}

// Expire hides the state if gen is still the current generation. Stale
// generations (a newer Show happened since the timer was scheduled) and
// calls after Close are silent no-ops. Tokens are retained until the next
// Show; they are logically stale once hidden.
func (s *State) Expire(gen uint64) bool {
	if s.closed || !s.visible || gen != s.gen {
		return false
	}

	s.visible = false

	return true
}

// Close tears the state down. All later Show and Expire calls are no-ops,
// which makes a timer firing after teardown harmless. Idempotent.
func (s *State) Close() {
	s.closed = true
	s.visible = false
}

// Visible reports whether the overlay is currently shown.
func (s *State) Visible() bool { return s.visible }

// Closed reports whether the state has been torn down.
func (s *State) Closed() bool { return s.closed }

// Generation returns the current show generation.
func (s *State) Generation() uint64 { return s.gen }

// Tokens returns the current display tokens. The returned slice is never
// overwritten by a later Show; callers must not mutate it.
func (s *State) Tokens() []string { return s.tokens }
