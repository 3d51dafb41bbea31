package overlay

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

func TestState_InitiallyHidden(t *testing.T) {
	var s State

	if s.Visible() {
		t.Error("new state should be hidden")
	}
	if len(s.Tokens()) != 0 {
		t.Errorf("new state should have no tokens, got %v", s.Tokens())
	}
}

func TestState_ShowSetsTokensAndVisibility(t *testing.T) {
	var s State

	gen, ok := s.Show([]string{"Ctrl", "A"})
	if !ok {
		t.Fatal("Show should succeed on a fresh state")
	}
	if gen != 1 {
		t.Errorf("first show should be generation 1, got %d", gen)
	}
	if !s.Visible() {
		t.Error("state should be visible after Show")
	}
	if want := []string{"Ctrl", "A"}; !reflect.DeepEqual(s.Tokens(), want) {
		t.Errorf("Tokens() = %v, want %v", s.Tokens(), want)
	}
}

func TestState_ShowReplacesTokens(t *testing.T) {
	var s State

	s.Show([]string{"Ctrl", "A"})
	s.Show([]string{"Escape"})

	if want := []string{"Escape"}; !reflect.DeepEqual(s.Tokens(), want) {
		t.Errorf("second show must replace tokens wholesale, got %v", s.Tokens())
	}
}

func TestState_RetainedTokensSurviveNextShow(t *testing.T) {
	var s State

	s.Show([]string{"Ctrl", "A"})
	retained := s.Tokens()

	s.Show([]string{"Escape"})

	if want := []string{"Ctrl", "A"}; !reflect.DeepEqual(retained, want) {
		t.Errorf("retained tokens = %v, want %v (must not be overwritten by a later show)", retained, want)
	}
}

func TestState_ShowEmptyTokensIsNoOp(t *testing.T) {
	var s State

	if _, ok := s.Show(nil); ok {
		t.Error("Show with no tokens should report not ok")
	}
	if s.Visible() {
		t.Error("state must stay hidden after empty Show")
	}
}

func TestState_ExpireCurrentGeneration(t *testing.T) {
	var s State

	gen, _ := s.Show([]string{"Escape"})

	if !s.Expire(gen) {
		t.Error("Expire with current generation should hide")
	}
	if s.Visible() {
		t.Error("state should be hidden after Expire")
	}

	// Tokens are retained (stale) until the next show.
	if len(s.Tokens()) == 0 {
		t.Error("tokens should be retained after hide")
	}

	// The same generation must not hide twice.
	if s.Expire(gen) {
		t.Error("second Expire with the same generation should be a no-op")
	}
}

func TestState_ExpireStaleGenerationIgnored(t *testing.T) {
	var s State

	first, _ := s.Show([]string{"Ctrl", "A"})
	s.Show([]string{"Escape"})

	if s.Expire(first) {
		t.Error("stale generation must not hide the state")
	}
	if !s.Visible() {
		t.Error("state should still be visible after a stale Expire")
	}
}

func TestState_Close(t *testing.T) {
	var s State

	gen, _ := s.Show([]string{"Ctrl", "A"})
	s.Close()

	if s.Visible() {
		t.Error("state should be hidden after Close")
	}
	if s.Expire(gen) {
		t.Error("Expire after Close must be a no-op")
	}
	if _, ok := s.Show([]string{"Escape"}); ok {
		t.Error("Show after Close must be a no-op")
	}

	// Close is idempotent.
	s.Close()
}

// Property: over any sequence of Show/Expire/Close operations, the state
// never reports visible with an empty token set, never transitions after
// Close, and only the latest show generation can hide it.
func TestState_InvariantsProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var s State

		var lastGen uint64
		closed := false

		steps := rapid.IntRange(1, 50).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0: // show
				n := rapid.IntRange(1, 4).Draw(rt, "tokens")
				tokens := make([]string, n)
				for j := range tokens {
					tokens[j] = rapid.StringMatching(`[A-Z][a-z]{0,4}`).Draw(rt, "token")
				}
				gen, ok := s.Show(tokens)
				if ok {
					lastGen = gen
				}
				if closed && ok {
					rt.Fatal("Show succeeded after Close")
				}
			case 1: // expire current
				wasVisible := s.Visible()
				hid := s.Expire(lastGen)
				if hid && (closed || !wasVisible) {
					rt.Fatal("Expire transitioned when it should not have")
				}
			case 2: // expire stale
				if lastGen > 1 && s.Expire(lastGen-1) {
					rt.Fatal("stale generation hid the state")
				}
			case 3: // close
				s.Close()
				closed = true
			}

			if s.Visible() && len(s.Tokens()) == 0 {
				rt.Fatal("visible state with empty tokens")
			}
			if closed && s.Visible() {
				rt.Fatal("visible after Close")
			}
		}
	})
}
