package conversation

import (
	"fmt"
	"testing"
)

func TestLog_AppendOrder(t *testing.T) {
	l := NewLog()
	for i := 0; i < 3; i++ {
		l.Append(RoleUser, fmt.Sprintf("message %d", i))
	}

	turns := l.All()
	if len(turns) != 3 {
		t.Fatalf("len = %d, want 3", len(turns))
	}
	for i, turn := range turns {
		want := fmt.Sprintf("message %d", i)
		if turn.Content != want {
			t.Errorf("turn %d content = %q, want %q", i, turn.Content, want)
		}
		if turn.ID == "" || turn.Timestamp == "" {
			t.Errorf("turn %d missing id or timestamp: %+v", i, turn)
		}
	}
}

func TestLog_AllReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Append(RoleUser, "original")

	turns := l.All()
	turns[0].Content = "mutated"

	if l.All()[0].Content != "original" {
		t.Error("All() exposed internal state")
	}
}

func TestWindow(t *testing.T) {
	var turns []Turn
	for i := 1; i <= 7; i++ {
		turns = append(turns, Turn{ID: fmt.Sprintf("%d", i), Content: fmt.Sprintf("turn %d", i)})
	}

	got := Window(turns, 5)
	if len(got) != 5 {
		t.Fatalf("window len = %d, want 5", len(got))
	}
	// Turns 3-7 in original order; turn 1 must be gone.
	for i, turn := range got {
		want := fmt.Sprintf("turn %d", i+3)
		if turn.Content != want {
			t.Errorf("window[%d] = %q, want %q", i, turn.Content, want)
		}
	}
}

func TestWindow_ShortHistory(t *testing.T) {
	turns := []Turn{{Content: "only"}}
	if got := Window(turns, 5); len(got) != 1 || got[0].Content != "only" {
		t.Errorf("Window on short history = %v", got)
	}
	if got := Window(nil, 5); got != nil {
		t.Errorf("Window(nil) = %v, want nil", got)
	}
	if got := Window(turns, 0); got != nil {
		t.Errorf("Window with n=0 = %v, want nil", got)
	}
}

func TestLog_Recent(t *testing.T) {
	l := NewLog()
	for i := 1; i <= 8; i++ {
		role := RoleUser
		if i%2 == 0 {
			role = RoleAssistant
		}
		l.Append(role, fmt.Sprintf("turn %d", i))
	}

	recent := l.Recent(HistoryWindow)
	if len(recent) != 5 {
		t.Fatalf("recent len = %d, want 5", len(recent))
	}
	if recent[0].Content != "turn 4" || recent[4].Content != "turn 8" {
		t.Errorf("recent window wrong: first=%q last=%q", recent[0].Content, recent[4].Content)
	}
}
