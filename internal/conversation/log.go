// Package conversation holds the append-only message log for a single chat
// session. The log lives for the session only; nothing is persisted here.
package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Roles for a conversation turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// HistoryWindow is how many trailing turns are folded into a new prompt.
// Older turns are dropped, never summarized.
const HistoryWindow = 5

// Turn is a single exchanged message. IDs are opaque and time-ordered;
// timestamps are RFC 3339 strings to match the wire format.
type Turn struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Log is an append-only sequence of turns. There is one logical writer (the
// current interaction); the mutex keeps concurrent render reads safe.
type Log struct {
	mu    sync.Mutex
	turns []Turn
}

// NewLog returns an empty conversation log.
func NewLog() *Log {
	return &Log{}
}

// Append adds a turn with a fresh ID and timestamp and returns it.
func (l *Log) Append(role, content string) Turn {
	t := Turn{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	l.mu.Lock()
	l.turns = append(l.turns, t)
	l.mu.Unlock()
	return t
}

// All returns a copy of every turn in append order.
func (l *Log) All() []Turn {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Recent returns the last n turns in original order.
func (l *Log) Recent(n int) []Turn {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Window(l.turns, n)
}

// Len reports the number of turns appended so far.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.turns)
}

// Window returns a copy of the trailing n turns of history, oldest first.
// n <= 0 yields an empty window.
func Window(turns []Turn, n int) []Turn {
	if n <= 0 || len(turns) == 0 {
		return nil
	}
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}
