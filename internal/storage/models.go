package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist. Callers
// decide whether absence means "seed defaults" or "treat as empty" — the
// store never writes through a read path.
var ErrNotFound = errors.New("not found")

// Record kinds for the portfolio document store.
const (
	KindProfile        = "profile"
	KindSkill          = "skill"
	KindProject        = "project"
	KindChatbotContext = "chatbot-context"
)

// SingletonID is the record ID used by kinds that hold exactly one document
// (profile, chatbot-context).
const SingletonID = "default"

// Record is one stored portfolio document. Data holds the JSON-encoded body;
// (Kind, ID) is the primary key.
type Record struct {
	Kind      string
	ID        string
	Data      string
	UpdatedAt time.Time
}

// Interaction is one logged assistant exchange.
type Interaction struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Question  string    `json:"question"`
	Prompt    string    `json:"prompt,omitempty"`
	Model     string    `json:"model"`
	Response  string    `json:"response"`
	Status    string    `json:"status"` // "completed", "fallback", or "empty"
}
