// Package assistant orchestrates a visitor question through context
// selection, prompt assembly, and the model provider, degrading every failure
// to a contact-information hand-off so the visitor always gets an answer.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wastrilith2k/portfolio-assistant/internal/anthropic"
	"github.com/wastrilith2k/portfolio-assistant/internal/composer"
	"github.com/wastrilith2k/portfolio-assistant/internal/conversation"
	"github.com/wastrilith2k/portfolio-assistant/internal/knowledge"
	"github.com/wastrilith2k/portfolio-assistant/internal/storage"
)

const (
	// ContextTag identifies this assistant in every successful result.
	ContextTag = "james-portfolio-assistant"

	// Fixed sampling parameters for every request.
	maxOutputTokens = 1000
	temperature     = 0.7

	apologyText = "I apologize, but I had trouble generating a response."
)

// ErrEmptyMessage is returned for blank questions; no provider call is made.
var ErrEmptyMessage = errors.New("message is required")

// Completer is the provider client interface the assistant dispatches to.
type Completer interface {
	Complete(ctx context.Context, p anthropic.CompletionParams) (anthropic.Completion, error)
	Model() string
}

// ContentSource supplies the knowledge base and the operator override.
type ContentSource interface {
	KnowledgeBase() knowledge.Base
	Override() string
}

// InteractionLog records exchanges for the admin transcript view.
type InteractionLog interface {
	SaveInteraction(i storage.Interaction) error
}

// Result is the uniform outcome of one visitor question. On success Context
// carries the assistant tag; on failure the caller also receives an error and
// Response holds the contact-information fallback.
type Result struct {
	Response string
	Context  string
}

// Assistant wires the pipeline together. It holds no per-request state; the
// conversation history arrives with each question.
type Assistant struct {
	completer Completer
	content   ContentSource
	assembler *composer.Assembler
	log       InteractionLog // optional; nil disables transcript logging
}

// New creates an Assistant. Pass a nil log to disable interaction logging.
func New(completer Completer, content ContentSource, assembler *composer.Assembler, log InteractionLog) *Assistant {
	return &Assistant{
		completer: completer,
		content:   content,
		assembler: assembler,
		log:       log,
	}
}

// Ask answers one visitor question. Exactly one provider round trip per call:
// no retry, no caching. A transport or provider failure is absorbed into a
// fallback Result carrying direct contact details, returned alongside the
// error so the HTTP layer can choose the status code.
func (a *Assistant) Ask(ctx context.Context, message string, history []conversation.Turn) (Result, error) {
	if message == "" {
		return Result{}, ErrEmptyMessage
	}

	kb := a.content.KnowledgeBase()
	snippet := knowledge.SelectContext(kb, message)
	prompt := a.assembler.Assemble(kb, snippet, history, message, a.content.Override())

	comp, err := a.completer.Complete(ctx, anthropic.CompletionParams{
		Prompt:      prompt,
		MaxTokens:   maxOutputTokens,
		Temperature: temperature,
	})
	if err != nil {
		slog.Warn("completion failed", "error", err)
		fallback := FallbackMessage(kb)
		a.record(message, prompt, fallback, "fallback")
		return Result{Response: fallback}, fmt.Errorf("generating response: %w", err)
	}

	if comp.Empty {
		a.record(message, prompt, apologyText, "empty")
		return Result{Response: apologyText, Context: ContextTag}, nil
	}

	a.record(message, prompt, comp.Text, "completed")
	return Result{Response: comp.Text, Context: ContextTag}, nil
}

// FallbackMessage is the user-facing text for provider failures. It must
// always include a direct way to reach a human.
func FallbackMessage(kb knowledge.Base) string {
	return fmt.Sprintf(
		"I'm having trouble connecting to the AI service right now. Please try again later, or feel free to contact %s directly at %s or %s.",
		kb.FirstName(), kb.Personal.Email, kb.Personal.Phone)
}

func (a *Assistant) record(question, prompt, response, status string) {
	if a.log == nil {
		return
	}
	err := a.log.SaveInteraction(storage.Interaction{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Question:  question,
		Prompt:    prompt,
		Model:     a.completer.Model(),
		Response:  response,
		Status:    status,
	})
	if err != nil {
		slog.Warn("saving interaction failed", "error", err)
	}
}
