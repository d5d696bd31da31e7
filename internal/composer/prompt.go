// Package composer assembles the full instruction text handed to the model:
// persona framing, serialized knowledge base (or operator override), the
// query-specific context snippet, the trailing conversation window, and the
// live question.
package composer

import (
	"fmt"
	"strings"

	"github.com/wastrilith2k/portfolio-assistant/internal/conversation"
	"github.com/wastrilith2k/portfolio-assistant/internal/knowledge"
)

// Assembler composes prompts with a bounded conversation history window.
type Assembler struct {
	Window int
}

// New creates an Assembler with the given history window. If window <= 0,
// the default (5 turns) is used.
func New(window int) *Assembler {
	if window <= 0 {
		window = conversation.HistoryWindow
	}
	return &Assembler{Window: window}
}

// Assemble builds the prompt text. When override is non-empty it replaces the
// persona preamble and knowledge-base rendering verbatim — all-or-nothing,
// never merged field by field. Pure string composition: identical inputs
// always yield an identical prompt.
func (a *Assembler) Assemble(kb knowledge.Base, contextSnippet string, history []conversation.Turn, question, override string) string {
	var sb strings.Builder

	if override != "" {
		sb.WriteString(strings.TrimRight(override, "\n"))
		sb.WriteString("\n")
	} else {
		fmt.Fprintf(&sb,
			"You are an AI assistant representing %s, a %s. You have access to the complete professional profile below and should answer questions as an intelligent assistant that knows everything about %s's background, skills, and experience.\n",
			kb.Personal.Name, kb.Personal.Title, kb.FirstName())
		fmt.Fprintf(&sb, "\nIMPORTANT CONTEXT ABOUT %s:\n", strings.ToUpper(kb.FirstName()))
		sb.WriteString(knowledge.Render(kb))
	}

	sb.WriteString("\nCONTEXTUAL INFORMATION FOR THIS QUERY:\n")
	sb.WriteString(contextSnippet)
	sb.WriteString("\n")

	sb.WriteString("\nCONVERSATION HISTORY:\n")
	sb.WriteString(formatHistory(conversation.Window(history, a.Window)))

	sb.WriteString("\nPlease respond as an intelligent, professional, and friendly assistant. Provide specific examples from the profile when asked about technical details, and actual contact details when asked how to get in touch.\n")
	fmt.Fprintf(&sb, "\nCurrent question: %s", question)

	return sb.String()
}

// formatHistory renders turns as "Human:"/"Assistant:" lines, oldest first.
func formatHistory(turns []conversation.Turn) string {
	if len(turns) == 0 {
		return "(none)\n"
	}
	var sb strings.Builder
	for _, t := range turns {
		label := "Assistant"
		if t.Role == conversation.RoleUser {
			label = "Human"
		}
		fmt.Fprintf(&sb, "%s: %s\n", label, t.Content)
	}
	return sb.String()
}
