package composer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/wastrilith2k/portfolio-assistant/internal/conversation"
	"github.com/wastrilith2k/portfolio-assistant/internal/knowledge"
)

func makeHistory(n int) []conversation.Turn {
	var turns []conversation.Turn
	for i := 1; i <= n; i++ {
		role := conversation.RoleUser
		if i%2 == 0 {
			role = conversation.RoleAssistant
		}
		turns = append(turns, conversation.Turn{
			ID:      fmt.Sprintf("%d", i),
			Role:    role,
			Content: fmt.Sprintf("turn %d", i),
		})
	}
	return turns
}

func TestAssemble_ContainsQuestionAndSnippet(t *testing.T) {
	a := New(0)
	kb := knowledge.Default()
	snippet := "James specializes in React and TypeScript."
	question := "What technologies do you use?"

	out := a.Assemble(kb, snippet, nil, question, "")

	if !strings.Contains(out, question) {
		t.Error("assembled prompt missing the live question")
	}
	if !strings.Contains(out, snippet) {
		t.Error("assembled prompt missing the context snippet")
	}
	if !strings.Contains(out, "Current question: "+question) {
		t.Error("live question is not labeled")
	}
}

func TestAssemble_DefaultPersonaAndKnowledge(t *testing.T) {
	a := New(0)
	kb := knowledge.Default()

	out := a.Assemble(kb, "snippet", nil, "q", "")

	if !strings.Contains(out, "You are an AI assistant representing James Nicholas") {
		t.Error("persona preamble missing")
	}
	// Full knowledge base must be embedded.
	for _, substr := range []string{"TECHNICAL SKILLS:", "Solo Adventuring with AI", kb.Personal.Email} {
		if !strings.Contains(out, substr) {
			t.Errorf("knowledge base rendering missing %q", substr)
		}
	}
}

func TestAssemble_HistoryWindow(t *testing.T) {
	a := New(5)
	history := makeHistory(7)

	out := a.Assemble(knowledge.Default(), "snippet", history, "q", "")

	if strings.Contains(out, "turn 1\n") || strings.Contains(out, "turn 2\n") {
		t.Error("turns beyond the window should be dropped")
	}
	// Turns 3-7 present, in original order.
	last := -1
	for i := 3; i <= 7; i++ {
		idx := strings.Index(out, fmt.Sprintf("turn %d", i))
		if idx < 0 {
			t.Fatalf("turn %d missing from prompt", i)
		}
		if idx < last {
			t.Errorf("turn %d out of order", i)
		}
		last = idx
	}
}

func TestAssemble_HistoryRoleLabels(t *testing.T) {
	a := New(5)
	history := []conversation.Turn{
		{Role: conversation.RoleUser, Content: "hello"},
		{Role: conversation.RoleAssistant, Content: "hi there"},
	}

	out := a.Assemble(knowledge.Default(), "s", history, "q", "")

	if !strings.Contains(out, "Human: hello\n") {
		t.Error("user turn not labeled Human")
	}
	if !strings.Contains(out, "Assistant: hi there\n") {
		t.Error("assistant turn not labeled Assistant")
	}
}

func TestAssemble_OverrideReplacesPersonaBlock(t *testing.T) {
	a := New(0)
	override := "You are a pirate-themed assistant for a very different site."

	out := a.Assemble(knowledge.Default(), "snippet", nil, "q", override)

	if !strings.Contains(out, override) {
		t.Error("override text missing from prompt")
	}
	if strings.Contains(out, "You are an AI assistant representing") {
		t.Error("default persona preamble must not appear when an override is supplied")
	}
	if strings.Contains(out, "TECHNICAL SKILLS:") {
		t.Error("default knowledge rendering must not appear when an override is supplied")
	}
	// Snippet, history label, and question survive the override.
	if !strings.Contains(out, "snippet") || !strings.Contains(out, "Current question: q") {
		t.Error("override must not drop the snippet or question")
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	a := New(0)
	kb := knowledge.Default()
	history := makeHistory(3)

	first := a.Assemble(kb, "s", history, "q", "")
	second := a.Assemble(kb, "s", history, "q", "")
	if first != second {
		t.Error("Assemble is not deterministic for identical inputs")
	}
}

func TestNew_DefaultWindow(t *testing.T) {
	if a := New(0); a.Window != 5 {
		t.Errorf("default window = %d, want 5", a.Window)
	}
	if a := New(-3); a.Window != 5 {
		t.Errorf("negative window = %d, want 5", a.Window)
	}
	if a := New(10); a.Window != 10 {
		t.Errorf("explicit window = %d, want 10", a.Window)
	}
}
