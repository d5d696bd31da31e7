package knowledge

import (
	"strings"
	"testing"
)

func TestRender_Complete(t *testing.T) {
	kb := Default()
	out := Render(kb)

	// Every top-level facet must be present in the rendering.
	for _, substr := range []string{
		"PERSONAL:", "CURRENT ROLE:", "WORK EXPERIENCE:", "TECHNICAL SKILLS:",
		"PROJECTS:", "EDUCATION:", "CERTIFICATIONS:", "INTERESTS:",
		"VOLUNTEER WORK:", "PROFESSIONAL APPROACH:",
		kb.Personal.Name, kb.Personal.Email, kb.CurrentRole.Company,
		"Solo Adventuring with AI", "Portland Community College",
	} {
		if !strings.Contains(out, substr) {
			t.Errorf("Render missing %q", substr)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	kb := Default()
	if Render(kb) != Render(kb) {
		t.Error("Render is not deterministic for identical input")
	}
}

func TestRender_WorkHistoryOrder(t *testing.T) {
	out := Render(Default())
	// Reverse-chronological: Cavallo before Oracle before Webtrends.
	cavallo := strings.Index(out, "Cavallo")
	webtrends := strings.Index(out, "Webtrends")
	if cavallo < 0 || webtrends < 0 || cavallo > webtrends {
		t.Errorf("work history out of order: cavallo=%d webtrends=%d", cavallo, webtrends)
	}
}

func TestFirstName(t *testing.T) {
	kb := Default()
	if got := kb.FirstName(); got != "James" {
		t.Errorf("FirstName = %q, want James", got)
	}

	empty := Base{}
	if got := empty.FirstName(); got != "" {
		t.Errorf("FirstName on empty base = %q, want empty", got)
	}
}
