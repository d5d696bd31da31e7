package knowledge

import (
	"fmt"
	"strings"
)

// Render produces a complete, human-readable serialization of the knowledge
// base for injection into a model prompt. Section order and field order are
// fixed, so identical input always renders to identical output.
func Render(kb Base) string {
	var sb strings.Builder

	sb.WriteString("PERSONAL:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", kb.Personal.Name)
	fmt.Fprintf(&sb, "- Title: %s\n", kb.Personal.Title)
	fmt.Fprintf(&sb, "- Location: %s\n", kb.Personal.Location)
	fmt.Fprintf(&sb, "- Email: %s, Phone: %s\n", kb.Personal.Email, kb.Personal.Phone)
	fmt.Fprintf(&sb, "- Experience: %s\n", kb.Personal.Experience)
	if kb.Personal.GitHub != "" {
		fmt.Fprintf(&sb, "- GitHub: %s\n", kb.Personal.GitHub)
	}
	if kb.Personal.LinkedIn != "" {
		fmt.Fprintf(&sb, "- LinkedIn: %s\n", kb.Personal.LinkedIn)
	}

	sb.WriteString("\nCURRENT ROLE:\n")
	fmt.Fprintf(&sb, "- %s at %s (%s)\n", kb.CurrentRole.Position, kb.CurrentRole.Company, kb.CurrentRole.Duration)
	for _, r := range kb.CurrentRole.Responsibilities {
		fmt.Fprintf(&sb, "  - %s\n", r)
	}

	sb.WriteString("\nWORK EXPERIENCE:\n")
	for _, e := range kb.WorkExperience {
		fmt.Fprintf(&sb, "- %s, %s (%s)", e.Position, e.Company, e.Duration)
		if len(e.Achievements) > 0 {
			fmt.Fprintf(&sb, ": %s", strings.Join(e.Achievements, "; "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nTECHNICAL SKILLS:\n")
	for _, area := range kb.TechnicalSkills {
		fmt.Fprintf(&sb, "- %s: %s\n", area.Name, strings.Join(area.Skills, ", "))
	}

	sb.WriteString("\nPROJECTS:\n")
	for i, p := range kb.Projects {
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, p.Name, p.Description)
		if len(p.Technologies) > 0 {
			fmt.Fprintf(&sb, "   Technologies: %s\n", strings.Join(p.Technologies, ", "))
		}
		if len(p.Highlights) > 0 {
			fmt.Fprintf(&sb, "   Highlights: %s\n", strings.Join(p.Highlights, "; "))
		}
	}

	sb.WriteString("\nEDUCATION:\n")
	fmt.Fprintf(&sb, "- %s in %s, %s (%s)\n", kb.Education.Degree, kb.Education.Field, kb.Education.School, kb.Education.Duration)
	for _, a := range kb.Education.Additional {
		fmt.Fprintf(&sb, "- %s\n", a)
	}

	if len(kb.Certifications) > 0 {
		sb.WriteString("\nCERTIFICATIONS:\n")
		for _, c := range kb.Certifications {
			fmt.Fprintf(&sb, "- %s\n", c)
		}
	}

	if len(kb.Interests) > 0 {
		sb.WriteString("\nINTERESTS:\n")
		fmt.Fprintf(&sb, "- %s\n", strings.Join(kb.Interests, "; "))
	}

	if len(kb.VolunteerWork) > 0 {
		sb.WriteString("\nVOLUNTEER WORK:\n")
		for _, v := range kb.VolunteerWork {
			fmt.Fprintf(&sb, "- %s, %s (%s)\n", v.Role, v.Organization, v.Duration)
		}
	}

	if kb.Approach.Philosophy != "" || len(kb.Approach.Strengths) > 0 {
		sb.WriteString("\nPROFESSIONAL APPROACH:\n")
		if len(kb.Approach.Strengths) > 0 {
			fmt.Fprintf(&sb, "- Strengths: %s\n", strings.Join(kb.Approach.Strengths, ", "))
		}
		if len(kb.Approach.Specialties) > 0 {
			fmt.Fprintf(&sb, "- Specialties: %s\n", strings.Join(kb.Approach.Specialties, ", "))
		}
		if kb.Approach.Philosophy != "" {
			fmt.Fprintf(&sb, "- Philosophy: %s\n", kb.Approach.Philosophy)
		}
	}

	return sb.String()
}

// FirstName returns the first word of the represented individual's name,
// used when snippets and fallbacks refer to them informally.
func (kb Base) FirstName() string {
	fields := strings.Fields(kb.Personal.Name)
	if len(fields) == 0 {
		return kb.Personal.Name
	}
	return fields[0]
}
