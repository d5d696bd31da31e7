package knowledge

import (
	"fmt"
	"strings"
)

// topicRule pairs a keyword set with a snippet generator. Rules are evaluated
// in declaration order and the first match wins; specific topics come before
// the generic fallback so ambiguous queries favor the high-value answer.
type topicRule struct {
	name     string
	keywords []string
	snippet  func(kb Base) string
}

func topicRules() []topicRule {
	return []topicRule{
		{name: "experience", keywords: []string{"experience", "work", "career"}, snippet: experienceSnippet},
		{name: "skills", keywords: []string{"skill", "technology", "tech"}, snippet: skillsSnippet},
		{name: "projects", keywords: []string{"project", "portfolio"}, snippet: projectsSnippet},
		{name: "education", keywords: []string{"education", "learning"}, snippet: educationSnippet},
		{name: "contact", keywords: []string{"contact", "hire", "available"}, snippet: contactSnippet},
	}
}

// SelectContext returns a short prose snippet summarizing the facet of the
// knowledge base most relevant to the query. Pure: no I/O, deterministic for
// a given (Base, query) pair.
func SelectContext(kb Base, query string) string {
	lower := strings.ToLower(query)
	for _, rule := range topicRules() {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.snippet(kb)
			}
		}
	}
	return genericSnippet(kb)
}

func experienceSnippet(kb Base) string {
	past := pastEmployers(kb)
	s := fmt.Sprintf("%s has %s and is currently a %s at %s.",
		kb.FirstName(), kb.Personal.Experience, kb.CurrentRole.Position, kb.CurrentRole.Company)
	if len(past) > 0 {
		s += fmt.Sprintf(" Earlier roles include %s.", joinNatural(past))
	}
	return s
}

// pastEmployers returns unique employers from the work history, skipping the
// current company, preserving reverse-chronological order.
func pastEmployers(kb Base) []string {
	seen := map[string]bool{kb.CurrentRole.Company: true}
	var out []string
	for _, e := range kb.WorkExperience {
		if seen[e.Company] {
			continue
		}
		seen[e.Company] = true
		out = append(out, e.Company)
	}
	return out
}

func skillsSnippet(kb Base) string {
	flagship := flagshipSkills(kb, 6)
	areas := make([]string, 0, len(kb.TechnicalSkills))
	for _, a := range kb.TechnicalSkills {
		areas = append(areas, a.Name)
	}
	return fmt.Sprintf("%s specializes in %s, with skills spanning %s.",
		kb.FirstName(), joinNatural(flagship), joinNatural(areas))
}

// flagshipSkills takes the leading entry of each skill area, then second
// entries, until max names are collected. Levels are stripped.
func flagshipSkills(kb Base, max int) []string {
	var out []string
	for depth := 0; len(out) < max; depth++ {
		added := false
		for _, area := range kb.TechnicalSkills {
			if depth >= len(area.Skills) || len(out) >= max {
				continue
			}
			out = append(out, stripLevel(area.Skills[depth]))
			added = true
		}
		if !added {
			break
		}
	}
	return out
}

// stripLevel turns "React (Advanced)" into "React".
func stripLevel(s string) string {
	if i := strings.Index(s, " ("); i > 0 {
		return s[:i]
	}
	return s
}

func projectsSnippet(kb Base) string {
	n := len(kb.Projects)
	if n == 0 {
		return fmt.Sprintf("%s's project portfolio is available on GitHub: %s.", kb.FirstName(), kb.Personal.GitHub)
	}
	if n > 3 {
		n = 3
	}
	var entries []string
	for _, p := range kb.Projects[:n] {
		entries = append(entries, fmt.Sprintf("%s (%s)", p.Name, p.Description))
	}
	return fmt.Sprintf("%s has built several notable projects including %s.",
		kb.FirstName(), joinNatural(entries))
}

func educationSnippet(kb Base) string {
	s := fmt.Sprintf("%s has an %s in %s from %s.",
		kb.FirstName(), kb.Education.Degree, kb.Education.Field, kb.Education.School)
	if len(kb.Certifications) > 0 {
		s += fmt.Sprintf(" Certifications include %s.", joinNatural(kb.Certifications[:min(2, len(kb.Certifications))]))
	}
	return s
}

func contactSnippet(kb Base) string {
	s := fmt.Sprintf("%s is based in %s and can be reached at %s or %s.",
		kb.FirstName(), kb.Personal.Location, kb.Personal.Email, kb.Personal.Phone)
	if kb.Personal.LinkedIn != "" {
		s += fmt.Sprintf(" LinkedIn: %s.", kb.Personal.LinkedIn)
	}
	return s
}

func genericSnippet(kb Base) string {
	return fmt.Sprintf("%s is a %s with %s, currently at %s. %s",
		kb.Personal.Name, kb.Personal.Title, kb.Personal.Experience,
		kb.CurrentRole.Company, kb.Approach.Philosophy)
}

// joinNatural joins items with commas and a final "and".
func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
