package portfolio

import (
	"fmt"
	"strings"

	"github.com/wastrilith2k/portfolio-assistant/internal/knowledge"
)

// Profile is the editable site-owner record, one document per deployment.
type Profile struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Location   string `json:"location"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Experience string `json:"experience"`
	ResumeURL  string `json:"resumeUrl,omitempty"`
	GitHub     string `json:"github,omitempty"`
	LinkedIn   string `json:"linkedin,omitempty"`
}

// Skill is one entry in the skills inventory.
type Skill struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    string `json:"level"` // Beginner/Intermediate/Advanced/Expert, advisory only
}

// Project is one portfolio project document.
type Project struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Highlights   []string `json:"highlights,omitempty"`
	RepoURL      string   `json:"repoUrl,omitempty"`
	LiveURL      string   `json:"liveUrl,omitempty"`
}

// DefaultProfile derives the static default profile from the built-in
// knowledge base.
func DefaultProfile() Profile {
	kb := knowledge.Default()
	return Profile{
		Name:       kb.Personal.Name,
		Title:      kb.Personal.Title,
		Summary:    kb.Approach.Philosophy,
		Location:   kb.Personal.Location,
		Email:      kb.Personal.Email,
		Phone:      kb.Personal.Phone,
		Experience: kb.Personal.Experience,
		ResumeURL:  "/resume.pdf",
		GitHub:     kb.Personal.GitHub,
		LinkedIn:   kb.Personal.LinkedIn,
	}
}

// DefaultSkills flattens the built-in skill areas into individual records.
func DefaultSkills() []Skill {
	var out []Skill
	for _, area := range knowledge.Default().TechnicalSkills {
		for _, s := range area.Skills {
			name, level := splitLevel(s)
			out = append(out, Skill{Name: name, Category: area.Name, Level: level})
		}
	}
	return out
}

// DefaultProjects returns the built-in project list.
func DefaultProjects() []Project {
	var out []Project
	for _, p := range knowledge.Default().Projects {
		out = append(out, Project{
			Title:        p.Name,
			Description:  p.Description,
			Technologies: p.Technologies,
			Highlights:   p.Highlights,
		})
	}
	return out
}

// splitLevel parses "React (Advanced)" into ("React", "Advanced").
func splitLevel(s string) (name, level string) {
	open := strings.Index(s, " (")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return s, ""
	}
	return s[:open], s[open+2 : len(s)-1]
}

// applyProfile overlays the stored profile onto the knowledge base.
func applyProfile(kb *knowledge.Base, p Profile) {
	kb.Personal = knowledge.Personal{
		Name:       p.Name,
		Title:      p.Title,
		Location:   p.Location,
		Phone:      p.Phone,
		Email:      p.Email,
		Experience: p.Experience,
		GitHub:     p.GitHub,
		LinkedIn:   p.LinkedIn,
	}
	if p.Summary != "" {
		kb.Approach.Philosophy = p.Summary
	}
}

// skillAreas groups skill records into ordered areas, preserving the order in
// which categories first appear.
func skillAreas(skills []Skill) []knowledge.SkillArea {
	index := make(map[string]int)
	var areas []knowledge.SkillArea
	for _, s := range skills {
		entry := s.Name
		if s.Level != "" {
			entry = fmt.Sprintf("%s (%s)", s.Name, s.Level)
		}
		i, ok := index[s.Category]
		if !ok {
			i = len(areas)
			index[s.Category] = i
			areas = append(areas, knowledge.SkillArea{Name: s.Category})
		}
		areas[i].Skills = append(areas[i].Skills, entry)
	}
	return areas
}

// knowledgeProjects converts project records into knowledge-base entries.
func knowledgeProjects(projects []Project) []knowledge.Project {
	var out []knowledge.Project
	for _, p := range projects {
		out = append(out, knowledge.Project{
			Name:         p.Title,
			Description:  p.Description,
			Technologies: p.Technologies,
			Highlights:   p.Highlights,
		})
	}
	return out
}
