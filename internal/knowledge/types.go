package knowledge

// Base is the structured record of biographical and professional facts the
// assistant is grounded on. It is read-only input to every downstream step:
// the selector and composer never mutate it.
type Base struct {
	Personal        Personal
	CurrentRole     Role
	WorkExperience  []Experience
	TechnicalSkills []SkillArea
	Projects        []Project
	Education       Education
	Certifications  []string
	Interests       []string
	VolunteerWork   []Volunteer
	Approach        Approach
}

// Personal holds identity and contact fields.
type Personal struct {
	Name       string
	Title      string
	Location   string
	Phone      string
	Email      string
	Experience string // free text, e.g. "6+ years React, 15+ years total"
	GitHub     string
	LinkedIn   string
}

// Role describes the current position in detail.
type Role struct {
	Company          string
	Position         string
	Duration         string // "Sep 2022 - Present"
	Location         string
	Responsibilities []string
}

// Experience is one entry in the reverse-chronological work history.
// Company plus Duration form the natural identity of an entry.
type Experience struct {
	Company      string
	Position     string
	Duration     string
	Achievements []string
}

// SkillArea groups skills under an area name ("languages", "frontend", ...).
// Entries are "Name (Level)" strings; the level is advisory, not validated.
type SkillArea struct {
	Name   string
	Skills []string
}

// Project is a portfolio project entry.
type Project struct {
	Name         string
	Description  string
	Technologies []string
	Highlights   []string
}

// Education describes the degree record.
type Education struct {
	Degree     string
	Field      string
	School     string
	Duration   string
	Additional []string
}

// Volunteer is a free-text volunteer work record.
type Volunteer struct {
	Organization string
	Duration     string
	Role         string
}

// Approach captures working style and specialties.
type Approach struct {
	Strengths   []string
	Specialties []string
	Philosophy  string
}
