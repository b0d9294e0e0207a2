// Package types provides type definitions for structured data used throughout the profile-card system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Profile is the validated career record extracted from a LinkedIn PDF.
// Every string field except the optional entry fields is non-empty once built
// by the profile package.
type Profile struct {
	Name               string           `json:"name"`
	Photo              *string          `json:"photo"` // always nil at extraction time
	CurrentRole        string           `json:"currentRole"`
	CurrentCompany     string           `json:"currentCompany"`
	Location           string           `json:"location"`
	OverallRating      int              `json:"overallRating"`
	Summary            string           `json:"summary"`
	CareerHistory      []CareerEntry    `json:"careerHistory"`
	Education          []EducationEntry `json:"education"`
	Skills             []SkillEntry     `json:"skills"`
	LinkedinConfidence float64          `json:"linkedinConfidence"`
}

// CareerEntry is a single role, most recent first by convention.
type CareerEntry struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    *string `json:"location,omitempty"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Description string  `json:"description"`
}

// EducationEntry is a single school or degree.
type EducationEntry struct {
	Institution string  `json:"institution"`
	Degree      string  `json:"degree"`
	StartYear   *string `json:"startYear,omitempty"`
	EndYear     *string `json:"endYear,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SkillEntry is a labelled skill score.
type SkillEntry struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// Padding skill values used to fill short skill lists.
const (
	SentinelSkillLabel = "General"
	SentinelSkillScore = 50
)

// SentinelSkill returns the placeholder skill used to pad short skill lists.
func SentinelSkill() SkillEntry {
	return SkillEntry{Label: SentinelSkillLabel, Score: SentinelSkillScore}
}

// IsSentinel reports whether the skill exactly equals the padding placeholder.
func (s SkillEntry) IsSentinel() bool {
	return s.Label == SentinelSkillLabel && s.Score == SentinelSkillScore
}
