// Package profile converts a decoded model reply into a validated Profile.
//
// Normalization is total over sloppy input: out-of-range numbers are clamped,
// optional members get defaults, and the skill list is cut or padded to a
// fixed length. Only structurally required members that are absent or of the
// wrong type cause a *ValidationError, and checks run in a fixed order so the
// first problem is the one reported.
package profile

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/profile-card/internal/config"
	"github.com/jonathan/profile-card/internal/jsontree"
	"github.com/jonathan/profile-card/internal/types"
)

// RequiredStringFields must be non-empty strings after trimming, checked in
// this order.
var RequiredStringFields = []string{"name", "currentRole", "currentCompany", "location", "summary"}

const (
	unknown            = "Unknown"
	defaultSkillScore  = 50
	defaultConfidence  = 0.5
	defaultDescription = ""
)

// Normalizer applies one set of limits.
type Normalizer struct {
	limits config.Limits
}

// NewNormalizer creates a Normalizer for limits.
func NewNormalizer(limits config.Limits) *Normalizer {
	return &Normalizer{limits: limits}
}

// Normalize validates v and returns a Profile that satisfies every bound in
// the configured limits. No partial Profile is returned on error.
func (n *Normalizer) Normalize(v jsontree.Value) (*types.Profile, error) {
	if v.Kind() != jsontree.Map {
		return nil, &ValidationError{Message: "Parsed response is not an object."}
	}

	required := make(map[string]string, len(RequiredStringFields))
	for _, field := range RequiredStringFields {
		s, ok := stringMember(v, field)
		trimmed := strings.TrimSpace(s)
		if !ok || trimmed == "" {
			return nil, &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("Missing or empty required field: %q", field),
			}
		}
		required[field] = trimmed
	}

	rating, ok := numberMember(v, "overallRating")
	if !ok {
		return nil, &ValidationError{Field: "overallRating", Message: "overallRating must be a number."}
	}

	career, ok := listMember(v, "careerHistory")
	if !ok {
		return nil, &ValidationError{Field: "careerHistory", Message: "careerHistory must be an array."}
	}

	education, ok := listMember(v, "education")
	if !ok {
		return nil, &ValidationError{Field: "education", Message: "education must be an array."}
	}

	skills, ok := listMember(v, "skills")
	if !ok {
		return nil, &ValidationError{Field: "skills", Message: "skills must be an array."}
	}

	confidence := defaultConfidence
	if c, ok := numberMember(v, "linkedinConfidence"); ok {
		confidence = clamp(c, 0, 1)
	}

	return &types.Profile{
		Name:               required["name"],
		Photo:              nil,
		CurrentRole:        required["currentRole"],
		CurrentCompany:     required["currentCompany"],
		Location:           required["location"],
		OverallRating:      ClampRound(rating, n.limits.RatingMin, n.limits.RatingMax),
		Summary:            required["summary"],
		CareerHistory:      normalizeCareer(career),
		Education:          normalizeEducation(education),
		Skills:             n.normalizeSkills(skills),
		LinkedinConfidence: confidence,
	}, nil
}

func normalizeCareer(items []jsontree.Value) []types.CareerEntry {
	entries := make([]types.CareerEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, types.CareerEntry{
			Title:       stringOr(item, "title", unknown),
			Company:     stringOr(item, "company", unknown),
			Location:    optionalString(item, "location"),
			StartDate:   stringOr(item, "startDate", unknown),
			EndDate:     stringOr(item, "endDate", unknown),
			Description: stringOr(item, "description", defaultDescription),
		})
	}
	return entries
}

func normalizeEducation(items []jsontree.Value) []types.EducationEntry {
	entries := make([]types.EducationEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, types.EducationEntry{
			Institution: stringOr(item, "institution", unknown),
			Degree:      stringOr(item, "degree", unknown),
			StartYear:   optionalString(item, "startYear"),
			EndYear:     optionalString(item, "endYear"),
			Description: optionalString(item, "description"),
		})
	}
	return entries
}

func (n *Normalizer) normalizeSkills(items []jsontree.Value) []types.SkillEntry {
	count := n.limits.SkillCount
	skills := make([]types.SkillEntry, 0, count)

	for _, item := range items {
		if len(skills) == count {
			break
		}
		score, ok := numberMember(item, "score")
		if !ok {
			score = defaultSkillScore
		}
		skills = append(skills, types.SkillEntry{
			Label: stringOr(item, "label", unknown),
			Score: ClampRound(score, n.limits.SkillScoreMin, n.limits.SkillScoreMax),
		})
	}

	for len(skills) < count {
		skills = append(skills, types.SentinelSkill())
	}
	return skills
}

// ClampRound clamps x into [lo, hi] and rounds to the nearest integer.
func ClampRound(x float64, lo, hi int) int {
	return int(math.Round(clamp(x, float64(lo), float64(hi))))
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}

// Member accessors. A non-object v simply has no members, so malformed list
// elements fall through to defaults.

func stringMember(v jsontree.Value, key string) (string, bool) {
	child, ok := v.Get(key)
	if !ok {
		return "", false
	}
	return child.Str()
}

func numberMember(v jsontree.Value, key string) (float64, bool) {
	child, ok := v.Get(key)
	if !ok {
		return 0, false
	}
	return child.Number()
}

func listMember(v jsontree.Value, key string) ([]jsontree.Value, bool) {
	child, ok := v.Get(key)
	if !ok {
		return nil, false
	}
	return child.Items()
}

func stringOr(v jsontree.Value, key, fallback string) string {
	if s, ok := stringMember(v, key); ok {
		return s
	}
	return fallback
}

func optionalString(v jsontree.Value, key string) *string {
	if s, ok := stringMember(v, key); ok {
		return &s
	}
	return nil
}
