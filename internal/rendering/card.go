package rendering

import (
	"regexp"

	"github.com/jonathan/profile-card/internal/config"
	"github.com/jonathan/profile-card/internal/profile"
	"github.com/jonathan/profile-card/internal/types"
)

// Card dimensions in CSS pixels.
const (
	CardWidth  = 400
	CardHeight = 530
)

// Watermark is printed in the bottom-right corner of every card.
const Watermark = "LinkedIn FC"

// DefaultSkillLabel replaces an empty skill label.
const DefaultSkillLabel = "Skill"

var unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ClampCard returns a copy of card with the rating and skill scores clamped
// and rounded into the configured ranges and the skill list cut to
// limits.SkillCount. Card data comes back from the client after editing, so
// it is never trusted to still satisfy the extraction bounds.
func ClampCard(card types.CardData, limits config.Limits) types.CardData {
	out := card
	out.OverallRating = float64(profile.ClampRound(card.OverallRating, limits.RatingMin, limits.RatingMax))

	n := len(card.Skills)
	if n > limits.SkillCount {
		n = limits.SkillCount
	}
	out.Skills = make([]types.CardSkill, 0, n)
	for _, s := range card.Skills[:n] {
		label := s.Label
		if label == "" {
			label = DefaultSkillLabel
		}
		out.Skills = append(out.Skills, types.CardSkill{
			Label: label,
			Score: float64(profile.ClampRound(s.Score, limits.SkillScoreMin, limits.SkillScoreMax)),
		})
	}
	return out
}

// SafeFilename returns the download name for a card belonging to name.
// Every character outside [a-zA-Z0-9] becomes an underscore.
func SafeFilename(name string) string {
	return unsafeFilenameRe.ReplaceAllString(name, "_") + "_linkedin_fc.png"
}
