package prompts

import (
	"strconv"

	"github.com/jonathan/profile-card/internal/config"
)

// ExtractionPromptVersion identifies the extraction instruction text. Bump it
// whenever extraction.json changes; the response contract changes with it.
const ExtractionPromptVersion = "profile-extraction/v1"

const (
	extractionFile    = "extraction.json"
	extractionKey     = "extract-profile"
	extractionUserKey = "extract-profile-user"
)

// ExtractionPrompt returns the system instruction for profile extraction with
// the rating, score and skill-count bounds from limits filled in. Equal limits
// always produce byte-identical text.
func ExtractionPrompt(limits config.Limits) string {
	return Format(MustGet(extractionFile, extractionKey), map[string]string{
		"RatingMin":     strconv.Itoa(limits.RatingMin),
		"RatingMax":     strconv.Itoa(limits.RatingMax),
		"MaxSkills":     strconv.Itoa(limits.SkillCount),
		"SkillScoreMin": strconv.Itoa(limits.SkillScoreMin),
		"SkillScoreMax": strconv.Itoa(limits.SkillScoreMax),
	})
}

// ExtractionUserText is the fixed user turn sent alongside the document.
func ExtractionUserText() string {
	return MustGet(extractionFile, extractionUserKey)
}
