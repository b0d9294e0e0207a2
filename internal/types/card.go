//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// CardData is the subset of a profile shown on the rendered card. It arrives
// from the client after user edits, so it is re-validated before rendering.
type CardData struct {
	Name           string      `json:"name" validate:"required"`
	Photo          *string     `json:"photo"`
	CurrentRole    string      `json:"currentRole"`
	CurrentCompany string      `json:"currentCompany"`
	OverallRating  float64     `json:"overallRating"`
	Skills         []CardSkill `json:"skills" validate:"required"`
}

// CardSkill is a skill as submitted for rendering; the score may be fractional
// or out of range until clamped.
type CardSkill struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// GenerateCardRequest is the body of the card endpoint.
type GenerateCardRequest struct {
	CardData *CardData `json:"cardData" validate:"required"`
}

// Validate validates the GenerateCardRequest using the validator.
func (r *GenerateCardRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CardFromProfile builds card data from an extracted profile.
func CardFromProfile(p *Profile) CardData {
	skills := make([]CardSkill, 0, len(p.Skills))
	for _, s := range p.Skills {
		skills = append(skills, CardSkill{Label: s.Label, Score: float64(s.Score)})
	}
	return CardData{
		Name:           p.Name,
		Photo:          p.Photo,
		CurrentRole:    p.CurrentRole,
		CurrentCompany: p.CurrentCompany,
		OverallRating:  float64(p.OverallRating),
		Skills:         skills,
	}
}
