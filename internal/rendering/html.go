package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/profile-card/internal/cardfields"
	"github.com/jonathan/profile-card/internal/types"
)

//go:embed templates/card.html.tmpl
var templateFS embed.FS

var (
	cardTemplate     *template.Template
	cardTemplateErr  error
	cardTemplateOnce sync.Once
)

// cardView is the data the card template executes against. Every field is
// final display text.
type cardView struct {
	Width          int
	Height         int
	FontFaces      template.CSS
	Rating         int
	Position       string
	TierLabel      string
	TierColor      string
	CompanyInitial string
	Photo          template.URL
	Initials       string
	Name           string
	Role           string
	Company        string
	Skills         []skillView
	Watermark      string
}

type skillView struct {
	Score int
	Label string
}

func parseCardTemplate() (*template.Template, error) {
	cardTemplateOnce.Do(func() {
		tmpl, err := template.ParseFS(templateFS, "templates/card.html.tmpl")
		if err != nil {
			cardTemplateErr = &TemplateError{Message: "failed to parse card template", Cause: err}
			return
		}
		cardTemplate = tmpl
	})
	return cardTemplate, cardTemplateErr
}

// BuildCardHTML lays out card as a standalone HTML document whose #card
// element is exactly CardWidth x CardHeight. card is expected to have been
// through ClampCard. Only data:image/ photo URLs are embedded; anything else
// falls back to initials so the page never loads remote content.
func BuildCardHTML(card types.CardData, fonts *FontSet) (string, error) {
	tmpl, err := parseCardTemplate()
	if err != nil {
		return "", err
	}

	rating := int(card.OverallRating)
	tier := cardfields.RatingTier(rating)

	view := cardView{
		Width:          CardWidth,
		Height:         CardHeight,
		FontFaces:      fonts.CSS(),
		Rating:         rating,
		Position:       cardfields.Position(card.CurrentRole),
		TierLabel:      tier.Label,
		TierColor:      tier.Color,
		CompanyInitial: cardfields.CompanyInitial(card.CurrentCompany),
		Initials:       cardfields.Initials(card.Name),
		Name:           strings.ToUpper(card.Name),
		Role:           card.CurrentRole,
		Company:        card.CurrentCompany,
		Watermark:      Watermark,
	}
	if card.Photo != nil && strings.HasPrefix(*card.Photo, "data:image/") {
		view.Photo = template.URL(*card.Photo) //nolint:gosec // restricted to inline image data
	}
	for _, s := range card.Skills {
		view.Skills = append(view.Skills, skillView{Score: int(s.Score), Label: s.Label})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", &TemplateError{Message: "failed to execute card template", Cause: err}
	}
	return buf.String(), nil
}
