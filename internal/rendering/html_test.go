package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-card/internal/types"
)

func strPtr(s string) *string { return &s }

func sampleCard() types.CardData {
	return types.CardData{
		Name:           "Ada Lovelace",
		CurrentRole:    "VP Engineering",
		CurrentCompany: "analytical engines",
		OverallRating:  91,
		Skills: []types.CardSkill{
			{Label: "Algorithms", Score: 97},
			{Label: "Writing", Score: 88},
		},
	}
}

func parseCard(t *testing.T, card types.CardData, fonts *FontSet) *goquery.Document {
	t.Helper()
	html, err := BuildCardHTML(card, fonts)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestBuildCardHTML_Layout(t *testing.T) {
	doc := parseCard(t, sampleCard(), nil)

	assert.Equal(t, 1, doc.Find("#card").Length())
	assert.Equal(t, "91", doc.Find(".rating").Text())
	assert.Equal(t, "CB", doc.Find(".position").Text())
	assert.Equal(t, "World Class", doc.Find(".tier").Text())
	assert.Equal(t, "A", doc.Find(".badge").Text())
	assert.Equal(t, "ADA LOVELACE", doc.Find(".name").Text())
	assert.Equal(t, "VP Engineering · analytical engines", doc.Find(".role").Text())
	assert.Equal(t, "AL", doc.Find(".initials").Text())
	assert.Equal(t, 0, doc.Find(".photo img").Length())
	assert.Equal(t, "LinkedIn FC", doc.Find(".watermark").Text())

	skills := doc.Find(".skill")
	require.Equal(t, 2, skills.Length())
	assert.Equal(t, "97", skills.First().Find(".score").Text())
	assert.Equal(t, "Algorithms", skills.First().Find(".label").Text())
}

func TestBuildCardHTML_Photo(t *testing.T) {
	tests := []struct {
		name     string
		photo    *string
		wantImg  bool
		wantSrc  string
		initials string
	}{
		{name: "no photo", photo: nil, initials: "AL"},
		{name: "inline image", photo: strPtr("data:image/png;base64,iVBORw0KGgo="), wantImg: true, wantSrc: "data:image/png;base64,iVBORw0KGgo="},
		{name: "remote url ignored", photo: strPtr("https://example.com/me.png"), initials: "AL"},
		{name: "script url ignored", photo: strPtr("javascript:alert(1)"), initials: "AL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := sampleCard()
			card.Photo = tt.photo
			doc := parseCard(t, card, nil)

			img := doc.Find(".photo img")
			if tt.wantImg {
				require.Equal(t, 1, img.Length())
				src, _ := img.Attr("src")
				assert.Equal(t, tt.wantSrc, src)
				return
			}
			assert.Equal(t, 0, img.Length())
			assert.Equal(t, tt.initials, doc.Find(".initials").Text())
		})
	}
}

func TestBuildCardHTML_EscapesText(t *testing.T) {
	card := sampleCard()
	card.Name = `<script>alert("x")</script>`
	card.Skills = []types.CardSkill{{Label: "<b>bold</b>", Score: 50}}

	html, err := BuildCardHTML(card, nil)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>bold</b>")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, `<SCRIPT>ALERT("X")</SCRIPT>`, doc.Find(".name").Text())
	assert.Equal(t, "<b>bold</b>", doc.Find(".label").Text())
}

func TestBuildCardHTML_EmbedsFonts(t *testing.T) {
	fonts := &FontSet{Faces: []FontFace{{Weight: 700, Data: []byte("ttf")}}}
	doc := parseCard(t, sampleCard(), fonts)

	css := doc.Find("style").Text()
	assert.Contains(t, css, `font-family: "Geist"`)
	assert.Contains(t, css, "font-weight: 700")
	assert.Contains(t, css, "data:font/ttf;base64,dHRm")
}

func TestBuildCardHTML_TierFallback(t *testing.T) {
	card := sampleCard()
	card.OverallRating = 40
	doc := parseCard(t, card, nil)
	assert.Equal(t, "Rising Star", doc.Find(".tier").Text())
}
