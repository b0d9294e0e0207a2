package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/profile-card/internal/types"
)

func strPtr(s string) *string { return &s }

func sampleProfile() *types.Profile {
	return &types.Profile{
		Name:           "Ada Lovelace",
		CurrentRole:    "Senior Product Manager",
		CurrentCompany: "Analytical Engines",
		Location:       "London",
		OverallRating:  87,
		CareerHistory: []types.CareerEntry{
			{Title: "Senior Product Manager", Company: "Analytical Engines", StartDate: "Jan 2020", EndDate: "Mar 2021"},
		},
		Education: []types.EducationEntry{
			{Institution: "Home Tutoring", Degree: "Mathematics", StartYear: strPtr("1830"), EndYear: strPtr("1835")},
		},
		Skills: []types.SkillEntry{
			{Label: "Algorithms", Score: 97},
			types.SentinelSkill(),
		},
		LinkedinConfidence: 0.9,
	}
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(sampleProfile())
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED PROFILE")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "(PM)")
	assert.Contains(t, output, "87 CDM (Elite)")
	assert.Contains(t, output, "90% confidence")
	assert.Contains(t, output, "1 yr 2 mos")
	assert.Contains(t, output, "Mathematics (1830 – 1835)")
	assert.Contains(t, output, "General (placeholder)")
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(nil)
	assert.Empty(t, buf.String())
}

func TestPrintProfile_TruncatesCareer(t *testing.T) {
	profile := sampleProfile()
	for i := 0; i < 7; i++ {
		profile.CareerHistory = append(profile.CareerHistory, types.CareerEntry{Title: "Engineer", Company: "Co", StartDate: "2010", EndDate: "2011"})
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(profile)
	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintWarnings(t *testing.T) {
	tests := []struct {
		name     string
		warnings []types.Warning
		want     []string
	}{
		{name: "none", warnings: nil},
		{
			name: "both",
			warnings: []types.Warning{
				{Code: types.WarningLowConfidence, Message: "This PDF may not be a LinkedIn profile export."},
				{Code: types.WarningSparseProfile, Message: "Your profile appears to have limited skills data."},
			},
			want: []string{"QUALITY WARNINGS", "LOW_CONFIDENCE", "SPARSE_PROFILE", "limited skills data."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintWarnings(tt.warnings)
			if len(tt.want) == 0 {
				assert.Empty(t, buf.String())
				return
			}
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestPrintCard(t *testing.T) {
	var buf bytes.Buffer
	card := types.CardData{
		Name: "Ada", CurrentRole: "CEO", CurrentCompany: "Engines", OverallRating: 95,
		Skills: []types.CardSkill{{Label: "Vision", Score: 99}},
	}
	NewPrinter(&buf).PrintCard(card, "Ada_linkedin_fc.png", 1234)

	output := buf.String()
	assert.Contains(t, output, "ADA  95 GK")
	assert.Contains(t, output, "VISION")
	assert.Contains(t, output, "Ada_linkedin_fc.png (1234 bytes)")
}

func TestPrintBox_LinesFitWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.printBox("T", strings.Repeat("é", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestWrap(t *testing.T) {
	lines := wrap("aaa bbb ccc ddd", 7)
	assert.Equal(t, []string{"aaa bbb", "ccc ddd"}, lines)
	assert.Nil(t, wrap("", 10))
}
