//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_JSONShape(t *testing.T) {
	loc := "Berlin"
	profile := Profile{
		Name:           "Ada Lovelace",
		CurrentRole:    "Engineer",
		CurrentCompany: "Acme",
		Location:       "London",
		OverallRating:  80,
		Summary:        "A pioneer.",
		CareerHistory: []CareerEntry{
			{Title: "Engineer", Company: "Acme", Location: &loc, StartDate: "Jan 2020", EndDate: "Present"},
			{Title: "Analyst", Company: "Babbage", StartDate: "2018", EndDate: "2019"},
		},
		Education:          []EducationEntry{{Institution: "UCL", Degree: "BSc Mathematics"}},
		Skills:             []SkillEntry{{Label: "Math", Score: 90}},
		LinkedinConfidence: 0.9,
	}

	jsonBytes, err := json.Marshal(profile)
	require.NoError(t, err)
	body := string(jsonBytes)

	assert.Contains(t, body, `"photo":null`)
	assert.Contains(t, body, `"currentRole":"Engineer"`)
	assert.Contains(t, body, `"linkedinConfidence":0.9`)
	assert.Contains(t, body, `"location":"Berlin"`)
	assert.NotContains(t, body, `"startYear"`, "absent optional education fields are omitted")

	var entries []map[string]any
	raw := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(jsonBytes, &raw))
	require.NoError(t, json.Unmarshal(raw["careerHistory"], &entries))
	_, hasLocation := entries[1]["location"]
	assert.False(t, hasLocation, "absent career location is omitted")
}

func TestSkillEntry_IsSentinel(t *testing.T) {
	tests := []struct {
		name  string
		skill SkillEntry
		want  bool
	}{
		{name: "padding value", skill: SentinelSkill(), want: true},
		{name: "same label other score", skill: SkillEntry{Label: "General", Score: 51}, want: false},
		{name: "same score other label", skill: SkillEntry{Label: "general", Score: 50}, want: false},
		{name: "real skill", skill: SkillEntry{Label: "Go", Score: 80}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.skill.IsSentinel())
		})
	}
}

func TestParsePDFResponse_OmitsEmptyWarnings(t *testing.T) {
	resp := ParsePDFResponse{Success: true, Data: &Profile{Name: "A"}}
	jsonBytes, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(jsonBytes), "warnings")

	resp.Warnings = []Warning{{Code: WarningSparseProfile, Message: "m"}}
	jsonBytes, err = json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"warnings":[{"code":"SPARSE_PROFILE","message":"m"}]`)
}
