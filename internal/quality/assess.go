// Package quality inspects a validated profile and produces non-fatal
// warnings about how trustworthy and complete it is.
package quality

import (
	"strings"

	"github.com/jonathan/profile-card/internal/config"
	"github.com/jonathan/profile-card/internal/types"
)

// Thresholds configure the assessor.
type Thresholds struct {
	Confidence          float64
	MinRoles            int
	MinMeaningfulSkills int
}

// ThresholdsFromLimits extracts the assessor settings from limits.
func ThresholdsFromLimits(limits config.Limits) Thresholds {
	return Thresholds{
		Confidence:          limits.ConfidenceThreshold,
		MinRoles:            limits.SparseMinRoles,
		MinMeaningfulSkills: limits.SparseMinMeaningfulSkills,
	}
}

// Section names used in the sparse-profile message.
const (
	SectionWorkExperience = "work experience"
	SectionSkills         = "skills"
	SectionEducation      = "education"
)

// Assess returns LOW_CONFIDENCE and then SPARSE_PROFILE warnings for p, or
// nil when neither applies.
func Assess(p *types.Profile, th Thresholds) []types.Warning {
	var warnings []types.Warning

	if p.LinkedinConfidence < th.Confidence {
		warnings = append(warnings, types.Warning{
			Code:    types.WarningLowConfidence,
			Message: "This PDF may not be a LinkedIn profile export. The extracted data might be incomplete or inaccurate. For best results, use the \"Save to PDF\" option from your LinkedIn profile.",
		})
	}

	if missing := MissingSections(p, th); len(missing) > 0 {
		warnings = append(warnings, types.Warning{
			Code: types.WarningSparseProfile,
			Message: "Your profile appears to have limited " + strings.Join(missing, " and ") +
				" data. The generated card may not fully represent your career. Consider adding more details to your LinkedIn profile.",
		})
	}

	return warnings
}

// MissingSections lists the sections that fall below their thresholds, in
// the order work experience, skills, education.
func MissingSections(p *types.Profile, th Thresholds) []string {
	var missing []string
	if len(p.CareerHistory) < th.MinRoles {
		missing = append(missing, SectionWorkExperience)
	}
	if MeaningfulSkills(p) < th.MinMeaningfulSkills {
		missing = append(missing, SectionSkills)
	}
	if len(p.Education) == 0 {
		missing = append(missing, SectionEducation)
	}
	return missing
}

// MeaningfulSkills counts skills that are not the padding sentinel. A real
// skill that happens to equal the sentinel exactly is not counted.
func MeaningfulSkills(p *types.Profile) int {
	n := 0
	for _, s := range p.Skills {
		if !s.IsSentinel() {
			n++
		}
	}
	return n
}
