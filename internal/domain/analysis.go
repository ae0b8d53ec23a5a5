package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Analysis is the normalized output of a skill-extraction run. DetectedSkills
// preserves the relevance order reported by the provider.
type Analysis struct {
	Summary          string    `json:"summary"`
	DetectedSkills   []string  `json:"detected_skills"`
	ConfidenceScore  float64   `json:"confidence_score"`
	LanguageDetected string    `json:"language_detected,omitempty"`
	RawTranscript    string    `json:"raw_transcript,omitempty"`
	MediaType        MediaKind `json:"media_type"`
}

// SkillDetail is the raw per-skill record as returned by the provider,
// before sanitization. Kept separate from DetectedSkills because the flat
// name list serves as a fallback when no details are present.
type SkillDetail struct {
	Name       string  `json:"name"`
	Level      int     `json:"level"`
	Confidence float64 `json:"confidence"`
}

// Skill is one extracted skill after sanitization. Level is always within
// {1,2,3}: basic, intermediate, expert.
type Skill struct {
	Name       string  `json:"name"`
	Level      int     `json:"level"`
	Verified   bool    `json:"verified"`
	Confidence float64 `json:"confidence"`
}

// Job is one suggested job match. Match is a 0-100 score; Salary is a
// display string, not a validated numeric range.
type Job struct {
	Title  string `json:"title"`
	Match  int    `json:"match"`
	Salary string `json:"salary,omitempty"`
	Reason string `json:"reason,omitempty"`
}

const (
	defaultSkillLevel      = 2
	defaultSkillConfidence = 0.8
	fallbackNameConfidence = 0.75
)

var skillTitler = cases.Title(language.Und, cases.NoLower)

// ClampLevel forces a provider-reported skill level into {1,2,3}.
func ClampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 3 {
		return 3
	}
	return level
}

// ClampUnit forces a confidence value into [0.0, 1.0].
func ClampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampMatch forces a job match score into [0, 100].
func ClampMatch(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// NormalizeSkillName trims and title-cases a skill name. Scripts without
// letter case (e.g. Bangla) pass through unchanged.
func NormalizeSkillName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Unknown"
	}
	return skillTitler.String(name)
}

// BuildSkills converts provider skill details into sanitized Skill records.
// When no details were returned, the flat detected-skill name list is used
// with intermediate defaults. Skills derived from analysis are always
// verified; there is no manual verification path.
func BuildSkills(details []SkillDetail, detected []string) []Skill {
	if len(details) > 0 {
		skills := make([]Skill, 0, len(details))
		for _, d := range details {
			level := d.Level
			if level == 0 {
				level = defaultSkillLevel
			}
			confidence := d.Confidence
			if confidence == 0 {
				confidence = defaultSkillConfidence
			}
			skills = append(skills, Skill{
				Name:       NormalizeSkillName(d.Name),
				Level:      ClampLevel(level),
				Verified:   true,
				Confidence: ClampUnit(confidence),
			})
		}
		return skills
	}

	skills := make([]Skill, 0, len(detected))
	for _, name := range detected {
		skills = append(skills, Skill{
			Name:       NormalizeSkillName(name),
			Level:      defaultSkillLevel,
			Verified:   true,
			Confidence: fallbackNameConfidence,
		})
	}
	return skills
}
