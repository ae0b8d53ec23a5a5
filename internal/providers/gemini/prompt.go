package gemini

import (
	"fmt"
	"strings"
)

const skillExtractionPrompt = `You are an expert workforce analyst. Analyse the provided media (video or image) and:

1. Identify every professional, technical, or vocational skill demonstrated or mentioned.
2. Rate each skill 1-3 (1=basic, 2=intermediate, 3=expert) based on evidence.
3. Assign a confidence score (0.0-1.0) to each skill.
4. Detect the primary language (Bangla, English, or mixed).
5. Provide a concise summary (2-3 sentences) of what is demonstrated.
6. If video, briefly transcribe spoken content.

Respond ONLY with valid JSON, no markdown and no extra text:
{
  "summary": "...",
  "detected_skills": ["skill1", "skill2"],
  "skill_details": [
    {"name": "skill1", "level": 2, "confidence": 0.9}
  ],
  "confidence_score": 0.85,
  "language_detected": "Bangla",
  "raw_transcript": "..."
}`

func buildJobMatchingPrompt(skillNames []string, summary, locale string) string {
	language := "Bangla"
	if strings.EqualFold(locale, "en") {
		language = "English"
	}
	return fmt.Sprintf(`You are a recruiter matching a candidate to Bangladesh job market opportunities.
Verified skills: %s
Summary: %s

Suggest exactly 3 realistic job matches. Write titles and reasons in %s. Respond ONLY with valid JSON:
{
  "jobs": [
    {"title": "...", "match_score": 85, "salary_range": "৳25,000-30,000", "reason": "..."}
  ]
}`, strings.Join(skillNames, ", "), summary, language)
}
