package domain

// Deterministic fallback content served when Gemini is unconfigured or a
// provider call fails. Placeholder values mirror the Bangladesh-focused
// product content; callers signal degraded mode through the
// gemini_available response flag.

// MockAnalysis returns the fixed substitute analysis for the given media kind.
func MockAnalysis(kind MediaKind) Analysis {
	return Analysis{
		Summary:          "Mock analysis: set GEMINI_API_KEY for real AI results.",
		DetectedSkills:   []string{"ইট বসানো", "সিমেন্ট মিশ্রণ", "নির্মাণ তত্ত্বাবধান"},
		ConfidenceScore:  0.8,
		LanguageDetected: "Bangla",
		MediaType:        kind,
	}
}

// MockSkills returns the fixed three-element substitute skill list.
func MockSkills() []Skill {
	return []Skill{
		{Name: "ইট বসানো", Level: 3, Verified: true, Confidence: 0.9},
		{Name: "সিমেন্ট মিশ্রণ", Level: 2, Verified: true, Confidence: 0.8},
		{Name: "নির্মাণ তত্ত্বাবধান", Level: 2, Verified: true, Confidence: 0.75},
	}
}

// MockJobs returns the fixed three-element substitute job list.
func MockJobs() []Job {
	return []Job{
		{
			Title:  "সাইট ফোরম্যান",
			Match:  85,
			Salary: "৳25,000-30,000",
			Reason: "ভিডিওতে সঠিক ইট বসানোর প্রমাণ",
		},
		{
			Title:  "নির্মাণ কর্মচারী",
			Match:  72,
			Salary: "৳18,000-22,000",
			Reason: "সিমেন্ট মিশ্রণ দক্ষতা প্রদর্শিত",
		},
		{
			Title:  "প্রকল্প ব্যবস্থাপক",
			Match:  65,
			Salary: "৳35,000-45,000",
			Reason: "তত্ত্বাবধান অভিজ্ঞতা",
		},
	}
}
