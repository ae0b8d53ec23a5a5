package domain

import "testing"

func TestClampLevel(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-1, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 3},
		{5, 3},
	}
	for _, tc := range tests {
		if got := ClampLevel(tc.in); got != tc.want {
			t.Fatalf("ClampLevel(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestClampUnit(t *testing.T) {
	if got := ClampUnit(-0.5); got != 0 {
		t.Fatalf("ClampUnit(-0.5) = %v, want 0", got)
	}
	if got := ClampUnit(1.7); got != 1 {
		t.Fatalf("ClampUnit(1.7) = %v, want 1", got)
	}
	if got := ClampUnit(0.42); got != 0.42 {
		t.Fatalf("ClampUnit(0.42) = %v, want 0.42", got)
	}
}

func TestClampMatch(t *testing.T) {
	if got := ClampMatch(-10); got != 0 {
		t.Fatalf("ClampMatch(-10) = %d, want 0", got)
	}
	if got := ClampMatch(140); got != 100 {
		t.Fatalf("ClampMatch(140) = %d, want 100", got)
	}
}

func TestBuildSkillsClampsDetails(t *testing.T) {
	details := []SkillDetail{
		{Name: "welding", Level: 5, Confidence: 1.4},
		{Name: "  masonry ", Level: 0, Confidence: 0},
		{Name: "", Level: -2, Confidence: 0.5},
	}
	skills := BuildSkills(details, nil)
	if len(skills) != 3 {
		t.Fatalf("BuildSkills returned %d skills, want 3", len(skills))
	}
	for _, s := range skills {
		if s.Level < 1 || s.Level > 3 {
			t.Fatalf("skill %q level %d out of range", s.Name, s.Level)
		}
		if s.Confidence < 0 || s.Confidence > 1 {
			t.Fatalf("skill %q confidence %v out of range", s.Name, s.Confidence)
		}
		if !s.Verified {
			t.Fatalf("skill %q not verified", s.Name)
		}
	}
	if skills[0].Name != "Welding" {
		t.Fatalf("skills[0].Name = %q, want %q", skills[0].Name, "Welding")
	}
	if skills[1].Level != 2 {
		t.Fatalf("zero level should default to 2, got %d", skills[1].Level)
	}
	if skills[2].Name != "Unknown" {
		t.Fatalf("empty name should become Unknown, got %q", skills[2].Name)
	}
}

func TestBuildSkillsFallsBackToDetectedNames(t *testing.T) {
	skills := BuildSkills(nil, []string{"carpentry", "ইট বসানো"})
	if len(skills) != 2 {
		t.Fatalf("BuildSkills returned %d skills, want 2", len(skills))
	}
	if skills[0].Level != 2 || skills[0].Confidence != 0.75 {
		t.Fatalf("fallback defaults wrong: %+v", skills[0])
	}
	if skills[1].Name != "ইট বসানো" {
		t.Fatalf("caseless script changed: %q", skills[1].Name)
	}
}

func TestMockDataInvariants(t *testing.T) {
	for _, kind := range []MediaKind{MediaKindVideo, MediaKindImage} {
		analysis := MockAnalysis(kind)
		if analysis.MediaType != kind {
			t.Fatalf("MockAnalysis media type = %q, want %q", analysis.MediaType, kind)
		}
		if analysis.Summary == "" || len(analysis.DetectedSkills) == 0 {
			t.Fatal("MockAnalysis must be non-empty")
		}
		if analysis.ConfidenceScore < 0 || analysis.ConfidenceScore > 1 {
			t.Fatalf("MockAnalysis confidence %v out of range", analysis.ConfidenceScore)
		}
	}

	skills := MockSkills()
	if len(skills) != 3 {
		t.Fatalf("MockSkills returned %d skills, want 3", len(skills))
	}
	for _, s := range skills {
		if s.Level < 1 || s.Level > 3 {
			t.Fatalf("mock skill %q level %d out of range", s.Name, s.Level)
		}
	}

	jobs := MockJobs()
	if len(jobs) != 3 {
		t.Fatalf("MockJobs returned %d jobs, want 3", len(jobs))
	}
	for _, j := range jobs {
		if j.Match < 0 || j.Match > 100 {
			t.Fatalf("mock job %q match %d out of range", j.Title, j.Match)
		}
	}
}
