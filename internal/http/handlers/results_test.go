package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"praxis-server/internal/domain"
)

func seedDone(t *testing.T, app *App, id string) {
	t.Helper()
	ctx := context.Background()
	record := domain.ProcessingRecord{
		UserID:    "u1",
		Status:    domain.StatusProcessing,
		MediaType: domain.MediaKindVideo,
		CreatedAt: time.Now().UTC(),
	}
	if err := app.Store.CreateProcessing(ctx, id, record); err != nil {
		t.Fatalf("CreateProcessing: %v", err)
	}
	if err := app.storeResults(ctx, id, domain.MockAnalysis(domain.MediaKindVideo), domain.MockSkills(), domain.MockJobs()); err != nil {
		t.Fatalf("storeResults: %v", err)
	}
}

func TestProcessingStatusRequiresID(t *testing.T) {
	app, _ := testApp(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/processing-status", nil)
	rec := httptest.NewRecorder()
	app.ProcessingStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := errorDetail(t, rec.Body); got != "id is required" {
		t.Fatalf("detail = %q", got)
	}
}

func TestProcessingStatusUnknownID(t *testing.T) {
	app, _ := testApp(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/processing-status?id=missing", nil)
	rec := httptest.NewRecorder()
	app.ProcessingStatus(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := errorDetail(t, rec.Body); got != "Processing ID not found" {
		t.Fatalf("detail = %q", got)
	}
}

func TestProcessingStatusIdempotentReads(t *testing.T) {
	app, _ := testApp(t, nil)
	seedDone(t, app, "p1")

	var bodies [2]string
	for i := range bodies {
		req := httptest.NewRequest(http.MethodGet, "/processing-status?id=p1", nil)
		rec := httptest.NewRecorder()
		app.ProcessingStatus(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("read %d status = %d", i, rec.Code)
		}
		bodies[i] = rec.Body.String()
	}
	if bodies[0] != bodies[1] {
		t.Fatalf("repeated reads differ:\n%s\n%s", bodies[0], bodies[1])
	}

	var out struct {
		Status   domain.ProcessingStatus `json:"status"`
		Analysis *domain.Analysis        `json:"analysis"`
	}
	if err := json.Unmarshal([]byte(bodies[0]), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Status != domain.StatusDone {
		t.Fatalf("status = %q, want done", out.Status)
	}
	if out.Analysis == nil || out.Analysis.Summary == "" {
		t.Fatalf("analysis = %+v", out.Analysis)
	}
}

func TestSkillsEndpoint(t *testing.T) {
	app, _ := testApp(t, nil)
	seedDone(t, app, "p1")

	req := httptest.NewRequest(http.MethodGet, "/skills?id=p1", nil)
	rec := httptest.NewRecorder()
	app.Skills(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		User     string           `json:"user"`
		Skills   []domain.Skill   `json:"skills"`
		Analysis *domain.Analysis `json:"analysis"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.User != "Guest User" {
		t.Fatalf("user = %q, want %q", out.User, "Guest User")
	}
	if len(out.Skills) != 3 {
		t.Fatalf("skills = %d, want 3", len(out.Skills))
	}
	if out.Analysis == nil {
		t.Fatal("analysis missing")
	}
}

func TestSkillsUnknownID(t *testing.T) {
	app, _ := testApp(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/skills?id=missing", nil)
	rec := httptest.NewRecorder()
	app.Skills(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := errorDetail(t, rec.Body); got != "Skills not found for this ID" {
		t.Fatalf("detail = %q", got)
	}
}

func TestJobsEndpoint(t *testing.T) {
	app, _ := testApp(t, nil)
	seedDone(t, app, "p1")

	req := httptest.NewRequest(http.MethodGet, "/jobs?id=p1", nil)
	rec := httptest.NewRecorder()
	app.Jobs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Jobs []domain.Job `json:"jobs"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Jobs) != 3 {
		t.Fatalf("jobs = %d, want 3", len(out.Jobs))
	}
	for _, j := range out.Jobs {
		if j.Match < 0 || j.Match > 100 {
			t.Fatalf("job %q match %d out of range", j.Title, j.Match)
		}
	}
}

func TestJobsUnknownID(t *testing.T) {
	app, _ := testApp(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/jobs?id=missing", nil)
	rec := httptest.NewRecorder()
	app.Jobs(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := errorDetail(t, rec.Body); got != "Jobs not found for this ID" {
		t.Fatalf("detail = %q", got)
	}
}

func TestHealth(t *testing.T) {
	app, _ := testApp(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	app.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["status"] != "ok" {
		t.Fatalf("status field = %v", out["status"])
	}
	if out["gemini_configured"] != false {
		t.Fatalf("gemini_configured = %v, want false", out["gemini_configured"])
	}
}
