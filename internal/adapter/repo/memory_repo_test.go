package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"praxis-server/internal/domain"
)

func testRecord() domain.ProcessingRecord {
	return domain.ProcessingRecord{
		UserID:    "u1",
		Status:    domain.StatusProcessing,
		MediaType: domain.MediaKindVideo,
		CreatedAt: time.Now().UTC(),
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	if err := store.CreateProcessing(ctx, "p1", testRecord()); err != nil {
		t.Fatalf("CreateProcessing: %v", err)
	}

	record, err := store.GetProcessing(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProcessing: %v", err)
	}
	if record.Status != domain.StatusProcessing {
		t.Fatalf("status = %q, want %q", record.Status, domain.StatusProcessing)
	}

	if err := store.SetAnalysis(ctx, "p1", domain.MockAnalysis(domain.MediaKindVideo)); err != nil {
		t.Fatalf("SetAnalysis: %v", err)
	}
	if err := store.SetSkills(ctx, "p1", domain.MockSkills()); err != nil {
		t.Fatalf("SetSkills: %v", err)
	}
	if err := store.SetJobs(ctx, "p1", domain.MockJobs()); err != nil {
		t.Fatalf("SetJobs: %v", err)
	}
	if err := store.SetStatus(ctx, "p1", domain.StatusDone); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	record, err = store.GetProcessing(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProcessing after done: %v", err)
	}
	if record.Status != domain.StatusDone {
		t.Fatalf("status = %q, want %q", record.Status, domain.StatusDone)
	}

	skills, err := store.GetSkills(ctx, "p1")
	if err != nil {
		t.Fatalf("GetSkills: %v", err)
	}
	if len(skills) != 3 {
		t.Fatalf("GetSkills returned %d skills, want 3", len(skills))
	}
	jobs, err := store.GetJobs(ctx, "p1")
	if err != nil {
		t.Fatalf("GetJobs: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("GetJobs returned %d jobs, want 3", len(jobs))
	}
	if _, err := store.GetAnalysis(ctx, "p1"); err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
}

func TestMemoryStoreUnknownID(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	if _, err := store.GetProcessing(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetProcessing unknown id: %v, want ErrNotFound", err)
	}
	if _, err := store.GetSkills(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetSkills unknown id: %v, want ErrNotFound", err)
	}
	if err := store.SetStatus(ctx, "nope", domain.StatusDone); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("SetStatus unknown id: %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreResultsAbsentUntilSet(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	if err := store.CreateProcessing(ctx, "p1", testRecord()); err != nil {
		t.Fatalf("CreateProcessing: %v", err)
	}
	if _, err := store.GetAnalysis(ctx, "p1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetAnalysis before set: %v, want ErrNotFound", err)
	}
	if _, err := store.GetJobs(ctx, "p1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetJobs before set: %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreTTLEviction(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	if err := store.CreateProcessing(ctx, "p1", testRecord()); err != nil {
		t.Fatalf("CreateProcessing: %v", err)
	}
	if _, err := store.GetProcessing(ctx, "p1"); err != nil {
		t.Fatalf("GetProcessing before expiry: %v", err)
	}

	time.Sleep(40 * time.Millisecond)

	if _, err := store.GetProcessing(ctx, "p1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetProcessing after expiry: %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreCopiesOnRead(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	if err := store.CreateProcessing(ctx, "p1", testRecord()); err != nil {
		t.Fatalf("CreateProcessing: %v", err)
	}
	if err := store.SetSkills(ctx, "p1", domain.MockSkills()); err != nil {
		t.Fatalf("SetSkills: %v", err)
	}

	skills, err := store.GetSkills(ctx, "p1")
	if err != nil {
		t.Fatalf("GetSkills: %v", err)
	}
	skills[0].Name = "mutated"

	again, err := store.GetSkills(ctx, "p1")
	if err != nil {
		t.Fatalf("GetSkills second read: %v", err)
	}
	if again[0].Name == "mutated" {
		t.Fatal("GetSkills returned a shared slice; reads must not alias store state")
	}
}
