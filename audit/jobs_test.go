package audit

import (
	"errors"
	"testing"
)

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()
	job, publisher := r.Create("example.com")

	if len(job.ID) != len("job_")+12 {
		t.Errorf("Unexpected job ID length: %q", job.ID)
	}
	if job.ID[:4] != "job_" {
		t.Errorf("Job ID should carry the job_ prefix, got %q", job.ID)
	}
	if job.Status != StatusDiscovering {
		t.Errorf("New job should be discovering, got %s", job.Status)
	}
	if publisher == nil {
		t.Fatal("Create should return the job's publisher")
	}

	other, _ := r.Create("example.com")
	if other.ID == job.ID {
		t.Error("Job IDs must be unique")
	}
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	job, _ := r.Create("example.com")

	got, err := r.Get(job.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Domain != "example.com" {
		t.Errorf("Expected domain example.com, got %s", got.Domain)
	}

	if _, err := r.Get("job_missing"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound, got %v", err)
	}
}

func TestJobLifecycle(t *testing.T) {
	r := NewRegistry()
	job, _ := r.Create("example.com")

	r.SetDiscovered(job.ID, 10)
	got, _ := r.Get(job.ID)
	if got.Status != StatusAuditing {
		t.Errorf("Expected auditing after discovery, got %s", got.Status)
	}
	if got.Percentage != 10 {
		t.Errorf("Discovery completes at 10 percent, got %.1f", got.Percentage)
	}

	r.RecordProgress(job.ID, ProgressEvent{PagesAudited: 5, TotalPages: 10, Message: "halfway"})
	got, _ = r.Get(job.ID)
	if got.Percentage != 55 {
		t.Errorf("Expected 55 percent at 5/10 pages, got %.1f", got.Percentage)
	}
	if got.Message != "halfway" {
		t.Errorf("Expected message to update, got %q", got.Message)
	}

	r.RecordProgress(job.ID, ProgressEvent{PagesAudited: 10, TotalPages: 10})
	got, _ = r.Get(job.ID)
	if got.Percentage != 100 {
		t.Errorf("Expected 100 percent at 10/10 pages, got %.1f", got.Percentage)
	}

	result := &DomainAudit{Domain: "example.com", PagesAudited: 10}
	r.Complete(job.ID, result)
	got, _ = r.Get(job.ID)
	if got.Status != StatusCompleted {
		t.Errorf("Expected completed, got %s", got.Status)
	}
	if got.Result == nil || got.Result.PagesAudited != 10 {
		t.Error("Completed job should hold its result")
	}
}

func TestJobFail(t *testing.T) {
	r := NewRegistry()
	job, _ := r.Create("example.com")

	ch, err := r.Subscribe(job.ID)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	r.Fail(job.ID, "no pages discovered")
	got, _ := r.Get(job.ID)
	if got.Status != StatusFailed {
		t.Errorf("Expected failed, got %s", got.Status)
	}
	if got.Error != "no pages discovered" {
		t.Errorf("Expected error message, got %q", got.Error)
	}

	// Failing the job ends the progress stream.
	for range ch {
	}
}

func TestSubscribeUnknownJob(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Subscribe("job_missing"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound, got %v", err)
	}
}
