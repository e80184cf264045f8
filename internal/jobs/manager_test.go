package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	apperrors "github.com/gcbaptista/go-vector-search/internal/errors"
	"github.com/gcbaptista/go-vector-search/internal/metrics"
	"github.com/gcbaptista/go-vector-search/model"
)

func waitForStatus(t *testing.T, manager *Manager, jobID string, want model.JobStatus) *model.Job {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := manager.GetJob(jobID)
		if err != nil {
			t.Fatalf("Failed to get job: %v", err)
		}
		if job.Status == want {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	job, _ := manager.GetJob(jobID)
	t.Fatalf("Job %s did not reach status %s (current: %s)", jobID, want, job.Status)
	return nil
}

func TestJobManager_CreateJob(t *testing.T) {
	manager := NewManager(2)
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeAddDocuments, map[string]string{
		"document_count": "3",
	})

	if jobID == "" {
		t.Error("Expected non-empty job ID")
	}

	job, err := manager.GetJob(jobID)
	if err != nil {
		t.Fatalf("Failed to get created job: %v", err)
	}
	if job.Type != model.JobTypeAddDocuments {
		t.Errorf("Expected job type %s, got %s", model.JobTypeAddDocuments, job.Type)
	}
	if job.Status != model.JobStatusPending {
		t.Errorf("Expected job status %s, got %s", model.JobStatusPending, job.Status)
	}

	job.Metadata["document_count"] = "changed"
	again, _ := manager.GetJob(jobID)
	if again.Metadata["document_count"] != "3" {
		t.Error("GetJob must return a copy")
	}
}

func TestJobManager_GetJobNotFound(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	_, err := manager.GetJob("missing")
	if !errors.Is(err, apperrors.ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound, got %v", err)
	}
	if err := manager.ExecuteJob("missing", func(context.Context, model.Job) error { return nil }); !errors.Is(err, apperrors.ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound from ExecuteJob, got %v", err)
	}
}

func TestJobManager_ExecuteJob(t *testing.T) {
	m := metrics.New()
	manager := NewManager(2, WithMetrics(m))
	manager.Start()
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeAddDocuments, nil)

	err := manager.ExecuteJob(jobID, func(ctx context.Context, job model.Job) error {
		if job.Status != model.JobStatusRunning {
			t.Errorf("Job func should see running status, got %s", job.Status)
		}
		manager.UpdateJobProgress(job.ID, 50, 100, "Halfway done")
		manager.UpdateJobProgress(job.ID, 100, 100, "Completed")
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	job := waitForStatus(t, manager, jobID, model.JobStatusCompleted)
	if job.Progress == nil || job.Progress.GetProgressPercentage() != 100 {
		t.Errorf("Expected 100%% progress, got %+v", job.Progress)
	}
	if job.StartedAt == nil || job.CompletedAt == nil {
		t.Error("Expected start and completion times to be set")
	}

	if err := manager.ExecuteJob(jobID, func(context.Context, model.Job) error { return nil }); err == nil {
		t.Error("Expected error when executing a finished job")
	}

	manager.Stop()
	if got := testutil.ToFloat64(m.JobsTotal.WithLabelValues(string(model.JobTypeAddDocuments), string(model.JobStatusCompleted))); got != 1 {
		t.Errorf("Expected 1 completed job metric, got %v", got)
	}
	if got := testutil.ToFloat64(m.JobsRunning); got != 0 {
		t.Errorf("Expected no running jobs, got %v", got)
	}
}

func TestJobManager_FailedJob(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeAddDocuments, nil)
	if err := manager.ExecuteJob(jobID, func(context.Context, model.Job) error {
		return errors.New("boom")
	}); err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	job := waitForStatus(t, manager, jobID, model.JobStatusFailed)
	if job.Error != "boom" {
		t.Errorf("Expected error 'boom', got %q", job.Error)
	}
}

func TestJobManager_StopCancelsRunningJobs(t *testing.T) {
	manager := NewManager(1)

	started := make(chan struct{})
	jobID := manager.CreateJob(model.JobTypeAddDocuments, nil)
	if err := manager.ExecuteJob(jobID, func(ctx context.Context, _ model.Job) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}); err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	<-started
	manager.Stop()

	job, _ := manager.GetJob(jobID)
	if job.Status != model.JobStatusCancelled {
		t.Errorf("Expected cancelled status, got %s", job.Status)
	}

	late := manager.CreateJob(model.JobTypeAddDocuments, nil)
	if err := manager.ExecuteJob(late, func(context.Context, model.Job) error { return nil }); err == nil {
		t.Error("Expected error when executing after Stop")
	}
	if job, _ := manager.GetJob(late); job.Status != model.JobStatusCancelled {
		t.Errorf("Expected late job to be cancelled, got %s", job.Status)
	}
}

func TestJobManager_ExecuteDuringStop(t *testing.T) {
	manager := NewManager(4)
	manager.Start()

	const count = 32
	ids := make([]string, count)
	for i := range ids {
		ids[i] = manager.CreateJob(model.JobTypeAddDocuments, nil)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_ = manager.ExecuteJob(id, func(ctx context.Context, job model.Job) error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(time.Millisecond):
					return nil
				}
			})
		}(id)
	}
	manager.Stop()
	wg.Wait()

	// Every job started before Stop was waited for; every later one was
	// cancelled without running.
	for _, id := range ids {
		job, err := manager.GetJob(id)
		if err != nil {
			t.Fatalf("Failed to get job: %v", err)
		}
		if !job.Status.IsTerminal() {
			t.Errorf("Job %s left in status %s after Stop", id, job.Status)
		}
	}
}

func TestJobManager_ListJobs(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	manager.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first := manager.CreateJob(model.JobTypeAddDocuments, nil)
	second := manager.CreateJob(model.JobTypeAddDocuments, nil)
	manager.finishJob(first, model.JobStatusCompleted, "", 0)

	all := manager.ListJobs(nil)
	if len(all) != 2 || all[0].ID != first || all[1].ID != second {
		t.Fatalf("Expected jobs in creation order, got %+v", all)
	}

	pending := model.JobStatusPending
	filtered := manager.ListJobs(&pending)
	if len(filtered) != 1 || filtered[0].ID != second {
		t.Errorf("Expected only the pending job, got %+v", filtered)
	}
}

func TestJobManager_CleanupOldJobs(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return now }

	old := manager.CreateJob(model.JobTypeAddDocuments, nil)
	manager.finishJob(old, model.JobStatusCompleted, "", 0)
	pending := manager.CreateJob(model.JobTypeAddDocuments, nil)

	now = now.Add(25 * time.Hour)
	recent := manager.CreateJob(model.JobTypeAddDocuments, nil)
	manager.finishJob(recent, model.JobStatusCompleted, "", 0)

	if cleaned := manager.CleanupOldJobs(24 * time.Hour); cleaned != 1 {
		t.Errorf("Expected 1 job cleaned, got %d", cleaned)
	}
	if _, err := manager.GetJob(old); err == nil {
		t.Error("Expected old job to be removed")
	}
	for _, id := range []string{pending, recent} {
		if _, err := manager.GetJob(id); err != nil {
			t.Errorf("Expected job %s to be kept: %v", id, err)
		}
	}
}
