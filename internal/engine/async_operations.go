package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gcbaptista/go-vector-search/internal/errors"
	"github.com/gcbaptista/go-vector-search/model"
)

// AddDocumentsAsync imports texts in a background job and returns its id.
// Texts are added in batches of the configured size, one rebuild per batch,
// so searches between batches see a consistent prefix of the import.
func (e *Engine) AddDocumentsAsync(texts []string) (string, error) {
	if len(texts) == 0 {
		return "", errors.NewValidationError("texts", "at least one document is required")
	}
	batch := make([]string, len(texts))
	copy(batch, texts)

	jobID := e.jobs.CreateJob(model.JobTypeAddDocuments, map[string]string{
		"operation":      "add_documents",
		"document_count": strconv.Itoa(len(batch)),
	})

	err := e.jobs.ExecuteJob(jobID, func(ctx context.Context, job model.Job) error {
		return e.executeAddDocumentsJob(ctx, batch, job.ID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start add documents job: %w", err)
	}

	return jobID, nil
}

// executeAddDocumentsJob executes the add documents job.
func (e *Engine) executeAddDocumentsJob(ctx context.Context, texts []string, jobID string) error {
	e.jobs.UpdateJobProgress(jobID, 0, len(texts), "Starting document addition")

	added := 0
	for start := 0; start < len(texts); start += e.batchSize {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("import stopped after %d of %d texts: %w", start, len(texts), err)
		}
		end := min(start+e.batchSize, len(texts))
		added += len(e.AddDocuments(texts[start:end]))
		e.jobs.UpdateJobProgress(jobID, end, len(texts), fmt.Sprintf("Added %d documents", added))
	}

	e.logger.WithField("job_id", jobID).WithField("documents", added).Info("Bulk import finished")
	return nil
}

// GetJob returns the job with jobID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobs.GetJob(jobID)
}

// ListJobs returns jobs oldest first, optionally filtered by status.
func (e *Engine) ListJobs(status *model.JobStatus) []*model.Job {
	return e.jobs.ListJobs(status)
}
