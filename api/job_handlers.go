package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-vector-search/internal/errors"
	"github.com/gcbaptista/go-vector-search/model"
)

// maxBulkDocuments caps a single bulk import request.
const maxBulkDocuments = 10000

// BulkAddDocumentsRequest is the body of POST /api/documents/bulk.
type BulkAddDocumentsRequest struct {
	Texts []string `json:"texts"`
}

// BulkAddDocumentsHandler starts a background import and responds with the
// job id to poll.
func (api *API) BulkAddDocumentsHandler(c *gin.Context) {
	var req BulkAddDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	validation := &ValidationResult{Valid: true}
	switch {
	case len(req.Texts) == 0:
		validation.AddError("texts", "At least one document is required")
	case len(req.Texts) > maxBulkDocuments:
		validation.AddError("texts", fmt.Sprintf("At most %d documents can be imported at once", maxBulkDocuments))
	}
	if validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}

	jobID, err := api.engine.AddDocumentsAsync(req.Texts)
	if err != nil {
		SendJobExecutionError(c, "add documents", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":    fmt.Sprintf("Import of %d documents started", len(req.Texts)),
		"job_id":     jobID,
		"status_url": "/api/jobs/" + jobID,
	})
}

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := api.engine.GetJob(jobID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrJobNotFound) {
			SendJobNotFoundError(c, jobID)
			return
		}
		SendInternalError(c, "get job", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs, optionally filtered by
// status
func (api *API) ListJobsHandler(c *gin.Context) {
	var statusFilter *model.JobStatus
	if statusParam := c.Query("status"); statusParam != "" {
		status := model.JobStatus(statusParam)
		switch status {
		case model.JobStatusPending, model.JobStatusRunning, model.JobStatusCompleted,
			model.JobStatusFailed, model.JobStatusCancelled:
		default:
			validation := &ValidationResult{Valid: true}
			validation.AddError("status", "Unknown job status '"+statusParam+"'")
			SendValidationError(c, validation)
			return
		}
		statusFilter = &status
	}

	jobs := api.engine.ListJobs(statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": len(jobs),
	})
}
