// Package jobs runs long operations in the background and tracks their
// status so clients can poll for completion.
package jobs

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gcbaptista/go-vector-search/internal/errors"
	"github.com/gcbaptista/go-vector-search/internal/logging"
	"github.com/gcbaptista/go-vector-search/internal/metrics"
	"github.com/gcbaptista/go-vector-search/model"
)

// Func is the body of a job. It receives a copy of the job; progress is
// reported through Manager.UpdateJobProgress. The context is cancelled when
// the manager stops.
type Func func(ctx context.Context, job model.Job) error

// Manager handles background job execution and tracking
type Manager struct {
	mu       sync.RWMutex
	jobs     map[string]*model.Job
	workers  chan struct{} // Limits concurrent jobs
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup

	retention time.Duration
	logger    *logrus.Entry
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMetrics records job outcomes on m.
func WithMetrics(collectors *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = collectors
	}
}

// WithRetention sets how long finished jobs are kept. Zero keeps them
// until CleanupOldJobs is called explicitly.
func WithRetention(d time.Duration) Option {
	return func(m *Manager) {
		m.retention = d
	}
}

// NewManager creates a new job manager with specified worker count
func NewManager(maxWorkers int, opts ...Option) *Manager {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		jobs:    make(map[string]*model.Job),
		workers: make(chan struct{}, maxWorkers),
		ctx:     ctx,
		cancel:  cancel,
		logger:  logging.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins background cleanup of finished jobs.
func (m *Manager) Start() {
	m.logger.WithField("max_workers", cap(m.workers)).Info("Job manager started")
	if m.retention > 0 {
		m.wg.Add(1)
		go m.cleanupRoutine()
	}
}

// Stop cancels running jobs and waits for them to return. It is safe to
// call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		// Cancelling under mu orders it against ExecuteJob's wg.Add.
		m.mu.Lock()
		m.cancel()
		m.mu.Unlock()
		m.wg.Wait()
		m.logger.Info("Job manager stopped")
	})
}

// CreateJob creates a new pending job and returns its ID
func (m *Manager) CreateJob(jobType model.JobType, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &model.Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Status:    model.JobStatusPending,
		CreatedAt: m.now(),
		Metadata:  metadata,
	}

	m.jobs[job.ID] = job
	m.logger.WithFields(logrus.Fields{"job_id": job.ID, "type": job.Type}).Debug("Created job")
	return job.ID
}

// GetJob retrieves a copy of the job with jobID
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJob(job), nil
}

// ListJobs returns all jobs, oldest first, optionally filtered by status
func (m *Manager) ListJobs(status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	result := make([]*model.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		if status == nil || job.Status == *status {
			result = append(result, copyJob(job))
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(result, func(a, b *model.Job) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return result
}

// ExecuteJob runs a pending job in a goroutine. It blocks while every
// worker slot is taken.
func (m *Manager) ExecuteJob(jobID string, jobFunc Func) error {
	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return errors.NewJobNotFoundError(jobID)
	}
	if job.Status != model.JobStatusPending {
		m.mu.Unlock()
		return fmt.Errorf("job with ID '%s' is not in pending status (current: %s)", jobID, job.Status)
	}
	m.mu.Unlock()

	if m.ctx.Err() != nil {
		m.finishJob(jobID, model.JobStatusCancelled, "Job manager shutting down", 0)
		return fmt.Errorf("job manager is shutting down")
	}

	// Acquire worker slot
	select {
	case m.workers <- struct{}{}:
	case <-m.ctx.Done():
		m.finishJob(jobID, model.JobStatusCancelled, "Job manager shutting down", 0)
		return fmt.Errorf("job manager is shutting down")
	}

	m.mu.Lock()
	if m.ctx.Err() != nil {
		m.mu.Unlock()
		<-m.workers
		m.finishJob(jobID, model.JobStatusCancelled, "Job manager shutting down", 0)
		return fmt.Errorf("job manager is shutting down")
	}
	started := m.now()
	job.Status = model.JobStatusRunning
	job.StartedAt = &started
	snapshot := *copyJob(job)
	m.wg.Add(1)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.JobsRunning.Inc()
	}
	go func() {
		defer func() {
			<-m.workers // Release worker slot
			if m.metrics != nil {
				m.metrics.JobsRunning.Dec()
			}
			m.wg.Done()
		}()

		startTime := time.Now()
		err := jobFunc(m.ctx, snapshot)
		executionTime := time.Since(startTime)

		fields := logrus.Fields{"job_id": jobID, "type": snapshot.Type, "duration": executionTime}
		switch {
		case err != nil && m.ctx.Err() != nil:
			m.finishJob(jobID, model.JobStatusCancelled, err.Error(), executionTime)
			m.logger.WithFields(fields).Warn("Job cancelled")
		case err != nil:
			m.finishJob(jobID, model.JobStatusFailed, err.Error(), executionTime)
			m.logger.WithFields(fields).WithError(err).Error("Job failed")
		default:
			m.finishJob(jobID, model.JobStatusCompleted, "", executionTime)
			m.logger.WithFields(fields).Info("Job completed")
		}
	}()

	return nil
}

// UpdateJobProgress updates the progress of a running job
func (m *Manager) UpdateJobProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}

	if job.Progress == nil {
		job.Progress = &model.JobProgress{}
	}
	job.Progress.Current = current
	job.Progress.Total = total
	job.Progress.Message = message
}

// finishJob moves a job into a terminal status.
func (m *Manager) finishJob(jobID string, status model.JobStatus, errorMsg string, took time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}

	job.Status = status
	if errorMsg != "" {
		job.Error = errorMsg
	}
	now := m.now()
	job.CompletedAt = &now

	if m.metrics != nil {
		m.metrics.JobsTotal.WithLabelValues(string(job.Type), string(status)).Inc()
		if job.StartedAt != nil {
			m.metrics.JobDuration.WithLabelValues(string(job.Type)).Observe(took.Seconds())
		}
	}
}

// cleanupRoutine periodically removes jobs past the retention period
func (m *Manager) cleanupRoutine() {
	defer m.wg.Done()

	interval := m.retention / 24
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldJobs(m.retention)
		case <-m.ctx.Done():
			return
		}
	}
}

// CleanupOldJobs removes finished jobs that completed more than maxAge ago
// and returns how many were removed.
func (m *Manager) CleanupOldJobs(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxAge)
	cleaned := 0
	for jobID, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			cleaned++
		}
	}

	if cleaned > 0 {
		m.logger.WithField("jobs", cleaned).Debug("Cleaned up old jobs")
	}
	return cleaned
}

func copyJob(job *model.Job) *model.Job {
	jobCopy := *job
	if job.Progress != nil {
		progressCopy := *job.Progress
		jobCopy.Progress = &progressCopy
	}
	if job.Metadata != nil {
		jobCopy.Metadata = make(map[string]string, len(job.Metadata))
		for k, v := range job.Metadata {
			jobCopy.Metadata[k] = v
		}
	}
	return &jobCopy
}
