package jobs

import (
	"context"

	"gamerental-backend/internal/config"
	"gamerental-backend/internal/domain"
	"gamerental-backend/internal/logger"
)

// OverdueLister is the part of the rental service the jobs need.
type OverdueLister interface {
	ListOverdueRentals(ctx context.Context) ([]domain.OverdueRental, error)
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentals OverdueLister
	config  *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(rentals OverdueLister, cfg *config.Config) *JobRunner {
	return &JobRunner{
		rentals: rentals,
		config:  cfg,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ReportOverdueRentals()
}
