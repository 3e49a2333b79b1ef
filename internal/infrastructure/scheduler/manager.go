// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/faturo-inc/faturo/internal/shared/biztime"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager manages all scheduled jobs using gocron v2 on a single
// scheduler instance.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	// Track whether the scheduler has been started
	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
// It initializes gocron with the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterChargeJob registers the periodic charge dispatch job. Each run pages
// through active subscriptions and enqueues one charge message per
// subscription. Singleton mode keeps a slow run from overlapping the next one.
func (m *SchedulerManager) RegisterChargeJob(chargeJob BatchJob, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			m.dispatchCharges(ctx, chargeJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("billing", "charge-dispatch"),
		gocron.WithName("charge-dispatcher"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered charge dispatch job", "interval", interval)
	return nil
}

func (m *SchedulerManager) dispatchCharges(ctx context.Context, chargeJob BatchJob) {
	m.logger.Debugw("charge dispatch started")

	startTime := biztime.NowUTC()

	dispatched, err := chargeJob.Execute(ctx)
	if err != nil {
		// Don't log error if context was cancelled (graceful shutdown)
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("charge dispatch failed",
			"error", err,
			"dispatched", dispatched,
			"duration", time.Since(startTime),
		)
		return
	}

	if dispatched > 0 {
		m.logger.Infow("charges dispatched",
			"count", dispatched,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no subscriptions to charge",
			"duration", time.Since(startTime),
		)
	}
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler.
// It waits for all running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
