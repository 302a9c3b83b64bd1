package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-attendance-sync/internal/logger"
)

const defaultSyncInterval = 5 * time.Minute

type syncJob struct {
	engine SyncEngine

	trigger chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSyncJob creates a syncJob that calls engine.RunCycle on a ticker and on
// demand. The job is idle until Start is called.
func NewSyncJob(engine SyncEngine, logger *logger.Logger) SyncJob {
	return &syncJob{
		engine:  engine,
		trigger: make(chan struct{}, 1),
		logger:  logger,
	}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a background goroutine that runs a cycle every interval and on
// every Trigger. The goroutine exits when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runCycle(jobCtx)
			case <-j.trigger:
				j.runCycle(jobCtx)
			}
		}
	}()
}

// Trigger implements SyncJob.
func (j *syncJob) Trigger() {
	select {
	case j.trigger <- struct{}{}:
	default:
	}
}

// Stop implements SyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *syncJob) runCycle(ctx context.Context) {
	_, err := j.engine.RunCycle(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrSyncAlreadyRunning):
		j.logger.Debug().Str("func", "syncJob.runCycle").Msg("cycle skipped, another one is running")
	case errors.Is(err, context.Canceled):
		j.logger.Info().Str("func", "syncJob.runCycle").Msg("cycle interrupted by shutdown")
	default:
		j.logger.Err(err).Str("func", "syncJob.runCycle").Msg("sync cycle failed")
	}
}
