// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/models"
)

// spySyncEngine counts RunCycle calls.
type spySyncEngine struct {
	calls atomic.Int64
	err   error
}

func (s *spySyncEngine) RunCycle(_ context.Context) (models.CycleReport, error) {
	s.calls.Add(1)
	return models.CycleReport{}, s.err
}

func (s *spySyncEngine) Wipe(_ context.Context) error { return nil }

func (s *spySyncEngine) Running() bool { return false }

func (s *spySyncEngine) Exhausted() []models.Dataset { return nil }

// ── NewSyncJob ───────────────────────────────────────────────────────────────

func TestNewSyncJob_ReturnsInterface(t *testing.T) {
	job := NewSyncJob(&spySyncEngine{}, logger.Nop())
	require.NotNil(t, job)

	var _ SyncJob = job
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestSyncJob_Start_RunsCycles(t *testing.T) {
	spy := &spySyncEngine{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "RunCycle called %d times", got)
}

func TestSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spySyncEngine{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no cycles after Stop")
}

func TestSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewSyncJob(&spySyncEngine{}, logger.Nop())

	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewSyncJob(&spySyncEngine{}, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_Start_DefaultInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		spy := &spySyncEngine{}
		job := NewSyncJob(spy, logger.Nop())

		job.Start(context.Background(), interval)
		time.Sleep(20 * time.Millisecond)
		job.Stop()

		assert.Zero(t, spy.calls.Load(), "interval %s", interval)
	}
}

func TestSyncJob_ContextCancel_StopsGoroutine(t *testing.T) {
	spy := &spySyncEngine{}
	job := NewSyncJob(spy, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)
	cancel()
	time.Sleep(15 * time.Millisecond)

	calls := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, spy.calls.Load())

	job.Stop()
}

func TestSyncJob_Restart_StopsPrevious(t *testing.T) {
	spy := &spySyncEngine{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	callsBefore := spy.calls.Load()
	require.Positive(t, callsBefore)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), callsBefore)
}

// ── Trigger ──────────────────────────────────────────────────────────────────

func TestSyncJob_Trigger_RunsImmediately(t *testing.T) {
	spy := &spySyncEngine{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), time.Hour)
	job.Trigger()

	assert.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	job.Stop()
}

func TestSyncJob_Trigger_Coalesces(t *testing.T) {
	spy := &spySyncEngine{}
	job := NewSyncJob(spy, logger.Nop())

	// not started: only one request fits in the buffer
	job.Trigger()
	job.Trigger()
	job.Trigger()

	job.Start(context.Background(), time.Hour)
	assert.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	job.Stop()

	assert.Equal(t, int64(1), spy.calls.Load())
}

func TestSyncJob_FailingCycle_KeepsRunning(t *testing.T) {
	spy := &spySyncEngine{err: ErrSyncAlreadyRunning}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(45 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(2))
}
