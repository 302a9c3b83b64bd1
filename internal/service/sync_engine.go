package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-attendance-sync/internal/adapter"
	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/internal/store"
	"github.com/MKhiriev/go-attendance-sync/models"
)

type syncEngine struct {
	resources store.ResourceStore
	offsets   store.OffsetTracker
	remote    adapter.RemoteStore
	conn      adapter.Connectivity

	batchSize int
	now       func() time.Time

	guard   sync.Mutex
	running atomic.Bool

	statusMu  sync.Mutex
	exhausted []models.Dataset

	logger *logger.Logger
}

// NewSyncEngine creates a SyncEngine. batchSize caps the number of lines sent
// in one PostBatch call, zero means the whole tail is sent at once.
func NewSyncEngine(
	resources store.ResourceStore,
	offsets store.OffsetTracker,
	remote adapter.RemoteStore,
	conn adapter.Connectivity,
	batchSize int,
	logger *logger.Logger,
) SyncEngine {
	return &syncEngine{
		resources: resources,
		offsets:   offsets,
		remote:    remote,
		conn:      conn,
		batchSize: batchSize,
		now:       time.Now,
		logger:    logger,
	}
}

func (e *syncEngine) RunCycle(ctx context.Context) (models.CycleReport, error) {
	if !e.guard.TryLock() {
		return models.CycleReport{}, ErrSyncAlreadyRunning
	}
	defer e.guard.Unlock()

	e.running.Store(true)
	defer e.running.Store(false)

	report := models.CycleReport{
		Pushed:    make(map[models.Dataset]int, len(models.PushDatasets)),
		StartedAt: e.now(),
	}

	err := e.push(ctx, &report)
	if err == nil {
		err = e.pull(ctx, &report)
	}
	if err == nil && len(report.Exhausted) > 0 {
		err = fmt.Errorf("%w: %v", ErrOffsetExhausted, report.Exhausted)
	}
	report.Duration = e.now().Sub(report.StartedAt)
	e.setExhausted(report.Exhausted)

	event := e.logger.Info()
	if err != nil {
		event = e.logger.Error().Err(err)
	}
	event.Str("func", "syncEngine.RunCycle").
		Int("pushed_pending", report.Pushed[models.PendingList]).
		Int("pushed_activity", report.Pushed[models.ActivityLog]).
		Int("approved", report.Approved).
		Int("pending", report.Pending).
		Int("push_attempts", report.PushAttempts).
		Int("pull_attempts", report.PullAttempts).
		Stringers("exhausted", datasetStringers(report.Exhausted)).
		Dur("duration", report.Duration).
		Msg("sync cycle finished")

	return report, err
}

func (e *syncEngine) Wipe(ctx context.Context) error {
	if !e.guard.TryLock() {
		return ErrSyncAlreadyRunning
	}
	defer e.guard.Unlock()

	err := e.resources.ClearAll(ctx, func() error {
		return e.offsets.ClearAll(ctx)
	})
	if err != nil {
		e.logger.Err(err).Str("func", "syncEngine.Wipe").Msg("error wiping datasets")
		return fmt.Errorf("wipe: %w", err)
	}

	e.setExhausted(nil)
	e.logger.Warn().Str("func", "syncEngine.Wipe").Msg("all datasets and offsets wiped")
	return nil
}

func (e *syncEngine) Running() bool {
	return e.running.Load()
}

func (e *syncEngine) Exhausted() []models.Dataset {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	return slices.Clone(e.exhausted)
}

func (e *syncEngine) setExhausted(datasets []models.Dataset) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	e.exhausted = slices.Clone(datasets)
}

// push uploads every push dataset. A remote failure anywhere restarts the
// whole phase from the first dataset after a forced reconnect.
func (e *syncEngine) push(ctx context.Context, report *models.CycleReport) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.PushAttempts++

		err := e.pushAll(ctx, report)
		if err == nil {
			return nil
		}
		if !isRemoteFailure(err) || ctx.Err() != nil {
			return err
		}

		e.logger.Warn().Err(err).Str("func", "syncEngine.push").Int("attempt", report.PushAttempts).Msg("push failed, reconnecting")
		if err = e.conn.EnsureConnected(ctx, true); err != nil {
			return err
		}
	}
}

// pushAll pushes every push dataset. A dataset whose offset range is used up
// is recorded in report.Exhausted and skipped so the others keep syncing.
func (e *syncEngine) pushAll(ctx context.Context, report *models.CycleReport) error {
	report.Exhausted = nil
	for _, d := range models.PushDatasets {
		err := e.pushDataset(ctx, d, report)
		if errors.Is(err, ErrOffsetExhausted) {
			e.logger.Error().Err(err).Str("func", "syncEngine.pushAll").Stringer("dataset", d).Msg("dataset cannot be pushed any further")
			report.Exhausted = append(report.Exhausted, d)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *syncEngine) pushDataset(ctx context.Context, d models.Dataset, report *models.CycleReport) error {
	offset, err := e.offsets.Get(ctx, d)
	if err != nil {
		return fmt.Errorf("get offset of %s: %w", d, err)
	}

	tail, err := e.resources.ReadTail(ctx, d, int(offset))
	if err != nil {
		return fmt.Errorf("read tail of %s: %w", d, err)
	}

	for len(tail) > 0 {
		batch := e.nextBatch(tail, offset)
		if len(batch) == 0 {
			return fmt.Errorf("%w: %s has %d synced and %d unsynced lines", ErrOffsetExhausted, d, offset, len(tail))
		}

		if err = e.conn.EnsureConnected(ctx, false); err != nil {
			return err
		}

		accepted, err := e.remote.PostBatch(ctx, d, batch)
		if err != nil {
			return fmt.Errorf("push %s: %w", d, err)
		}
		if accepted != len(batch) {
			return fmt.Errorf("%w: %s accepted %d of %d lines", errPartialBatch, d, accepted, len(batch))
		}

		offset += models.SyncOffset(len(batch))
		if err = e.offsets.Set(ctx, d, offset); err != nil {
			return fmt.Errorf("set offset of %s: %w", d, err)
		}

		report.Pushed[d] += len(batch)
		tail = tail[len(batch):]
	}

	return nil
}

// nextBatch caps tail to the configured batch size and to the offset range.
func (e *syncEngine) nextBatch(tail []string, offset models.SyncOffset) []string {
	batch := tail
	if e.batchSize > 0 && len(batch) > e.batchSize {
		batch = batch[:e.batchSize]
	}
	if headroom := math.MaxUint16 - int(offset); len(batch) > headroom {
		batch = batch[:headroom]
	}
	return batch
}

// pull fetches the remote lists until it succeeds and mirrors them locally.
func (e *syncEngine) pull(ctx context.Context, report *models.CycleReport) error {
	if err := e.conn.EnsureConnected(ctx, false); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.PullAttempts++

		lists, err := e.remote.FetchLists(ctx)
		if err == nil {
			return e.mirror(ctx, lists, report)
		}
		if !isRemoteFailure(err) || ctx.Err() != nil {
			return fmt.Errorf("fetch lists: %w", err)
		}

		e.logger.Warn().Err(err).Str("func", "syncEngine.pull").Int("attempt", report.PullAttempts).Msg("pull failed, reconnecting")
		if err = e.conn.EnsureConnected(ctx, true); err != nil {
			return err
		}
	}
}

// mirror replaces AllowList and PendingList with the fetched lists. The
// PendingList offset is re-baselined inside the same locked overwrite.
// PendingList is left alone while it holds lines that could not be pushed.
func (e *syncEngine) mirror(ctx context.Context, lists models.UserLists, report *models.CycleReport) error {
	approved := models.UserRecordsToLines(lists.Approved)
	pending := models.UserRecordsToLines(lists.Pending)
	if len(pending) > math.MaxUint16 && !slices.Contains(report.Exhausted, models.PendingList) {
		e.logger.Error().Str("func", "syncEngine.mirror").Int("records", len(pending)).Msg("remote pending list does not fit a sync offset")
		report.Exhausted = append(report.Exhausted, models.PendingList)
	}

	if err := e.resources.Overwrite(ctx, models.AllowList, approved, nil); err != nil {
		return fmt.Errorf("mirror %s: %w", models.AllowList, err)
	}
	report.Approved = len(approved)

	if slices.Contains(report.Exhausted, models.PendingList) {
		return nil
	}

	err := e.resources.Overwrite(ctx, models.PendingList, pending, func() error {
		return e.offsets.Set(ctx, models.PendingList, models.SyncOffset(len(pending)))
	})
	if err != nil {
		return fmt.Errorf("mirror %s: %w", models.PendingList, err)
	}

	report.Pending = len(pending)
	return nil
}

func datasetStringers(datasets []models.Dataset) []fmt.Stringer {
	out := make([]fmt.Stringer, 0, len(datasets))
	for _, d := range datasets {
		out = append(out, d)
	}
	return out
}

func isRemoteFailure(err error) bool {
	return errors.Is(err, adapter.ErrConnectivity) ||
		errors.Is(err, adapter.ErrRemoteRejection) ||
		errors.Is(err, adapter.ErrMalformedPayload) ||
		errors.Is(err, errPartialBatch)
}
