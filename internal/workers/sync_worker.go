package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/internal/service"
)

// SyncWorker runs the replication job on a fixed interval. The first cycle is
// requested as soon as the worker starts so a freshly booted device catches up
// without waiting a full interval.
type SyncWorker struct {
	job      service.SyncJob
	interval time.Duration

	logger *logger.Logger
}

func NewSyncWorker(job service.SyncJob, interval time.Duration, logger *logger.Logger) *SyncWorker {
	return &SyncWorker{
		job:      job,
		interval: interval,
		logger:   logger,
	}
}

func (w *SyncWorker) Run(ctx context.Context) {
	w.job.Start(ctx, w.interval)
	w.job.Trigger()
	w.logger.Info().Str("func", "SyncWorker.Run").Dur("interval", w.interval).Msg("sync worker started")
}

func (w *SyncWorker) Stop() {
	w.job.Stop()
	w.logger.Info().Str("func", "SyncWorker.Stop").Msg("sync worker stopped")
}
