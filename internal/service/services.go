package service

import (
	"fmt"

	"github.com/MKhiriev/go-attendance-sync/internal/adapter"
	"github.com/MKhiriev/go-attendance-sync/internal/config"
	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/internal/store"
)

type Services struct {
	AppInfoService    AppInfoService
	AttendanceService AttendanceService
	SyncEngine        SyncEngine
	SyncJob           SyncJob
}

func NewServices(
	storages *store.ClientStorages,
	remote adapter.RemoteStore,
	conn adapter.Connectivity,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	engine := NewSyncEngine(storages.Resources, storages.Offsets, remote, conn, cfg.Workers.SyncBatchSize, logger)

	return &Services{
		AppInfoService:    appInfo,
		AttendanceService: NewAttendanceService(storages.Resources, logger),
		SyncEngine:        engine,
		SyncJob:           NewSyncJob(engine, logger),
	}, nil
}
