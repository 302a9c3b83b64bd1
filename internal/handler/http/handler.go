package http

import (
	"github.com/MKhiriev/go-attendance-sync/internal/config"
	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/internal/service"
	"github.com/MKhiriev/go-attendance-sync/internal/utils"
)

type Handler struct {
	services *service.Services

	adminTokenKey    string
	adminTokenIssuer string

	traceIDs *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHandler creates the HTTP handler. Admin routes are served only when
// cfg.AdminTokenKey is set.
func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:         services,
		adminTokenKey:    cfg.AdminTokenKey,
		adminTokenIssuer: cfg.AdminTokenIssuer,
		traceIDs:         utils.NewUUIDGenerator(),
		logger:           logger,
	}
}
