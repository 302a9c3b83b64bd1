package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-attendance-sync/internal/service"
	"github.com/MKhiriev/go-attendance-sync/internal/store"
	"github.com/MKhiriev/go-attendance-sync/models"
)

var errorStatusMap = map[error]int{
	errInvalidJSON:                 http.StatusBadRequest,
	errRequestTooLarge:             http.StatusRequestEntityTooLarge,
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrAlreadyRegistered:   http.StatusConflict,
	service.ErrSyncAlreadyRunning:  http.StatusConflict,
	models.ErrUnknownDataset:       http.StatusNotFound,

	store.ErrStorageOpen:      http.StatusInternalServerError,
	store.ErrStorageWrite:     http.StatusInternalServerError,
	store.ErrInvalidLine:      http.StatusBadRequest,
	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
