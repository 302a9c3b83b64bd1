package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-attendance-sync/internal/app"
	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/internal/utils"
	"github.com/MKhiriev/go-attendance-sync/models"
)

// maxRequestBodySize bounds scan and registration bodies. Both carry a few
// short fields.
const maxRequestBodySize = 16 * 1024

type registeredResponse struct {
	Registered bool `json:"registered"`
}

type approvedResponse struct {
	Approved bool `json:"approved"`
}

func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var scan models.Scan
	if err := decodeJSON(w, r, &scan); err != nil {
		log.Err(err).Str("func", "*Handler.handleScan").Msg("invalid request body")
		http.Error(w, app.MsgInvalidDataProvided, statusFromError(err))
		return
	}

	result, err := h.services.AttendanceService.HandleScan(r.Context(), scan.UID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.handleScan").Msg(app.MsgScanFailed)
		http.Error(w, app.MsgScanFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) addRegistration(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var registration models.Registration
	if err := decodeJSON(w, r, &registration); err != nil {
		log.Err(err).Str("func", "*Handler.addRegistration").Msg("invalid request body")
		http.Error(w, app.MsgInvalidDataProvided, statusFromError(err))
		return
	}

	err := h.services.AttendanceService.AddPendingRegistration(r.Context(), registration.ID, registration.UID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.addRegistration").Str("id", registration.ID).Msg("error adding registration")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, registration, http.StatusCreated)
}

func (h *Handler) getRegistration(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	registered, err := h.services.AttendanceService.IsRegistered(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRegistration").Msg(app.MsgRegistrationCheckFailed)
		http.Error(w, app.MsgRegistrationCheckFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, registeredResponse{Registered: registered}, http.StatusOK)
}

func (h *Handler) getApproval(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	approved, err := h.services.AttendanceService.IsApproved(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.getApproval").Msg(app.MsgApprovalCheckFailed)
		http.Error(w, app.MsgApprovalCheckFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, approvedResponse{Approved: approved}, http.StatusOK)
}

// decodeJSON reads at most maxRequestBodySize bytes of r.Body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(dst)
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: %w", errRequestTooLarge, err)
	}
	return fmt.Errorf("%w: %w", errInvalidJSON, err)
}
