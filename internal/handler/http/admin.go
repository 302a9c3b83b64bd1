package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-attendance-sync/internal/app"
	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/internal/utils"
	"github.com/MKhiriev/go-attendance-sync/models"
)

func (h *Handler) getDataset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	d, err := models.ParseDataset(chi.URLParam(r, "dataset"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.getDataset").Send()
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	content, err := h.services.AttendanceService.ReadDataset(r.Context(), d)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getDataset").Stringer("dataset", d).Msg(app.MsgDatasetReadFailed)
		http.Error(w, app.MsgDatasetReadFailed, statusFromError(err))
		return
	}

	utils.WriteText(w, content, http.StatusOK)
}

func (h *Handler) wipe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	operator, _ := utils.GetOperatorFromContext(r.Context())

	if err := h.services.SyncEngine.Wipe(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.wipe").Str("operator", operator).Msg("error wiping datasets")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	log.Warn().Str("func", "*Handler.wipe").Str("operator", operator).Msg("datasets wiped")
	w.WriteHeader(http.StatusNoContent)
}
