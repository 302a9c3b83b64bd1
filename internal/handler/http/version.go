package http

import (
	"net/http"

	"github.com/MKhiriev/go-attendance-sync/internal/utils"
)

func (h *Handler) getAppVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteText(w, h.services.AppInfoService.GetAppVersion(r.Context()), http.StatusOK)
}
