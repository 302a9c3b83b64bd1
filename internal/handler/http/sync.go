package http

import (
	"net/http"

	"github.com/MKhiriev/go-attendance-sync/internal/utils"
)

type syncResponse struct {
	// Running reports whether a cycle was already in progress when the
	// request arrived.
	Running bool `json:"running"`
	// Exhausted names the datasets that cannot sync again until the device
	// is wiped.
	Exhausted []string `json:"exhausted"`
}

func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	running := h.services.SyncEngine.Running()
	h.services.SyncJob.Trigger()

	exhausted := make([]string, 0)
	for _, d := range h.services.SyncEngine.Exhausted() {
		exhausted = append(exhausted, d.String())
	}

	utils.WriteJSON(w, syncResponse{Running: running, Exhausted: exhausted}, http.StatusAccepted)
}
