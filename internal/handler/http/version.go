package http

import (
	"net/http"
)

// ping answers reachability checks with the server version.
func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}
