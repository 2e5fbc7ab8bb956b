package handlers

import (
	"net/http"

	"assetserver/src/utils"
)

// Healthcheck answers liveness probes with a plain text body.
func Healthcheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		utils.WriteError(w, utils.MethodNotAllowed())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write([]byte("Im alive!"))
	}
}
