package httpx

import (
	"net/http"
)

// healthHandler reports liveness. It does not touch the backend so a slow
// API does not take the console out of rotation.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
