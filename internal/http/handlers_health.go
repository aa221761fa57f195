package httpx

import "net/http"

// healthHandler reports process liveness. It intentionally does not touch
// the upstream API or the session store.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
