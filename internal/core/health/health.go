package health

import (
	"encoding/json"
	"net/http"
)

// Liveness answers the diagnostics endpoint. The filter driver is healthy
// whenever it can serve the endpoint at all; there is no readiness state to
// report beyond being up.
func Liveness(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		type resp struct {
			Status  string `json:"status"`
			Version string `json:"version,omitempty"`
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp{Status: "ok", Version: version})
	}
}
