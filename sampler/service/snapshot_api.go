package service

import (
	"encoding/json"
	"net/http"
)

// snapshotHandler always answers 200: a broken datastore is reported in
// the body, never as a transport error.
func (api *APIServer) snapshotHandler(w http.ResponseWriter, r *http.Request) {
	snap := api.sampler.Sample()
	api.writeJSON(w, snap)
}

func (api *APIServer) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Can't send error response after WriteHeader, just log it
		api.logger.Error("Error encoding response to JSON", "error", err)
	}
}
