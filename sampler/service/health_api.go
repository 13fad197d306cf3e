package service

import (
	"net/http"

	"github.com/yaron8/ops-dashboard/telemetrics"
)

func (api *APIServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	api.writeJSON(w, telemetrics.Health{Status: "Backend running"})
}

func (api *APIServer) dataHandler(w http.ResponseWriter, r *http.Request) {
	api.writeJSON(w, telemetrics.Greeting{Message: api.config.Greeting})
}
