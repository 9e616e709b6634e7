// Package api serves reports and accepts detections over HTTP.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/reports", h.getReport).Methods(http.MethodGet)
	r.HandleFunc("/reports", h.postReport).Methods(http.MethodPost)
	r.HandleFunc("/detections", h.postDetection).Methods(http.MethodPost)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}
