package main

import (
	"net/http"

	"github.com/velisarios/loadguard/internal/metrics"
)

func setupRouter(admission http.Handler, metricsCollector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/", admission)
	mux.HandleFunc("/metrics", metricsCollector.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	return mux
}
