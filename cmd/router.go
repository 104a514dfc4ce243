package main

import (
	"net/http"

	"github.com/angeloszaimis/wake-web/internal/handler"
	"github.com/angeloszaimis/wake-web/internal/metrics"
)

func setupRouter(statusHandler *handler.StatusHandler, metricsCollector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/", statusHandler)
	mux.HandleFunc("/api/status", statusHandler.ServeJSON)
	mux.HandleFunc("/ws", statusHandler.ServeWS)
	mux.HandleFunc("/metrics", metricsCollector.Handler())

	return mux
}
