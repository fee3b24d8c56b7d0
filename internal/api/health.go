// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

// Package api contains the health check handler for liveness probes.
package api

import (
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/mlebrun/otaclub/internal/platform/constants"
	"github.com/mlebrun/otaclub/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for /health.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func() error

	// CheckCache pings the Redis client.
	CheckCache func() error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
	startedAt    time.Time
}

// NewHealthHandler creates the GET /health http.HandlerFunc.
func NewHealthHandler(deps HealthDependencies, logger *slog.Logger) http.HandlerFunc {
	handler := &healthHandler{dependencies: deps, logger: logger, startedAt: time.Now()}
	return handler.health
}

// health reports process status, uptime, memory usage, and the state of the
// backing services. A failing dependency degrades the status and flips the
// response to 503 so orchestrators pull the instance out of rotation.
func (handler *healthHandler) health(writer http.ResponseWriter, request *http.Request) {
	type checkResult struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	results := make([]checkResult, 0, 2)
	isHealthy := true

	runCheck := func(name string, check func() error) {
		if check == nil {
			return
		}
		result := checkResult{Name: name, IsOK: true}
		if err := check(); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isHealthy = false
			handler.logger.Error("health_check_failed", slog.String("dependency", name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	runCheck("postgres", handler.dependencies.CheckDatabase)
	runCheck("redis", handler.dependencies.CheckCache)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	status := "ok"
	if !isHealthy {
		status = "degraded"
		writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		writer.WriteHeader(http.StatusServiceUnavailable)
	}

	respond.OK(writer, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(handler.startedAt).Round(time.Second).String(),
		"version":   constants.AppVersion,
		"memory": map[string]any{
			"alloc_bytes":       memStats.Alloc,
			"total_alloc_bytes": memStats.TotalAlloc,
			"sys_bytes":         memStats.Sys,
			"num_gc":            memStats.NumGC,
			"goroutines":        runtime.NumGoroutine(),
		},
		"checks": results,
	})
}
