// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/olegiv/mirror-creative/internal/cache"
	"github.com/olegiv/mirror-creative/internal/content"
	"github.com/olegiv/mirror-creative/internal/scheduler"
	"github.com/olegiv/mirror-creative/internal/version"
)

// checkTimeout bounds each dependency ping.
const checkTimeout = 2 * time.Second

// Dependency is a named backend that health checks ping.
type Dependency struct {
	Name string
	// Required dependencies gate readiness. Optional ones only degrade /health.
	Required bool
	Pinger   content.Pinger
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps      []Dependency
	version   version.Info
	startTime time.Time
	stats     cache.StatsProvider
	jobs      JobLister
}

// JobLister reports the state of background jobs.
type JobLister interface {
	Jobs() []scheduler.JobInfo
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(info version.Info, deps ...Dependency) *HealthHandler {
	return &HealthHandler{deps: deps, version: info, startTime: time.Now()}
}

// WithCacheStats adds the cache traffic counters to /health.
func (h *HealthHandler) WithCacheStats(p cache.StatsProvider) *HealthHandler {
	h.stats = p
	return h
}

// WithJobs adds the background job states to /health.
func (h *HealthHandler) WithJobs(l JobLister) *HealthHandler {
	h.jobs = l
	return h
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string              `json:"status"`
	Timestamp time.Time           `json:"timestamp"`
	Uptime    string              `json:"uptime"`
	Version   string              `json:"version"`
	Checks    map[string]Check    `json:"checks,omitempty"`
	Cache     *cache.Stats        `json:"cache,omitempty"`
	Jobs      []scheduler.JobInfo `json:"jobs,omitempty"`
}

// Check represents a single health check result. Error text is not
// exposed because the endpoint is public.
type Check struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks, requiredOK, allOK := h.runChecks(r.Context())

	status := HealthStatus{
		Status:    statusHealthy,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version.Version,
		Checks:    checks,
	}
	if h.stats != nil {
		st := h.stats.Stats()
		status.Cache = &st
	}
	if h.jobs != nil {
		status.Jobs = h.jobs.Jobs()
	}
	code := http.StatusOK
	switch {
	case !requiredOK:
		status.Status = statusUnhealthy
		code = http.StatusServiceUnavailable
	case !allOK:
		status.Status = statusDegraded
	}
	writeJSON(w, code, status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready. It fails when a required
// dependency does not answer.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if _, requiredOK, _ := h.runChecks(r.Context()); !requiredOK {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *HealthHandler) runChecks(ctx context.Context) (checks map[string]Check, requiredOK, allOK bool) {
	checks = make(map[string]Check, len(h.deps))
	requiredOK, allOK = true, true
	for _, d := range h.deps {
		c := ping(ctx, d.Pinger)
		checks[d.Name] = c
		if c.Status != statusHealthy {
			allOK = false
			if d.Required {
				requiredOK = false
			}
		}
	}
	return checks, requiredOK, allOK
}

func ping(ctx context.Context, p content.Pinger) Check {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start).Round(time.Microsecond).String()
	if err != nil {
		return Check{Status: statusUnhealthy, Latency: latency}
	}
	return Check{Status: statusHealthy, Latency: latency}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
