// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

/*
router.go - HTTP Router Assembly

Builds the chi router: observability middleware on the outside, then
rate limiting, metrics, and the authorization engine guarding the
resource routes. Health and metrics endpoints sit outside the engine so
probes and scrapers need no credentials.
*/

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phototeka/phototeka/internal/access"
	"github.com/phototeka/phototeka/internal/config"
	"github.com/phototeka/phototeka/internal/metrics"
	"github.com/phototeka/phototeka/internal/middleware"
)

// NewRouter assembles the full HTTP surface.
func NewRouter(cfg *config.Config, engine *access.Engine, h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	// Probe and scrape endpoints stay outside the engine.
	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if !cfg.Security.RateLimitDisabled {
			r.Use(httprate.Limit(
				cfg.Security.RateLimitReqs,
				cfg.Security.RateLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
					http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				}),
			))
		}
		r.Use(middleware.PrometheusMetrics)
		r.Use(engine.Middleware)

		r.Get("/", h.Root)
		r.HandleFunc("/auth", h.AuthInfo)
		r.HandleFunc("/*", h.Resources)
	})

	return r
}
