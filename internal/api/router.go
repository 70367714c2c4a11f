/**
 * @description
 * This file sets up the HTTP router for the payout dashboard. It defines the
 * JSON API endpoints under /api, mounts the server-rendered dashboard at the
 * root, and applies the standard middleware stack.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 * - github.com/go-chi/cors: CORS middleware for the JSON API.
 */

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterOptions configures the router middleware.
type RouterOptions struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// SplitOrigins parses a comma-separated origins value into a list.
func SplitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}

// DashboardRoutes creates the router for the payout dashboard. web may be nil
// when only the JSON API is served.
func DashboardRoutes(h *DashboardHandlers, web http.Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	// Add standard middleware for request ids, logging, panic recovery, and timeouts.
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		r.Get("/accounts", h.ListAccountsHandler)
		r.Post("/accounts", h.CreateAccountHandler)
		r.Get("/accounts/{accountID}", h.GetAccountHandler)
		r.Get("/banks", h.GetBankDirectoryHandler)
		r.Get("/transfer-requests", h.ListTransferRequestsHandler)
		r.Post("/transfer-requests", h.CreateTransferRequestHandler)
		r.Post("/transfer-requests/{transferID}/execute", h.ExecuteTransferRequestHandler)
	})

	if web != nil {
		r.Mount("/", web)
	}

	return r
}
