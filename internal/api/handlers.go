/**
 * @description
 * This file contains the HTTP handlers for the payout dashboard's JSON API.
 * Handlers parse incoming requests, call the application service, and write
 * JSON responses. Provider errors keep their upstream status code and their
 * message is surfaced verbatim so operators see exactly what Mural Pay said.
 *
 * @dependencies
 * - encoding/json, errors, log, net/http: Standard Go libraries.
 * - internal/app, internal/domain, pkg/muralclient: Service logic, models, and provider errors.
 */

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/muralops/payout-dashboard/internal/app"
	"github.com/muralops/payout-dashboard/internal/domain"
	"github.com/muralops/payout-dashboard/pkg/muralclient"
)

// DashboardHandlers holds the application service that handlers will use.
type DashboardHandlers struct {
	service *app.Service
}

// NewDashboardHandlers creates a new instance of DashboardHandlers.
func NewDashboardHandlers(service *app.Service) *DashboardHandlers {
	return &DashboardHandlers{service: service}
}

// ListAccountsHandler returns every payout account visible to the API key.
func (h *DashboardHandlers) ListAccountsHandler(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "Unable to load accounts")
		return
	}
	h.writeJSON(w, http.StatusOK, accounts)
}

// GetAccountHandler returns a single account by id.
func (h *DashboardHandlers) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	account, err := h.service.GetAccountByID(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, app.ErrAccountNotFound) {
			h.writeError(w, http.StatusNotFound, "Account not found")
			return
		}
		h.writeServiceError(w, err, "Unable to load account")
		return
	}
	h.writeJSON(w, http.StatusOK, account)
}

// CreateAccountHandler creates a new payout account.
func (h *DashboardHandlers) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.service.CreateAccount(r.Context(), req)
	if err != nil {
		if errors.Is(err, app.ErrAccountNameRequired) {
			h.writeError(w, http.StatusBadRequest, "Account name is required")
			return
		}
		h.writeServiceError(w, err, "Unable to create account")
		return
	}
	h.writeJSON(w, http.StatusCreated, account)
}

// GetBankDirectoryHandler returns the bank selector data for Colombian payouts.
func (h *DashboardHandlers) GetBankDirectoryHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.BankDirectory(r.Context()))
}

// writeJSON is a helper for writing JSON responses.
func (h *DashboardHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError is a helper for writing JSON error responses.
func (h *DashboardHandlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service-layer failures to responses. Provider errors
// keep their upstream status and message; everything else becomes a 502 with
// the fallback message.
func (h *DashboardHandlers) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var apiErr *muralclient.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		message := apiErr.Message()
		if message == "" {
			message = fallback
		}
		h.writeError(w, status, message)
		return
	}

	log.Printf("level=error component=api msg=%q err=%v", fallback, err)
	h.writeError(w, http.StatusBadGateway, fallback)
}
