/**
 * @description
 * This file contains the HTTP handlers for transfer-request endpoints: the
 * cursor-paginated list with filtering and search, creation from a validated
 * form payload, and execution with the account-scoped credential.
 *
 * @dependencies
 * - encoding/json, errors, net/http, strconv: Standard Go libraries.
 * - internal/app, internal/domain: Service logic and models.
 */

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/muralops/payout-dashboard/internal/app"
	"github.com/muralops/payout-dashboard/internal/domain"
)

// transferListResponse is one page of transfer requests after scope and
// search filtering, with the raw provider cursor for the next page.
type transferListResponse struct {
	Total   int                      `json:"total"`
	NextID  string                   `json:"nextId,omitempty"`
	Results []domain.TransferRequest `json:"results"`
}

type createTransferRequestPayload struct {
	PayoutAccountID string                  `json:"payoutAccountId"`
	Form            app.TransferRequestForm `json:"form"`
}

// ListTransferRequestsHandler returns one page of transfer requests.
// Supported query parameters: limit, nextId, status, accountId,
// and q for a name search. Search applies only when the list is unscoped,
// matching the dashboard behavior.
func (h *DashboardHandlers) ListTransferRequestsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := domain.GetTransferRequestsParams{
		NextID:    query.Get("nextId"),
		AccountID: query.Get("accountId"),
	}
	if rawLimit := query.Get("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit <= 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		params.Limit = limit
	}
	_, params.Statuses = app.NormalizeStatusFilter(query.Get("status"))

	page, err := h.service.ListTransferRequests(r.Context(), params)
	if err != nil {
		h.writeServiceError(w, err, "Unable to load transfer requests")
		return
	}

	results := app.FilterPageResults(page.Results, params.AccountID, query.Get("q"), h.service.AccountNameResolver(r.Context()))
	h.writeJSON(w, http.StatusOK, transferListResponse{
		Total:   page.Total,
		NextID:  page.NextID,
		Results: results,
	})
}

// CreateTransferRequestHandler validates the submitted form and creates a
// transfer request. Validation failures return 422 with per-field errors and
// never reach the provider.
func (h *DashboardHandlers) CreateTransferRequestHandler(w http.ResponseWriter, r *http.Request) {
	var payload createTransferRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(payload.PayoutAccountID) == "" {
		h.writeError(w, http.StatusBadRequest, "payoutAccountId is required")
		return
	}

	created, fieldErrs, err := h.service.CreateTransferRequest(r.Context(), payload.PayoutAccountID, payload.Form)
	if err != nil {
		if errors.Is(err, app.ErrValidation) {
			h.writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":       "Validation failed",
				"fieldErrors": fieldErrs,
			})
			return
		}
		h.writeServiceError(w, err, "Unable to create transfer request")
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// ExecuteTransferRequestHandler executes a transfer request using the
// account-scoped API key.
func (h *DashboardHandlers) ExecuteTransferRequestHandler(w http.ResponseWriter, r *http.Request) {
	transferID := chi.URLParam(r, "transferID")

	executed, err := h.service.ExecuteTransferRequest(r.Context(), transferID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrExecuteKeyMissing):
			h.writeError(w, http.StatusServiceUnavailable, "Execution is disabled: no account API key is configured")
		case errors.Is(err, app.ErrExecuteInFlight):
			h.writeError(w, http.StatusConflict, "This transfer request is already being executed")
		default:
			h.writeServiceError(w, err, "Unable to execute transfer request")
		}
		return
	}
	h.writeJSON(w, http.StatusOK, executed)
}
