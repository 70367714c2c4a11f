package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/muralops/payout-dashboard/internal/app"
	"github.com/muralops/payout-dashboard/internal/domain"
	"github.com/muralops/payout-dashboard/pkg/muralclient"
)

// fakeProvider is an in-memory PaymentsAPI for handler tests.
type fakeProvider struct {
	accounts      []domain.Account
	transferPage  *domain.GetTransferRequestsResponse
	createErr     error
	hasAccountKey bool
}

func (f *fakeProvider) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return f.accounts, nil
}

func (f *fakeProvider) CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Account{ID: "acct-new", Name: req.Name}, nil
}

func (f *fakeProvider) ListBankDetails(ctx context.Context, currencyCodes []string) ([]domain.GetBankDetailsResponse, error) {
	return nil, nil
}

func (f *fakeProvider) ListTransferRequests(ctx context.Context, params domain.GetTransferRequestsParams) (*domain.GetTransferRequestsResponse, error) {
	if f.transferPage != nil {
		return f.transferPage, nil
	}
	return &domain.GetTransferRequestsResponse{Results: []domain.TransferRequest{}}, nil
}

func (f *fakeProvider) CreateTransferRequest(ctx context.Context, req domain.CreateTransferRequest) (*domain.TransferRequest, error) {
	return &domain.TransferRequest{ID: "tr-1", PayoutAccountID: req.PayoutAccountID, Status: domain.StatusInReview}, nil
}

func (f *fakeProvider) ExecuteTransferRequest(ctx context.Context, transferRequestID string) (*domain.ExecuteTransferResponse, error) {
	return &domain.ExecuteTransferResponse{ID: transferRequestID, Status: domain.StatusPending}, nil
}

func (f *fakeProvider) HasAccountKey() bool {
	return f.hasAccountKey
}

func newTestRouter(provider *fakeProvider) http.Handler {
	svc := app.NewService(provider, 20, time.Minute, time.Hour)
	return DashboardRoutes(NewDashboardHandlers(svc), nil, RouterOptions{AllowedOrigins: []string{"*"}})
}

func TestListAccountsEndpoint(t *testing.T) {
	router := newTestRouter(&fakeProvider{accounts: []domain.Account{{ID: "acct-1", Name: "Treasury"}}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/accounts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var accounts []domain.Account
	if err := json.Unmarshal(rec.Body.Bytes(), &accounts); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(accounts) != 1 || accounts[0].Name != "Treasury" {
		t.Fatalf("unexpected accounts payload: %+v", accounts)
	}
}

func TestGetAccountEndpointNotFound(t *testing.T) {
	router := newTestRouter(&fakeProvider{accounts: []domain.Account{{ID: "acct-1"}}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/accounts/acct-missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateAccountEndpointRequiresName(t *testing.T) {
	router := newTestRouter(&fakeProvider{})

	body := bytes.NewBufferString(`{"name":"  "}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/accounts", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateAccountEndpointSurfacesProviderError(t *testing.T) {
	provider := &fakeProvider{
		createErr: &muralclient.APIError{
			Status: http.StatusForbidden,
			Data:   muralclient.ErrorData{StatusCode: http.StatusForbidden, Message: "Organization not approved for account creation"},
		},
	}
	router := newTestRouter(provider)

	body := bytes.NewBufferString(`{"name":"Ops"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/accounts", body))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected provider status 403, got %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["error"] != "Organization not approved for account creation" {
		t.Fatalf("expected provider message verbatim, got %q", payload["error"])
	}
}

func TestCreateTransferRequestEndpointValidationErrors(t *testing.T) {
	router := newTestRouter(&fakeProvider{})

	payload := map[string]interface{}{
		"payoutAccountId": "acct-1",
		"form": map[string]string{
			"name":  "Maria",
			"email": "not-an-email",
		},
	}
	raw, _ := json.Marshal(payload)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/transfer-requests", bytes.NewReader(raw)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		FieldErrors map[string]string `json:"fieldErrors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.FieldErrors["email"] != "Invalid email address" {
		t.Fatalf("expected email field error, got %v", resp.FieldErrors)
	}
}

func TestExecuteEndpointDisabledWithoutAccountKey(t *testing.T) {
	router := newTestRouter(&fakeProvider{hasAccountKey: false})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/transfer-requests/tr-1/execute", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestExecuteEndpoint(t *testing.T) {
	router := newTestRouter(&fakeProvider{hasAccountKey: true})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/transfer-requests/tr-1/execute", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp domain.ExecuteTransferResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != domain.StatusPending {
		t.Fatalf("expected PENDING after execute, got %q", resp.Status)
	}
}

func TestListTransferRequestsEndpointFiltersByAccount(t *testing.T) {
	provider := &fakeProvider{
		transferPage: &domain.GetTransferRequestsResponse{
			Total:  3,
			NextID: "cursor-2",
			Results: []domain.TransferRequest{
				{ID: "tr-1", PayoutAccountID: "acct-1"},
				{ID: "tr-2", PayoutAccountID: "acct-2"},
				{ID: "tr-3", PayoutAccountID: "acct-1"},
			},
		},
	}
	router := newTestRouter(provider)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/transfer-requests?accountId=acct-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		NextID  string                   `json:"nextId"`
		Results []domain.TransferRequest `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 scoped results, got %d", len(resp.Results))
	}
	if resp.NextID != "cursor-2" {
		t.Fatalf("expected provider cursor passed through, got %q", resp.NextID)
	}
}

func TestListTransferRequestsEndpointRejectsBadLimit(t *testing.T) {
	router := newTestRouter(&fakeProvider{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/transfer-requests?limit=abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
