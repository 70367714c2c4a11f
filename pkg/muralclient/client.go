/**
 * @description
 * This package provides a client for interacting with the Mural Pay API.
 * It encapsulates the logic for making authenticated HTTP requests to the
 * provider's endpoints, handling request body construction, and parsing
 * responses, including the provider's structured error bodies.
 *
 * Key features:
 * - Manages the API base URL and both API credentials.
 * - Provides methods for each remote operation the dashboard uses.
 * - Execute calls carry the account-scoped key in a separate header, as
 *   required by the provider's credential segregation.
 *
 * @dependencies
 * - bytes, context, encoding/json, fmt, io, net/http, net/url, time: Standard Go libraries.
 * - The service's internal domain package for request/response models.
 */
package muralclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/muralops/payout-dashboard/internal/domain"
)

// DefaultBaseURL is the provider's staging environment.
const DefaultBaseURL = "https://api-staging.muralpay.com/api"

// accountKeyHeader carries the secondary, account-scoped credential required
// by the execute endpoint.
const accountKeyHeader = "mural-account-api-key"

// Client is a client for the Mural Pay API.
type Client struct {
	baseURL       string
	apiKey        string
	accountAPIKey string
	httpClient    *http.Client
}

// NewClient creates a new Mural Pay API client. accountAPIKey may be empty;
// only ExecuteTransferRequest requires it.
func NewClient(baseURL, apiKey, accountAPIKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:       baseURL,
		apiKey:        apiKey,
		accountAPIKey: accountAPIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ErrorData is the body of a provider-reported business error.
type ErrorData struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// APIError represents a non-2xx response from the Mural Pay API. The UI
// surfaces Data.Message verbatim when present.
type APIError struct {
	Status int       `json:"status"`
	Data   ErrorData `json:"data"`
}

func (e *APIError) Error() string {
	if e.Data.Message != "" {
		return fmt.Sprintf("mural api error: %s (status %d)", e.Data.Message, e.Status)
	}
	return fmt.Sprintf("mural api error: status %d", e.Status)
}

// Message returns the provider-supplied message, or empty when the error body
// could not be parsed.
func (e *APIError) Message() string {
	return e.Data.Message
}

// ListAccounts fetches every payout account visible to the API key.
func (c *Client) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/accounts", nil, &accounts, nil); err != nil {
		return nil, err
	}
	return accounts, nil
}

// CreateAccount creates a new payout account.
func (c *Client) CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error) {
	var account domain.Account
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/accounts", req, &account, nil); err != nil {
		return nil, err
	}
	return &account, nil
}

// ListBankDetails fetches the per-currency bank selector data.
func (c *Client) ListBankDetails(ctx context.Context, currencyCodes []string) ([]domain.GetBankDetailsResponse, error) {
	query := url.Values{}
	for _, code := range currencyCodes {
		query.Add("fiatCurrencyCodes[]", code)
	}
	endpoint := c.baseURL + "/bank-accounts/get-bank-details-info?" + query.Encode()

	var details []domain.GetBankDetailsResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &details, nil); err != nil {
		return nil, err
	}
	return details, nil
}

// ListTransferRequests fetches one page of transfer requests. The params'
// NextID echoes a cursor from a prior response; an absent NextID in the
// returned page signals the last page.
func (c *Client) ListTransferRequests(ctx context.Context, params domain.GetTransferRequestsParams) (*domain.GetTransferRequestsResponse, error) {
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.NextID != "" {
		query.Set("nextId", params.NextID)
	}
	for _, status := range params.Statuses {
		query.Add("status", string(status))
	}
	if params.AccountID != "" {
		query.Set("accountId", params.AccountID)
	}

	endpoint := c.baseURL + "/transfer-requests"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var page domain.GetTransferRequestsResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &page, nil); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateTransferRequest submits a new transfer request.
func (c *Client) CreateTransferRequest(ctx context.Context, req domain.CreateTransferRequest) (*domain.TransferRequest, error) {
	var created domain.TransferRequest
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/transfer-requests", req, &created, nil); err != nil {
		return nil, err
	}
	return &created, nil
}

// ExecuteTransferRequest asks the provider to execute a pending or in-review
// transfer request. It requires the account-scoped API key, which the
// provider checks in addition to the bearer token.
func (c *Client) ExecuteTransferRequest(ctx context.Context, transferRequestID string) (*domain.ExecuteTransferResponse, error) {
	body := map[string]string{"transferRequestId": transferRequestID}
	headers := map[string]string{accountKeyHeader: c.accountAPIKey}

	var executed domain.ExecuteTransferResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/transfer-requests/execute", body, &executed, headers); err != nil {
		return nil, err
	}
	return &executed, nil
}

// HasAccountKey reports whether the account-scoped credential is configured.
func (c *Client) HasAccountKey() bool {
	return c.accountAPIKey != ""
}

// do is a helper function to make HTTP requests to the Mural Pay API.
func (c *Client) do(ctx context.Context, method, endpoint string, body, target interface{}, extraHeaders map[string]string) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	for key, value := range extraHeaders {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(respBody, &apiErr.Data); err != nil {
			log.Printf("level=warn component=mural_client method=%s url=%s status=%d msg=\"non-2xx response (unparsable error body)\"", method, endpoint, resp.StatusCode)
			return apiErr
		}
		log.Printf("level=warn component=mural_client method=%s url=%s status=%d message=%q", method, endpoint, resp.StatusCode, apiErr.Data.Message)
		return apiErr
	}

	if target != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, target); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	return nil
}
