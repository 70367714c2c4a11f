/**
 * @description
 * This file contains the core application service for the payout dashboard.
 * It sits between the HTTP layers and the Mural Pay client: it owns the
 * in-memory caches, derives account lookups from the cached list, enforces
 * validation before any mutation reaches the network, and serializes
 * concurrent execute attempts for the same transfer request.
 *
 * Key features:
 * - Accounts cache with TTL, invalidated by account creation.
 * - GetAccountByID derived by scanning the cached list; the provider has no
 *   single-resource endpoint, so the O(n) scan is the strategy, not an
 *   accident.
 * - Bank selector data cached for a day, with the built-in Colombian
 *   directory as fallback.
 * - Per-id in-flight guard on execute, mirroring the UI's disabled-button
 *   double-submission guard.
 *
 * @dependencies
 * - context, errors, fmt, log, strings, sync, time: Standard Go libraries.
 * - internal/domain: Domain models.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/muralops/payout-dashboard/internal/domain"
)

var (
	// ErrAccountNotFound is returned when an account id is absent from the
	// provider's account list.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountNameRequired is returned when account creation is attempted
	// without a name.
	ErrAccountNameRequired = errors.New("account name is required")

	// ErrExecuteInFlight is returned when an execute for the same transfer
	// request is already running.
	ErrExecuteInFlight = errors.New("transfer request execution already in progress")

	// ErrExecuteKeyMissing is returned when the account-scoped API key is not
	// configured, which the execute endpoint requires.
	ErrExecuteKeyMissing = errors.New("account api key not configured; execute is disabled")

	// ErrValidation marks form validation failures so callers can
	// distinguish them from transport errors.
	ErrValidation = errors.New("validation failed")
)

// PaymentsAPI is the surface of the Mural Pay client the service consumes.
// Declared as an interface so tests can substitute a fake provider.
type PaymentsAPI interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error)
	ListBankDetails(ctx context.Context, currencyCodes []string) ([]domain.GetBankDetailsResponse, error)
	ListTransferRequests(ctx context.Context, params domain.GetTransferRequestsParams) (*domain.GetTransferRequestsResponse, error)
	CreateTransferRequest(ctx context.Context, req domain.CreateTransferRequest) (*domain.TransferRequest, error)
	ExecuteTransferRequest(ctx context.Context, transferRequestID string) (*domain.ExecuteTransferResponse, error)
	HasAccountKey() bool
}

// Service is the application core of the payout dashboard.
type Service struct {
	api      PaymentsAPI
	pageSize int

	accountsTTL time.Duration
	banksTTL    time.Duration

	mu              sync.RWMutex
	accounts        []domain.Account
	accountsFetched time.Time

	banks        *domain.GetBankDetailsResponse
	banksFetched time.Time

	inflightMu sync.Mutex
	inflight   map[string]struct{}
}

// NewService creates the application service. pageSize is the transfer-request
// page size; accountsTTL and banksTTL bound cache staleness.
func NewService(api PaymentsAPI, pageSize int, accountsTTL, banksTTL time.Duration) *Service {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Service{
		api:         api,
		pageSize:    pageSize,
		accountsTTL: accountsTTL,
		banksTTL:    banksTTL,
		inflight:    make(map[string]struct{}),
	}
}

// PageSize returns the configured transfer-request page size.
func (s *Service) PageSize() int {
	return s.pageSize
}

// CanExecute reports whether the execute credential is configured.
func (s *Service) CanExecute() bool {
	return s.api.HasAccountKey()
}

// ListAccounts returns the account list, served from cache while fresh.
func (s *Service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	if s.accounts != nil && time.Since(s.accountsFetched) < s.accountsTTL {
		cached := s.accounts
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	return s.RefreshAccounts(ctx)
}

// RefreshAccounts fetches the account list from the provider and replaces the
// cached snapshot. On failure the previous snapshot is left untouched.
func (s *Service) RefreshAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.api.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}

	s.mu.Lock()
	s.accounts = accounts
	s.accountsFetched = time.Now()
	s.mu.Unlock()

	return accounts, nil
}

// GetAccountByID finds one account by scanning the cached account list. The
// provider exposes no single-account endpoint; the scan is re-derived on
// every cache update and is proportional to the account count.
func (s *Service) GetAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].ID == id {
			account := accounts[i]
			return &account, nil
		}
	}
	return nil, ErrAccountNotFound
}

// CreateAccount creates a payout account and invalidates the cached account
// list so the next read refetches.
func (s *Service) CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrAccountNameRequired
	}

	account, err := s.api.CreateAccount(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.mu.Lock()
	s.accounts = nil
	s.mu.Unlock()

	log.Printf("level=info component=app op=create_account outcome=created account_id=%s", account.ID)
	return account, nil
}

// AccountNameResolver returns a resolver over the current account snapshot,
// used by the list view to match search terms against account names. Unknown
// ids resolve to themselves.
func (s *Service) AccountNameResolver(ctx context.Context) AccountNameResolver {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		log.Printf("level=warn component=app op=resolve_account_names msg=\"account list unavailable; falling back to ids\" err=%v", err)
		return func(accountID string) string { return accountID }
	}

	names := make(map[string]string, len(accounts))
	for _, account := range accounts {
		names[account.ID] = account.Name
	}
	return func(accountID string) string {
		if name, ok := names[accountID]; ok && name != "" {
			return name
		}
		return accountID
	}
}

// BankDirectory returns the bank selector data for COP, cached for banksTTL.
// When the provider call fails or yields nothing, the built-in Colombian
// directory is served instead so the form stays usable.
func (s *Service) BankDirectory(ctx context.Context) domain.GetBankDetailsResponse {
	s.mu.RLock()
	if s.banks != nil && time.Since(s.banksFetched) < s.banksTTL {
		cached := *s.banks
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	details, err := s.api.ListBankDetails(ctx, []string{domain.ColombiaCurrencyCode})
	if err != nil || len(details) == 0 || len(details[0].BankNames) == 0 {
		if err != nil {
			log.Printf("level=warn component=app op=bank_directory msg=\"bank details unavailable; using built-in directory\" err=%v", err)
		}
		return domain.GetBankDetailsResponse{
			FiatCurrencyCode:         domain.ColombiaCurrencyCode,
			BankNames:                domain.ColombianBankNames(),
			MatchingBankNameRequired: true,
		}
	}

	s.mu.Lock()
	s.banks = &details[0]
	s.banksFetched = time.Now()
	cached := *s.banks
	s.mu.Unlock()

	return cached
}

// RefreshBankDirectory drops the cached selector data so the next read
// refetches. Used by the background refresher.
func (s *Service) RefreshBankDirectory() {
	s.mu.Lock()
	s.banks = nil
	s.mu.Unlock()
}

// ListTransferRequests fetches one page of transfer requests. A zero limit is
// replaced with the configured page size.
func (s *Service) ListTransferRequests(ctx context.Context, params domain.GetTransferRequestsParams) (*domain.GetTransferRequestsResponse, error) {
	if params.Limit <= 0 {
		params.Limit = s.pageSize
	}
	page, err := s.api.ListTransferRequests(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfer requests: %w", err)
	}
	return page, nil
}

// CreateTransferRequest validates the form, and only when every rule passes
// builds the provider payload and submits it. Validation failures never reach
// the network; the returned FieldErrors is non-empty exactly in that case.
func (s *Service) CreateTransferRequest(ctx context.Context, payoutAccountID string, form TransferRequestForm) (*domain.TransferRequest, FieldErrors, error) {
	if fieldErrs := ValidateTransferRequestForm(form); !fieldErrs.Valid() {
		return nil, fieldErrs, ErrValidation
	}

	payload := BuildCreateTransferRequest(payoutAccountID, form)
	created, err := s.api.CreateTransferRequest(ctx, payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create transfer request: %w", err)
	}

	log.Printf("level=info component=app op=create_transfer_request outcome=created transfer_request_id=%s account_id=%s status=%s", created.ID, payoutAccountID, created.Status)
	return created, nil, nil
}

// ExecuteTransferRequest executes a transfer request. Concurrent executes for
// the same id are rejected with ErrExecuteInFlight rather than queued, the
// service-side equivalent of disabling the button while a call is running.
func (s *Service) ExecuteTransferRequest(ctx context.Context, transferRequestID string) (*domain.ExecuteTransferResponse, error) {
	if !s.api.HasAccountKey() {
		return nil, ErrExecuteKeyMissing
	}

	s.inflightMu.Lock()
	if _, running := s.inflight[transferRequestID]; running {
		s.inflightMu.Unlock()
		return nil, ErrExecuteInFlight
	}
	s.inflight[transferRequestID] = struct{}{}
	s.inflightMu.Unlock()

	defer func() {
		s.inflightMu.Lock()
		delete(s.inflight, transferRequestID)
		s.inflightMu.Unlock()
	}()

	executed, err := s.api.ExecuteTransferRequest(ctx, transferRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute transfer request: %w", err)
	}

	log.Printf("level=info component=app op=execute_transfer_request outcome=executed transfer_request_id=%s status=%s", transferRequestID, executed.Status)
	return executed, nil
}
