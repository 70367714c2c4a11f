/**
 * @description
 * This file contains the transfer-request pages: the filterable, cursor-paged
 * table, the Colombian payout form with inline validation errors, and the
 * execute confirmation flow. Paging state round-trips through query
 * parameters: cursor is the current position, each prev entry is one step of
 * the trail back to the first page.
 */

package web

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/muralops/payout-dashboard/internal/app"
	"github.com/muralops/payout-dashboard/internal/domain"
)

type transferRow struct {
	ID         string
	AccountID  string
	Account    string
	Amount     float64
	Currency   string
	Memo       string
	Status     domain.TransferStatus
	CreatedAt  time.Time
	CanExecute bool
}

// transferListData feeds the shared transfer table partial.
type transferListData struct {
	Rows           []transferRow
	Total          int
	Search         string
	StatusFilter   string
	StatusOptions  []domain.TransferStatus
	AccountID      string
	BasePath       string
	PrevURL        string
	NextURL        string
	ExecuteEnabled bool
	ReturnTo       string
}

type transfersPageData struct {
	Title string
	List  transferListData
	Flash string
	Error string
}

type transferFormPageData struct {
	Title       string
	Account     *domain.Account
	Form        app.TransferRequestForm
	FieldErrors app.FieldErrors
	Error       string
	Banks       []string
}

type executeConfirmPageData struct {
	Title      string
	TransferID string
	ReturnTo   string
	Error      string
}

// loadTransferList reads the paging state from the request, fetches one page,
// and builds the table data. accountID scopes the list to one account and
// disables the name search.
func (s *Server) loadTransferList(r *http.Request, accountID string) (transferListData, error) {
	query := r.URL.Query()

	pager := app.Pager{Cursor: query.Get("cursor"), Trail: query["prev"]}
	statusFilter, statuses := app.NormalizeStatusFilter(query.Get("status"))
	search := query.Get("q")

	page, err := s.svc.ListTransferRequests(r.Context(), domain.GetTransferRequestsParams{
		NextID:    pager.Cursor,
		Statuses:  statuses,
		AccountID: accountID,
	})
	if err != nil {
		return transferListData{}, err
	}

	resolve := s.svc.AccountNameResolver(r.Context())
	results := app.FilterPageResults(page.Results, accountID, search, resolve)

	executeEnabled := s.svc.CanExecute()
	rows := make([]transferRow, 0, len(results))
	for _, request := range results {
		row := transferRow{
			ID:         request.ID,
			AccountID:  request.PayoutAccountID,
			Account:    resolve(request.PayoutAccountID),
			Memo:       request.Memo,
			Status:     request.Status,
			CreatedAt:  request.CreatedAt,
			CanExecute: executeEnabled && request.Status.CanExecute(),
			Currency:   "USDC",
		}
		if len(request.RecipientsInfo) > 0 {
			recipient := request.RecipientsInfo[0]
			row.Amount = recipient.TokenAmount
			if recipient.FiatDetails != nil && recipient.FiatDetails.CurrencyCode != "" {
				row.Currency = recipient.FiatDetails.CurrencyCode
			}
		}
		rows = append(rows, row)
	}

	basePath := "/transfer-requests"
	if accountID != "" {
		basePath = "/accounts/" + accountID
	}

	data := transferListData{
		Rows:           rows,
		Total:          page.Total,
		Search:         search,
		StatusFilter:   statusFilter,
		StatusOptions:  domain.TransferStatuses,
		AccountID:      accountID,
		BasePath:       basePath,
		ExecuteEnabled: executeEnabled,
		ReturnTo:       listURL(basePath, pager, statusFilter, search),
	}

	if page.NextID != "" {
		next := pager
		next.Trail = append(append([]string(nil), pager.Trail...), pager.Cursor)
		next.Cursor = page.NextID
		data.NextURL = listURL(basePath, next, statusFilter, search)
	}
	if pager.Cursor != "" {
		prev := pager
		prev.Trail = append([]string(nil), pager.Trail...)
		prev.Back()
		data.PrevURL = listURL(basePath, prev, statusFilter, search)
	}

	return data, nil
}

// listURL serializes one pager position back into a page URL.
func listURL(basePath string, p app.Pager, statusFilter, search string) string {
	values := url.Values{}
	if p.Cursor != "" {
		values.Set("cursor", p.Cursor)
	}
	for _, prev := range p.Trail {
		if prev != "" {
			values.Add("prev", prev)
		}
	}
	if statusFilter != "" && statusFilter != app.StatusFilterAll {
		values.Set("status", statusFilter)
	}
	if search != "" {
		values.Set("q", search)
	}
	if encoded := values.Encode(); encoded != "" {
		return basePath + "?" + encoded
	}
	return basePath
}

func (s *Server) transfersPage(w http.ResponseWriter, r *http.Request) {
	list, err := s.loadTransferList(r, "")
	if err != nil {
		s.renderError(w, http.StatusBadGateway, errorMessage(err, "Unable to load transfer requests"))
		return
	}

	s.render(w, http.StatusOK, "transfers", transfersPageData{
		Title: "Transfer Requests",
		List:  list,
		Flash: r.URL.Query().Get("flash"),
		Error: r.URL.Query().Get("error"),
	})
}

func (s *Server) newTransferPage(w http.ResponseWriter, r *http.Request) {
	account, err := s.svc.GetAccountByID(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		if errors.Is(err, app.ErrAccountNotFound) {
			s.renderError(w, http.StatusNotFound, "Account not found")
			return
		}
		s.renderError(w, http.StatusBadGateway, errorMessage(err, "Unable to load account"))
		return
	}

	s.render(w, http.StatusOK, "transfer_new", transferFormPageData{
		Title:   "New Transfer Request",
		Account: account,
		Form:    app.TransferRequestForm{RecipientType: string(domain.RecipientIndividual), AccountType: string(domain.AccountSavings), DocumentType: string(domain.DocNationalID)},
		Banks:   s.svc.BankDirectory(r.Context()).BankNames,
	})
}

func (s *Server) createTransfer(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	account, err := s.svc.GetAccountByID(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, app.ErrAccountNotFound) {
			s.renderError(w, http.StatusNotFound, "Account not found")
			return
		}
		s.renderError(w, http.StatusBadGateway, errorMessage(err, "Unable to load account"))
		return
	}

	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	form := app.TransferRequestForm{
		Memo:                 r.PostFormValue("memo"),
		Name:                 r.PostFormValue("name"),
		Email:                r.PostFormValue("email"),
		DateOfBirth:          r.PostFormValue("dateOfBirth"),
		PhoneNumber:          r.PostFormValue("phoneNumber"),
		RecipientType:        r.PostFormValue("recipientType"),
		TokenAmount:          r.PostFormValue("tokenAmount"),
		BankCode:             r.PostFormValue("bankName"),
		BankName:             r.PostFormValue("bankName"),
		BankAccountOwnerName: r.PostFormValue("bankAccountOwnerName"),
		AccountType:          r.PostFormValue("accountType"),
		BankAccountNumber:    r.PostFormValue("bankAccountNumber"),
		DocumentType:         r.PostFormValue("documentType"),
		DocumentNumber:       r.PostFormValue("documentNumber"),
		Address1:             r.PostFormValue("address1"),
		Address2:             r.PostFormValue("address2"),
		City:                 r.PostFormValue("city"),
		State:                r.PostFormValue("state"),
		Zip:                  r.PostFormValue("zip"),
	}

	_, fieldErrs, err := s.svc.CreateTransferRequest(r.Context(), accountID, form)
	if err != nil {
		data := transferFormPageData{
			Title:   "New Transfer Request",
			Account: account,
			Form:    form,
			Banks:   s.svc.BankDirectory(r.Context()).BankNames,
		}
		if errors.Is(err, app.ErrValidation) {
			data.FieldErrors = fieldErrs
			s.render(w, http.StatusUnprocessableEntity, "transfer_new", data)
			return
		}
		data.Error = errorMessage(err, "Unable to create transfer request")
		s.render(w, http.StatusBadGateway, "transfer_new", data)
		return
	}

	http.Redirect(w, r, "/accounts/"+accountID+"?flash="+url.QueryEscape("Transfer request created"), http.StatusSeeOther)
}

func (s *Server) executeConfirmPage(w http.ResponseWriter, r *http.Request) {
	if !s.svc.CanExecute() {
		s.renderError(w, http.StatusServiceUnavailable, "Execution is disabled: no account API key is configured")
		return
	}

	s.render(w, http.StatusOK, "execute_confirm", executeConfirmPageData{
		Title:      "Execute Transfer Request",
		TransferID: chi.URLParam(r, "transferID"),
		ReturnTo:   returnTo(r),
	})
}

func (s *Server) executeTransfer(w http.ResponseWriter, r *http.Request) {
	transferID := chi.URLParam(r, "transferID")
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Invalid form submission")
		return
	}
	target := returnTo(r)

	_, err := s.svc.ExecuteTransferRequest(r.Context(), transferID)
	if err != nil {
		var message string
		switch {
		case errors.Is(err, app.ErrExecuteKeyMissing):
			message = "Execution is disabled: no account API key is configured"
		case errors.Is(err, app.ErrExecuteInFlight):
			message = "This transfer request is already being executed"
		default:
			message = errorMessage(err, "Unable to execute transfer request")
		}
		http.Redirect(w, r, withParam(target, "error", message), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, withParam(target, "flash", "Transfer request executed"), http.StatusSeeOther)
}

// returnTo picks the page to land on after an execute, constrained to local
// paths so the redirect cannot leave the dashboard.
func returnTo(r *http.Request) string {
	target := r.FormValue("return_to")
	if target == "" {
		target = r.URL.Query().Get("return_to")
	}
	if target == "" || target[0] != '/' || (len(target) > 1 && target[1] == '/') {
		return "/transfer-requests"
	}
	return target
}

// withParam re-encodes target with one extra query parameter.
func withParam(target, key, value string) string {
	parsed, err := url.Parse(target)
	if err != nil {
		return "/transfer-requests?" + url.Values{key: {value}}.Encode()
	}
	values := parsed.Query()
	values.Set(key, value)
	parsed.RawQuery = values.Encode()
	return parsed.String()
}
