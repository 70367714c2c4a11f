/**
 * @description
 * This file contains the account pages: the card overview, the creation form,
 * and the per-account detail view with its scoped transfer-request table.
 */

package web

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/muralops/payout-dashboard/internal/app"
	"github.com/muralops/payout-dashboard/internal/domain"
)

type accountsPageData struct {
	Title    string
	Accounts []domain.Account
	Flash    string
	Error    string
}

type newAccountPageData struct {
	Title       string
	Name        string
	Description string
	Error       string
}

type accountDetailPageData struct {
	Title   string
	Account *domain.Account
	List    transferListData
	Flash   string
	Error   string
}

func (s *Server) accountsPage(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.svc.ListAccounts(r.Context())
	if err != nil {
		log.Printf("level=error component=web page=accounts err=%v", err)
		s.renderError(w, http.StatusBadGateway, errorMessage(err, "Unable to load accounts"))
		return
	}

	s.render(w, http.StatusOK, "accounts", accountsPageData{
		Title:    "Accounts",
		Accounts: accounts,
		Flash:    r.URL.Query().Get("flash"),
		Error:    r.URL.Query().Get("error"),
	})
}

func (s *Server) newAccountPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "account_new", newAccountPageData{Title: "New Account"})
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	req := domain.CreateAccountRequest{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}

	account, err := s.svc.CreateAccount(r.Context(), req)
	if err != nil {
		status := http.StatusBadGateway
		message := errorMessage(err, "Unable to create account")
		if errors.Is(err, app.ErrAccountNameRequired) {
			status = http.StatusBadRequest
			message = "Account name is required"
		}
		s.render(w, status, "account_new", newAccountPageData{
			Title:       "New Account",
			Name:        req.Name,
			Description: req.Description,
			Error:       message,
		})
		return
	}

	http.Redirect(w, r, "/?flash="+url.QueryEscape("Account \""+account.Name+"\" created"), http.StatusSeeOther)
}

func (s *Server) accountDetailPage(w http.ResponseWriter, r *http.Request) {
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

	list, err := s.loadTransferList(r, accountID)
	if err != nil {
		s.renderError(w, http.StatusBadGateway, errorMessage(err, "Unable to load transfer requests"))
		return
	}

	s.render(w, http.StatusOK, "account_detail", accountDetailPageData{
		Title:   account.Name,
		Account: account,
		List:    list,
		Flash:   r.URL.Query().Get("flash"),
		Error:   r.URL.Query().Get("error"),
	})
}
