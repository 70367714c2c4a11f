/**
 * @description
 * This package serves the server-rendered dashboard UI: account cards, the
 * transfer-requests table with filtering and cursor paging, the payout form
 * with inline validation errors, and the execute confirmation flow. All view
 * state lives in query parameters so the web layer stays stateless.
 *
 * @dependencies
 * - embed, html/template, net/http: Standard Go libraries for templating.
 * - github.com/go-chi/chi/v5: Route definitions.
 * - internal/app, internal/domain: Service logic and models.
 */

package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/muralops/payout-dashboard/internal/app"
	"github.com/muralops/payout-dashboard/internal/domain"
	"github.com/muralops/payout-dashboard/pkg/muralclient"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server renders the dashboard pages.
type Server struct {
	svc  *app.Service
	tmpl *template.Template
}

// NewServer parses the embedded templates and returns the dashboard server.
func NewServer(svc *app.Service) (*Server, error) {
	tmpl, err := template.New("dashboard").Funcs(template.FuncMap{
		"shortID": func(id string) string {
			if len(id) <= 8 {
				return id
			}
			return id[:8]
		},
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return "—"
			}
			return t.Format("Jan 2, 2006 15:04")
		},
		"formatAmount": func(amount float64, currency string) string {
			return fmt.Sprintf("%.2f %s", amount, currency)
		},
		"statusClass": func(s domain.TransferStatus) string {
			return "status-" + strings.ToLower(string(s))
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Server{svc: svc, tmpl: tmpl}, nil
}

// Routes returns the router for the dashboard pages.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.accountsPage)
	r.Get("/accounts/new", s.newAccountPage)
	r.Post("/accounts", s.createAccount)
	r.Get("/accounts/{accountID}", s.accountDetailPage)
	r.Get("/accounts/{accountID}/transfer-requests/new", s.newTransferPage)
	r.Post("/accounts/{accountID}/transfer-requests", s.createTransfer)
	r.Get("/transfer-requests", s.transfersPage)
	r.Get("/transfer-requests/{transferID}/execute", s.executeConfirmPage)
	r.Post("/transfer-requests/{transferID}/execute", s.executeTransfer)

	return r
}

// render writes one page template. Render failures after headers are gone
// can only be logged.
func (s *Server) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("level=error component=web msg=\"failed to render template\" template=%s err=%v", name, err)
	}
}

// renderError shows the standalone error page with the given message.
func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	s.render(w, status, "error", map[string]interface{}{
		"Title":   "Something went wrong",
		"Message": message,
		"Status":  status,
	})
}

// errorMessage extracts the operator-facing message for a service failure:
// provider errors surface their message verbatim, everything else gets the
// fallback.
func errorMessage(err error, fallback string) string {
	var apiErr *muralclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message() != "" {
		return apiErr.Message()
	}
	return fallback
}
