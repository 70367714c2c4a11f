/**
 * @description
 * This file implements the state machine behind the transfer-requests list
 * view: cursor-based forward paging with a client-held trail of previously
 * seen cursors (the provider has no backward paging), a server-side status
 * filter, and a free-text search applied only to the page in hand.
 *
 * @notes
 * - The search never re-queries the provider: it can hide every row of an
 *   otherwise non-empty page. That asymmetry is deliberate and documented.
 */

package app

import (
	"strings"

	"github.com/muralops/payout-dashboard/internal/domain"
)

// StatusFilterAll is the filter value that disables server-side status
// filtering. It is a UI value, not a provider status.
const StatusFilterAll = "ALL"

// Pager tracks the cursor position within a cursor-paginated listing. The
// zero value is the first page. Cursor is the nextId echoed to the provider;
// Trail holds every cursor seen on the way here so Back can retrace without
// server support.
type Pager struct {
	Cursor string
	Trail  []string
}

// Advance moves to the page identified by nextID, remembering the current
// cursor. A response without a nextId means the last page; advancing on an
// empty id is a no-op.
func (p *Pager) Advance(nextID string) {
	if nextID == "" {
		return
	}
	p.Trail = append(p.Trail, p.Cursor)
	p.Cursor = nextID
}

// Back returns to the previously seen page. Two advances followed by two
// backs lands on the first page's cursor (the empty string).
func (p *Pager) Back() {
	if len(p.Trail) == 0 {
		p.Cursor = ""
		return
	}
	p.Cursor = p.Trail[len(p.Trail)-1]
	p.Trail = p.Trail[:len(p.Trail)-1]
}

// Reset discards the cursor position. Changing the status filter must reset
// the pager to the first page.
func (p *Pager) Reset() {
	p.Cursor = ""
	p.Trail = nil
}

// HasPrev reports whether a previous page exists.
func (p *Pager) HasPrev() bool {
	return len(p.Trail) > 0
}

// NormalizeStatusFilter maps a raw filter value to its canonical form and the
// status list sent to the provider. Unknown values fall back to ALL, which
// sends no status constraint.
func NormalizeStatusFilter(raw string) (string, []domain.TransferStatus) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" || value == StatusFilterAll {
		return StatusFilterAll, nil
	}
	if domain.ValidStatus(domain.TransferStatus(value)) {
		return value, []domain.TransferStatus{domain.TransferStatus(value)}
	}
	return StatusFilterAll, nil
}

// AccountNameResolver resolves a payout account id to its display name. When
// no name is known the id itself is used, matching the table's rendering.
type AccountNameResolver func(accountID string) string

// FilterPageResults applies the in-page filters to one page of results: the
// optional account scope and the case-insensitive search against the resolved
// account name. Search is ignored when the list is scoped to one account.
func FilterPageResults(results []domain.TransferRequest, accountID, search string, resolve AccountNameResolver) []domain.TransferRequest {
	search = strings.ToLower(strings.TrimSpace(search))
	filtered := make([]domain.TransferRequest, 0, len(results))

	for _, request := range results {
		if accountID != "" && request.PayoutAccountID != accountID {
			continue
		}
		if search != "" && accountID == "" {
			name := request.PayoutAccountID
			if resolve != nil {
				name = resolve(request.PayoutAccountID)
			}
			if !strings.Contains(strings.ToLower(name), search) {
				continue
			}
		}
		filtered = append(filtered, request)
	}

	return filtered
}
