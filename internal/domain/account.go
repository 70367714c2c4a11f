/**
 * @description
 * This file defines the account-side domain models for the payout dashboard.
 * Accounts are owned by the Mural Pay service; this system only reads them
 * through the API client and never persists them beyond an in-memory cache.
 *
 * @notes
 * - Balances arrive from the provider as floating point token amounts with a
 *   symbol, so the display helpers live next to the model to keep every view
 *   formatting them the same way.
 */

package domain

import (
	"fmt"
	"time"
)

// Balance is the token balance attached to a payout account.
type Balance struct {
	Balance     float64 `json:"balance"`
	TokenSymbol string  `json:"tokenSymbol"`
}

// Display renders a balance the way the dashboard cards show it, e.g. "$0.00 USDC".
func (b Balance) Display() string {
	return fmt.Sprintf("$%.2f %s", b.Balance, b.TokenSymbol)
}

// Account represents a payout account as returned by the Mural Pay API.
type Account struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Blockchain   string    `json:"blockchain"`
	Balance      Balance   `json:"balance"`
	IsAPIEnabled bool      `json:"isApiEnabled"`
	IsPending    bool      `json:"isPending"`
}

// ShortAddress truncates the wallet address for card display, keeping the
// leading 6 and trailing 4 characters.
func (a Account) ShortAddress() string {
	if len(a.Address) <= 10 {
		return a.Address
	}
	return a.Address[:6] + "..." + a.Address[len(a.Address)-4:]
}

// CreateAccountRequest is the write-side payload for account creation.
// Description is optional; the provider accepts its absence.
type CreateAccountRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
