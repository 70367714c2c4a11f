/**
 * @description
 * This file defines the transfer-request domain models for the payout
 * dashboard: the read-side shapes returned by the Mural Pay API, the
 * write-side creation payloads, and the status enum with its lifecycle
 * helpers.
 *
 * @notes
 * - A transfer request only ever moves forward: PENDING or IN_REVIEW can
 *   become EXECUTED, FAILED or CANCELLED through the provider, never the
 *   other way around. The dashboard itself only triggers the execute
 *   transition.
 * - Token amounts are two-decimal currency values; RoundTokenAmount is the
 *   single place that normalizes them before transmission.
 */

package domain

import (
	"math"
	"time"
)

// TransferStatus is the lifecycle state of a transfer request on the provider.
type TransferStatus string

const (
	StatusInReview  TransferStatus = "IN_REVIEW"
	StatusPending   TransferStatus = "PENDING"
	StatusExecuted  TransferStatus = "EXECUTED"
	StatusCancelled TransferStatus = "CANCELLED"
	StatusFailed    TransferStatus = "FAILED"
)

// TransferStatuses lists every valid provider status, in the order the
// dashboard's filter presents them.
var TransferStatuses = []TransferStatus{
	StatusInReview,
	StatusPending,
	StatusExecuted,
	StatusCancelled,
	StatusFailed,
}

// ValidStatus reports whether s is one of the provider's transfer statuses.
func ValidStatus(s TransferStatus) bool {
	for _, known := range TransferStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// CanExecute reports whether the dashboard exposes the Execute action for a
// request in this status. Only IN_REVIEW requests are executable from the UI.
func (s TransferStatus) CanExecute() bool {
	return s == StatusInReview
}

// IsTerminal reports whether the status can no longer change.
func (s TransferStatus) IsTerminal() bool {
	return s == StatusExecuted || s == StatusCancelled || s == StatusFailed
}

// RecipientTransferType distinguishes fiat payouts from blockchain payouts.
type RecipientTransferType string

const (
	TransferTypeFiat       RecipientTransferType = "FIAT"
	TransferTypeBlockchain RecipientTransferType = "BLOCKCHAIN"
)

// RecipientType distinguishes individual recipients from businesses.
type RecipientType string

const (
	RecipientIndividual RecipientType = "INDIVIDUAL"
	RecipientBusiness   RecipientType = "BUSINESS"
)

// FiatDetails carries the withdrawal-side state of a fiat recipient.
type FiatDetails struct {
	WithdrawalRequestStatus string     `json:"withdrawalRequestStatus"`
	CurrencyCode            string     `json:"currencyCode"`
	FiatAmount              float64    `json:"fiatAmount"`
	TransactionFee          float64    `json:"transactionFee"`
	ExchangeFeePercentage   float64    `json:"exchangeFeePercentage"`
	ExchangeRate            float64    `json:"exchangeRate"`
	FeeTotal                float64    `json:"feeTotal"`
	InitiatedAt             time.Time  `json:"initiatedAt"`
	CompletedAt             *time.Time `json:"completedAt,omitempty"`
}

// BlockchainDetails carries the on-chain destination of a blockchain recipient.
type BlockchainDetails struct {
	WalletAddress string `json:"walletAddress"`
	Blockchain    string `json:"blockchain"`
}

// Recipient is one payout leg embedded in a transfer request.
type Recipient struct {
	ID                    string                `json:"id"`
	CreatedAt             time.Time             `json:"createdAt"`
	UpdatedAt             time.Time             `json:"updatedAt"`
	RecipientTransferType RecipientTransferType `json:"recipientTransferType"`
	TokenAmount           float64               `json:"tokenAmount"`
	FiatDetails           *FiatDetails          `json:"fiatDetails,omitempty"`
	BlockchainDetails     *BlockchainDetails    `json:"blockchainDetails,omitempty"`
}

// TransferRequest is a cross-border payout request as returned by the API.
type TransferRequest struct {
	ID              string         `json:"id"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	PayoutAccountID string         `json:"payoutAccountId"`
	TransactionHash string         `json:"transactionHash,omitempty"`
	Memo            string         `json:"memo,omitempty"`
	Status          TransferStatus `json:"status"`
	RecipientsInfo  []Recipient    `json:"recipientsInfo"`
}

// PhysicalAddress is the recipient's street address. The dashboard is fixed
// to Colombian payouts, so Country is always "CO" on the write side.
type PhysicalAddress struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	Country  string `json:"country"`
	State    string `json:"state"`
	City     string `json:"city"`
	Zip      string `json:"zip"`
}

// AccountKind is the recipient bank account type.
type AccountKind string

const (
	AccountSavings  AccountKind = "SAVINGS"
	AccountChecking AccountKind = "CHECKING"
)

// DocumentType identifies the recipient's identity document class.
type DocumentType string

const (
	DocNationalID DocumentType = "NATIONAL_ID"
	DocPassport   DocumentType = "PASSPORT"
	DocResidentID DocumentType = "RESIDENT_ID"
	DocRUC        DocumentType = "RUC"
)

// BankContactDetails is the recipient's bank destination on the write side.
// The dashboard conflates bankCode and bankName on purpose: picking a bank in
// the selector sets both fields to the same display string.
type BankContactDetails struct {
	BankName             string          `json:"bankName"`
	BankCode             string          `json:"bankCode"`
	BankAccountOwnerName string          `json:"bankAccountOwnerName"`
	CurrencyCode         string          `json:"currencyCode"`
	AccountType          AccountKind     `json:"accountType"`
	BankAccountNumber    string          `json:"bankAccountNumber"`
	DocumentType         DocumentType    `json:"documentType"`
	DocumentNumber       string          `json:"documentNumber"`
	PhysicalAddress      PhysicalAddress `json:"physicalAddress"`
}

// CreateRecipientInfo is the write-side recipient payload.
type CreateRecipientInfo struct {
	Name                  string                `json:"name"`
	CurrencyCode          string                `json:"currencyCode"`
	TokenAmount           float64               `json:"tokenAmount"`
	Email                 string                `json:"email"`
	DateOfBirth           string                `json:"dateOfBirth"`
	PhoneNumber           string                `json:"phoneNumber"`
	RecipientType         RecipientType         `json:"recipientType"`
	RecipientTransferType RecipientTransferType `json:"recipientTransferType"`
	BankDetails           BankContactDetails    `json:"bankDetails"`
}

// CreateTransferRequest is the payload for POST /transfer-requests. The type
// supports multiple recipients; the dashboard form exercises exactly one.
type CreateTransferRequest struct {
	PayoutAccountID string                `json:"payoutAccountId"`
	Memo            string                `json:"memo,omitempty"`
	RecipientsInfo  []CreateRecipientInfo `json:"recipientsInfo"`
}

// GetTransferRequestsParams are the query parameters of the cursor-paginated
// listing endpoint. NextID echoes the cursor from a prior response; its
// absence requests the first page.
type GetTransferRequestsParams struct {
	Limit     int
	NextID    string
	Statuses  []TransferStatus
	AccountID string
}

// GetTransferRequestsResponse is one page of transfer requests. A missing
// NextID signals the last page.
type GetTransferRequestsResponse struct {
	Total   int               `json:"total"`
	NextID  string            `json:"nextId,omitempty"`
	Results []TransferRequest `json:"results"`
}

// ExecutedRecipient is the per-recipient slice of an execute response.
type ExecutedRecipient struct {
	ID                      string    `json:"id"`
	CurrencyCode            string    `json:"currencyCode"`
	TokenAmount             float64   `json:"tokenAmount"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
	WithdrawalRequestStatus string    `json:"withdrawalRequestStatus"`
}

// ExecuteTransferResponse is the provider's response to an execute call.
type ExecuteTransferResponse struct {
	ID              string              `json:"id"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	PayoutAccountID string              `json:"payoutAccountId"`
	Memo            string              `json:"memo,omitempty"`
	Status          TransferStatus      `json:"status"`
	RecipientsInfo  []ExecutedRecipient `json:"recipientsInfo"`
}

// RoundTokenAmount normalizes a token amount to two decimals before it is
// sent to the provider.
func RoundTokenAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}
