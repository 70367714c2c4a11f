/**
 * @description
 * This file implements the transfer-request form validation rules. The rules
 * mirror the provider's server-side business rules so that invalid payloads
 * are rejected before any network call is made.
 *
 * Validation runs in two passes: field-level shape checks first, then the
 * document-number cross-check keyed by document type. A non-empty FieldErrors
 * map blocks submission.
 */

package app

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/muralops/payout-dashboard/internal/domain"
)

// TransferRequestForm is the raw form payload as submitted by the dashboard,
// prior to validation. All fields arrive as strings; tokenAmount is parsed
// and rounded during payload construction.
type TransferRequestForm struct {
	Memo                 string `json:"memo"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	DateOfBirth          string `json:"dateOfBirth"`
	PhoneNumber          string `json:"phoneNumber"`
	RecipientType        string `json:"recipientType"`
	TokenAmount          string `json:"tokenAmount"`
	BankCode             string `json:"bankCode"`
	BankName             string `json:"bankName"`
	BankAccountOwnerName string `json:"bankAccountOwnerName"`
	AccountType          string `json:"accountType"`
	BankAccountNumber    string `json:"bankAccountNumber"`
	DocumentType         string `json:"documentType"`
	DocumentNumber       string `json:"documentNumber"`
	Address1             string `json:"address1"`
	Address2             string `json:"address2"`
	City                 string `json:"city"`
	State                string `json:"state"`
	Zip                  string `json:"zip"`
}

// FieldErrors maps a form field name to a human-readable error message.
// An empty map means the form is valid.
type FieldErrors map[string]string

// Valid reports whether the form passed validation.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

var (
	emailPattern         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	datePattern          = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	accountNumberPattern = regexp.MustCompile(`^\d{6,18}$`)
	documentPattern      = regexp.MustCompile(`^\d{6,12}$`)
	nonDigits            = regexp.MustCompile(`\D`)
)

// ValidateTransferRequestForm applies every field rule plus the document-type
// cross-check and returns the collected errors.
func ValidateTransferRequestForm(form TransferRequestForm) FieldErrors {
	errs := FieldErrors{}

	requireNonEmpty(errs, "name", form.Name, "Name is required")
	requireNonEmpty(errs, "phoneNumber", form.PhoneNumber, "Phone number is required")
	requireNonEmpty(errs, "bankCode", form.BankCode, "Bank code is required")
	requireNonEmpty(errs, "bankName", form.BankName, "Bank name is required")
	requireNonEmpty(errs, "bankAccountOwnerName", form.BankAccountOwnerName, "Account owner name is required")
	requireNonEmpty(errs, "address1", form.Address1, "Address is required")
	requireNonEmpty(errs, "address2", form.Address2, "Address is required")
	requireNonEmpty(errs, "city", form.City, "City is required")
	requireNonEmpty(errs, "state", form.State, "State is required")
	requireNonEmpty(errs, "zip", form.Zip, "ZIP code is required")

	if !emailPattern.MatchString(form.Email) {
		errs["email"] = "Invalid email address"
	}
	if !datePattern.MatchString(form.DateOfBirth) {
		errs["dateOfBirth"] = "Date must be in YYYY-MM-DD format"
	}

	switch form.RecipientType {
	case string(domain.RecipientIndividual), string(domain.RecipientBusiness):
	default:
		errs["recipientType"] = "Recipient type must be INDIVIDUAL or BUSINESS"
	}

	switch form.AccountType {
	case string(domain.AccountSavings), string(domain.AccountChecking):
	default:
		errs["accountType"] = "Account type must be SAVINGS or CHECKING"
	}

	if strings.TrimSpace(form.TokenAmount) == "" {
		errs["tokenAmount"] = "Amount is required"
	} else if amount, err := strconv.ParseFloat(form.TokenAmount, 64); err != nil {
		errs["tokenAmount"] = "Must be a valid number"
	} else if amount <= 0 {
		errs["tokenAmount"] = "Amount must be greater than 0"
	}

	if !accountNumberPattern.MatchString(form.BankAccountNumber) {
		errs["bankAccountNumber"] = "Account number must be 6 to 18 digits"
	}

	switch form.DocumentType {
	case string(domain.DocNationalID), string(domain.DocPassport), string(domain.DocResidentID), string(domain.DocRUC):
	default:
		errs["documentType"] = "Document type is invalid"
	}

	if !documentPattern.MatchString(form.DocumentNumber) {
		errs["documentNumber"] = "Document number must be 6 to 12 digits"
	}
	if _, ok := errs["documentType"]; !ok {
		// Second pass: the allowed digit count narrows per document type.
		if msg, ok := ValidateDocumentNumber(domain.DocumentType(form.DocumentType), form.DocumentNumber); !ok {
			errs["documentNumber"] = msg
		}
	}

	return errs
}

// ValidateDocumentNumber cross-validates a document number against its
// document type. Non-digit characters are stripped before counting. It
// returns the error message and false when the digit count falls outside the
// allowed range for the type.
func ValidateDocumentNumber(documentType domain.DocumentType, documentNumber string) (string, bool) {
	digits := nonDigits.ReplaceAllString(documentNumber, "")

	switch documentType {
	case domain.DocNationalID:
		if len(digits) < 6 || len(digits) > 10 {
			return "National ID must be between 6 and 10 digits", false
		}
	case domain.DocRUC:
		if len(digits) < 10 || len(digits) > 11 {
			return "RUC must be between 10 and 11 digits", false
		}
	case domain.DocPassport, domain.DocResidentID:
		if len(digits) < 6 || len(digits) > 12 {
			return "Document number must be between 6 and 12 digits", false
		}
	}

	return "", true
}

// BuildCreateTransferRequest converts a validated form into the provider
// payload: single FIAT recipient, COP currency, Colombian address, and the
// token amount rounded to two decimals. Callers must validate first; the
// token amount is assumed parseable here.
func BuildCreateTransferRequest(payoutAccountID string, form TransferRequestForm) domain.CreateTransferRequest {
	amount, _ := strconv.ParseFloat(form.TokenAmount, 64)

	return domain.CreateTransferRequest{
		PayoutAccountID: payoutAccountID,
		Memo:            form.Memo,
		RecipientsInfo: []domain.CreateRecipientInfo{{
			Name:                  form.Name,
			CurrencyCode:          domain.ColombiaCurrencyCode,
			TokenAmount:           domain.RoundTokenAmount(amount),
			Email:                 form.Email,
			DateOfBirth:           form.DateOfBirth,
			PhoneNumber:           form.PhoneNumber,
			RecipientType:         domain.RecipientType(form.RecipientType),
			RecipientTransferType: domain.TransferTypeFiat,
			BankDetails: domain.BankContactDetails{
				BankName:             form.BankName,
				BankCode:             form.BankCode,
				BankAccountOwnerName: form.BankAccountOwnerName,
				CurrencyCode:         domain.ColombiaCurrencyCode,
				AccountType:          domain.AccountKind(form.AccountType),
				BankAccountNumber:    form.BankAccountNumber,
				DocumentType:         domain.DocumentType(form.DocumentType),
				DocumentNumber:       form.DocumentNumber,
				PhysicalAddress: domain.PhysicalAddress{
					Address1: form.Address1,
					Address2: form.Address2,
					Country:  domain.ColombiaCountryCode,
					State:    form.State,
					City:     form.City,
					Zip:      form.Zip,
				},
			},
		}},
	}
}

func requireNonEmpty(errs FieldErrors, field, value, message string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = message
	}
}
