package app

import (
	"testing"

	"github.com/muralops/payout-dashboard/internal/domain"
)

func validForm() TransferRequestForm {
	return TransferRequestForm{
		Memo:                 "payroll",
		Name:                 "Maria Lopez",
		Email:                "maria@example.com",
		DateOfBirth:          "1990-04-12",
		PhoneNumber:          "+573001234567",
		RecipientType:        "INDIVIDUAL",
		TokenAmount:          "150.00",
		BankCode:             "Bancolombia",
		BankName:             "Bancolombia",
		BankAccountOwnerName: "Maria Lopez",
		AccountType:          "SAVINGS",
		BankAccountNumber:    "123456789",
		DocumentType:         "NATIONAL_ID",
		DocumentNumber:       "12345678",
		Address1:             "Calle 10 #5-51",
		Address2:             "Apto 201",
		City:                 "Bogota",
		State:                "Cundinamarca",
		Zip:                  "110111",
	}
}

func TestValidateTransferRequestFormAcceptsValidForm(t *testing.T) {
	errs := ValidateTransferRequestForm(validForm())
	if !errs.Valid() {
		t.Fatalf("expected valid form, got errors: %v", errs)
	}
}

func TestValidateTransferRequestFormFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TransferRequestForm)
		field   string
		wantMsg string
	}{
		{"empty name", func(f *TransferRequestForm) { f.Name = "  " }, "name", "Name is required"},
		{"empty phone", func(f *TransferRequestForm) { f.PhoneNumber = "" }, "phoneNumber", "Phone number is required"},
		{"bad email", func(f *TransferRequestForm) { f.Email = "not-an-email" }, "email", "Invalid email address"},
		{"bad date", func(f *TransferRequestForm) { f.DateOfBirth = "12/04/1990" }, "dateOfBirth", "Date must be in YYYY-MM-DD format"},
		{"empty amount", func(f *TransferRequestForm) { f.TokenAmount = "" }, "tokenAmount", "Amount is required"},
		{"non-numeric amount", func(f *TransferRequestForm) { f.TokenAmount = "abc" }, "tokenAmount", "Must be a valid number"},
		{"zero amount", func(f *TransferRequestForm) { f.TokenAmount = "0" }, "tokenAmount", "Amount must be greater than 0"},
		{"negative amount", func(f *TransferRequestForm) { f.TokenAmount = "-5" }, "tokenAmount", "Amount must be greater than 0"},
		{"short account number", func(f *TransferRequestForm) { f.BankAccountNumber = "12345" }, "bankAccountNumber", "Account number must be 6 to 18 digits"},
		{"alpha account number", func(f *TransferRequestForm) { f.BankAccountNumber = "12345678a" }, "bankAccountNumber", "Account number must be 6 to 18 digits"},
		{"empty bank name", func(f *TransferRequestForm) { f.BankName = "" }, "bankName", "Bank name is required"},
		{"empty address2", func(f *TransferRequestForm) { f.Address2 = "" }, "address2", "Address is required"},
		{"empty zip", func(f *TransferRequestForm) { f.Zip = "" }, "zip", "ZIP code is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			errs := ValidateTransferRequestForm(form)
			if errs.Valid() {
				t.Fatal("expected validation to fail")
			}
			if got := errs[tt.field]; got != tt.wantMsg {
				t.Fatalf("expected %q error %q, got %q (all: %v)", tt.field, tt.wantMsg, got, errs)
			}
		})
	}
}

func TestValidateDocumentNumberRanges(t *testing.T) {
	tests := []struct {
		name    string
		docType domain.DocumentType
		number  string
		wantOK  bool
		wantMsg string
	}{
		{"national id lower bound", domain.DocNationalID, "123456", true, ""},
		{"national id upper bound", domain.DocNationalID, "1234567890", true, ""},
		{"national id too long", domain.DocNationalID, "12345678901", false, "National ID must be between 6 and 10 digits"},
		{"ruc lower bound", domain.DocRUC, "1234567890", true, ""},
		{"ruc upper bound", domain.DocRUC, "12345678901", true, ""},
		{"ruc too short", domain.DocRUC, "12345", false, "RUC must be between 10 and 11 digits"},
		{"ruc nine digits", domain.DocRUC, "123456789", false, "RUC must be between 10 and 11 digits"},
		{"passport full range", domain.DocPassport, "123456789012", true, ""},
		{"passport too short", domain.DocPassport, "12345", false, "Document number must be between 6 and 12 digits"},
		{"resident id too long", domain.DocResidentID, "1234567890123", false, "Document number must be between 6 and 12 digits"},
		{"non-digits stripped before counting", domain.DocNationalID, "12-34-56", true, ""},
		{"non-digits stripped can invalidate", domain.DocRUC, "12-345", false, "RUC must be between 10 and 11 digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := ValidateDocumentNumber(tt.docType, tt.number)
			if ok != tt.wantOK {
				t.Fatalf("ValidateDocumentNumber(%s, %q) ok = %v, want %v", tt.docType, tt.number, ok, tt.wantOK)
			}
			if msg != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}

func TestCrossFieldRuleWinsForDocumentNumber(t *testing.T) {
	// A 5-digit RUC fails the generic shape rule too, but the type-specific
	// message is the one that must surface and block submission.
	form := validForm()
	form.DocumentType = "RUC"
	form.DocumentNumber = "12345"

	errs := ValidateTransferRequestForm(form)
	if got := errs["documentNumber"]; got != "RUC must be between 10 and 11 digits" {
		t.Fatalf("expected RUC cross-field error, got %q (all: %v)", got, errs)
	}

	// A 9-digit RUC passes the generic 6-12 shape rule but fails the
	// type-specific range.
	form.DocumentNumber = "123456789"
	errs = ValidateTransferRequestForm(form)
	if got := errs["documentNumber"]; got != "RUC must be between 10 and 11 digits" {
		t.Fatalf("expected cross-field RUC error, got %q", got)
	}
}

func TestBuildCreateTransferRequestRoundsAndPins(t *testing.T) {
	form := validForm()
	form.TokenAmount = "12.345"

	req := BuildCreateTransferRequest("acc1", form)

	if req.PayoutAccountID != "acc1" {
		t.Fatalf("expected payout account id acc1, got %q", req.PayoutAccountID)
	}
	if len(req.RecipientsInfo) != 1 {
		t.Fatalf("expected exactly one recipient, got %d", len(req.RecipientsInfo))
	}

	recipient := req.RecipientsInfo[0]
	if recipient.TokenAmount != 12.34 {
		t.Fatalf("expected token amount rounded to 12.34, got %v", recipient.TokenAmount)
	}
	if recipient.CurrencyCode != "COP" || recipient.BankDetails.CurrencyCode != "COP" {
		t.Fatal("currency must be pinned to COP on both levels")
	}
	if recipient.RecipientTransferType != domain.TransferTypeFiat {
		t.Fatalf("expected FIAT transfer type, got %q", recipient.RecipientTransferType)
	}
	if recipient.BankDetails.PhysicalAddress.Country != "CO" {
		t.Fatalf("expected country CO, got %q", recipient.BankDetails.PhysicalAddress.Country)
	}
}

func TestBankSelectionAliasing(t *testing.T) {
	// Choosing a bank sets bankCode and bankName to the identical string;
	// the built payload must carry that through unchanged.
	form := validForm()
	form.BankCode = "Nequi"
	form.BankName = "Nequi"

	req := BuildCreateTransferRequest("acc1", form)
	bank := req.RecipientsInfo[0].BankDetails
	if bank.BankCode != bank.BankName || bank.BankCode != "Nequi" {
		t.Fatalf("expected bankCode == bankName == Nequi, got code=%q name=%q", bank.BankCode, bank.BankName)
	}
}
