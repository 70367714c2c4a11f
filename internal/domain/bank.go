/**
 * @description
 * This file defines the read-side bank models used to populate the bank
 * selector, plus the built-in Colombian bank directory the dashboard falls
 * back to when the provider's bank-details endpoint is unavailable.
 */

package domain

// BankDirectoryEntry pairs a bank's display name with its code. The form
// submits the display name for both fields; the code is kept for reference.
type BankDirectoryEntry struct {
	BankName string `json:"bankName"`
	BankCode string `json:"bankCode"`
}

// GetBankDetailsResponse is one per-currency entry of the provider's
// bank-details endpoint.
type GetBankDetailsResponse struct {
	FiatCurrencyCode         string   `json:"fiatCurrencyCode"`
	BankNames                []string `json:"bankNames"`
	MatchingBankNameRequired bool     `json:"matchingBankNameRequired"`
}

// ColombiaCurrencyCode is the only payout currency the dashboard supports.
const ColombiaCurrencyCode = "COP"

// ColombiaCountryCode is the fixed payout country on the write side.
const ColombiaCountryCode = "CO"

// ColombianBanks is the static directory of Colombian payout banks, used as
// the selector fallback.
var ColombianBanks = []BankDirectoryEntry{
	{BankName: "Bancamia S.A.", BankCode: "BCMIA"},
	{BankName: "Banco Agrario", BankCode: "BAGRI"},
	{BankName: "Banco Av. Villas", BankCode: "BAVVI"},
	{BankName: "Banco Caja Social BCSC", BankCode: "BCAJA"},
	{BankName: "Banco Credifinanciera S.A.", BankCode: "BCRED"},
	{BankName: "Banco Dale", BankCode: "BDALE"},
	{BankName: "Banco Davivienda", BankCode: "BDAVI"},
	{BankName: "Banco de Bogota", BankCode: "BBOGO"},
	{BankName: "Banco de Occidente", BankCode: "BOCCI"},
	{BankName: "Banco Falabella S.A.", BankCode: "BFALA"},
	{BankName: "Banco Finandina S.A.", BankCode: "BFINA"},
	{BankName: "Banco J.P. Morgan Colombia S.A.", BankCode: "BJPMC"},
	{BankName: "Banco Mundo Mujer", BankCode: "BMUND"},
	{BankName: "Banco Pichincha", BankCode: "BPICH"},
	{BankName: "Banco Popular", BankCode: "BPOPU"},
	{BankName: "Banco Procredit", BankCode: "BPROC"},
	{BankName: "Banco Santander de Negocios Colombia S.A.", BankCode: "BSANT"},
	{BankName: "Banco Serfinanza S.A.", BankCode: "BSERF"},
	{BankName: "Banco Sudameris", BankCode: "BSUDA"},
	{BankName: "Banco W S.A.", BankCode: "BWSA"},
	{BankName: "Bancoldex S.A.", BankCode: "BCOLD"},
	{BankName: "Bancolombia", BankCode: "BCOLO"},
	{BankName: "Bancoomeva", BankCode: "BCOOM"},
	{BankName: "BBVA", BankCode: "BBVA"},
	{BankName: "Citibank", BankCode: "CITI"},
	{BankName: "Coltefinanciera S.A.", BankCode: "COLTE"},
	{BankName: "Confiar", BankCode: "CONFI"},
	{BankName: "Coofinep Cooperativa Financiera", BankCode: "COOFN"},
	{BankName: "Coopcentral S.A.", BankCode: "COOPC"},
	{BankName: "Cooperativa Financiera de Antioquia", BankCode: "COOPA"},
	{BankName: "Corpbanca Itau", BankCode: "CORPI"},
	{BankName: "Cotrafa Cooperativa Financiera", BankCode: "COTRA"},
	{BankName: "Daviplata", BankCode: "DAVIP"},
	{BankName: "Financiera Juriscoop", BankCode: "JURIS"},
	{BankName: "Giros y Finanzas CF", BankCode: "GIROS"},
	{BankName: "Iris", BankCode: "IRIS"},
	{BankName: "Itau", BankCode: "ITAU"},
	{BankName: "LULO BANK S.A.", BankCode: "LULO"},
	{BankName: "MiBanco S.A.", BankCode: "MIBAN"},
	{BankName: "Movii", BankCode: "MOVII"},
	{BankName: "Nequi", BankCode: "NEQUI"},
	{BankName: "NU COLOMBIA", BankCode: "NUCOL"},
	{BankName: "Rappipay", BankCode: "RAPPI"},
	{BankName: "Scotiabank Colpatria", BankCode: "SCOTI"},
}

// ColombianBankNames returns the directory's display names in order.
func ColombianBankNames() []string {
	names := make([]string, len(ColombianBanks))
	for i, bank := range ColombianBanks {
		names[i] = bank.BankName
	}
	return names
}
