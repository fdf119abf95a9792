package domain

// DefaultFractionDigits is used for currencies with no known minor unit.
const DefaultFractionDigits = 2

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode   CurrencyCode `json:"currencyCode"`   // Primary Key (e.g., "USD")
	Symbol         string       `json:"symbol"`         // e.g., "$"
	Name           string       `json:"name"`           // e.g., "US Dollar"
	FractionDigits int32        `json:"fractionDigits"` // e.g., 2 for USD, 0 for JPY
	AuditFields
}
