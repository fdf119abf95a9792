package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quotation is a stored exchange rate row. Factor columns are nullable and read as 1 when NULL.
type Quotation struct {
	QuotationID        string          `db:"quotation_id"`
	TenantID           string          `db:"tenant_id"`
	ProviderCode       string          `db:"provider_code"`
	DataSourceID       string          `db:"data_source_id"`
	RateType           string          `db:"rate_type"`
	RateValue          decimal.Decimal `db:"rate_value"`
	FromCurrencyCode   string          `db:"from_currency_code"`
	ToCurrencyCode     string          `db:"to_currency_code"`
	ValidFrom          time.Time       `db:"valid_from"`
	IsIndirect         bool            `db:"is_indirect"`
	FromCurrencyFactor *int64          `db:"from_currency_factor"`
	ToCurrencyFactor   *int64          `db:"to_currency_factor"`
	CreatedAt          time.Time       `db:"created_at"`
}
