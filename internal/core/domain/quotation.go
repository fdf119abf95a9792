package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DataSource is the (provider, data source) pair quotations are published under.
type DataSource struct {
	ProviderCode ProviderCode `json:"providerCode"`
	DataSourceID string       `json:"dataSourceId"`
}

// IsZero reports whether neither provider nor source is set.
func (d DataSource) IsZero() bool {
	return d.ProviderCode == "" && d.DataSourceID == ""
}

func (d DataSource) String() string {
	return string(d.ProviderCode) + "/" + d.DataSourceID
}

// CurrencyPair is a directed pair of currencies.
type CurrencyPair struct {
	From CurrencyCode
	To   CurrencyCode
}

// Reversed returns the pair with From and To swapped.
func (p CurrencyPair) Reversed() CurrencyPair {
	return CurrencyPair{From: p.To, To: p.From}
}

func (p CurrencyPair) String() string {
	return string(p.From) + "/" + string(p.To)
}

// QuotationRecord is a stored exchange rate fact. Records are never modified after ingestion.
//
// For a direct record (IsIndirect false) RateValue expresses units of ToCurrency per unit of
// FromCurrency; an indirect record expresses FromCurrency per ToCurrency. The factors scale
// the quoted units, e.g. a JPY factor of 100 means the rate is quoted per 100 JPY.
type QuotationRecord struct {
	ID                 string             `json:"id,omitempty"`
	TenantID           TenantID           `json:"tenantId"`
	ProviderCode       ProviderCode       `json:"providerCode"`
	DataSourceID       string             `json:"dataSourceId"`
	RateClassification RateClassification `json:"rateType"`
	RateValue          decimal.Decimal    `json:"rateValue"`
	FromCurrency       CurrencyCode       `json:"fromCurrency"`
	ToCurrency         CurrencyCode       `json:"toCurrency"`
	ValidFrom          time.Time          `json:"validFrom"`
	IsIndirect         bool               `json:"isIndirect"`
	FromCurrencyFactor int64              `json:"fromCurrencyFactor"`
	ToCurrencyFactor   int64              `json:"toCurrencyFactor"`
}

// Pair returns the record's currency pair.
func (q QuotationRecord) Pair() CurrencyPair {
	return CurrencyPair{From: q.FromCurrency, To: q.ToCurrency}
}

// Source returns the record's data source.
func (q QuotationRecord) Source() DataSource {
	return DataSource{ProviderCode: q.ProviderCode, DataSourceID: q.DataSourceID}
}

// SameIdentity reports whether q and o identify the same quotation: same tenant, data
// source, rate type, pair and valid-from.
func (q QuotationRecord) SameIdentity(o QuotationRecord) bool {
	return q.TenantID == o.TenantID &&
		q.Source() == o.Source() &&
		q.RateClassification == o.RateClassification &&
		q.Pair() == o.Pair() &&
		q.ValidFrom.Equal(o.ValidFrom)
}

// SameQuote reports whether q and o quote the same rate value, notation and factors.
func (q QuotationRecord) SameQuote(o QuotationRecord) bool {
	return q.RateValue.Equal(o.RateValue) &&
		q.IsIndirect == o.IsIndirect &&
		q.FromCurrencyFactor == o.FromCurrencyFactor &&
		q.ToCurrencyFactor == o.ToCurrencyFactor
}

// HasZeroFactor reports whether either currency factor is zero.
func (q QuotationRecord) HasZeroFactor() bool {
	return q.FromCurrencyFactor == 0 || q.ToCurrencyFactor == 0
}
