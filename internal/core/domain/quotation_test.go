package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func baseRecord() domain.QuotationRecord {
	return domain.QuotationRecord{
		TenantID:           "tenant-1",
		ProviderCode:       "ECB",
		DataSourceID:       "DAILY",
		RateClassification: "M",
		RateValue:          decimal.RequireFromString("1.0825"),
		FromCurrency:       "EUR",
		ToCurrency:         "USD",
		ValidFrom:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		FromCurrencyFactor: 1,
		ToCurrencyFactor:   1,
	}
}

func TestQuotationRecord_SameIdentity(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*domain.QuotationRecord)
		want   bool
	}{
		{name: "identical", modify: func(*domain.QuotationRecord) {}, want: true},
		{name: "different rate only", modify: func(r *domain.QuotationRecord) { r.RateValue = decimal.NewFromInt(2) }, want: true},
		{name: "same instant in another zone", modify: func(r *domain.QuotationRecord) { r.ValidFrom = r.ValidFrom.In(time.FixedZone("CET", 3600)) }, want: true},
		{name: "other tenant", modify: func(r *domain.QuotationRecord) { r.TenantID = "tenant-2" }, want: false},
		{name: "other data source", modify: func(r *domain.QuotationRecord) { r.DataSourceID = "HOURLY" }, want: false},
		{name: "other rate type", modify: func(r *domain.QuotationRecord) { r.RateClassification = "B" }, want: false},
		{name: "reversed pair", modify: func(r *domain.QuotationRecord) { r.FromCurrency, r.ToCurrency = r.ToCurrency, r.FromCurrency }, want: false},
		{name: "later valid from", modify: func(r *domain.QuotationRecord) { r.ValidFrom = r.ValidFrom.Add(time.Second) }, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := baseRecord()
			tt.modify(&other)
			assert.Equal(t, tt.want, baseRecord().SameIdentity(other))
		})
	}
}

func TestQuotationRecord_SameQuote(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*domain.QuotationRecord)
		want   bool
	}{
		{name: "trailing zeros", modify: func(r *domain.QuotationRecord) { r.RateValue = decimal.RequireFromString("1.08250") }, want: true},
		{name: "other rate", modify: func(r *domain.QuotationRecord) { r.RateValue = decimal.RequireFromString("1.0826") }, want: false},
		{name: "indirect notation", modify: func(r *domain.QuotationRecord) { r.IsIndirect = true }, want: false},
		{name: "other from factor", modify: func(r *domain.QuotationRecord) { r.FromCurrencyFactor = 100 }, want: false},
		{name: "other to factor", modify: func(r *domain.QuotationRecord) { r.ToCurrencyFactor = 10 }, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := baseRecord()
			tt.modify(&other)
			assert.Equal(t, tt.want, baseRecord().SameQuote(other))
		})
	}
}
