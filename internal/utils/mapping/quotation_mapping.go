package mapping

import (
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	"github.com/SscSPs/fx_conversion_engine/internal/models"
)

// defaultCurrencyFactor applies to factor columns stored as NULL.
const defaultCurrencyFactor int64 = 1

// ToModelQuotation converts a domain QuotationRecord to a model Quotation
func ToModelQuotation(d domain.QuotationRecord) models.Quotation {
	fromFactor, toFactor := d.FromCurrencyFactor, d.ToCurrencyFactor
	return models.Quotation{
		QuotationID:        d.ID,
		TenantID:           string(d.TenantID),
		ProviderCode:       string(d.ProviderCode),
		DataSourceID:       d.DataSourceID,
		RateType:           string(d.RateClassification),
		RateValue:          d.RateValue,
		FromCurrencyCode:   string(d.FromCurrency),
		ToCurrencyCode:     string(d.ToCurrency),
		ValidFrom:          d.ValidFrom,
		IsIndirect:         d.IsIndirect,
		FromCurrencyFactor: &fromFactor,
		ToCurrencyFactor:   &toFactor,
	}
}

// ToDomainQuotation converts a model Quotation to a domain QuotationRecord
func ToDomainQuotation(m models.Quotation) domain.QuotationRecord {
	return domain.QuotationRecord{
		ID:                 m.QuotationID,
		TenantID:           domain.TenantID(m.TenantID),
		ProviderCode:       domain.ProviderCode(m.ProviderCode),
		DataSourceID:       m.DataSourceID,
		RateClassification: domain.RateClassification(m.RateType),
		RateValue:          m.RateValue,
		FromCurrency:       domain.CurrencyCode(m.FromCurrencyCode),
		ToCurrency:         domain.CurrencyCode(m.ToCurrencyCode),
		ValidFrom:          m.ValidFrom,
		IsIndirect:         m.IsIndirect,
		FromCurrencyFactor: factorOrDefault(m.FromCurrencyFactor),
		ToCurrencyFactor:   factorOrDefault(m.ToCurrencyFactor),
	}
}

// ToDomainQuotationSlice converts a slice of model Quotations to domain QuotationRecords
func ToDomainQuotationSlice(ms []models.Quotation) []domain.QuotationRecord {
	ds := make([]domain.QuotationRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainQuotation(m)
	}
	return ds
}

func factorOrDefault(f *int64) int64 {
	if f == nil {
		return defaultCurrencyFactor
	}
	return *f
}
