package dto

import (
	"time"

	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// QuotationRequest defines one quotation to import. Missing factors default to 1.
type QuotationRequest struct {
	ID                 string           `json:"id,omitempty"`
	ProviderCode       string           `json:"providerCode" binding:"required,max=32"`
	DataSourceID       string           `json:"dataSourceId" binding:"required,max=32"`
	RateType           string           `json:"rateType" binding:"required,ratetype"`
	RateValue          *decimal.Decimal `json:"rateValue" binding:"required"`
	FromCurrency       string           `json:"fromCurrency" binding:"required,iso4217"`
	ToCurrency         string           `json:"toCurrency" binding:"required,iso4217,nefield=FromCurrency"`
	ValidFrom          *time.Time       `json:"validFrom" binding:"required"`
	IsIndirect         bool             `json:"isIndirect"`
	FromCurrencyFactor *int64           `json:"fromCurrencyFactor,omitempty" binding:"omitempty,gte=0"`
	ToCurrencyFactor   *int64           `json:"toCurrencyFactor,omitempty" binding:"omitempty,gte=0"`
}

// ImportQuotationsRequest defines the structure for importing quotations.
type ImportQuotationsRequest struct {
	Quotations []QuotationRequest `json:"quotations" binding:"required,min=1,max=5000,dive"`
}

// ImportQuotationsResponse reports how many of the received quotations were new.
type ImportQuotationsResponse struct {
	Received int   `json:"received"`
	Inserted int64 `json:"inserted"`
}

// ToQuotationRecord converts a request to a domain record owned by tenantID.
func (r QuotationRequest) ToQuotationRecord(tenantID domain.TenantID) (domain.QuotationRecord, error) {
	from, err := domain.ParseCurrencyCode(r.FromCurrency)
	if err != nil {
		return domain.QuotationRecord{}, err
	}
	to, err := domain.ParseCurrencyCode(r.ToCurrency)
	if err != nil {
		return domain.QuotationRecord{}, err
	}
	rateType, err := domain.ParseRateClassification(r.RateType)
	if err != nil {
		return domain.QuotationRecord{}, err
	}
	provider, err := domain.ParseProviderCode(r.ProviderCode)
	if err != nil {
		return domain.QuotationRecord{}, err
	}

	rec := domain.QuotationRecord{
		ID:                 r.ID,
		TenantID:           tenantID,
		ProviderCode:       provider,
		DataSourceID:       r.DataSourceID,
		RateClassification: rateType,
		FromCurrency:       from,
		ToCurrency:         to,
		IsIndirect:         r.IsIndirect,
		FromCurrencyFactor: factorOrOne(r.FromCurrencyFactor),
		ToCurrencyFactor:   factorOrOne(r.ToCurrencyFactor),
	}
	if r.RateValue != nil {
		rec.RateValue = *r.RateValue
	}
	if r.ValidFrom != nil {
		rec.ValidFrom = *r.ValidFrom
	}
	return rec, nil
}

// ToQuotationRecords converts every request, stopping at the first invalid one.
func ToQuotationRecords(reqs []QuotationRequest, tenantID domain.TenantID) ([]domain.QuotationRecord, error) {
	records := make([]domain.QuotationRecord, 0, len(reqs))
	for _, r := range reqs {
		rec, err := r.ToQuotationRecord(tenantID)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func factorOrOne(f *int64) int64 {
	if f == nil {
		return 1
	}
	return *f
}
