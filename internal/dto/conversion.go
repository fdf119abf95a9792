package dto

import (
	"time"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	"github.com/SscSPs/fx_conversion_engine/internal/utils"
	"github.com/shopspring/decimal"
)

// DataSourceRequest selects a single (provider, data source) pair for one request.
type DataSourceRequest struct {
	ProviderCode string `json:"providerCode" binding:"required,max=32"`
	DataSourceID string `json:"dataSourceId" binding:"required,max=32"`
}

// ConversionRequest defines the structure for converting a single amount.
type ConversionRequest struct {
	FromCurrency string             `json:"fromCurrency" binding:"required,iso4217"`
	ToCurrency   string             `json:"toCurrency" binding:"required,iso4217"`
	Amount       *decimal.Decimal   `json:"amount" binding:"required"`
	RateType     string             `json:"rateType" binding:"required,ratetype"`
	AsOf         *time.Time         `json:"asOf" binding:"required"`
	Override     *DataSourceRequest `json:"override,omitempty"`
}

// BatchConversionRequest converts several amounts against one catalog snapshot.
// The batch level override applies to every item. Items are validated one by one so a
// malformed item fails alone.
type BatchConversionRequest struct {
	Items    []ConversionItem   `json:"items" binding:"required,min=1,max=1000"`
	Override *DataSourceRequest `json:"override,omitempty"`
}

// ConversionItem is one query of a batch.
type ConversionItem struct {
	FromCurrency string           `json:"fromCurrency" binding:"required,iso4217"`
	ToCurrency   string           `json:"toCurrency" binding:"required,iso4217"`
	Amount       *decimal.Decimal `json:"amount" binding:"required"`
	RateType     string           `json:"rateType" binding:"required,ratetype"`
	AsOf         *time.Time       `json:"asOf" binding:"required"`
}

// ToDataSource converts an optional override to its domain form.
func (r *DataSourceRequest) ToDataSource() (*domain.DataSource, error) {
	if r == nil {
		return nil, nil
	}
	provider, err := domain.ParseProviderCode(r.ProviderCode)
	if err != nil {
		return nil, err
	}
	return &domain.DataSource{ProviderCode: provider, DataSourceID: r.DataSourceID}, nil
}

// ToConversionQuery converts a request to a domain query.
func (r ConversionRequest) ToConversionQuery() (domain.ConversionQuery, error) {
	return ConversionItem{
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Amount:       r.Amount,
		RateType:     r.RateType,
		AsOf:         r.AsOf,
	}.ToConversionQuery()
}

// ToConversionQuery converts a batch item to a domain query.
func (r ConversionItem) ToConversionQuery() (domain.ConversionQuery, error) {
	from, err := domain.ParseCurrencyCode(r.FromCurrency)
	if err != nil {
		return domain.ConversionQuery{}, err
	}
	to, err := domain.ParseCurrencyCode(r.ToCurrency)
	if err != nil {
		return domain.ConversionQuery{}, err
	}
	rateType, err := domain.ParseRateClassification(r.RateType)
	if err != nil {
		return domain.ConversionQuery{}, err
	}
	if r.Amount == nil || r.AsOf == nil {
		return domain.ConversionQuery{}, apperrors.ErrInvalidParameters
	}
	return domain.ConversionQuery{
		FromCurrency:       from,
		ToCurrency:         to,
		RequestedAmount:    *r.Amount,
		RateClassification: rateType,
		AsOf:               *r.AsOf,
	}, nil
}

// ConversionResponse defines the structure for a successful conversion.
type ConversionResponse struct {
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	Amount         decimal.Decimal `json:"amount"`
	ExactAmount    decimal.Decimal `json:"exactAmount"`
	RoundedAmount  string          `json:"roundedAmount"`
	FractionDigits int32           `json:"fractionDigits"`
	Rate           RateResponse    `json:"rate"`
}

// RateResponse describes the quotation a conversion used.
type RateResponse struct {
	FromCurrency       string          `json:"fromCurrency"`
	ToCurrency         string          `json:"toCurrency"`
	RateValue          decimal.Decimal `json:"rateValue"`
	RateType           string          `json:"rateType"`
	ProviderCode       string          `json:"providerCode,omitempty"`
	DataSourceID       string          `json:"dataSourceId,omitempty"`
	ValidFrom          time.Time       `json:"validFrom"`
	IsIndirect         bool            `json:"isIndirect"`
	FromCurrencyFactor int64           `json:"fromCurrencyFactor"`
	ToCurrencyFactor   int64           `json:"toCurrencyFactor"`
	Direction          string          `json:"direction"`
	Synthetic          bool            `json:"synthetic"`
	ReferenceCurrency  string          `json:"referenceCurrency,omitempty"`
}

// ErrorResponse is returned for failed requests and failed batch items.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// BatchItemResponse holds either the conversion or the error of one batch item.
type BatchItemResponse struct {
	Index  int                 `json:"index"`
	Result *ConversionResponse `json:"result,omitempty"`
	Error  *ErrorResponse      `json:"error,omitempty"`
}

// BatchConversionResponse lists the item results in request order.
type BatchConversionResponse struct {
	Results   []BatchItemResponse `json:"results"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// ToConversionResponse converts a domain outcome to its response DTO.
func ToConversionResponse(q domain.ConversionQuery, o *domain.ConversionOutcome) ConversionResponse {
	rec := o.Rate.Record
	rate := RateResponse{
		FromCurrency:       string(rec.FromCurrency),
		ToCurrency:         string(rec.ToCurrency),
		RateValue:          rec.RateValue,
		RateType:           string(rec.RateClassification),
		ProviderCode:       string(rec.ProviderCode),
		DataSourceID:       rec.DataSourceID,
		ValidFrom:          rec.ValidFrom,
		IsIndirect:         rec.IsIndirect,
		FromCurrencyFactor: rec.FromCurrencyFactor,
		ToCurrencyFactor:   rec.ToCurrencyFactor,
		Direction:          o.Rate.Direction.String(),
		Synthetic:          o.Rate.IsSynthetic(),
	}
	if o.Rate.Legs != nil {
		rate.ReferenceCurrency = string(o.Rate.Legs.ReferenceCurrency)
	}
	return ConversionResponse{
		FromCurrency:   string(q.FromCurrency),
		ToCurrency:     string(q.ToCurrency),
		Amount:         q.RequestedAmount,
		ExactAmount:    o.ExactAmount,
		RoundedAmount:  utils.FormatWithPrecision(o.RoundedAmount, o.FractionDigits),
		FractionDigits: o.FractionDigits,
		Rate:           rate,
	}
}

// NewErrorResponse reports err with its failure code. Internal errors get message instead
// of the error text.
func NewErrorResponse(err error, message string) ErrorResponse {
	kind := apperrors.FailureKind(err)
	if kind == "InternalError" {
		return ErrorResponse{Error: message, Code: kind}
	}
	return ErrorResponse{Error: err.Error(), Code: kind}
}

// ToBatchConversionResponse converts batch results to the response DTO, keeping their order.
func ToBatchConversionResponse(results []domain.ConversionResult) BatchConversionResponse {
	resp := BatchConversionResponse{Results: make([]BatchItemResponse, len(results))}
	for i, r := range results {
		item := BatchItemResponse{Index: i}
		if r.Err != nil {
			errResp := NewErrorResponse(r.Err, "Failed to convert amount")
			item.Error = &errResp
			resp.Failed++
		} else {
			conv := ToConversionResponse(r.Query, r.Outcome)
			item.Result = &conv
			resp.Succeeded++
		}
		resp.Results[i] = item
	}
	return resp
}
