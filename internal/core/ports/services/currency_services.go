package services

import (
	"context"

	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode domain.CurrencyCode) (*domain.Currency, error)

	// FractionDigits returns the number of minor unit digits amounts in the currency are rounded to.
	FractionDigits(ctx context.Context, currencyCode domain.CurrencyCode) (int32, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
}
