package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_conversion_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_conversion_engine/internal/core/ports/services"
	"github.com/govalues/money"
)

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyReader
}

// NewCurrencyService creates a currency service backed by the currency repository.
func NewCurrencyService(currencyRepo portsrepo.CurrencyReader) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode domain.CurrencyCode) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

// FractionDigits prefers the stored currency, then the ISO 4217 minor unit, then
// domain.DefaultFractionDigits.
func (s *currencyService) FractionDigits(ctx context.Context, currencyCode domain.CurrencyCode) (int32, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	switch {
	case err == nil:
		return currency.FractionDigits, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to load currency", slog.String("currency", currencyCode.String()))
		return 0, fmt.Errorf("failed to load fraction digits of %s: %w", currencyCode, err)
	}

	if iso, err := money.ParseCurr(currencyCode.String()); err == nil {
		return int32(iso.Scale()), nil
	}

	s.LogDebug(ctx, "Unknown currency, using default fraction digits",
		slog.String("currency", currencyCode.String()),
		slog.Int("fraction_digits", domain.DefaultFractionDigits))
	return domain.DefaultFractionDigits, nil
}
