package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_conversion_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_conversion_engine/internal/core/ports/services"
	"github.com/google/uuid"
)

type quotationService struct {
	BaseService
	quotationRepo portsrepo.QuotationWriter
}

// NewQuotationService creates a service importing quotations into the catalog.
func NewQuotationService(quotationRepo portsrepo.QuotationWriter) portssvc.QuotationSvcFacade {
	return &quotationService{quotationRepo: quotationRepo}
}

// ImportQuotations assigns missing ids, binds every record to tenantID and stores them.
// Zero rates and factors are accepted as published; they are rejected when a conversion
// would use them.
func (s *quotationService) ImportQuotations(ctx context.Context, tenantID domain.TenantID, records []domain.QuotationRecord) (int64, error) {
	if tenantID == "" {
		return 0, fmt.Errorf("%w: tenant is required", apperrors.ErrNoAdapterOrTenant)
	}
	if len(records) == 0 {
		return 0, nil
	}

	prepared := make([]domain.QuotationRecord, len(records))
	for i, rec := range records {
		if err := validateQuotation(tenantID, rec); err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		rec.TenantID = tenantID
		prepared[i] = rec
	}

	inserted, err := s.quotationRepo.SaveQuotations(ctx, prepared)
	if err != nil {
		s.LogError(ctx, err, "Failed to save quotations", slog.String("tenant_id", string(tenantID)), slog.Int("records", len(prepared)))
		return 0, fmt.Errorf("failed to import quotations in service: %w", err)
	}

	s.LogInfo(ctx, "Quotations imported",
		slog.String("tenant_id", string(tenantID)),
		slog.Int("received", len(prepared)),
		slog.Int64("inserted", inserted))
	return inserted, nil
}

func validateQuotation(tenantID domain.TenantID, rec domain.QuotationRecord) error {
	switch {
	case rec.TenantID != "" && rec.TenantID != tenantID:
		return fmt.Errorf("%w: record belongs to tenant %s", apperrors.ErrValidation, rec.TenantID)
	case !rec.FromCurrency.Valid() || !rec.ToCurrency.Valid():
		return fmt.Errorf("%w: invalid currency pair %s", apperrors.ErrValidation, rec.Pair())
	case rec.FromCurrency == rec.ToCurrency:
		return apperrors.NewValidationError("from and to currencies cannot be the same")
	case !rec.RateClassification.Valid():
		return fmt.Errorf("%w: invalid rate type %q", apperrors.ErrValidation, rec.RateClassification)
	case rec.ProviderCode == "" || rec.DataSourceID == "":
		return apperrors.NewValidationError("provider and data source are required")
	case rec.RateValue.IsNegative():
		return fmt.Errorf("%w: rate must not be negative", apperrors.ErrValidation)
	case rec.FromCurrencyFactor < 0 || rec.ToCurrencyFactor < 0:
		return fmt.Errorf("%w: currency factors must not be negative", apperrors.ErrValidation)
	case rec.ValidFrom.IsZero():
		return fmt.Errorf("%w: validFrom is required", apperrors.ErrValidation)
	}
	return nil
}
