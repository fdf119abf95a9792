package services

import (
	"context"

	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
)

// ConversionReaderSvc converts amounts against the tenant's quotation catalog.
// A nil override keeps the tenant's configured data source.
type ConversionReaderSvc interface {
	// Convert resolves and applies the rate for a single query.
	Convert(ctx context.Context, tenantID domain.TenantID, query domain.ConversionQuery, override *domain.DataSource) (*domain.ConversionOutcome, error)

	// ConvertBatch converts every query against one snapshot of the catalog. The returned
	// slice is in query order and carries either an outcome or an error per query; the
	// error return is reserved for failures that prevent the whole batch.
	ConvertBatch(ctx context.Context, tenantID domain.TenantID, queries []domain.ConversionQuery, override *domain.DataSource) ([]domain.ConversionResult, error)
}

// ConversionSvcFacade combines all conversion service interfaces
type ConversionSvcFacade interface {
	ConversionReaderSvc
}
