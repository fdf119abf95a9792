package repositories

import (
	"context"

	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
)

// QuotationReader defines read operations for quotation data
type QuotationReader interface {
	// ListQuotations returns the whole quotation catalog of a tenant.
	// An empty catalog is not an error.
	ListQuotations(ctx context.Context, tenantID domain.TenantID) ([]domain.QuotationRecord, error)
}

// QuotationWriter defines write operations for quotation data
type QuotationWriter interface {
	// SaveQuotations stores records atomically and returns how many were inserted.
	// Records already stored under the same identity are left untouched.
	SaveQuotations(ctx context.Context, records []domain.QuotationRecord) (int64, error)
}

// QuotationRepositoryFacade combines all quotation-related repository interfaces
type QuotationRepositoryFacade interface {
	QuotationReader
	QuotationWriter
}

// QuotationRepositoryWithTx extends QuotationRepositoryFacade with transaction capabilities
type QuotationRepositoryWithTx interface {
	QuotationRepositoryFacade
	TransactionManager
}
