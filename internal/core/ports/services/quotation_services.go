package services

import (
	"context"

	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
)

// QuotationWriterSvc defines write operations for quotation data
type QuotationWriterSvc interface {
	// ImportQuotations validates and stores records for a tenant, returning the number inserted.
	ImportQuotations(ctx context.Context, tenantID domain.TenantID, records []domain.QuotationRecord) (int64, error)
}

// QuotationSvcFacade combines all quotation service interfaces
type QuotationSvcFacade interface {
	QuotationWriterSvc
}
