package repositories

import (
	"context"

	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
)

// RateTypeReader defines read operations for rate type details
type RateTypeReader interface {
	// ListRateTypeDetails returns the configured details keyed by classification.
	// Classifications without a row are simply absent from the map.
	ListRateTypeDetails(ctx context.Context, tenantID domain.TenantID) (domain.RateTypeDetails, error)
}

// RateTypeRepositoryFacade combines all rate type repository interfaces
type RateTypeRepositoryFacade interface {
	RateTypeReader
}
