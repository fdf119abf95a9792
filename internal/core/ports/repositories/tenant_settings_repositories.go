package repositories

import (
	"context"

	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
)

// TenantSettingsReader defines read operations for tenant settings
type TenantSettingsReader interface {
	// FindTenantSettings returns apperrors.ErrNotFound when the tenant has no settings row.
	FindTenantSettings(ctx context.Context, tenantID domain.TenantID) (*domain.TenantSettings, error)
}

// TenantSettingsRepositoryFacade combines all tenant settings repository interfaces
type TenantSettingsRepositoryFacade interface {
	TenantSettingsReader
}
