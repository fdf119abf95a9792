package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_conversion_engine/internal/core/ports/repositories"
	"github.com/SscSPs/fx_conversion_engine/internal/models"
	"github.com/SscSPs/fx_conversion_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTenantSettingsRepository struct {
	BaseRepository
}

func newPgxTenantSettingsRepository(pool *pgxpool.Pool) portsrepo.TenantSettingsRepositoryFacade {
	return &PgxTenantSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TenantSettingsRepositoryFacade = (*PgxTenantSettingsRepository)(nil)

// FindTenantSettings retrieves the settings row of a tenant.
func (r *PgxTenantSettingsRepository) FindTenantSettings(ctx context.Context, tenantID domain.TenantID) (*domain.TenantSettings, error) {
	query := `
		SELECT tenant_id, default_provider_code, default_data_source_id,
			created_at, created_by, last_updated_at, last_updated_by
		FROM tenant_settings
		WHERE tenant_id = $1;
	`
	var m models.TenantSettings
	err := r.Pool.QueryRow(ctx, query, string(tenantID)).Scan(
		&m.TenantID,
		&m.DefaultProviderCode,
		&m.DefaultDataSourceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings for tenant %s: %w", tenantID, err)
	}

	settings := mapping.ToDomainTenantSettings(m)
	return &settings, nil
}
