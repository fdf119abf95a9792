package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_conversion_engine/internal/core/ports/repositories"
	"github.com/SscSPs/fx_conversion_engine/internal/models"
	"github.com/SscSPs/fx_conversion_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRateTypeRepository struct {
	BaseRepository
}

func newPgxRateTypeRepository(pool *pgxpool.Pool) portsrepo.RateTypeRepositoryFacade {
	return &PgxRateTypeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RateTypeRepositoryFacade = (*PgxRateTypeRepository)(nil)

// ListRateTypeDetails returns the rate type options configured for a tenant.
func (r *PgxRateTypeRepository) ListRateTypeDetails(ctx context.Context, tenantID domain.TenantID) (domain.RateTypeDetails, error) {
	query := `
		SELECT tenant_id, rate_type, reference_currency, allow_inversion
		FROM rate_types
		WHERE tenant_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, string(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query rate types for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	modelRateTypes, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.RateType])
	if err != nil {
		return nil, fmt.Errorf("failed to scan rate types: %w", err)
	}

	return mapping.ToDomainRateTypeDetails(modelRateTypes), nil
}
