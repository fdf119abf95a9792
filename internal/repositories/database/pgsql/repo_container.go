package pgsql

import (
	portsrepo "github.com/SscSPs/fx_conversion_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		QuotationRepo:      newPgxQuotationRepository(dbPool),
		TenantSettingsRepo: newPgxTenantSettingsRepository(dbPool),
		RateTypeRepo:       newPgxRateTypeRepository(dbPool),
		CurrencyRepo:       newPgxCurrencyRepository(dbPool),
	}
}
