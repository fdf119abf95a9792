package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_conversion_engine/internal/core/ports/repositories"
	"github.com/SscSPs/fx_conversion_engine/internal/models"
	"github.com/SscSPs/fx_conversion_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxQuotationRepository stores the append-only quotation catalog.
type PgxQuotationRepository struct {
	BaseRepository
}

func newPgxQuotationRepository(pool *pgxpool.Pool) portsrepo.QuotationRepositoryWithTx {
	return &PgxQuotationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.QuotationRepositoryWithTx = (*PgxQuotationRepository)(nil)

// ListQuotations returns every quotation of the tenant, oldest first.
func (r *PgxQuotationRepository) ListQuotations(ctx context.Context, tenantID domain.TenantID) ([]domain.QuotationRecord, error) {
	query := `
		SELECT quotation_id, tenant_id, provider_code, data_source_id, rate_type, rate_value,
			from_currency_code, to_currency_code, valid_from, is_indirect,
			from_currency_factor, to_currency_factor, created_at
		FROM quotations
		WHERE tenant_id = $1
		ORDER BY valid_from, quotation_id;
	`
	rows, err := r.Pool.Query(ctx, query, string(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query quotations for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	modelQuotations, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Quotation])
	if err != nil {
		return nil, fmt.Errorf("failed to scan quotations: %w", err)
	}

	return mapping.ToDomainQuotationSlice(modelQuotations), nil
}

// SaveQuotations inserts records in one transaction. A record whose identity
// (tenant, source, rate type, pair, valid from) already exists is skipped when it quotes
// the same rate; otherwise the transaction is rolled back with apperrors.ErrConflict.
func (r *PgxQuotationRepository) SaveQuotations(ctx context.Context, records []domain.QuotationRecord) (inserted int64, err error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	query := `
		INSERT INTO quotations (
			quotation_id, tenant_id, provider_code, data_source_id, rate_type, rate_value,
			from_currency_code, to_currency_code, valid_from, is_indirect,
			from_currency_factor, to_currency_factor
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (tenant_id, provider_code, data_source_id, rate_type, from_currency_code, to_currency_code, valid_from)
		DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, rec := range records {
		m := mapping.ToModelQuotation(rec)
		batch.Queue(query,
			m.QuotationID, m.TenantID, m.ProviderCode, m.DataSourceID, m.RateType, m.RateValue,
			m.FromCurrencyCode, m.ToCurrencyCode, m.ValidFrom, m.IsIndirect,
			m.FromCurrencyFactor, m.ToCurrencyFactor,
		)
	}

	var skipped []domain.QuotationRecord
	results := tx.SendBatch(ctx, batch)
	for i, rec := range records {
		tag, execErr := results.Exec()
		if execErr != nil {
			_ = results.Close()
			return 0, fmt.Errorf("failed to insert quotation %d of %d: %w", i+1, len(records), execErr)
		}
		if tag.RowsAffected() == 0 {
			skipped = append(skipped, rec)
		}
		inserted += tag.RowsAffected()
	}
	if err = results.Close(); err != nil {
		return 0, fmt.Errorf("failed to close quotation batch: %w", err)
	}

	if err = r.checkStoredQuotes(ctx, tx, skipped); err != nil {
		return 0, err
	}

	if err = r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return inserted, nil
}

// checkStoredQuotes compares records that hit an existing identity with the stored row.
func (r *PgxQuotationRepository) checkStoredQuotes(ctx context.Context, tx pgx.Tx, records []domain.QuotationRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		SELECT quotation_id, tenant_id, provider_code, data_source_id, rate_type, rate_value,
			from_currency_code, to_currency_code, valid_from, is_indirect,
			from_currency_factor, to_currency_factor, created_at
		FROM quotations
		WHERE tenant_id = $1 AND provider_code = $2 AND data_source_id = $3 AND rate_type = $4
			AND from_currency_code = $5 AND to_currency_code = $6 AND valid_from = $7;
	`
	batch := &pgx.Batch{}
	for _, rec := range records {
		m := mapping.ToModelQuotation(rec)
		batch.Queue(query, m.TenantID, m.ProviderCode, m.DataSourceID, m.RateType,
			m.FromCurrencyCode, m.ToCurrencyCode, m.ValidFrom)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for _, rec := range records {
		rows, err := results.Query()
		if err != nil {
			return fmt.Errorf("failed to query stored quotation: %w", err)
		}
		stored, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Quotation])
		if err != nil {
			return fmt.Errorf("failed to scan stored quotation: %w", err)
		}
		if existing := mapping.ToDomainQuotation(stored); !existing.SameQuote(rec) {
			return fmt.Errorf("%w: quotation %s %s from %s at %s is already stored with rate %s",
				apperrors.ErrConflict, rec.RateClassification, rec.Pair(), rec.Source(),
				rec.ValidFrom.Format(time.RFC3339), existing.RateValue)
		}
	}
	return results.Close()
}
