// Package catalogfile is an in-memory repository backed by a JSON catalog document.
// It serves the offline CLI commands, which convert without a database.
package catalogfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_conversion_engine/internal/core/ports/repositories"
	"github.com/SscSPs/fx_conversion_engine/internal/dto"
)

// DefaultTenant owns a catalog whose document names no tenant.
const DefaultTenant domain.TenantID = "local"

// Document is the JSON layout of a catalog file.
type Document struct {
	TenantID      string                           `json:"tenantId,omitempty"`
	DefaultSource *dto.DataSourceRequest           `json:"defaultSource,omitempty"`
	RateTypes     map[string]domain.RateTypeDetail `json:"rateTypes,omitempty"`
	Currencies    map[string]int32                 `json:"fractionDigits,omitempty"`
	Quotations    []dto.QuotationRequest           `json:"quotations"`
}

// Catalog holds one tenant's quotations, settings and rate type details in memory.
type Catalog struct {
	tenant   domain.TenantID
	settings *domain.TenantSettings
	details  domain.RateTypeDetails
	digits   map[domain.CurrencyCode]int32

	mu      sync.RWMutex
	records []domain.QuotationRecord
}

var (
	_ portsrepo.QuotationRepositoryFacade      = (*Catalog)(nil)
	_ portsrepo.TenantSettingsRepositoryFacade = (*Catalog)(nil)
	_ portsrepo.RateTypeRepositoryFacade       = (*Catalog)(nil)
	_ portsrepo.CurrencyRepositoryFacade       = (*Catalog)(nil)
)

// Load reads and validates the catalog document at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	var doc Document
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode catalog file %s: %v", apperrors.ErrValidation, path, err)
	}
	return New(doc)
}

// New builds a catalog from a decoded document. Every quotation is checked against the
// same binding rules the HTTP import applies.
func New(doc Document) (*Catalog, error) {
	v, err := dto.NewValidator()
	if err != nil {
		return nil, err
	}

	tenant := DefaultTenant
	if doc.TenantID != "" {
		parsed, err := domain.ParseTenantID(doc.TenantID)
		if err != nil {
			return nil, err
		}
		tenant = parsed
	}

	c := &Catalog{
		tenant:   tenant,
		settings: &domain.TenantSettings{TenantID: tenant},
		details:  make(domain.RateTypeDetails, len(doc.RateTypes)),
		digits:   make(map[domain.CurrencyCode]int32, len(doc.Currencies)),
		records:  make([]domain.QuotationRecord, 0, len(doc.Quotations)),
	}

	if doc.DefaultSource != nil {
		if err := v.Struct(doc.DefaultSource); err != nil {
			return nil, fmt.Errorf("%w: default source: %v", apperrors.ErrValidation, err)
		}
		source, err := doc.DefaultSource.ToDataSource()
		if err != nil {
			return nil, err
		}
		c.settings.Default = source
	}

	for name, detail := range doc.RateTypes {
		rateType, err := domain.ParseRateClassification(name)
		if err != nil {
			return nil, err
		}
		if detail.HasReferenceCurrency() && !detail.ReferenceCurrency.Valid() {
			return nil, fmt.Errorf("%w: rate type %s has invalid reference currency %q", apperrors.ErrValidation, name, detail.ReferenceCurrency)
		}
		c.details[rateType] = detail
	}

	for code, digits := range doc.Currencies {
		currency, err := domain.ParseCurrencyCode(code)
		if err != nil {
			return nil, err
		}
		if digits < 0 {
			return nil, fmt.Errorf("%w: fraction digits of %s must not be negative", apperrors.ErrValidation, code)
		}
		c.digits[currency] = digits
	}

	for i, q := range doc.Quotations {
		if err := v.Struct(q); err != nil {
			return nil, fmt.Errorf("%w: quotation %d: %v", apperrors.ErrValidation, i, err)
		}
		rec, err := q.ToQuotationRecord(tenant)
		if err != nil {
			return nil, fmt.Errorf("quotation %d: %w", i, err)
		}
		c.records = append(c.records, rec)
	}
	return c, nil
}

// Tenant returns the tenant owning the catalog.
func (c *Catalog) Tenant() domain.TenantID {
	return c.tenant
}

// Records returns a copy of the stored quotations.
func (c *Catalog) Records() []domain.QuotationRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.QuotationRecord(nil), c.records...)
}

// Provider exposes the catalog through every repository port.
func (c *Catalog) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		QuotationRepo:      c,
		TenantSettingsRepo: c,
		RateTypeRepo:       c,
		CurrencyRepo:       c,
	}
}

func (c *Catalog) ListQuotations(_ context.Context, tenantID domain.TenantID) ([]domain.QuotationRecord, error) {
	if tenantID != c.tenant {
		return nil, nil
	}
	return c.Records(), nil
}

// SaveQuotations appends records whose identity is not stored yet. Records of other
// tenants and exact repeats are skipped; a repeat quoting a different rate fails the
// whole call with apperrors.ErrConflict and stores nothing.
func (c *Catalog) SaveQuotations(_ context.Context, records []domain.QuotationRecord) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pending := make([]domain.QuotationRecord, 0, len(records))
	for _, rec := range records {
		if rec.TenantID != c.tenant {
			continue
		}
		existing, found := findByIdentity(c.records, rec)
		if !found {
			existing, found = findByIdentity(pending, rec)
		}
		if found {
			if !existing.SameQuote(rec) {
				return 0, fmt.Errorf("%w: quotation %s %s from %s at %s is already stored with rate %s",
					apperrors.ErrConflict, rec.RateClassification, rec.Pair(), rec.Source(),
					rec.ValidFrom.Format(time.RFC3339), existing.RateValue)
			}
			continue
		}
		pending = append(pending, rec)
	}
	c.records = append(c.records, pending...)
	return int64(len(pending)), nil
}

func findByIdentity(records []domain.QuotationRecord, rec domain.QuotationRecord) (domain.QuotationRecord, bool) {
	for _, existing := range records {
		if existing.SameIdentity(rec) {
			return existing, true
		}
	}
	return domain.QuotationRecord{}, false
}

func (c *Catalog) FindTenantSettings(_ context.Context, tenantID domain.TenantID) (*domain.TenantSettings, error) {
	if tenantID != c.tenant || c.settings.Default == nil {
		return nil, apperrors.ErrNotFound
	}
	settings := *c.settings
	return &settings, nil
}

func (c *Catalog) ListRateTypeDetails(_ context.Context, tenantID domain.TenantID) (domain.RateTypeDetails, error) {
	if tenantID != c.tenant {
		return domain.RateTypeDetails{}, nil
	}
	details := make(domain.RateTypeDetails, len(c.details))
	for k, v := range c.details {
		details[k] = v
	}
	return details, nil
}

// FindCurrencyByCode knows only the fraction digits listed in the document.
func (c *Catalog) FindCurrencyByCode(_ context.Context, code domain.CurrencyCode) (*domain.Currency, error) {
	digits, ok := c.digits[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &domain.Currency{CurrencyCode: code, Name: code.String(), FractionDigits: digits}, nil
}
