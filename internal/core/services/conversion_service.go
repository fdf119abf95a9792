package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/conversion"
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_conversion_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_conversion_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_conversion_engine/internal/platform/metrics"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds how many queries of a batch are converted at once.
const DefaultBatchConcurrency = 8

type conversionService struct {
	BaseService
	quotationRepo    portsrepo.QuotationReader
	settingsRepo     portsrepo.TenantSettingsReader
	rateTypeRepo     portsrepo.RateTypeReader
	currencySvc      portssvc.CurrencyReaderSvc
	resolver         *conversion.Resolver
	applier          *conversion.Applier
	metrics          *metrics.ConversionMetrics
	batchConcurrency int
}

// ConversionServiceOption configures optional conversion service dependencies.
type ConversionServiceOption func(*conversionService)

// WithBatchConcurrency sets the number of batch queries converted in parallel.
// Values below 1 keep DefaultBatchConcurrency.
func WithBatchConcurrency(n int) ConversionServiceOption {
	return func(s *conversionService) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// WithConversionMetrics makes the service record prometheus metrics.
func WithConversionMetrics(m *metrics.ConversionMetrics) ConversionServiceOption {
	return func(s *conversionService) {
		s.metrics = m
	}
}

// NewConversionService creates the service that loads a tenant's conversion inputs and
// runs rate resolution and application per query.
func NewConversionService(
	quotationRepo portsrepo.QuotationReader,
	settingsRepo portsrepo.TenantSettingsReader,
	rateTypeRepo portsrepo.RateTypeReader,
	currencySvc portssvc.CurrencyReaderSvc,
	opts ...ConversionServiceOption,
) portssvc.ConversionSvcFacade {
	s := &conversionService{
		quotationRepo:    quotationRepo,
		settingsRepo:     settingsRepo,
		rateTypeRepo:     rateTypeRepo,
		currencySvc:      currencySvc,
		resolver:         conversion.NewResolver(),
		applier:          conversion.NewApplier(),
		batchConcurrency: DefaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// conversionInputs is the snapshot every query of one call is resolved against.
type conversionInputs struct {
	rc      conversion.ResolutionContext
	catalog []domain.QuotationRecord
	details domain.RateTypeDetails
	digits  *fractionDigitsCache
}

func (s *conversionService) Convert(ctx context.Context, tenantID domain.TenantID, query domain.ConversionQuery, override *domain.DataSource) (*domain.ConversionOutcome, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveCall("single", time.Since(start).Seconds()) }()

	in, err := s.loadInputs(ctx, tenantID, override)
	if err != nil {
		s.LogError(ctx, err, "Failed to load conversion inputs", slog.String("tenant_id", string(tenantID)))
		return nil, err
	}

	outcome, err := s.convertOne(ctx, in, query)
	if err != nil {
		s.logFailure(ctx, query, err)
		return nil, err
	}

	s.LogDebug(ctx, "Conversion succeeded",
		slog.String("pair", query.Pair().String()),
		slog.String("direction", outcome.Rate.Direction.String()))
	return outcome, nil
}

func (s *conversionService) ConvertBatch(ctx context.Context, tenantID domain.TenantID, queries []domain.ConversionQuery, override *domain.DataSource) ([]domain.ConversionResult, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveCall("batch", time.Since(start).Seconds()) }()
	s.metrics.ObserveBatchSize(len(queries))

	results := make([]domain.ConversionResult, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	in, err := s.loadInputs(ctx, tenantID, override)
	if err != nil {
		s.LogError(ctx, err, "Failed to load conversion inputs", slog.String("tenant_id", string(tenantID)))
		return nil, err
	}

	// Every goroutine returns nil: a failed query never cancels its siblings.
	var g errgroup.Group
	g.SetLimit(s.batchConcurrency)
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			results[i].Query = query
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Outcome, results[i].Err = s.convertOne(ctx, in, query)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			s.logFailure(ctx, r.Query, r.Err)
		}
	}
	s.LogInfo(ctx, "Batch conversion finished",
		slog.Int("queries", len(queries)),
		slog.Int("failed", failed),
		slog.Duration("elapsed", time.Since(start)))

	return results, nil
}

// loadInputs fetches the catalog, tenant settings and rate type details concurrently.
// Without a tenant nothing is loaded and resolution reports the missing tenant per query.
func (s *conversionService) loadInputs(ctx context.Context, tenantID domain.TenantID, override *domain.DataSource) (*conversionInputs, error) {
	in := &conversionInputs{digits: newFractionDigitsCache(s.currencySvc)}
	if tenantID == "" {
		return in, nil
	}

	var tenantSettings *domain.TenantSettings
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		catalog, err := s.quotationRepo.ListQuotations(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("failed to load quotations: %w", err)
		}
		in.catalog = catalog
		return nil
	})
	g.Go(func() error {
		settings, err := s.settingsRepo.FindTenantSettings(gctx, tenantID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to load tenant settings: %w", err)
		}
		tenantSettings = settings
		return nil
	})
	g.Go(func() error {
		details, err := s.rateTypeRepo.ListRateTypeDetails(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("failed to load rate type details: %w", err)
		}
		in.details = details
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	in.rc = conversion.ResolutionContext{
		Tenant:   tenantID,
		Settings: domain.SelectSettings(tenantSettings, override),
	}
	s.metrics.ObserveCatalogSize(len(in.catalog))
	return in, nil
}

func (s *conversionService) convertOne(ctx context.Context, in *conversionInputs, query domain.ConversionQuery) (outcome *domain.ConversionOutcome, err error) {
	var direction string
	defer func() {
		result := "ok"
		if err != nil {
			result = apperrors.FailureKind(err)
		}
		s.metrics.RecordConversion(query.RateClassification.String(), direction, result)
	}()

	rate, err := s.resolver.Resolve(in.rc, &query, in.catalog, in.details.Lookup(query.RateClassification))
	if err != nil {
		return nil, err
	}
	direction = rate.Direction.String()

	digits, err := in.digits.get(ctx, query.ToCurrency)
	if err != nil {
		return nil, err
	}
	return s.applier.Apply(rate, &query, digits)
}

func (s *conversionService) logFailure(ctx context.Context, query domain.ConversionQuery, err error) {
	attrs := []any{
		slog.String("pair", query.Pair().String()),
		slog.String("rate_type", query.RateClassification.String()),
		slog.String("kind", apperrors.FailureKind(err)),
	}
	if apperrors.IsConversionFailure(err) {
		s.LogInfo(ctx, "Conversion rejected", append(attrs, slog.String("reason", err.Error()))...)
		return
	}
	s.LogError(ctx, err, "Conversion failed", attrs...)
}

// fractionDigitsCache memoizes currency fraction digits for the queries of one call.
type fractionDigitsCache struct {
	svc    portssvc.CurrencyReaderSvc
	mu     sync.Mutex
	digits map[domain.CurrencyCode]int32
}

func newFractionDigitsCache(svc portssvc.CurrencyReaderSvc) *fractionDigitsCache {
	return &fractionDigitsCache{svc: svc, digits: make(map[domain.CurrencyCode]int32)}
}

func (c *fractionDigitsCache) get(ctx context.Context, code domain.CurrencyCode) (int32, error) {
	c.mu.Lock()
	d, ok := c.digits[code]
	c.mu.Unlock()
	if ok {
		return d, nil
	}

	d, err := c.svc.FractionDigits(ctx, code)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.digits[code] = d
	c.mu.Unlock()
	return d, nil
}
