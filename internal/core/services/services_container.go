package services

import (
	portsrepo "github.com/SscSPs/fx_conversion_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_conversion_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_conversion_engine/internal/platform/config"
	"github.com/SscSPs/fx_conversion_engine/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.ConversionMetrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Currency first since conversions round with its fraction digits
	container.Currency = NewCurrencyService(repos.CurrencyRepo)

	container.Conversion = NewConversionService(
		repos.QuotationRepo,
		repos.TenantSettingsRepo,
		repos.RateTypeRepo,
		container.Currency,
		WithBatchConcurrency(cfg.BatchConcurrency),
		WithConversionMetrics(m),
	)

	container.Quotation = NewQuotationService(repos.QuotationRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ConversionSvcFacade = (*conversionService)(nil)
	_ portssvc.CurrencySvcFacade   = (*currencyService)(nil)
	_ portssvc.QuotationSvcFacade  = (*quotationService)(nil)
)
