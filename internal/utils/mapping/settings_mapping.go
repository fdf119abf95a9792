package mapping

import (
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	"github.com/SscSPs/fx_conversion_engine/internal/models"
)

// ToDomainTenantSettings converts a model TenantSettings to a domain TenantSettings.
// A default source is only set when both columns carry a value.
func ToDomainTenantSettings(m models.TenantSettings) domain.TenantSettings {
	settings := domain.TenantSettings{
		TenantID:    domain.TenantID(m.TenantID),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.DefaultProviderCode != nil && m.DefaultDataSourceID != nil &&
		*m.DefaultProviderCode != "" && *m.DefaultDataSourceID != "" {
		settings.Default = &domain.DataSource{
			ProviderCode: domain.ProviderCode(*m.DefaultProviderCode),
			DataSourceID: *m.DefaultDataSourceID,
		}
	}
	return settings
}

// ToDomainRateTypeDetails folds rate type rows into the details map.
func ToDomainRateTypeDetails(ms []models.RateType) domain.RateTypeDetails {
	details := make(domain.RateTypeDetails, len(ms))
	for _, m := range ms {
		detail := domain.RateTypeDetail{AllowInversion: m.AllowInversion}
		if m.ReferenceCurrency != nil {
			detail.ReferenceCurrency = domain.CurrencyCode(*m.ReferenceCurrency)
		}
		details[domain.RateClassification(m.RateType)] = detail
	}
	return details
}
