package mapping

import (
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	"github.com/SscSPs/fx_conversion_engine/internal/models"
)

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode:   domain.CurrencyCode(m.CurrencyCode),
		Symbol:         m.Symbol,
		Name:           m.Name,
		FractionDigits: m.FractionDigits,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
