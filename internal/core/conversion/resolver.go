// Package conversion resolves the exchange rate a conversion query should use and applies
// it to the requested amount. It is pure: the caller supplies the quotation catalog, the
// rate type detail and the effective settings for every call.
package conversion

import (
	"fmt"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ResolutionContext carries the per-call identity and eligibility settings.
type ResolutionContext struct {
	Tenant   domain.TenantID
	Settings domain.EffectiveSettings
}

// Resolver selects exactly one quotation, or one synthetic rate, per query.
type Resolver struct {
	// DivisionScale bounds the fractional digits of a composed synthetic rate value.
	DivisionScale int32
}

// NewResolver returns a Resolver using DivisionScale.
func NewResolver() *Resolver {
	return &Resolver{DivisionScale: DivisionScale}
}

// Resolve picks the rate for q out of catalog.
//
// Eligible records belong to the tenant, are admitted by the settings, carry the queried
// classification and are valid at q.AsOf. A direct record is preferred; an inverted one is
// used when detail allows inversion; otherwise both currencies are related through the
// reference currency of detail.
func (r *Resolver) Resolve(rc ResolutionContext, q *domain.ConversionQuery, catalog []domain.QuotationRecord, detail domain.RateTypeDetail) (*domain.ResolvedRate, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}
	if rc.Tenant == "" || rc.Settings == nil {
		return nil, fmt.Errorf("%w: tenant and settings are required", apperrors.ErrNoAdapterOrTenant)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: tenant %s", apperrors.ErrEmptyQuotationCatalog, rc.Tenant)
	}
	if q.FromCurrency == q.ToCurrency {
		return sameCurrencyRate(rc, q), nil
	}

	eligible := eligibleRecords(rc, q, catalog)
	restricted := rc.Settings.Restricted()

	c := matchDirectional(eligible, q.Pair(), detail.AllowInversion, restricted)
	switch c.state {
	case found:
		return &domain.ResolvedRate{Record: c.record, Direction: c.direction}, nil
	case ambiguous:
		return nil, c.err
	}

	ref := detail.ReferenceCurrency
	if detail.HasReferenceCurrency() && ref != q.FromCurrency && ref != q.ToCurrency {
		return r.triangulate(rc, q, eligible, detail, restricted)
	}

	return nil, fmt.Errorf("%w: %s %s as of %s", apperrors.ErrNoMatchingRecord,
		q.RateClassification, q.Pair(), q.AsOf.Format("2006-01-02T15:04:05Z07:00"))
}

func (r *Resolver) triangulate(rc ResolutionContext, q *domain.ConversionQuery, eligible []domain.QuotationRecord, detail domain.RateTypeDetail, restricted bool) (*domain.ResolvedRate, error) {
	ref := detail.ReferenceCurrency
	fromLeg := matchDirectional(eligible, domain.CurrencyPair{From: q.FromCurrency, To: ref}, detail.AllowInversion, restricted)
	toLeg := matchDirectional(eligible, domain.CurrencyPair{From: q.ToCurrency, To: ref}, detail.AllowInversion, restricted)

	for _, leg := range []candidate{fromLeg, toLeg} {
		if leg.state == ambiguous {
			return nil, leg.err
		}
	}
	if fromLeg.state == notFound || toLeg.state == notFound {
		return nil, fmt.Errorf("%w: %s has no %s legs through %s", apperrors.ErrNoMatchingRecord,
			q.Pair(), q.RateClassification, ref)
	}

	legs := &domain.ReferenceLegs{
		ReferenceCurrency: ref,
		FromLeg:           domain.ResolvedLeg{Record: fromLeg.record, Direction: fromLeg.direction},
		ToLeg:             domain.ResolvedLeg{Record: toLeg.record, Direction: toLeg.direction},
	}
	rt, err := legsRatio(legs)
	if err != nil {
		return nil, err
	}
	value, err := rt.apply(one, r.DivisionScale)
	if err != nil {
		return nil, err
	}

	validFrom := fromLeg.record.ValidFrom
	if toLeg.record.ValidFrom.After(validFrom) {
		validFrom = toLeg.record.ValidFrom
	}

	return &domain.ResolvedRate{
		Record: domain.QuotationRecord{
			TenantID:           rc.Tenant,
			RateClassification: q.RateClassification,
			RateValue:          value,
			FromCurrency:       q.FromCurrency,
			ToCurrency:         q.ToCurrency,
			ValidFrom:          validFrom,
			FromCurrencyFactor: 1,
			ToCurrencyFactor:   1,
		},
		Direction: domain.Synthetic,
		Legs:      legs,
	}, nil
}

// legsRatio composes (ref per from) / (ref per to). Zero rates on either leg are reported
// before zero factors.
func legsRatio(legs *domain.ReferenceLegs) (ratio, error) {
	for _, leg := range []domain.ResolvedLeg{legs.FromLeg, legs.ToLeg} {
		if leg.Record.RateValue.IsZero() {
			return ratio{}, fmt.Errorf("%w: %s quotation from %s", apperrors.ErrZeroRateForReferenceCurrency,
				leg.Record.Pair(), leg.Record.Source())
		}
	}
	from, err := legRatio(legs.FromLeg)
	if err != nil {
		return ratio{}, err
	}
	to, err := legRatio(legs.ToLeg)
	if err != nil {
		return ratio{}, err
	}
	return from.over(to), nil
}

func legRatio(leg domain.ResolvedLeg) (ratio, error) {
	rt, err := recordRatio(leg.Record)
	if err != nil {
		return ratio{}, err
	}
	if leg.Direction == domain.Reversed {
		return rt.inverse(), nil
	}
	return rt, nil
}

func eligibleRecords(rc ResolutionContext, q *domain.ConversionQuery, catalog []domain.QuotationRecord) []domain.QuotationRecord {
	eligible := make([]domain.QuotationRecord, 0, len(catalog))
	for _, rec := range catalog {
		if rec.TenantID != rc.Tenant ||
			rec.RateClassification != q.RateClassification ||
			rec.ValidFrom.After(q.AsOf) ||
			!rc.Settings.Admits(rec.Source()) {
			continue
		}
		eligible = append(eligible, rec)
	}
	return eligible
}

// sameCurrencyRate is the 1:1 rate used when both currencies of a query are equal.
func sameCurrencyRate(rc ResolutionContext, q *domain.ConversionQuery) *domain.ResolvedRate {
	return &domain.ResolvedRate{
		Record: domain.QuotationRecord{
			TenantID:           rc.Tenant,
			RateClassification: q.RateClassification,
			RateValue:          decimal.NewFromInt(1),
			FromCurrency:       q.FromCurrency,
			ToCurrency:         q.ToCurrency,
			ValidFrom:          q.AsOf,
			FromCurrencyFactor: 1,
			ToCurrencyFactor:   1,
		},
		Direction: domain.Synthetic,
	}
}

func validateQuery(q *domain.ConversionQuery) error {
	switch {
	case q == nil:
		return fmt.Errorf("%w: query is required", apperrors.ErrInvalidParameters)
	case !q.FromCurrency.Valid():
		return fmt.Errorf("%w: invalid source currency %q", apperrors.ErrInvalidParameters, q.FromCurrency)
	case !q.ToCurrency.Valid():
		return fmt.Errorf("%w: invalid target currency %q", apperrors.ErrInvalidParameters, q.ToCurrency)
	case !q.RateClassification.Valid():
		return fmt.Errorf("%w: invalid rate type %q", apperrors.ErrInvalidParameters, q.RateClassification)
	case q.AsOf.IsZero():
		return fmt.Errorf("%w: as-of date is required", apperrors.ErrInvalidParameters)
	}
	return nil
}
