package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionQuery asks for RequestedAmount in FromCurrency to be expressed in ToCurrency
// using the quotation of the given classification that is valid at AsOf.
type ConversionQuery struct {
	FromCurrency       CurrencyCode
	ToCurrency         CurrencyCode
	RequestedAmount    decimal.Decimal
	RateClassification RateClassification
	AsOf               time.Time
}

// Pair returns the queried currency pair.
func (q ConversionQuery) Pair() CurrencyPair {
	return CurrencyPair{From: q.FromCurrency, To: q.ToCurrency}
}

// Direction tells how a resolved quotation relates to the queried pair.
type Direction int

const (
	// Forward means the quotation pair equals the queried pair.
	Forward Direction = iota
	// Reversed means the quotation pair is the inverse of the queried pair.
	Reversed
	// Synthetic means the rate was derived through a reference currency.
	Synthetic
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reversed:
		return "reversed"
	case Synthetic:
		return "synthetic"
	}
	return "unknown"
}

// ReferenceLegs are the two quotations a synthetic rate was composed of.
// FromLeg relates the queried source currency to the reference currency, ToLeg the
// queried target currency.
type ReferenceLegs struct {
	ReferenceCurrency CurrencyCode
	FromLeg           ResolvedLeg
	ToLeg             ResolvedLeg
}

// ResolvedLeg is one leg of a triangulated rate, expressed as leg currency -> reference.
type ResolvedLeg struct {
	Record    QuotationRecord
	Direction Direction
}

// ResolvedRate is the single quotation chosen for a query.
// For a synthetic rate Record carries the composed rate with empty provider and source,
// and Legs holds the quotations it was built from.
type ResolvedRate struct {
	Record    QuotationRecord
	Direction Direction
	Legs      *ReferenceLegs
}

// IsSynthetic reports whether the rate was derived rather than taken from the catalog.
func (r ResolvedRate) IsSynthetic() bool {
	return r.Direction == Synthetic
}

// ConversionOutcome is the result of applying a resolved rate to a query.
type ConversionOutcome struct {
	Rate           ResolvedRate
	ExactAmount    decimal.Decimal
	RoundedAmount  decimal.Decimal
	FractionDigits int32
}

// ConversionResult is the per-query slot of a batch: either Outcome or Err is set.
type ConversionResult struct {
	Query   ConversionQuery
	Outcome *ConversionOutcome
	Err     error
}
