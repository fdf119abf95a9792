package conversion

import (
	"fmt"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
)

// Applier turns a resolved rate into converted amounts.
type Applier struct {
	DivisionScale int32
}

// NewApplier returns an Applier using DivisionScale.
func NewApplier() *Applier {
	return &Applier{DivisionScale: DivisionScale}
}

// Apply converts q.RequestedAmount with rate. The exact amount keeps full precision, with
// at most one division rounded at DivisionScale; the rounded amount is the exact amount
// rounded half away from zero to fractionDigits.
func (a *Applier) Apply(rate *domain.ResolvedRate, q *domain.ConversionQuery, fractionDigits int32) (*domain.ConversionOutcome, error) {
	if rate == nil || q == nil {
		return nil, fmt.Errorf("%w: rate and query are required", apperrors.ErrInvalidParameters)
	}
	if fractionDigits < 0 {
		return nil, fmt.Errorf("%w: negative fraction digits %d", apperrors.ErrInvalidParameters, fractionDigits)
	}

	rt, err := rateRatio(rate)
	if err != nil {
		return nil, err
	}
	exact, err := rt.apply(q.RequestedAmount, a.DivisionScale)
	if err != nil {
		return nil, fmt.Errorf("%w: %s rate for %s", err, rate.Direction, rate.Record.Pair())
	}

	return &domain.ConversionOutcome{
		Rate:           *rate,
		ExactAmount:    exact,
		RoundedAmount:  exact.Round(fractionDigits),
		FractionDigits: fractionDigits,
	}, nil
}

func rateRatio(rate *domain.ResolvedRate) (ratio, error) {
	switch rate.Direction {
	case domain.Forward:
		return recordRatio(rate.Record)
	case domain.Reversed:
		rt, err := recordRatio(rate.Record)
		if err != nil {
			return ratio{}, err
		}
		return rt.inverse(), nil
	case domain.Synthetic:
		if rate.Legs != nil {
			return legsRatio(rate.Legs)
		}
		return recordRatio(rate.Record)
	}
	return ratio{}, fmt.Errorf("%w: unknown direction %d", apperrors.ErrInvalidParameters, rate.Direction)
}
