package conversion

import (
	"fmt"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DivisionScale is the number of fractional digits kept when a conversion needs a division.
const DivisionScale int32 = 34

var one = decimal.NewFromInt(1)

// ratio is a to-currency per from-currency rate kept as an unevaluated fraction, so that
// composing and inverting rates never divides. Only apply divides, once.
type ratio struct {
	num decimal.Decimal
	den decimal.Decimal
}

// recordRatio returns the to-per-from ratio a quotation defines:
//
//	direct:   rate * toFactor / fromFactor
//	indirect: (toFactor / fromFactor) / rate
func recordRatio(rec domain.QuotationRecord) (ratio, error) {
	if rec.HasZeroFactor() {
		return ratio{}, fmt.Errorf("%w: %s quotation from %s has factors %d/%d",
			apperrors.ErrZeroCurrencyFactor, rec.Pair(), rec.Source(), rec.FromCurrencyFactor, rec.ToCurrencyFactor)
	}
	to := decimal.NewFromInt(rec.ToCurrencyFactor)
	from := decimal.NewFromInt(rec.FromCurrencyFactor)
	if rec.IsIndirect {
		return ratio{num: to, den: rec.RateValue.Mul(from)}, nil
	}
	return ratio{num: rec.RateValue.Mul(to), den: from}, nil
}

func (r ratio) inverse() ratio {
	return ratio{num: r.den, den: r.num}
}

// over returns r / o.
func (r ratio) over(o ratio) ratio {
	return ratio{num: r.num.Mul(o.den), den: r.den.Mul(o.num)}
}

// apply returns amount * num / den. The division is skipped when den is 1 and otherwise
// rounded half away from zero at scale fractional digits.
func (r ratio) apply(amount decimal.Decimal, scale int32) (decimal.Decimal, error) {
	if r.den.IsZero() {
		return decimal.Decimal{}, apperrors.ErrZeroRate
	}
	product := amount.Mul(r.num)
	if r.den.Equal(one) {
		return product, nil
	}
	return product.DivRound(r.den, scale), nil
}
