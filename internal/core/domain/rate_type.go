package domain

// RateTypeDetail holds the per-classification conversion options.
// The zero value allows neither inversion nor triangulation.
type RateTypeDetail struct {
	ReferenceCurrency CurrencyCode `json:"referenceCurrency,omitempty"`
	AllowInversion    bool         `json:"allowInversion"`
}

// HasReferenceCurrency reports whether triangulation is configured.
func (d RateTypeDetail) HasReferenceCurrency() bool {
	return d.ReferenceCurrency != ""
}

// RateTypeDetails maps rate classifications to their details.
type RateTypeDetails map[RateClassification]RateTypeDetail

// Lookup returns the detail for c, or the zero detail when c is not configured.
func (m RateTypeDetails) Lookup(c RateClassification) RateTypeDetail {
	if m == nil {
		return RateTypeDetail{}
	}
	return m[c]
}
