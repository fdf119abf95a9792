package domain

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
)

const maxCodeLength = 32

// CurrencyCode is an ISO 4217 style currency code, e.g. "EUR".
type CurrencyCode string

// RateClassification distinguishes rate variants of the same pair, e.g. "M" (mid), "B" (bid).
// The set is open: any well-formed value is accepted.
type RateClassification string

// ProviderCode identifies the data provider a quotation was obtained from.
type ProviderCode string

// TenantID identifies the tenant owning quotations and settings.
type TenantID string

// ParseCurrencyCode normalizes s to upper case and checks that it has three letters.
func ParseCurrencyCode(s string) (CurrencyCode, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency code %q must be 3 letters", apperrors.ErrInvalidParameters, s)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: currency code %q must contain letters only", apperrors.ErrInvalidParameters, s)
		}
	}
	return CurrencyCode(code), nil
}

// Valid reports whether c is a well-formed currency code.
func (c CurrencyCode) Valid() bool {
	_, err := ParseCurrencyCode(string(c))
	return err == nil && strings.ToUpper(string(c)) == string(c)
}

func (c CurrencyCode) String() string {
	return string(c)
}

// ParseRateClassification validates a rate classification.
func ParseRateClassification(s string) (RateClassification, error) {
	v, err := parseCode("rate classification", s)
	return RateClassification(v), err
}

// Valid reports whether r is a well-formed classification.
func (r RateClassification) Valid() bool {
	v, err := parseCode("rate classification", string(r))
	return err == nil && v == string(r)
}

func (r RateClassification) String() string {
	return string(r)
}

// ParseProviderCode validates a provider code.
func ParseProviderCode(s string) (ProviderCode, error) {
	v, err := parseCode("provider code", s)
	return ProviderCode(v), err
}

func (p ProviderCode) String() string {
	return string(p)
}

// ParseTenantID validates a tenant identifier.
func ParseTenantID(s string) (TenantID, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("%w: tenant id is empty", apperrors.ErrNoAdapterOrTenant)
	}
	return TenantID(v), nil
}

func parseCode(what, s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("%w: %s is empty", apperrors.ErrInvalidParameters, what)
	}
	if len(v) > maxCodeLength {
		return "", fmt.Errorf("%w: %s %q exceeds %d characters", apperrors.ErrInvalidParameters, what, v, maxCodeLength)
	}
	if strings.IndexFunc(v, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: %s %q contains whitespace", apperrors.ErrInvalidParameters, what, v)
	}
	return v, nil
}
