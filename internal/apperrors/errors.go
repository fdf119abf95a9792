package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that input data contradicts data already stored.
var ErrConflict = errors.New("conflicts with stored data")

// Conversion failure kinds. Every failed conversion wraps exactly one of these.
var (
	// ErrInvalidParameters indicates a missing query or a malformed amount, currency or rate type.
	ErrInvalidParameters = errors.New("invalid conversion parameters")

	// ErrNoAdapterOrTenant indicates that the tenant or its settings context is absent.
	ErrNoAdapterOrTenant = errors.New("no data adapter or tenant available")

	// ErrEmptyQuotationCatalog indicates that no quotations were available at all.
	ErrEmptyQuotationCatalog = errors.New("quotation catalog is empty")

	// ErrNoMatchingRecord indicates that neither direct, inverted nor triangulated matching found a quotation.
	ErrNoMatchingRecord = errors.New("no matching exchange rate record found")

	// ErrDuplicateRecord indicates several quotations tied at the latest valid-from timestamp.
	ErrDuplicateRecord = errors.New("duplicate exchange rate records found")

	// ErrMultipleRecordsFound indicates that eligible quotations come from more than one data source.
	ErrMultipleRecordsFound = errors.New("multiple exchange rate records found across data sources")

	// ErrZeroCurrencyFactor indicates a resolved quotation with a zero currency factor.
	ErrZeroCurrencyFactor = errors.New("currency factor is zero")

	// ErrZeroRateForReferenceCurrency indicates a zero rate on a reference currency leg.
	ErrZeroRateForReferenceCurrency = errors.New("exchange rate for reference currency is zero")

	// ErrZeroRate indicates that a zero rate would have to be divided by: a reversed direct
	// record or a forward indirect one. It extends the matching and factor failures above,
	// which have no kind for a division by a zero rate.
	ErrZeroRate = errors.New("zero exchange rate cannot be divided by")
)

var failureKinds = []struct {
	err  error
	kind string
}{
	{ErrInvalidParameters, "InvalidParameters"},
	{ErrNoAdapterOrTenant, "NoAdapterOrTenant"},
	{ErrEmptyQuotationCatalog, "EmptyQuotationCatalog"},
	{ErrNoMatchingRecord, "NoMatchingRecord"},
	{ErrDuplicateRecord, "DuplicateRecord"},
	{ErrMultipleRecordsFound, "MultipleRecordsFound"},
	{ErrZeroCurrencyFactor, "ZeroCurrencyFactor"},
	{ErrZeroRateForReferenceCurrency, "ZeroRateForReferenceCurrency"},
	{ErrZeroRate, "ZeroRate"},
	{ErrValidation, "ValidationError"},
	{ErrConflict, "Conflict"},
	{ErrNotFound, "NotFound"},
}

// FailureKind returns the stable code of the conversion failure wrapped by err.
// Errors that are not conversion failures report "InternalError".
func FailureKind(err error) string {
	if err == nil {
		return ""
	}
	for _, fk := range failureKinds {
		if errors.Is(err, fk.err) {
			return fk.kind
		}
	}
	return "InternalError"
}

// IsConversionFailure reports whether err is one of the typed conversion failures,
// as opposed to an infrastructure error.
func IsConversionFailure(err error) bool {
	switch FailureKind(err) {
	case "", "InternalError", "NotFound", "Conflict":
		return false
	}
	return true
}

// HTTPStatus maps an error to the response status used by the HTTP handlers.
func HTTPStatus(err error) int {
	var appErr *AppError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidParameters), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoAdapterOrTenant), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyQuotationCatalog), errors.Is(err, ErrNoMatchingRecord):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateRecord), errors.Is(err, ErrMultipleRecordsFound), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrZeroCurrencyFactor), errors.Is(err, ErrZeroRateForReferenceCurrency), errors.Is(err, ErrZeroRate):
		return http.StatusUnprocessableEntity
	case errors.As(err, &appErr):
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// AppError carries an HTTP status together with the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given status, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError wraps ErrValidation with a message.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}
