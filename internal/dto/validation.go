package dto

import (
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by the request DTOs.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("ratetype", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseRateClassification(fl.Field().String())
		return err == nil
	})
}

// NewValidator returns a validator reading the same `binding` tags as gin, for DTOs
// that do not arrive through an HTTP request.
func NewValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	if err := RegisterValidators(v); err != nil {
		return nil, err
	}
	return v, nil
}
