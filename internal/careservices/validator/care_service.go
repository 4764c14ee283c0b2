package validator

import (
	"errors"
	"fmt"
	"strings"

	"carebook/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type CareServiceValidator struct {
	validate *validator.Validate
}

func NewCareServiceValidator() *CareServiceValidator {
	return &CareServiceValidator{
		validate: validator.New(),
	}
}

func (v *CareServiceValidator) Validate(cs *model.CareService) error {
	if err := v.validate.Struct(cs); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return ValidationErrors{{Field: "general", Message: err.Error()}}
	}
	return nil
}

func (v *CareServiceValidator) ValidateUpdate(updates *model.CareServiceUpdate) error {
	if err := v.validate.Struct(updates); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return ValidationErrors{{Field: "general", Message: err.Error()}}
	}
	return nil
}

func (v *CareServiceValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var translated ValidationErrors
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		var message string
		switch err.Tag() {
		case "required":
			message = "is required"
		case "min":
			message = fmt.Sprintf("must be at least %s", err.Param())
		case "max":
			message = fmt.Sprintf("must be at most %s", err.Param())
		case "mongodb":
			message = "must be a valid ID"
		default:
			message = fmt.Sprintf("failed validation for '%s'", err.Tag())
		}
		translated = append(translated, ValidationError{Field: field, Message: message})
	}
	return translated
}
