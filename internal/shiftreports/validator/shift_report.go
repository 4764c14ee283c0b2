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

type ShiftReportValidator struct {
	validate *validator.Validate
}

func NewShiftReportValidator() *ShiftReportValidator {
	return &ShiftReportValidator{
		validate: validator.New(),
	}
}

func (v *ShiftReportValidator) ValidateRequest(req *model.ShiftReportRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return ValidationErrors{{Field: "general", Message: err.Error()}}
	}
	return nil
}

func (v *ShiftReportValidator) ValidateReport(report *model.ShiftReport) error {
	if err := v.validate.Struct(report); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return ValidationErrors{{Field: "general", Message: err.Error()}}
	}
	return nil
}

func (v *ShiftReportValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var translated ValidationErrors
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		var message string
		switch err.Tag() {
		case "required":
			message = "is required"
		case "oneof":
			message = fmt.Sprintf("must be one of: %s", err.Param())
		case "max":
			message = fmt.Sprintf("must be at most %s characters", err.Param())
		case "mongodb":
			message = "must be a valid ID"
		default:
			message = fmt.Sprintf("failed validation for '%s'", err.Tag())
		}
		translated = append(translated, ValidationError{Field: field, Message: message})
	}
	return translated
}
