package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"carebook/internal/recurrence"
	"carebook/pkg/logger"
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

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("visit_date", validateVisitDate); err != nil {
		log.Fatal("Failed to register 'visit_date' validator", "error", err)
	}
	if err := v.RegisterValidation("visit_time", validateVisitTime); err != nil {
		log.Fatal("Failed to register 'visit_time' validator", "error", err)
	}
	if err := v.RegisterValidation("repeat_frequency", validateRepeatFrequency); err != nil {
		log.Fatal("Failed to register 'repeat_frequency' validator", "error", err)
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func validateVisitDate(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validateVisitTime(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

func validateRepeatFrequency(fl validator.FieldLevel) bool {
	return recurrence.KnownFrequency(strings.TrimSpace(fl.Field().String()))
}

func (v *BookingValidator) ValidateNew(req *model.NewBookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return v.validateDateTime(req.Date, req.Time)
}

func (v *BookingValidator) ValidateRecurring(req *model.RecurringBookingRequest) error {
	if err := v.ValidateNew(&req.NewBookingRequest); err != nil {
		return err
	}
	return v.validateSelection(&req.Recurrence)
}

func (v *BookingValidator) ValidatePreview(req *model.RecurrencePreviewRequest) error {
	if err := v.validateDateTime(req.Date, req.Time); err != nil {
		return err
	}
	return v.validateSelection(&req.Recurrence)
}

func (v *BookingValidator) ValidateBooking(b *model.Booking) error {
	if err := v.validate.Struct(b); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BookingValidator) validateDateTime(date, timeOfDay string) error {
	var errs ValidationErrors

	if _, err := time.Parse("2006-01-02", strings.TrimSpace(date)); err != nil {
		errs = append(errs, ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if _, err := time.Parse("15:04", strings.TrimSpace(timeOfDay)); err != nil {
		errs = append(errs, ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM 24-hour format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *BookingValidator) validateSelection(sel *model.RecurrenceSelection) error {
	var errs ValidationErrors

	if !recurrence.KnownFrequency(sel.Frequency) {
		errs = append(errs, ValidationError{
			Field:   "frequency",
			Message: "frequency must be one of daily, weekly, fortnightly, monthly",
		})
	}

	if sel.DurationOption == "" {
		errs = append(errs, ValidationError{
			Field:   "duration_option",
			Message: "duration_option is required",
		})
	} else if sel.IsCustom() {
		if sel.CustomUnit == "" || sel.CustomCount <= 0 {
			errs = append(errs, ValidationError{
				Field:   "custom",
				Message: "custom duration requires a unit and a positive count",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object ID", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be an E.164 phone number", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "visit_date":
			message = fmt.Sprintf("%s must be in YYYY-MM-DD format", err.Field())
		case "visit_time":
			message = fmt.Sprintf("%s must be in HH:MM 24-hour format", err.Field())
		case "repeat_frequency":
			message = fmt.Sprintf("%s must be one of daily, weekly, fortnightly, monthly", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
