package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

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

type CarerDayValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCarerDayValidator(log *logger.Logger) *CarerDayValidator {
	v := validator.New()

	if err := v.RegisterValidation("visit_date", validateVisitDate); err != nil {
		log.Fatal("Failed to register 'visit_date' validator", "error", err)
	}
	if err := v.RegisterValidation("visit_time", validateVisitTime); err != nil {
		log.Fatal("Failed to register 'visit_time' validator", "error", err)
	}

	log.Info("Carer day validator initialized successfully")

	return &CarerDayValidator{
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

// ValidateDay checks the snapshot's struct constraints plus the slot
// invariants: all slots on the snapshot date, sorted ascending, no
// duplicates.
func (v *CarerDayValidator) ValidateDay(day *model.CarerDay) error {
	if err := v.validate.Struct(day); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return ValidationErrors{{Field: "general", Message: err.Error()}}
	}

	var errs ValidationErrors
	for i, slot := range day.Slots {
		sy, sm, sd := slot.TimeSlot.Date()
		dy, dm, dd := day.Date.Date()
		if sy != dy || sm != dm || sd != dd {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("slots[%d]", i),
				Message: "slot does not fall on the snapshot date",
			})
			continue
		}
		if i > 0 && !day.Slots[i-1].TimeSlot.Before(slot.TimeSlot) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("slots[%d]", i),
				Message: "slots must be strictly ascending",
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *CarerDayValidator) ValidateSlotCheck(req *model.SlotCheckRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return ValidationErrors{{Field: "general", Message: err.Error()}}
	}

	var errs ValidationErrors
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date)); err != nil {
		errs = append(errs, ValidationError{Field: "date", Message: "must be a valid date in YYYY-MM-DD format"})
	}
	if _, err := time.Parse("15:04", strings.TrimSpace(req.Time)); err != nil {
		if _, err := time.Parse("15:04:05", strings.TrimSpace(req.Time)); err != nil {
			errs = append(errs, ValidationError{Field: "time", Message: "must be a valid time in HH:MM format"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *CarerDayValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var translated ValidationErrors
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		var message string
		switch err.Tag() {
		case "required":
			message = "is required"
		case "mongodb":
			message = "must be a valid ID"
		case "visit_date":
			message = "must be a valid date in YYYY-MM-DD format"
		case "visit_time":
			message = "must be a valid time in HH:MM format"
		default:
			message = fmt.Sprintf("failed validation for '%s'", err.Tag())
		}
		translated = append(translated, ValidationError{Field: field, Message: message})
	}
	return translated
}
