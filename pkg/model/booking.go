package model

import (
	"time"
)

// Booking is a scheduled care visit. StartTime round-trips the composed wire
// instant; Recurrence is present only for repeating bookings.
type Booking struct {
	ID              string                `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ClientID        string                `json:"client_id" bson:"client_id" validate:"required,mongodb"`
	CarerID         string                `json:"carer_id" bson:"carer_id" validate:"required,mongodb"`
	ServiceID       string                `json:"service_id" bson:"service_id" validate:"required,mongodb"`
	StartTime       time.Time             `json:"start_time" bson:"start_time" validate:"required"`
	StartWire       string                `json:"start_wire,omitempty" bson:"start_wire,omitempty"`
	DurationMinutes int                   `json:"duration_minutes" bson:"duration_minutes" validate:"required,min=15,max=480"`
	Description     string                `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	ContactPhone    string                `json:"contact_phone,omitempty" bson:"contact_phone,omitempty" validate:"omitempty,e164"`
	Recurrence      *RecurrenceDescriptor `json:"recurrence,omitempty" bson:"recurrence,omitempty" validate:"omitempty"`
	Status          string                `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	CreatedAt       time.Time             `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}

// NewBookingRequest is the one-off booking flow: a client books a single
// visit. Date and Time arrive as the separately chosen calendar date and
// time of day; the service composes them into one instant.
type NewBookingRequest struct {
	ClientID        string `json:"client_id" validate:"required,mongodb"`
	CarerID         string `json:"carer_id" validate:"required,mongodb"`
	ServiceID       string `json:"service_id" validate:"required,mongodb"`
	Date            string `json:"date" validate:"required,visit_date"`
	Time            string `json:"time" validate:"required,visit_time"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=15,max=480"`
	Description     string `json:"description,omitempty" validate:"omitempty,max=500"`
	ContactPhone    string `json:"contact_phone,omitempty" validate:"omitempty"`
}

// RecurringBookingRequest is the repeating booking flow: a one-off draft plus
// the repeat selection to be normalized.
type RecurringBookingRequest struct {
	NewBookingRequest
	Recurrence RecurrenceSelection `json:"recurrence" validate:"required"`
}

// EditBookingRequest is the admin edit flow. All fields optional; a present
// Recurrence replaces the stored descriptor after re-normalization.
type EditBookingRequest struct {
	CarerID         string               `json:"carer_id,omitempty" validate:"omitempty,mongodb"`
	ServiceID       string               `json:"service_id,omitempty" validate:"omitempty,mongodb"`
	Date            string               `json:"date,omitempty" validate:"omitempty,visit_date"`
	Time            string               `json:"time,omitempty" validate:"omitempty,visit_time"`
	DurationMinutes *int                 `json:"duration_minutes,omitempty" validate:"omitempty,min=15,max=480"`
	Description     *string              `json:"description,omitempty" validate:"omitempty,max=500"`
	ContactPhone    *string              `json:"contact_phone,omitempty"`
	Recurrence      *RecurrenceSelection `json:"recurrence,omitempty"`
	Status          string               `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

// RecurrencePreviewRequest asks for the normalized descriptor and display
// message a selection would produce, without creating anything.
type RecurrencePreviewRequest struct {
	Recurrence RecurrenceSelection `json:"recurrence" validate:"required"`
	Date       string              `json:"date" validate:"required"`
	Time       string              `json:"time" validate:"required"`
}

// RecurrencePreviewResponse mirrors what the booking dialogs show: the wire
// descriptor next to its human-readable description.
type RecurrencePreviewResponse struct {
	Descriptor RecurrenceDescriptor `json:"descriptor"`
	Message    string               `json:"message"`
}
