package model

import "time"

// ShiftReport is a carer's completion report for a booked visit. The booking
// and carer identity arrive sealed inside an opaque shift token handed to the
// carer app; the service unseals them before storing.
type ShiftReport struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BookingID   string    `json:"booking_id" bson:"booking_id" validate:"required,mongodb"`
	CarerID     string    `json:"carer_id" bson:"carer_id" validate:"required,mongodb"`
	Outcome     string    `json:"outcome" bson:"outcome" validate:"required,oneof=completed partial missed"`
	Notes       string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=1000"`
	CompletedAt time.Time `json:"completed_at" bson:"completed_at" validate:"required"`
	CreatedAt   time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}

// ShiftReportRequest is what the carer app submits: the sealed token plus the
// report body.
type ShiftReportRequest struct {
	ShiftToken  string    `json:"shift_token" validate:"required"`
	Outcome     string    `json:"outcome" validate:"required,oneof=completed partial missed"`
	Notes       string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
	CompletedAt time.Time `json:"completed_at" validate:"required"`
}
