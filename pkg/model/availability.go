package model

import "time"

// AvailabilitySlot is one bookable start time for a carer. JSON field names
// follow the availability API's established wire contract.
type AvailabilitySlot struct {
	TimeSlot         time.Time `json:"TimeSlot" bson:"time_slot" validate:"required"`
	IsCarerAvailable bool      `json:"IsCarerAvailable" bson:"is_carer_available"`
}

// AvailableDate gates which calendar dates are selectable at all,
// independent of time-of-day granularity.
type AvailableDate struct {
	Date             time.Time `json:"Date" bson:"date" validate:"required"`
	IsCarerAvailable bool      `json:"IsCarerAvailable" bson:"is_carer_available"`
}

// CarerDay is the stored availability snapshot for one carer on one date.
// Slots are kept sorted ascending by TimeSlot; the last slot is the latest
// legitimate start time for that day.
type CarerDay struct {
	ID        string             `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CarerID   string             `json:"carer_id" bson:"carer_id" validate:"required,mongodb"`
	Date      time.Time          `json:"date" bson:"date" validate:"required"`
	TimeZone  string             `json:"time_zone,omitempty" bson:"time_zone,omitempty"`
	Slots     []AvailabilitySlot `json:"slots" bson:"slots" validate:"dive"`
	CreatedAt time.Time          `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}

// CarerDayUpdate carries partial changes to a stored snapshot.
type CarerDayUpdate struct {
	Slots    *[]AvailabilitySlot `json:"slots,omitempty" validate:"omitempty,dive"`
	TimeZone string              `json:"time_zone,omitempty"`
}

// SlotCheckRequest asks whether a candidate start time is disabled for a
// carer on a date.
type SlotCheckRequest struct {
	CarerID string `json:"carer_id" validate:"required,mongodb"`
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time" validate:"required"`
}

// SlotCheckResponse reports the reconciliation outcome. NoAvailability is an
// expected state, not an error: it drives the "no carer available" message.
type SlotCheckResponse struct {
	Disabled       bool `json:"disabled"`
	NoAvailability bool `json:"no_availability"`
}
