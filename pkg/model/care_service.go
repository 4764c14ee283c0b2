package model

import "time"

// CareService is a catalog entry clients book: personal care, domestic help,
// companionship and so on.
type CareService struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name            string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	DurationMinutes int       `json:"duration_minutes" bson:"duration_minutes" validate:"required,min=15,max=480"`
	HourlyRatePence int       `json:"hourly_rate_pence" bson:"hourly_rate_pence" validate:"required,min=1"`
	Active          bool      `json:"active" bson:"active"`
	CreatedAt       time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}

// CareServiceUpdate carries partial catalog changes.
type CareServiceUpdate struct {
	Name            string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=500"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=15,max=480"`
	HourlyRatePence *int    `json:"hourly_rate_pence,omitempty" validate:"omitempty,min=0"`
	Active          *bool   `json:"active,omitempty"`
}
