package model

import "time"

// Notification is a record of an outbound client/carer notification produced
// from a booking or shift event.
type Notification struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	EventID   string    `json:"event_id" bson:"event_id"`
	EventType string    `json:"event_type" bson:"event_type"`
	BookingID string    `json:"booking_id,omitempty" bson:"booking_id,omitempty"`
	Recipient string    `json:"recipient,omitempty" bson:"recipient,omitempty"`
	Body      string    `json:"body" bson:"body"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
