package model

// RecurrenceSelection is the raw repeat choice a booking client submits:
// a cadence plus either a catalog duration option or a custom range.
type RecurrenceSelection struct {
	Frequency      string `json:"frequency" bson:"frequency" validate:"required,repeat_frequency"`
	DurationOption string `json:"duration_option" bson:"duration_option" validate:"required"`
	CustomUnit     string `json:"custom_unit,omitempty" bson:"custom_unit,omitempty" validate:"omitempty,oneof=week month"`
	CustomCount    int    `json:"custom_count,omitempty" bson:"custom_count,omitempty" validate:"omitempty,min=1"`
}

// IsCustom reports whether the selection uses the custom range path rather
// than a catalog duration option.
func (s RecurrenceSelection) IsCustom() bool {
	return s.DurationOption == "Custom"
}

// RecurrenceDescriptor is the normalized integer triple the booking API
// stores and transmits. Field names match the established wire contract.
//
// FrequencyInterval: daily=1 weekly=2 fortnightly=3 monthly=4.
// FrequencyType: week=1 month=2 year=3.
type RecurrenceDescriptor struct {
	FrequencyInterval int `json:"frequencyInterval" bson:"frequency_interval" validate:"required,min=1,max=4"`
	FrequencyType     int `json:"frequencyType" bson:"frequency_type" validate:"required,min=1,max=3"`
	FrequencyDuration int `json:"frequencyDuration" bson:"frequency_duration" validate:"required,min=1"`
}
