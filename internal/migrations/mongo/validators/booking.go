package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"client_id",
			"carer_id",
			"service_id",
			"start_time",
			"duration_minutes",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"client_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"carer_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"service_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"start_time": bson.M{
				"bsonType": "date",
			},

			"start_wire": bson.M{
				"bsonType": "string",
			},

			"duration_minutes": bson.M{
				"bsonType": "int",
				"minimum":  15,
				"maximum":  480,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"contact_phone": bson.M{
				"bsonType": "string",
			},

			"recurrence": bson.M{
				"bsonType": "object",
				"required": []string{
					"frequency_interval",
					"frequency_type",
					"frequency_duration",
				},
				"properties": bson.M{
					"frequency_interval": bson.M{
						"bsonType": "int",
						"minimum":  1,
						"maximum":  4,
					},
					"frequency_type": bson.M{
						"bsonType": "int",
						"minimum":  1,
						"maximum":  3,
					},
					"frequency_duration": bson.M{
						"bsonType": "int",
						"minimum":  1,
					},
				},
			},

			"status": bson.M{
				"enum": []string{"pending", "confirmed", "cancelled", "completed"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
