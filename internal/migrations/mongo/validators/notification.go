package validators

import "go.mongodb.org/mongo-driver/bson"

var NotificationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"event_id",
			"event_type",
			"body",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"event_id": bson.M{
				"bsonType": "string",
			},

			"event_type": bson.M{
				"bsonType": "string",
			},

			"booking_id": bson.M{
				"bsonType": "string",
			},

			"recipient": bson.M{
				"bsonType": "string",
			},

			"body": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
