package validators

import "go.mongodb.org/mongo-driver/bson"

var CareServiceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"duration_minutes",
			"hourly_rate_pence",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"duration_minutes": bson.M{
				"bsonType": "int",
				"minimum":  15,
				"maximum":  480,
			},

			"hourly_rate_pence": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
