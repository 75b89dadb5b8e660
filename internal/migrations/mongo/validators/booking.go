package validators

import (
	"tablebot/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

func dietaryEnum() []string {
	out := make([]string, 0, len(model.DietaryOptions))
	for _, d := range model.DietaryOptions {
		out = append(out, string(d))
	}
	return out
}

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"customer_name",
			"booking_date",
			"booking_time",
			"party_size",
			"dietary",
			"created_at",
			"active",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"customer_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"booking_date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"booking_time": bson.M{
				"bsonType": "string",
				"pattern":  `^([01]\d|2[0-3]):[0-5]\d$`,
			},

			"party_size": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"dietary": bson.M{
				"bsonType": "string",
				"enum":     dietaryEnum(),
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"active": bson.M{
				"bsonType": "bool",
			},
		},
	},
}

var CounterValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "seq"},
		"properties": bson.M{
			"_id": bson.M{"bsonType": "string"},
			"seq": bson.M{"bsonType": []string{"int", "long"}},
		},
	},
}
