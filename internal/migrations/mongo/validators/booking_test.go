package validators

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBookingValidator_DietaryEnumMatchesModel(t *testing.T) {
	schema := BookingValidator["$jsonSchema"].(bson.M)
	props := schema["properties"].(bson.M)
	dietary := props["dietary"].(bson.M)
	enum := dietary["enum"].([]string)

	want := []string{"halal", "vegan", "vegetarian", "kosher", "pescatarian", "none"}
	if len(enum) != len(want) {
		t.Fatalf("expected %d dietary values, got %v", len(want), enum)
	}
	for i := range want {
		if enum[i] != want[i] {
			t.Errorf("enum[%d] = %q, want %q", i, enum[i], want[i])
		}
	}
}

func TestBookingValidator_RequiresActiveFlag(t *testing.T) {
	schema := BookingValidator["$jsonSchema"].(bson.M)
	required := schema["required"].([]string)

	for _, field := range required {
		if field == "active" {
			return
		}
	}
	t.Errorf("expected active in required fields, got %v", required)
}
