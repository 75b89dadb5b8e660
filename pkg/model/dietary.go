package model

import "strings"

type Dietary string

const (
	DietaryHalal       Dietary = "halal"
	DietaryVegan       Dietary = "vegan"
	DietaryVegetarian  Dietary = "vegetarian"
	DietaryKosher      Dietary = "kosher"
	DietaryPescatarian Dietary = "pescatarian"
	DietaryNone        Dietary = "none"
)

var DietaryOptions = []Dietary{
	DietaryHalal,
	DietaryVegan,
	DietaryVegetarian,
	DietaryKosher,
	DietaryPescatarian,
	DietaryNone,
}

// ParseDietary matches s case-insensitively against the supported options.
func ParseDietary(s string) (Dietary, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range DietaryOptions {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

func (d Dietary) Valid() bool {
	for _, o := range DietaryOptions {
		if d == o {
			return true
		}
	}
	return false
}
