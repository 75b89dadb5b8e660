package nlp

import "strings"

type Answer int

const (
	NoAnswer Answer = iota
	Yes
	No
)

// ParseAnswer recognizes a bare yes or no reply.
func ParseAnswer(input string) Answer {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "yes", "yeah", "yep", "y":
		return Yes
	case "no", "nope", "n":
		return No
	}
	return NoAnswer
}

func IsAnswer(input string) bool {
	return ParseAnswer(input) != NoAnswer
}
