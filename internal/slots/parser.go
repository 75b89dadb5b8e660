package slots

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tablebot/pkg/model"

	"cloud.google.com/go/civil"
)

var (
	datePattern   = regexp.MustCompile(`\b(?:\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{1,2}[/-]\d{1,2})\b`)
	timePattern   = regexp.MustCompile(`(?i)\b(\d{1,2})(?:[:.](\d{2}))?\s*(am|pm)?\b`)
	peoplePattern = regexp.MustCompile(`(?i)\b(\d+)\s*(?:people|persons|guests|seats|tables?)\b`)
	numberPattern = regexp.MustCompile(`\b\d+\b`)
	digitsOnly    = regexp.MustCompile(`^\d+$`)
	dateSeparator = regexp.MustCompile(`[/-]`)
)

type Kind int

const (
	NoMatch Kind = iota
	Filled
	Rejected
)

// Outcome reports what a parse did. Reason is set only for Rejected.
type Outcome struct {
	Kind   Kind
	Slot   Slot
	Reason string
}

func filled(slot Slot) Outcome { return Outcome{Kind: Filled, Slot: slot} }

func rejected(slot Slot, format string, args ...any) Outcome {
	return Outcome{Kind: Rejected, Slot: slot, Reason: fmt.Sprintf(format, args...)}
}

type Rules struct {
	MaxPartySize int
	Opening      civil.Time
	Closing      civil.Time
	WindowDays   int
}

// NewRules parses opening and closing times given as HH:MM.
func NewRules(maxPartySize int, opening, closing string, windowDays int) (Rules, error) {
	open, err := civil.ParseTime(opening + ":00")
	if err != nil {
		return Rules{}, fmt.Errorf("invalid opening time %q: %w", opening, err)
	}
	closeAt, err := civil.ParseTime(closing + ":00")
	if err != nil {
		return Rules{}, fmt.Errorf("invalid closing time %q: %w", closing, err)
	}
	return Rules{
		MaxPartySize: maxPartySize,
		Opening:      open,
		Closing:      closeAt,
		WindowDays:   windowDays,
	}, nil
}

type Parser struct {
	rules Rules
	now   func() time.Time
}

func NewParser(rules Rules, now func() time.Time) *Parser {
	if now == nil {
		now = time.Now
	}
	return &Parser{rules: rules, now: now}
}

// Parse extracts the first recognizable slot in priority order date, time,
// party size, dietary. A recognized but invalid value is rejected without
// trying the later slots.
func (p *Parser) Parse(input string, set *Set) Outcome {
	if loc := datePattern.FindStringIndex(input); loc != nil {
		return p.parseDate(input[loc[0]:loc[1]], set)
	}
	if m := findTime(input); m != nil {
		return p.parseTime(m, set)
	}
	if m := peoplePattern.FindStringSubmatch(input); m != nil {
		return p.parsePartySize(m[1], set)
	}
	if digitsOnly.MatchString(strings.TrimSpace(input)) {
		return rejected(SlotPartySize, "Please provide the number of people in the correct format. eg 5 people")
	}
	if d, ok := model.ParseDietary(input); ok {
		set.Dietary = d
		return filled(SlotDietary)
	}
	return Outcome{Kind: NoMatch}
}

// ParseField only looks for slot. A bare integer counts as a party size here
// since the question already named the field.
func (p *Parser) ParseField(input string, slot Slot, set *Set) Outcome {
	switch slot {
	case SlotDate:
		if loc := datePattern.FindStringIndex(input); loc != nil {
			return p.parseDate(input[loc[0]:loc[1]], set)
		}
	case SlotTime:
		if datePattern.MatchString(input) {
			break
		}
		if m := findTime(input); m != nil {
			return p.parseTime(m, set)
		}
	case SlotPartySize:
		if m := peoplePattern.FindStringSubmatch(input); m != nil {
			return p.parsePartySize(m[1], set)
		}
		if trimmed := strings.TrimSpace(input); digitsOnly.MatchString(trimmed) {
			return p.parsePartySize(trimmed, set)
		}
	case SlotDietary:
		if d, ok := model.ParseDietary(input); ok {
			set.Dietary = d
			return filled(SlotDietary)
		}
	}
	return Outcome{Kind: NoMatch, Slot: slot}
}

// ContainsSlotPattern reports whether input carries anything shaped like a
// date, a time or a head count.
func ContainsSlotPattern(input string) bool {
	return numberPattern.MatchString(input) ||
		datePattern.MatchString(input) ||
		findTime(input) != nil ||
		peoplePattern.MatchString(input)
}

func (p *Parser) parseDate(raw string, set *Set) Outcome {
	parts := dateSeparator.Split(raw, -1)
	if len(parts) != 3 {
		return Outcome{Kind: NoMatch}
	}

	var year, month, day int
	if len(parts[0]) == 4 {
		year, month, day = atoi(parts[0]), atoi(parts[1]), atoi(parts[2])
	} else {
		day, month, year = atoi(parts[0]), atoi(parts[1]), atoi(parts[2])
		if len(parts[2]) == 2 {
			year += 2000
		}
	}

	if month < 1 || month > 12 {
		return rejected(SlotDate, "Invalid month. Please provide a month between 1 and 12.")
	}
	if day < 1 || day > 31 {
		return rejected(SlotDate, "Invalid day. Please provide a day between 1 and 31.")
	}

	d := civil.Date{Year: year, Month: time.Month(month), Day: day}
	if !d.IsValid() {
		return rejected(SlotDate, "Invalid date. %s does not have a day %d, please try again.", time.Month(month), day)
	}

	today := civil.DateOf(p.now())
	if d.Before(today) {
		return rejected(SlotDate, "Sorry, bookings cannot be made for a date before %s. Please try again.", FormatDate(today))
	}
	if d.After(today.AddDays(p.rules.WindowDays)) {
		return rejected(SlotDate, "Sorry, bookings can only be made up to %d days in advance. Please try again.", p.rules.WindowDays)
	}

	set.Date = &d
	return filled(SlotDate)
}

type timeMatch struct {
	hour, minute string
	meridiem     string
}

// findTime returns the first HH:MM, HH.MM or H am/pm in input. A bare number
// without minutes or am/pm is not a time.
func findTime(input string) *timeMatch {
	for _, m := range timePattern.FindAllStringSubmatch(input, -1) {
		if m[2] == "" && m[3] == "" {
			continue
		}
		return &timeMatch{hour: m[1], minute: m[2], meridiem: strings.ToLower(m[3])}
	}
	return nil
}

func (p *Parser) parseTime(m *timeMatch, set *Set) Outcome {
	hour, minute := atoi(m.hour), 0
	if m.minute != "" {
		minute = atoi(m.minute)
	}

	invalid := rejected(SlotTime, "Invalid time. Please provide a time such as 19:30 or 7pm.")
	if minute > 59 {
		return invalid
	}
	switch m.meridiem {
	case "am", "pm":
		if hour < 1 || hour > 12 {
			return invalid
		}
		hour %= 12
		if m.meridiem == "pm" {
			hour += 12
		}
	default:
		if hour > 23 {
			return invalid
		}
	}

	t := civil.Time{Hour: hour, Minute: minute}
	if minutesOf(t) < minutesOf(p.rules.Opening) || minutesOf(t) > minutesOf(p.rules.Closing) {
		return rejected(SlotTime, "Sorry, our restaurant is only open between %s and %s. Provide a time within our open hours",
			FormatTime(p.rules.Opening), FormatTime(p.rules.Closing))
	}

	set.Time = &t
	return filled(SlotTime)
}

func (p *Parser) parsePartySize(raw string, set *Set) Outcome {
	n, err := strconv.Atoi(raw)
	if err == nil && n <= 0 {
		return rejected(SlotPartySize, "Please provide a valid number of people. The number of people must be positive, try again")
	}
	if err != nil || n > p.rules.MaxPartySize {
		return rejected(SlotPartySize, "Sorry, we can only accommodate parties up to %d people. For larger groups, please contact us directly.", p.rules.MaxPartySize)
	}

	set.PartySize = n
	return filled(SlotPartySize)
}

func minutesOf(t civil.Time) int {
	return t.Hour*60 + t.Minute
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
