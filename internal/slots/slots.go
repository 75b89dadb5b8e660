// Package slots holds the values a booking needs and parses them out of free
// text.
package slots

import (
	"fmt"
	"strings"

	"tablebot/pkg/model"

	"cloud.google.com/go/civil"
)

type Slot int

const (
	SlotName Slot = iota
	SlotDate
	SlotTime
	SlotPartySize
	SlotDietary
)

// Order is the priority in which missing slots are asked for.
var Order = []Slot{SlotName, SlotDate, SlotTime, SlotPartySize, SlotDietary}

func (s Slot) String() string {
	switch s {
	case SlotName:
		return "name"
	case SlotDate:
		return "date"
	case SlotTime:
		return "time"
	case SlotPartySize:
		return "people"
	case SlotDietary:
		return "dietary"
	}
	return fmt.Sprintf("slot(%d)", int(s))
}

// Field maps the slot to the stored booking attribute. The name is not
// editable after creation.
func (s Slot) Field() (model.BookingField, bool) {
	switch s {
	case SlotDate:
		return model.FieldDate, true
	case SlotTime:
		return model.FieldTime, true
	case SlotPartySize:
		return model.FieldPartySize, true
	case SlotDietary:
		return model.FieldDietary, true
	}
	return "", false
}

// ParseSlotName resolves the answer to "what would you like to modify?".
func ParseSlotName(input string) (Slot, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "date":
		return SlotDate, true
	case "time":
		return SlotTime, true
	case "people", "party size", "party", "guests":
		return SlotPartySize, true
	case "dietary":
		return SlotDietary, true
	}
	return 0, false
}

// Set is the collected slot values of one transaction. Nil pointers and zero
// values mean the slot has not been filled.
type Set struct {
	CustomerName string
	Date         *civil.Date
	Time         *civil.Time
	PartySize    int
	Dietary      model.Dietary
}

func (s *Set) Has(slot Slot) bool {
	switch slot {
	case SlotName:
		return s.CustomerName != ""
	case SlotDate:
		return s.Date != nil
	case SlotTime:
		return s.Time != nil
	case SlotPartySize:
		return s.PartySize > 0
	case SlotDietary:
		return s.Dietary != ""
	}
	return false
}

func (s *Set) Missing() []Slot {
	var out []Slot
	for _, slot := range Order {
		if !s.Has(slot) {
			out = append(out, slot)
		}
	}
	return out
}

// Next returns the highest priority missing slot.
func (s *Set) Next() (Slot, bool) {
	for _, slot := range Order {
		if !s.Has(slot) {
			return slot, true
		}
	}
	return 0, false
}

func (s *Set) Complete() bool {
	_, missing := s.Next()
	return !missing
}

func (s *Set) Clone() Set {
	c := *s
	if s.Date != nil {
		d := *s.Date
		c.Date = &d
	}
	if s.Time != nil {
		t := *s.Time
		c.Time = &t
	}
	return c
}

// Value returns the slot in the form it is stored in.
func (s *Set) Value(slot Slot) (any, bool) {
	if !s.Has(slot) {
		return nil, false
	}
	switch slot {
	case SlotName:
		return s.CustomerName, true
	case SlotDate:
		return FormatDate(*s.Date), true
	case SlotTime:
		return FormatTime(*s.Time), true
	case SlotPartySize:
		return s.PartySize, true
	case SlotDietary:
		return s.Dietary, true
	}
	return nil, false
}

// Describe names what is still needed for slot, as shown to the customer.
func (s *Set) Describe(slot Slot) string {
	switch slot {
	case SlotName:
		return "Your name for the booking"
	case SlotDate:
		return "The date of the booking"
	case SlotTime:
		if s.Date != nil {
			return "The time for booking on " + FormatDate(*s.Date)
		}
		return "The time of the booking"
	case SlotPartySize:
		return "The number of people for your booking"
	case SlotDietary:
		return "The dietary requirements of your booking"
	}
	return ""
}

// MissingSummary lists every missing slot on its own tab-indented line.
func (s *Set) MissingSummary() string {
	var b strings.Builder
	for _, slot := range s.Missing() {
		b.WriteString("\t")
		b.WriteString(s.Describe(slot))
		b.WriteString("\n")
	}
	return b.String()
}

// Summary renders every slot, filled or not, on one line.
func (s *Set) Summary() string {
	show := func(slot Slot) string {
		v, ok := s.Value(slot)
		if !ok {
			return "None"
		}
		return fmt.Sprint(v)
	}
	return fmt.Sprintf("Name: %s, Date: %s, Time: %s, Number of People: %s, Dietary requirements: %s",
		show(SlotName), show(SlotDate), show(SlotTime), show(SlotPartySize), show(SlotDietary))
}

// Booking converts a complete set into a record ready to persist.
func (s *Set) Booking() (*model.Booking, error) {
	if !s.Complete() {
		return nil, fmt.Errorf("booking is missing %v", s.Missing())
	}
	return &model.Booking{
		CustomerName: s.CustomerName,
		Date:         FormatDate(*s.Date),
		Time:         FormatTime(*s.Time),
		PartySize:    s.PartySize,
		Dietary:      s.Dietary,
	}, nil
}

func FormatDate(d civil.Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func FormatTime(t civil.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
