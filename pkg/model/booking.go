package model

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Booking struct {
	ID           int64     `json:"id" bson:"_id"`
	CustomerName string    `json:"customer_name" bson:"customer_name" validate:"required,min=1,max=100"`
	Date         string    `json:"booking_date" bson:"booking_date" validate:"required,booking_date"`
	Time         string    `json:"booking_time" bson:"booking_time" validate:"required,booking_time"`
	PartySize    int       `json:"party_size" bson:"party_size" validate:"required,party_size"`
	Dietary      Dietary   `json:"dietary" bson:"dietary" validate:"required,dietary"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	Active       bool      `json:"active" bson:"active"`
}

func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// Summary renders the booking on one line, as used in numbered lists.
func (b *Booking) Summary() string {
	return fmt.Sprintf("Date: %s, Time: %s, People: %d, Dietary requirements: %s",
		b.Date, b.Time, b.PartySize, b.Dietary)
}

// BookingField names a booking attribute that can be changed after creation.
type BookingField string

const (
	FieldDate      BookingField = "date"
	FieldTime      BookingField = "time"
	FieldPartySize BookingField = "party_size"
	FieldDietary   BookingField = "dietary"
)

// Column returns the stored attribute name for the field.
func (f BookingField) Column() (string, bool) {
	switch f {
	case FieldDate:
		return "booking_date", true
	case FieldTime:
		return "booking_time", true
	case FieldPartySize:
		return "party_size", true
	case FieldDietary:
		return "dietary", true
	}
	return "", false
}

// Apply writes value into the matching attribute of b.
func (f BookingField) Apply(b *Booking, value any) error {
	switch f {
	case FieldDate, FieldTime:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s expects a string, got %T", f, value)
		}
		if f == FieldDate {
			b.Date = s
		} else {
			b.Time = s
		}
	case FieldPartySize:
		n, ok := value.(int)
		if !ok {
			return fmt.Errorf("%s expects an int, got %T", f, value)
		}
		b.PartySize = n
	case FieldDietary:
		switch d := value.(type) {
		case Dietary:
			b.Dietary = d
		case string:
			b.Dietary = Dietary(d)
		default:
			return fmt.Errorf("%s expects a dietary value, got %T", f, value)
		}
	default:
		return fmt.Errorf("unknown booking field %q", f)
	}
	return nil
}
