package transaction

import (
	"tablebot/internal/slots"
	"tablebot/pkg/model"
)

// Purpose is what a name is being asked for.
type Purpose int

const (
	PurposeBook Purpose = iota
	PurposeCancel
	PurposeModify
	PurposeList
)

func (p Purpose) String() string {
	switch p {
	case PurposeCancel:
		return "cancel"
	case PurposeModify:
		return "modify"
	case PurposeList:
		return "list"
	}
	return "book"
}

// FlowState is the position of a transaction in its flow. Each variant carries
// only the data that position needs.
type FlowState interface {
	Name() string
	flowState()
}

type Idle struct{}

type AwaitingName struct {
	Purpose Purpose
}

type ConfirmingNewBooking struct {
	Count int
}

type Collecting struct{}

type SelectingForCancellation struct {
	Bookings []*model.Booking
}

type ConfirmingCancellation struct {
	Booking *model.Booking
}

type SelectingForModification struct {
	Bookings []*model.Booking
}

type AwaitingModificationField struct {
	Booking *model.Booking
}

type AwaitingNewValue struct {
	Booking *model.Booking
	Field   slots.Slot
}

type Completed struct {
	BookingID int64
}

func (Idle) Name() string                      { return "idle" }
func (AwaitingName) Name() string              { return "awaiting_name" }
func (ConfirmingNewBooking) Name() string      { return "confirming_new_booking" }
func (Collecting) Name() string                { return "collecting" }
func (SelectingForCancellation) Name() string  { return "selecting_for_cancellation" }
func (ConfirmingCancellation) Name() string    { return "confirming_cancellation" }
func (SelectingForModification) Name() string  { return "selecting_for_modification" }
func (AwaitingModificationField) Name() string { return "awaiting_modification_field" }
func (AwaitingNewValue) Name() string          { return "awaiting_new_value" }
func (Completed) Name() string                 { return "completed" }

func (Idle) flowState()                      {}
func (AwaitingName) flowState()              {}
func (ConfirmingNewBooking) flowState()      {}
func (Collecting) flowState()                {}
func (SelectingForCancellation) flowState()  {}
func (ConfirmingCancellation) flowState()    {}
func (SelectingForModification) flowState()  {}
func (AwaitingModificationField) flowState() {}
func (AwaitingNewValue) flowState()          {}
func (Completed) flowState()                 {}
