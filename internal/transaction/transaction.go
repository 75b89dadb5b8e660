// Package transaction runs the booking conversation: slot collection,
// cancellation and modification of stored bookings.
package transaction

import "tablebot/internal/slots"

// Transaction is the single in-flight booking of a session.
type Transaction struct {
	Slots slots.Set
	State FlowState
}

func New() *Transaction {
	return &Transaction{State: Idle{}}
}

// Active reports whether slots are being collected.
func (t *Transaction) Active() bool {
	_, ok := t.State.(Collecting)
	return ok
}

// Idle reports whether no flow is in progress. A completed booking is idle.
func (t *Transaction) Idle() bool {
	switch t.State.(type) {
	case nil, Idle, Completed:
		return true
	}
	return false
}

// MidFlow reports whether the next input can only be an answer to the
// booking question just asked.
func (t *Transaction) MidFlow() bool {
	switch t.State.(type) {
	case AwaitingName, SelectingForCancellation, ConfirmingCancellation,
		SelectingForModification, AwaitingModificationField, AwaitingNewValue:
		return true
	}
	return false
}

func (t *Transaction) Reset() {
	t.Slots = slots.Set{}
	t.State = Idle{}
}

// Clone copies the slots deeply. Flow states are never mutated in place, so
// they are shared.
func (t *Transaction) Clone() *Transaction {
	state := t.State
	if state == nil {
		state = Idle{}
	}
	return &Transaction{Slots: t.Slots.Clone(), State: state}
}
