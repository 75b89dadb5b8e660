package transaction

import (
	"fmt"
	"strings"

	"tablebot/internal/slots"
	"tablebot/pkg/model"
)

const (
	msgAskNameToFind   = "First, please tell me your name so I can find your bookings."
	msgAskNameToBook   = "First, please tell me your name so I can make a booking."
	msgNameNotFound    = "Sorry, I didn't catch your name. Please tell me your name."
	msgAskDate         = "On what date (DD/MM/YYYY) would you like to make your booking for?"
	msgAnswerYesNo     = "Please answer 'yes' or 'no'"
	msgNothingElse     = "Okay, let me know if you need anything else!"
	msgBookingStopped  = "Booking process cancelled. Is there anything else I can help you with?"
	msgSaveFailed      = "Sorry, I couldn't save your booking right now. Please try again."
	msgLookupFailed    = "Sorry, I couldn't look up your bookings right now. Please try again."
	msgNoBookings      = "No active bookings found. To make a booking try typing 'make a booking'."
	msgNoneToCancel    = "You don't have any active bookings to cancel. Try typing 'make a booking' to create a booking."
	msgNoneToModify    = "You don't have any active bookings to modify. Try typing 'make a booking' to create a booking."
	msgPickToCancel    = "Please enter the number of the booking you'd like to cancel."
	msgPickToModify    = "Please enter the number of the booking you would like to modify."
	msgNotANumber      = "Please enter a valid number."
	msgCancelled       = "Your booking has been cancelled successfully."
	msgCancelFailed    = "There was an error cancelling your booking. Please try again."
	msgCancelAbandoned = "Booking cancellation abandoned. Is there anything else I can help you with?"
	msgNoLongerActive  = "That booking is no longer active, so it can't be changed. Is there anything else I can help you with?"
	msgPickField       = "Please type either 'date', 'time', 'people' or 'dietary' to modify the specific detail of the booking."
	msgUpdateFailed    = "Sorry, I couldn't update your booking right now. Please try again."
	msgDietaryOptions  = "Lastly type 'Halal', 'vegan', 'vegetarian', 'kosher', 'pescatarian' if you have any of the dietary requirements or 'none' if you don't."
	msgResumeComplete  = "Resuming your previous booking. All details are complete."
)

func welcome(name string) string {
	return fmt.Sprintf("Thank you %s! What date (DD/MM/YYYY) would you like to make your booking for?", name)
}

func existingBookings(bookings []*model.Booking) string {
	return fmt.Sprintf("I see you already have %d booking(s):\n%s\nWould you like to make another booking? (yes/no)",
		len(bookings), bookingList(bookings))
}

func bookingList(bookings []*model.Booking) string {
	var b strings.Builder
	b.WriteString("Your bookings:")
	for i, bk := range bookings {
		fmt.Fprintf(&b, "\n%d. %s", i+1, bk.Summary())
	}
	return b.String()
}

func invalidSelection(n int) string {
	return fmt.Sprintf("Invalid selection. Please choose a valid booking number between 1 and %d", n)
}

func confirmCancellation(b *model.Booking) string {
	return fmt.Sprintf("Are you sure you want to cancel this booking?\n%s\n(yes/no)", b.Summary())
}

func modificationDetails(b *model.Booking) string {
	return fmt.Sprintf("Current booking details:\nDate: %s\nTime: %s\nPeople: %d\nDietary requirement: %s\n"+
		"What would you like to modify? (date/time/people/dietary)", b.Date, b.Time, b.PartySize, b.Dietary)
}

func askNewValue(field slots.Slot) string {
	return fmt.Sprintf("Please enter the new %s for your booking:", field)
}

func invalidNewValue(field slots.Slot) string {
	return fmt.Sprintf("Please provide a valid %s value.", field)
}

func updated(b *model.Booking) string {
	return fmt.Sprintf("Booking updated successfully! New details:\nDate: %s\nTime: %s\nPeople: %d\ndietary: %s",
		b.Date, b.Time, b.PartySize, b.Dietary)
}

func saved(s *slots.Set) string {
	return fmt.Sprintf("Perfect! Your booking has been saved. Details:\nName: %s\nDate: %s\nTime: %s\nNumber of people: %d\ndietary: %s",
		s.CustomerName, slots.FormatDate(*s.Date), slots.FormatTime(*s.Time), s.PartySize, s.Dietary)
}

// acknowledge confirms the slot that was just filled.
func acknowledge(s *slots.Set, slot slots.Slot) string {
	switch slot {
	case slots.SlotDate:
		return fmt.Sprintf("Great! I will check availability on %s.", slots.FormatDate(*s.Date))
	case slots.SlotTime:
		return fmt.Sprintf("Great! I will check availability at %s.", slots.FormatTime(*s.Time))
	case slots.SlotPartySize:
		return fmt.Sprintf("Great! I will check availability for %d people.", s.PartySize)
	case slots.SlotDietary:
		return "Great, I will save that."
	}
	return ""
}
