package transaction

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tablebot/internal/nlp"
	"tablebot/internal/slots"
	"tablebot/pkg/logger"
	"tablebot/pkg/model"
)

// BookingStore is the part of the booking service the conversation uses.
type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) (int64, error)
	Get(ctx context.Context, id int64) (*model.Booking, error)
	ListActiveByCustomer(ctx context.Context, customerName string) ([]*model.Booking, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
	UpdateField(ctx context.Context, id int64, field model.BookingField, value any) (bool, error)
	DietaryPreference(ctx context.Context, customerName string) (model.Dietary, error)
}

// IdentityService holds the name of the customer being served. An empty name
// means it is not known yet.
type IdentityService interface {
	CurrentName() string
	SetCurrentName(name string)
}

type NameExtractor interface {
	ExtractName(text string) (string, bool)
}

type SlotParser interface {
	Parse(input string, set *slots.Set) slots.Outcome
	ParseField(input string, slot slots.Slot, set *slots.Set) slots.Outcome
}

// Retriever answers questions asked while slots are being collected.
type Retriever interface {
	BestMatch(text string) (string, float64)
}

type Deps struct {
	Store              BookingStore
	Parser             SlotParser
	Identity           IdentityService
	Names              NameExtractor
	Retriever          Retriever
	RetrievalThreshold float64
	Log                *logger.Logger
}

// Machine moves a Transaction through its flow one input at a time. Every
// failure is logged and turned into a reply, nothing is returned as an error.
type Machine struct {
	store     BookingStore
	parser    SlotParser
	identity  IdentityService
	names     NameExtractor
	retriever Retriever
	threshold float64
	log       *logger.Logger
}

func NewMachine(d Deps) *Machine {
	if d.Log == nil {
		d.Log = logger.Discard()
	}
	return &Machine{
		store:     d.Store,
		parser:    d.Parser,
		identity:  d.Identity,
		names:     d.Names,
		retriever: d.Retriever,
		threshold: d.RetrievalThreshold,
		log:       d.Log,
	}
}

// Handle applies one customer input to tx and returns the reply.
func (m *Machine) Handle(ctx context.Context, tx *Transaction, input string) string {
	input = strings.TrimSpace(input)

	switch st := tx.State.(type) {
	case AwaitingName:
		return m.handleName(ctx, tx, st, input)
	case ConfirmingNewBooking:
		return m.handleNewBookingAnswer(ctx, tx, input)
	case Collecting:
		return m.collect(ctx, tx, input)
	case SelectingForCancellation:
		return m.selectForCancellation(tx, st, input)
	case ConfirmingCancellation:
		return m.confirmCancellation(ctx, tx, st, input)
	case SelectingForModification:
		return m.selectForModification(tx, st, input)
	case AwaitingModificationField:
		return m.chooseField(tx, st, input)
	case AwaitingNewValue:
		return m.applyNewValue(ctx, tx, st, input)
	default:
		return m.start(ctx, tx, input)
	}
}

// Prompt asks for the next missing slot of an active transaction.
func (m *Machine) Prompt(ctx context.Context, tx *Transaction) string {
	next, ok := tx.Slots.Next()
	if !ok {
		return msgResumeComplete
	}
	switch next {
	case slots.SlotName:
		return "What name should I put the booking under?"
	case slots.SlotDate:
		return "What date (DD/MM/YYYY) would you like the booking on?"
	case slots.SlotTime:
		return "What time would you like to make the booking for?"
	case slots.SlotPartySize:
		return "How many people should I make the booking for?"
	}

	hint := ""
	if pref, err := m.store.DietaryPreference(ctx, tx.Slots.CustomerName); err != nil {
		m.log.Warn("Failed to look up dietary preference", "customer_name", tx.Slots.CustomerName, "error", err)
	} else if pref != "" {
		hint = fmt.Sprintf(" I notice you usually prefer %s.", pref)
	}
	return msgDietaryOptions + hint
}

// ResumePrompt is the reply after a pending transaction has been restored.
func (m *Machine) ResumePrompt(tx *Transaction) string {
	next, ok := tx.Slots.Next()
	if !ok {
		return msgResumeComplete
	}
	return fmt.Sprintf("Resuming your previous booking. I still need:\n%sFirst, can you provide %s?",
		tx.Slots.MissingSummary(), strings.ToLower(tx.Slots.Describe(next)))
}

// SwitchPrompt asks whether to put the active transaction aside.
func (m *Machine) SwitchPrompt(tx *Transaction) string {
	missing := tx.Slots.Missing()
	parts := make([]string, len(missing))
	for i, s := range missing {
		parts[i] = strings.ToLower(tx.Slots.Describe(s))
	}
	return fmt.Sprintf("You haven't finished your booking yet - I still need %s. Would you like to switch tasks? (yes/no)",
		strings.Join(parts, ", "))
}

// ResumeOffer asks whether to continue a transaction set aside earlier.
func (m *Machine) ResumeOffer(pending *Transaction) string {
	return fmt.Sprintf("You have an unfinished booking:\n%s\nWould you like to continue it? (yes/no)", pending.Slots.Summary())
}

type command int

const (
	commandBook command = iota
	commandCancel
	commandModify
	commandList
)

func parseCommand(input string) command {
	lower := strings.ToLower(input)
	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny("cancel", "delete", "remove"):
		return commandCancel
	case containsAny("change", "modify", "update"):
		return commandModify
	case containsAny("show", "list", "view", "see") && strings.Contains(lower, "booking"):
		return commandList
	}
	return commandBook
}

func (m *Machine) start(ctx context.Context, tx *Transaction, input string) string {
	tx.Reset()

	if nlp.ParseAnswer(input) == nlp.No {
		return msgNothingElse
	}

	purpose := PurposeBook
	switch parseCommand(input) {
	case commandCancel:
		purpose = PurposeCancel
	case commandModify:
		purpose = PurposeModify
	case commandList:
		purpose = PurposeList
	}

	name := m.identity.CurrentName()
	if name == "" {
		tx.State = AwaitingName{Purpose: purpose}
		if purpose == PurposeBook {
			return msgAskNameToBook
		}
		return msgAskNameToFind
	}
	return m.proceed(ctx, tx, purpose, name, input)
}

func (m *Machine) proceed(ctx context.Context, tx *Transaction, purpose Purpose, name, input string) string {
	switch purpose {
	case PurposeCancel:
		return m.beginCancellation(ctx, tx, name)
	case PurposeModify:
		return m.beginModification(ctx, tx, name)
	case PurposeList:
		return m.listBookings(ctx, tx, name)
	}
	return m.beginBooking(ctx, tx, name, input)
}

func (m *Machine) handleName(ctx context.Context, tx *Transaction, st AwaitingName, input string) string {
	name, ok := m.names.ExtractName(input)
	if !ok {
		return msgNameNotFound
	}
	m.identity.SetCurrentName(name)
	tx.State = Idle{}
	return m.proceed(ctx, tx, st.Purpose, name, "")
}

func (m *Machine) beginBooking(ctx context.Context, tx *Transaction, name, input string) string {
	existing, err := m.store.ListActiveByCustomer(ctx, name)
	if err != nil {
		m.log.Error("Failed to list bookings before starting a new one", "customer_name", name, "error", err)
		return msgLookupFailed
	}
	if len(existing) > 0 {
		tx.State = ConfirmingNewBooking{Count: len(existing)}
		return existingBookings(existing)
	}

	tx.Slots = slots.Set{CustomerName: name}
	tx.State = Collecting{}

	if input != "" {
		if out := m.parser.Parse(input, &tx.Slots); out.Kind == slots.Filled {
			m.log.Debug("Slot filled from opening request", "slot", out.Slot.String())
			return fmt.Sprintf("Thank you %s! %s %s", name, acknowledge(&tx.Slots, out.Slot), m.Prompt(ctx, tx))
		}
	}
	return welcome(name)
}

func (m *Machine) handleNewBookingAnswer(ctx context.Context, tx *Transaction, input string) string {
	switch nlp.ParseAnswer(input) {
	case nlp.Yes:
		tx.Slots = slots.Set{CustomerName: m.identity.CurrentName()}
		tx.State = Collecting{}
		return msgAskDate
	case nlp.No:
		tx.Reset()
		return msgNothingElse
	}
	return msgAnswerYesNo
}

func (m *Machine) collect(ctx context.Context, tx *Transaction, input string) string {
	// A complete set here means the last save failed, so save again.
	if tx.Slots.Complete() {
		return m.persist(ctx, tx)
	}

	switch nlp.ParseAnswer(input) {
	case nlp.No:
		tx.Reset()
		return msgBookingStopped
	case nlp.Yes:
		return m.Prompt(ctx, tx)
	}

	out := m.parser.Parse(input, &tx.Slots)
	switch out.Kind {
	case slots.Rejected:
		return out.Reason
	case slots.NoMatch:
		return m.fallback(ctx, tx, input)
	}

	if tx.Slots.Complete() {
		return m.persist(ctx, tx)
	}
	return acknowledge(&tx.Slots, out.Slot) + " " + m.Prompt(ctx, tx)
}

// fallback answers input that holds no slot. Only a confident canned answer
// is used, anything weaker repeats the current question.
func (m *Machine) fallback(ctx context.Context, tx *Transaction, input string) string {
	if m.retriever != nil {
		if reply, score := m.retriever.BestMatch(input); reply != "" && score >= m.threshold {
			return fillTokens(reply, &tx.Slots)
		}
	}
	return m.Prompt(ctx, tx)
}

func fillTokens(template string, s *slots.Set) string {
	show := func(slot slots.Slot) string {
		if v, ok := s.Value(slot); ok {
			return fmt.Sprint(v)
		}
		return "not chosen yet"
	}
	return strings.NewReplacer(
		"[name]", show(slots.SlotName),
		"[date]", show(slots.SlotDate),
		"[time]", show(slots.SlotTime),
		"[people]", show(slots.SlotPartySize),
	).Replace(template)
}

func (m *Machine) persist(ctx context.Context, tx *Transaction) string {
	booking, err := tx.Slots.Booking()
	if err != nil {
		m.log.Error("Refusing to save incomplete booking", "error", err)
		return m.Prompt(ctx, tx)
	}

	id, err := m.store.Create(ctx, booking)
	if err != nil {
		m.log.Error("Failed to save booking", "customer_name", booking.CustomerName, "error", err)
		return msgSaveFailed
	}

	tx.State = Completed{BookingID: id}
	return saved(&tx.Slots)
}

func (m *Machine) listBookings(ctx context.Context, tx *Transaction, name string) string {
	bookings, err := m.store.ListActiveByCustomer(ctx, name)
	if err != nil {
		m.log.Error("Failed to list bookings", "customer_name", name, "error", err)
		return msgLookupFailed
	}
	tx.State = Idle{}
	if len(bookings) == 0 {
		return msgNoBookings
	}
	return bookingList(bookings)
}

func (m *Machine) beginCancellation(ctx context.Context, tx *Transaction, name string) string {
	bookings, err := m.store.ListActiveByCustomer(ctx, name)
	if err != nil {
		m.log.Error("Failed to list bookings for cancellation", "customer_name", name, "error", err)
		return msgLookupFailed
	}

	switch len(bookings) {
	case 0:
		return msgNoneToCancel
	case 1:
		tx.State = ConfirmingCancellation{Booking: bookings[0]}
		return confirmCancellation(bookings[0])
	}
	tx.State = SelectingForCancellation{Bookings: bookings}
	return bookingList(bookings) + "\n" + msgPickToCancel
}

func (m *Machine) selectForCancellation(tx *Transaction, st SelectingForCancellation, input string) string {
	b, reply := pick(st.Bookings, input)
	if b == nil {
		return reply
	}
	tx.State = ConfirmingCancellation{Booking: b}
	return confirmCancellation(b)
}

func (m *Machine) confirmCancellation(ctx context.Context, tx *Transaction, st ConfirmingCancellation, input string) string {
	switch nlp.ParseAnswer(input) {
	case nlp.No:
		tx.Reset()
		return msgCancelAbandoned
	case nlp.NoAnswer:
		return msgAnswerYesNo
	}

	ok, err := m.store.SoftDelete(ctx, st.Booking.ID)
	if err != nil {
		m.log.Error("Failed to cancel booking", "id", st.Booking.ID, "error", err)
		return msgCancelFailed
	}
	tx.Reset()
	if !ok {
		m.log.Warn("Booking was already inactive", "id", st.Booking.ID)
		return msgCancelFailed
	}
	return msgCancelled
}

func (m *Machine) beginModification(ctx context.Context, tx *Transaction, name string) string {
	bookings, err := m.store.ListActiveByCustomer(ctx, name)
	if err != nil {
		m.log.Error("Failed to list bookings for modification", "customer_name", name, "error", err)
		return msgLookupFailed
	}

	switch len(bookings) {
	case 0:
		return msgNoneToModify
	case 1:
		tx.State = AwaitingModificationField{Booking: bookings[0]}
		return modificationDetails(bookings[0])
	}
	tx.State = SelectingForModification{Bookings: bookings}
	return bookingList(bookings) + "\n" + msgPickToModify
}

func (m *Machine) selectForModification(tx *Transaction, st SelectingForModification, input string) string {
	b, reply := pick(st.Bookings, input)
	if b == nil {
		return reply
	}
	tx.State = AwaitingModificationField{Booking: b}
	return modificationDetails(b)
}

func (m *Machine) chooseField(tx *Transaction, st AwaitingModificationField, input string) string {
	field, ok := slots.ParseSlotName(input)
	if !ok {
		return msgPickField
	}
	tx.State = AwaitingNewValue{Booking: st.Booking, Field: field}
	return askNewValue(field)
}

func (m *Machine) applyNewValue(ctx context.Context, tx *Transaction, st AwaitingNewValue, input string) string {
	var scratch slots.Set
	out := m.parser.ParseField(input, st.Field, &scratch)
	switch out.Kind {
	case slots.Rejected:
		return out.Reason
	case slots.NoMatch:
		return invalidNewValue(st.Field)
	}

	value, _ := scratch.Value(st.Field)
	field, _ := st.Field.Field()

	ok, err := m.store.UpdateField(ctx, st.Booking.ID, field, value)
	if err != nil {
		m.log.Error("Failed to update booking", "id", st.Booking.ID, "field", field, "error", err)
		return msgUpdateFailed
	}
	tx.Reset()
	if !ok {
		m.log.Warn("Refusing to modify inactive booking", "id", st.Booking.ID)
		return msgNoLongerActive
	}

	fresh, err := m.store.Get(ctx, st.Booking.ID)
	if err != nil {
		m.log.Warn("Failed to reload updated booking", "id", st.Booking.ID, "error", err)
		fresh = st.Booking.Clone()
		if err := field.Apply(fresh, value); err != nil {
			m.log.Error("Failed to apply update locally", "id", st.Booking.ID, "error", err)
		}
	}
	return updated(fresh)
}

// pick resolves a 1-based selection. A nil booking comes with the reprompt.
func pick(bookings []*model.Booking, input string) (*model.Booking, string) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return nil, msgNotANumber
	}
	if n < 1 || n > len(bookings) {
		return nil, invalidSelection(len(bookings))
	}
	return bookings[n-1], ""
}
