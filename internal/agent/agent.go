// Package agent runs a customer turn through the ordered conversation steps:
// switch confirmation, resume offer, exit, routing, interruption and
// dispatch.
package agent

import (
	"context"
	"strings"

	"tablebot/internal/bookings/events"
	"tablebot/internal/intent"
	"tablebot/internal/nlp"
	"tablebot/internal/session"
	"tablebot/internal/transaction"
	"tablebot/pkg/logger"
)

const (
	msgGoodbye         = "Goodbye!"
	msgAnswerYesNo     = "Please answer 'yes' or 'no'."
	msgContinueBooking = "No problem, let's continue with your booking."
	msgPendingDropped  = "Okay, I've discarded your unfinished booking."
	msgSomethingWrong  = "Sorry, something went wrong. Please try again."
)

var exitWords = map[string]struct{}{"exit": {}, "quit": {}, "bye": {}}

type Router interface {
	Route(ctx context.Context, input string, sess *session.Context) intent.Label
}

type Dispatcher interface {
	Handle(ctx context.Context, label intent.Label, input string, sess *session.Context) string
}

// Prompter phrases the booking prompts the engine needs outside of a
// booking turn.
type Prompter interface {
	Prompt(ctx context.Context, tx *transaction.Transaction) string
	ResumePrompt(tx *transaction.Transaction) string
	SwitchPrompt(tx *transaction.Transaction) string
	ResumeOffer(pending *transaction.Transaction) string
}

type Agent struct {
	router   Router
	skills   Dispatcher
	prompter Prompter
	engine   *Engine
	log      *logger.Logger
}

func New(router Router, skills Dispatcher, prompter Prompter, log *logger.Logger) *Agent {
	if log == nil {
		log = logger.Discard()
	}
	a := &Agent{router: router, skills: skills, prompter: prompter, log: log}
	a.engine = NewEngine(
		NewStep("switch_confirmation", a.confirmSwitch),
		NewStep("resume_offer", a.answerResume),
		NewStep("exit", a.exit),
		NewStep("route", a.route),
		NewStep("interruption", a.checkInterruption),
		NewStep("dispatch", a.dispatch),
		NewStep("offer_pending", a.offerPending).AlwaysRun(),
	)
	return a
}

// Respond answers one input. The second result reports whether the customer
// asked to leave.
func (a *Agent) Respond(ctx context.Context, sess *session.Context, input string) (string, bool) {
	ctx = events.WithConversationID(ctx, sess.ID)
	turn := newTurn(ctx, strings.TrimSpace(input), sess)

	if err := a.engine.Run(turn); err != nil {
		a.log.Error("Turn failed", "error", err, "session_id", sess.ID)
		return msgSomethingWrong, false
	}
	a.log.Debug("Turn handled",
		"session_id", sess.ID,
		"intent", string(turn.Label),
		"state", sess.Transaction.State.Name(),
		"pending", sess.HasPending(),
	)
	return turn.Reply, turn.Exit
}

func (a *Agent) confirmSwitch(t *Turn) error {
	sess := t.Session
	req := sess.Switch
	if req == nil {
		return nil
	}

	switch nlp.ParseAnswer(t.Input) {
	case nlp.Yes:
		sess.Switch = nil
		sess.Interrupt()
		t.Label = req.Label
		sess.History.Push(req.Label)
		t.answer(a.skills.Handle(t.Ctx, req.Label, req.Input, sess))
	case nlp.No:
		sess.Switch = nil
		t.Label = intent.Booking
		sess.History.Push(intent.Booking)
		t.answer(msgContinueBooking + " " + a.prompter.Prompt(t.Ctx, sess.Transaction))
	default:
		t.answer(msgAnswerYesNo)
	}
	return nil
}

func (a *Agent) answerResume(t *Turn) error {
	sess := t.Session
	if !sess.ResumeOffered || !sess.HasPending() || !sess.Transaction.Idle() {
		return nil
	}

	switch nlp.ParseAnswer(t.Input) {
	case nlp.Yes:
		sess.Resume()
		t.Label = intent.Booking
		sess.History.Push(intent.Booking)
		t.answer(a.prompter.ResumePrompt(sess.Transaction))
	case nlp.No:
		sess.DiscardPending()
		t.answer(msgPendingDropped)
	default:
		// Unanswered, so it is offered again at the end of this turn.
		sess.ResumeOffered = false
	}
	return nil
}

func (a *Agent) exit(t *Turn) error {
	if _, ok := exitWords[strings.ToLower(t.Input)]; ok {
		t.Exit = true
		t.answer(msgGoodbye)
	}
	return nil
}

func (a *Agent) route(t *Turn) error {
	t.Label = a.router.Route(t.Ctx, t.Input, t.Session)
	return nil
}

func (a *Agent) checkInterruption(t *Turn) error {
	sess := t.Session
	tx := sess.Transaction
	if t.Label == intent.Booking || tx.Idle() {
		return nil
	}

	if tx.Active() && tx.Slots.Date != nil {
		sess.Switch = &session.SwitchRequest{Label: t.Label, Input: t.Input}
		t.answer(a.prompter.SwitchPrompt(tx))
		return nil
	}

	a.log.Debug("Dropping unfinished transaction", "session_id", sess.ID, "state", tx.State.Name())
	tx.Reset()
	return nil
}

func (a *Agent) dispatch(t *Turn) error {
	t.answer(a.skills.Handle(t.Ctx, t.Label, t.Input, t.Session))
	return nil
}

func (a *Agent) offerPending(t *Turn) error {
	sess := t.Session
	if t.Exit || sess.Switch != nil || sess.ResumeOffered || !sess.HasPending() || !sess.Transaction.Idle() {
		return nil
	}
	sess.ResumeOffered = true
	offer := a.prompter.ResumeOffer(sess.Pending)
	if t.Reply == "" {
		t.Reply = offer
	} else {
		t.Reply += "\n" + offer
	}
	return nil
}
