package skills

import (
	"context"

	"tablebot/internal/intent"
	"tablebot/internal/session"
	"tablebot/internal/transaction"
)

type BookingSkill struct {
	machine   *transaction.Machine
	sentiment SentimentAnalyzer
}

func NewBookingSkill(machine *transaction.Machine, sentiment SentimentAnalyzer) *BookingSkill {
	return &BookingSkill{machine: machine, sentiment: sentiment}
}

func (s *BookingSkill) Label() intent.Label { return intent.Booking }

func (s *BookingSkill) Handle(ctx context.Context, input string, sess *session.Context) string {
	reply := s.machine.Handle(ctx, sess.Transaction, input)
	return reply + s.sentiment.Sentiment(input).Emoji()
}
