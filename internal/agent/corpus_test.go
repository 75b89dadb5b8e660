package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"tablebot/internal/bookings/repository"
	"tablebot/internal/bookings/service"
	"tablebot/internal/bookings/validator"
	"tablebot/internal/classifier"
	"tablebot/internal/intent"
	"tablebot/internal/nlp"
	"tablebot/internal/router"
	"tablebot/internal/session"
	"tablebot/internal/skills"
	"tablebot/internal/slots"
	"tablebot/internal/transaction"
	"tablebot/pkg/config"
	"tablebot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCorpusHarness wires the agent the way cmd/agent does, on the embedded
// corpus and an in-memory store.
func newCorpusHarness(t *testing.T) (*harness, service.BookingService) {
	t.Helper()

	cfg := &config.Config{Log: logger.Discard(), MaxPartySize: 20}
	svc := service.NewBookingService(
		repository.NewMemoryBookingRepository(),
		validator.NewBookingValidator(cfg.MaxPartySize, cfg.Log),
		nil,
		cfg,
	)
	rules, err := slots.NewRules(20, "11:00", "23:00", 90)
	require.NoError(t, err)
	now := time.Date(2025, time.December, 1, 10, 0, 0, 0, time.UTC)

	corpus, err := classifier.LoadCorpus()
	require.NoError(t, err)
	pre := nlp.NewPreprocessor()
	models := classifier.Build(corpus, pre)

	sess := session.New("Tabby")
	first := func(int) int { return 0 }
	machine := transaction.NewMachine(transaction.Deps{
		Store:              svc,
		Parser:             slots.NewParser(rules, func() time.Time { return now }),
		Identity:           sess.Identity,
		Names:              pre,
		Retriever:          models.Booking,
		RetrievalThreshold: 0.7,
	})
	registry := skills.NewRegistry(
		skills.NewUnknownSkill(corpus.Unknown),
		skills.NewBookingSkill(machine, pre),
		skills.NewIdentitySkill(models.Identity, pre, corpus.Identity, 0.5, first),
		skills.NewQuestionSkill(models.QA, 0.4, corpus.Fallbacks, first),
		skills.NewSmallTalkSkill(models.SmallTalk, 0.5, corpus.Fallbacks, pre, first),
		skills.NewDiscoverySkill(models.Discovery, corpus.Discovery, 0.6, corpus.Fallbacks, first),
	)

	return &harness{
		agent: New(router.New(models.Intents, 0.6, nil), registry, machine, nil),
		sess:  sess,
	}, svc
}

func TestAgent_CorpusSwitchResumeAndCancel(t *testing.T) {
	h, svc := newCorpusHarness(t)
	ctx := context.Background()

	h.reply("my name is alice")
	assert.Equal(t, "Alice", h.sess.Identity.CurrentName())

	assert.Contains(t, h.reply("I want to book a table"), "Thank you Alice!")
	last, _ := h.sess.History.Last()
	assert.Equal(t, intent.Booking, last)

	h.reply("25/12/2025")
	require.NotNil(t, h.sess.Transaction.Slots.Date)

	assert.Contains(t, h.reply("what is the capital of france"), "Would you like to switch tasks? (yes/no)")
	require.NotNil(t, h.sess.Switch)
	assert.Equal(t, intent.QuestionAnswering, h.sess.Switch.Label)

	answered := h.reply("yes")
	assert.True(t, strings.HasPrefix(answered, "The capital of France is Paris."), answered)
	assert.Contains(t, answered, "You have an unfinished booking:")
	require.True(t, h.sess.HasPending())

	resumed := h.reply("yes")
	assert.True(t, strings.HasPrefix(resumed, "Resuming your previous booking. I still need:"), resumed)
	assert.True(t, h.sess.Transaction.Active())

	h.reply("19:30")
	h.reply("4 people")
	saved := h.reply("vegan")
	assert.True(t, strings.HasPrefix(saved, "Perfect! Your booking has been saved."), saved)

	bookings, err := svc.ListActiveByCustomer(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "2025-12-25", bookings[0].Date)
	assert.Equal(t, "19:30", bookings[0].Time)
	assert.Equal(t, 4, bookings[0].PartySize)

	assert.True(t, strings.HasPrefix(h.reply("cancel my booking"), "Are you sure you want to cancel this booking?"))
	assert.True(t, strings.HasPrefix(h.reply("yes"), "Your booking has been cancelled successfully."))

	stored, err := svc.Get(ctx, bookings[0].ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestAgent_CorpusRoutesEachSkill(t *testing.T) {
	tests := []struct {
		in   string
		want intent.Label
	}{
		{"book a table", intent.Booking},
		{"what is my name", intent.NameManagement},
		{"how are you", intent.SmallTalk},
		{"what can you do", intent.Discovery},
		{"what is the capital of france", intent.QuestionAnswering},
		{"xyzzy plugh", intent.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, _ := newCorpusHarness(t)
			h.reply(tt.in)
			last, ok := h.sess.History.Last()
			require.True(t, ok)
			assert.Equal(t, tt.want, last)
		})
	}
}
