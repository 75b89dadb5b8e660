package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tablebot/internal/agent"
	"tablebot/internal/bookings"
	"tablebot/internal/classifier"
	"tablebot/internal/nlp"
	"tablebot/internal/router"
	"tablebot/internal/session"
	"tablebot/internal/skills"
	"tablebot/internal/slots"
	"tablebot/internal/transaction"
	"tablebot/pkg/config"
)

const ServiceName = "agent"

func main() {
	cfg := config.Load(ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bookingService, shutdown := bookings.NewService(cfg, ServiceName)
	defer shutdown()

	corpus, err := classifier.LoadCorpus()
	if err != nil {
		cfg.Log.Fatal("Failed to load corpus", "error", err)
	}
	pre := nlp.NewPreprocessor()
	models := classifier.Build(corpus, pre)

	rules, err := slots.NewRules(cfg.MaxPartySize, cfg.OpeningTime, cfg.ClosingTime, cfg.BookingWindowDays)
	if err != nil {
		cfg.Log.Fatal("Invalid booking rules", "error", err)
	}

	sess := session.New(cfg.AgentName)
	machine := transaction.NewMachine(transaction.Deps{
		Store:              bookingService,
		Parser:             slots.NewParser(rules, time.Now),
		Identity:           sess.Identity,
		Names:              pre,
		Retriever:          models.Booking,
		RetrievalThreshold: cfg.RetrievalThreshold,
		Log:                cfg.Log,
	})
	registry := skills.NewRegistry(
		skills.NewUnknownSkill(corpus.Unknown),
		skills.NewBookingSkill(machine, pre),
		skills.NewIdentitySkill(models.Identity, pre, corpus.Identity, cfg.IdentityThreshold, nil),
		skills.NewQuestionSkill(models.QA, cfg.QAThreshold, corpus.Fallbacks, nil),
		skills.NewSmallTalkSkill(models.SmallTalk, cfg.SmallTalkThreshold, corpus.Fallbacks, pre, nil),
		skills.NewDiscoverySkill(models.Discovery, corpus.Discovery, cfg.DiscoveryThreshold, corpus.Fallbacks, nil),
	)
	bot := agent.New(router.New(models.Intents, cfg.IntentThreshold, cfg.Log), registry, machine, cfg.Log)

	cfg.Log.Info("Agent ready", "session_id", sess.ID)
	converse(ctx, bot, sess)
}

func converse(ctx context.Context, bot *agent.Agent, sess *session.Context) {
	in := bufio.NewScanner(os.Stdin)
	say := func(text string) {
		fmt.Printf("%s: %s\n", sess.AgentName, text)
	}

	say(agent.Greeting(time.Now(), sess.AgentName))
	say(fmt.Sprintf("%s sounds so boring, give me a more interesting name!", sess.AgentName))
	fmt.Print("Type in my new name: ")
	if in.Scan() {
		if name := strings.TrimSpace(in.Text()); name != "" {
			sess.AgentName = name
		}
	}
	say("If you are stuck on what to do, type 'help' to know more!")

	for {
		fmt.Print("You: ")
		if !in.Scan() || ctx.Err() != nil {
			fmt.Println()
			return
		}
		input := strings.TrimSpace(in.Text())
		if input == "" {
			continue
		}

		reply, exit := bot.Respond(ctx, sess, input)
		say(reply)
		if exit {
			return
		}
	}
}
