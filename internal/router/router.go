// Package router decides which skill answers a turn.
package router

import (
	"context"
	"strings"
	"unicode"

	"tablebot/internal/intent"
	"tablebot/internal/nlp"
	"tablebot/internal/session"
	"tablebot/internal/slots"
	"tablebot/pkg/logger"
	"tablebot/pkg/model"
)

type Classifier interface {
	Classify(text string) (intent.Label, float64)
}

type Router struct {
	classifier Classifier
	threshold  float64
	log        *logger.Logger
}

func New(classifier Classifier, threshold float64, log *logger.Logger) *Router {
	if log == nil {
		log = logger.Discard()
	}
	return &Router{classifier: classifier, threshold: threshold, log: log}
}

// Route resolves the label for input and records it in the session history.
// Conversation context is consulted before the classifier, first match wins.
func (r *Router) Route(ctx context.Context, input string, sess *session.Context) intent.Label {
	label, rule := r.resolve(input, sess)
	sess.History.Push(label)
	r.log.Debug("Intent resolved", "label", string(label), "rule", rule, "session_id", sess.ID)
	return label
}

func (r *Router) resolve(input string, sess *session.Context) (intent.Label, string) {
	input = strings.TrimSpace(input)
	tx := sess.Transaction
	last, hasLast := sess.History.Last()

	if sess.Discovery != nil {
		if isDiscoveryChoice(input) {
			return intent.Discovery, "discovery_choice"
		}
		sess.Discovery = nil
	}

	if tx.MidFlow() {
		return intent.Booking, "mid_flow"
	}

	if nlp.IsAnswer(input) {
		if !tx.Idle() {
			return intent.Booking, "answer_in_flow"
		}
		if hasLast {
			return last, "answer_to_previous"
		}
	}

	if hasLast && last == intent.NameManagement && isSingleWord(input) {
		return intent.NameManagement, "bare_name"
	}

	if isNumber(input) && (tx.Active() || (hasLast && last == intent.Booking)) {
		return intent.Booking, "number"
	}
	if tx.Active() && slots.ContainsSlotPattern(input) {
		return intent.Booking, "slot_pattern"
	}

	if hasLast && last == intent.Booking {
		if d, ok := model.ParseDietary(input); ok {
			if tx.Active() {
				tx.Slots.Dietary = d
			}
			return intent.Booking, "dietary"
		}
	}

	label, score := r.classifier.Classify(input)
	if score < r.threshold {
		return intent.Unknown, "below_threshold"
	}
	return label, "classifier"
}

func isDiscoveryChoice(input string) bool {
	switch strings.ToLower(input) {
	case "general", "current":
		return true
	}
	return false
}

func isSingleWord(input string) bool {
	if input == "" {
		return false
	}
	for _, r := range input {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isNumber(input string) bool {
	if input == "" {
		return false
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
