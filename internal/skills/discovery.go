package skills

import (
	"context"
	"fmt"
	"strings"

	"tablebot/internal/classifier"
	"tablebot/internal/intent"
	"tablebot/internal/session"
)

type PhraseScorer interface {
	Score(text string) float64
}

// DiscoverySkill explains what the agent can do, either in general or for
// the task the customer was just doing.
type DiscoverySkill struct {
	scorer    PhraseScorer
	texts     classifier.DiscoveryCorpus
	threshold float64
	fallbacks []string
	pick      Picker
}

func NewDiscoverySkill(scorer PhraseScorer, texts classifier.DiscoveryCorpus, threshold float64, fallbacks []string, pick Picker) *DiscoverySkill {
	return &DiscoverySkill{scorer: scorer, texts: texts, threshold: threshold, fallbacks: fallbacks, pick: pick}
}

func (s *DiscoverySkill) Label() intent.Label { return intent.Discovery }

func (s *DiscoverySkill) Handle(_ context.Context, input string, sess *session.Context) string {
	if q := sess.Discovery; q != nil {
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "general":
			sess.Discovery = nil
			return s.texts.General
		case "current":
			sess.Discovery = nil
			return s.current(q.Topic)
		}
		return s.texts.Reprompt
	}

	if s.scorer.Score(input) < s.threshold {
		return choose(s.pick, s.fallbacks)
	}

	// History already holds this turn, so the task in progress is the one
	// before it.
	topic, ok := sess.History.Previous()
	if !ok || topic == intent.Unknown || topic == intent.Discovery {
		return s.texts.General
	}
	sess.Discovery = &session.DiscoveryQuestion{Topic: topic}
	return fmt.Sprintf(s.texts.Ask, topic.Describe())
}

func (s *DiscoverySkill) current(topic intent.Label) string {
	if text, ok := s.texts.Current[string(topic)]; ok {
		return text
	}
	return s.texts.General
}
