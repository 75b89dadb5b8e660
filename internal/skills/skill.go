// Package skills holds the handlers a routed turn is dispatched to.
package skills

import (
	"context"
	"math/rand"

	"tablebot/internal/intent"
	"tablebot/internal/nlp"
	"tablebot/internal/session"
)

// Skill answers one turn for the label it serves.
type Skill interface {
	Label() intent.Label
	Handle(ctx context.Context, input string, sess *session.Context) string
}

type SentimentAnalyzer interface {
	Sentiment(text string) nlp.Sentiment
}

type Retriever interface {
	BestMatch(text string) (string, float64)
}

// Picker chooses one of n canned replies.
type Picker func(n int) int

func randomPick(n int) int {
	return rand.Intn(n)
}

func choose(pick Picker, options []string) string {
	if len(options) == 0 {
		return ""
	}
	if pick == nil {
		pick = randomPick
	}
	return options[pick(len(options))]
}

// Registry dispatches a label to its skill. Labels without a skill go to the
// fallback.
type Registry struct {
	skills   map[intent.Label]Skill
	fallback Skill
}

func NewRegistry(fallback Skill, skills ...Skill) *Registry {
	m := make(map[intent.Label]Skill, len(skills))
	for _, s := range skills {
		m[s.Label()] = s
	}
	return &Registry{skills: m, fallback: fallback}
}

func (r *Registry) Handle(ctx context.Context, label intent.Label, input string, sess *session.Context) string {
	if s, ok := r.skills[label]; ok {
		return s.Handle(ctx, input, sess)
	}
	return r.fallback.Handle(ctx, input, sess)
}
