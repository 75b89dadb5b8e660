package skills

import (
	"context"
	"strings"
	"unicode"

	"tablebot/internal/classifier"
	"tablebot/internal/intent"
	"tablebot/internal/session"
)

type IdentityMatcher interface {
	Match(text string) (classifier.IdentityKind, float64)
}

type NameExtractor interface {
	ExtractName(text string) (string, bool)
}

// IdentitySkill remembers, recalls and changes the customer's name.
type IdentitySkill struct {
	matcher   IdentityMatcher
	names     NameExtractor
	texts     classifier.IdentityCorpus
	threshold float64
	pick      Picker
}

func NewIdentitySkill(matcher IdentityMatcher, names NameExtractor, texts classifier.IdentityCorpus, threshold float64, pick Picker) *IdentitySkill {
	return &IdentitySkill{matcher: matcher, names: names, texts: texts, threshold: threshold, pick: pick}
}

func (s *IdentitySkill) Label() intent.Label { return intent.NameManagement }

func (s *IdentitySkill) Handle(_ context.Context, input string, sess *session.Context) string {
	input = strings.TrimSpace(input)

	// A lone word is the answer to "what is your name?".
	if isAlpha(input) {
		if name, ok := s.names.ExtractName(input); ok {
			return s.set(sess, name)
		}
	}

	kind, score := s.matcher.Match(input)
	if score < s.threshold {
		return choose(s.pick, s.texts.Errors)
	}

	switch kind {
	case classifier.IdentityGet:
		name := sess.Identity.CurrentName()
		if name == "" {
			return s.texts.UnknownName
		}
		return choose(s.pick, s.texts.Responses.Get) + " " + name
	case classifier.IdentityChange:
		name, ok := s.names.ExtractName(input)
		if !ok {
			return choose(s.pick, s.texts.Errors)
		}
		previous := sess.Identity.CurrentName()
		if previous == "" || previous == name {
			return s.set(sess, name)
		}
		sess.Identity.SetCurrentName(name)
		return classifier.Fill(choose(s.pick, s.texts.Responses.Change), map[string]string{"name": name, "pname": previous})
	default:
		name, ok := s.names.ExtractName(input)
		if !ok {
			return choose(s.pick, s.texts.Errors)
		}
		return s.set(sess, name)
	}
}

func (s *IdentitySkill) set(sess *session.Context, name string) string {
	sess.Identity.SetCurrentName(name)
	return classifier.Fill(choose(s.pick, s.texts.Responses.Set), map[string]string{"name": name})
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
