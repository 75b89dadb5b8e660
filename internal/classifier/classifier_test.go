package classifier

import (
	"testing"

	"tablebot/internal/intent"
	"tablebot/internal/nlp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildModels(t *testing.T) *Models {
	t.Helper()
	c, err := LoadCorpus()
	require.NoError(t, err)
	return Build(c, nlp.NewPreprocessor())
}

func TestLoadCorpus(t *testing.T) {
	c, err := LoadCorpus()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Booking.Phrases)
	assert.NotEmpty(t, c.Booking.Responses)
	assert.NotEmpty(t, c.QuestionAnswering)
	assert.NotEmpty(t, c.SmallTalk)
	assert.Contains(t, c.Discovery.Ask, "%s")
	assert.Contains(t, c.Discovery.Current, string(intent.Booking))
	assert.Contains(t, c.Unknown, "Type 'Help'")
}

func TestParseCorpus_Invalid(t *testing.T) {
	_, err := ParseCorpus([]byte("booking: ["))
	assert.ErrorContains(t, err, "failed to parse corpus")

	_, err = ParseCorpus([]byte("unknown: hi\n"))
	assert.ErrorContains(t, err, "booking.phrases is empty")

	_, err = ParseCorpus([]byte("identity:\n  phrases:\n    - phrase: my name is\n      kind: rename\n"))
	assert.ErrorContains(t, err, `unknown kind "rename"`)
}

func TestClassifier_Classify(t *testing.T) {
	m := buildModels(t)

	tests := []struct {
		in   string
		want intent.Label
	}{
		{"Book a table", intent.Booking},
		{"I want to cancel my booking", intent.Booking},
		{"my name is Alice", intent.NameManagement},
		{"What is my name?", intent.NameManagement},
		{"How are you?", intent.SmallTalk},
		{"What can you do", intent.Discovery},
		{"help", intent.Discovery},
		{"What is the capital of France?", intent.QuestionAnswering},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			label, score := m.Intents.Classify(tt.in)
			assert.Equal(t, tt.want, label)
			assert.GreaterOrEqual(t, score, 0.6)
		})
	}
}

func TestClassifier_UnknownTerms(t *testing.T) {
	m := buildModels(t)

	label, score := m.Intents.Classify("xyzzy plugh")
	assert.Equal(t, intent.Unknown, label)
	assert.Zero(t, score)
}

func TestIdentityMatcher_Match(t *testing.T) {
	m := buildModels(t)

	tests := []struct {
		in   string
		want IdentityKind
	}{
		{"my name is Alice", IdentitySet},
		{"call me Sam", IdentitySet},
		{"what is my name", IdentityGet},
		{"do you know my name?", IdentityGet},
		{"change my name to Bob", IdentityChange},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			kind, score := m.Identity.Match(tt.in)
			assert.Equal(t, tt.want, kind)
			assert.GreaterOrEqual(t, score, 0.5)
		})
	}
}

func TestRetriever_BestMatch(t *testing.T) {
	m := buildModels(t)

	answer, score := m.QA.BestMatch("How does a dredge work?")
	assert.Contains(t, answer, "sediment")
	assert.InDelta(t, 1.0, score, 1e-9)

	reply, score := m.SmallTalk.BestMatch("tell me a joke")
	assert.Contains(t, reply, "tomato")
	assert.GreaterOrEqual(t, score, 0.5)

	_, score = m.QA.BestMatch("zzz")
	assert.Zero(t, score)
}

func TestPhraseMatcher_Score(t *testing.T) {
	m := buildModels(t)

	assert.InDelta(t, 1.0, m.Discovery.Score("what can you do"), 1e-9)
	assert.Less(t, m.Discovery.Score("book a table"), 0.6)
}

func TestIndex_TiesGoToFirstDocument(t *testing.T) {
	ix := NewIndex([]string{"red table", "blue chair", "red table"})

	i, score := ix.Best("red table")
	assert.Equal(t, 0, i)
	assert.InDelta(t, 1.0, score, 1e-9)

	i, score = ix.Best("green")
	assert.Equal(t, -1, i)
	assert.Zero(t, score)
	assert.Equal(t, 3, ix.Len())
}

func TestIndex_PartialOverlapScoresBelowOne(t *testing.T) {
	ix := NewIndex([]string{"book table tonight", "cancel book"})

	i, score := ix.Best("book table")
	assert.Equal(t, 0, i)
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 1.0)
}

func TestFill(t *testing.T) {
	got := Fill("Booking for [name] on [date] at [time] for [people]", map[string]string{
		"name":   "Alice",
		"date":   "2026-10-20",
		"time":   "19:00",
		"people": "4",
	})
	assert.Equal(t, "Booking for Alice on 2026-10-20 at 19:00 for 4", got)
}
