package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	p := NewPreprocessor()

	assert.Equal(t, []string{"book", "a", "table", "for", "5", "people"}, p.Tokenize("Book a table, for 5 people!"))
	assert.Equal(t, []string{"cafe", "creme"}, p.Tokenize("Café Crème"))
	assert.Equal(t, []string{"i'm", "here"}, p.Tokenize("'I'm' here"))
	assert.Empty(t, p.Tokenize("  ?! "))
}

func TestNormalize(t *testing.T) {
	p := NewPreprocessor()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"drops stopwords and stems", "I would like to book tables", "would like book tabl"},
		{"verb endings", "Cancelling my bookings", "cancel book"},
		{"only stopwords keeps everything", "who are you", "who are you"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Normalize(tt.in))
		})
	}
}

func TestLemmatize(t *testing.T) {
	tests := map[string]string{
		"bookings":   "book",
		"booked":     "book",
		"cancelling": "cancel",
		"stories":    "stori",
		"classes":    "class",
		"need":       "need",
		"is":         "is",
		"bus":        "bus",
		"thing":      "thing",
	}
	for in, want := range tests {
		assert.Equal(t, want, Lemmatize(in), in)
	}
}

func TestLemmatize_InflectionsAgree(t *testing.T) {
	groups := [][]string{
		{"reserve", "reserved", "reserves", "reserving"},
		{"book", "booking", "bookings", "booked"},
		{"story", "stories"},
	}
	for _, words := range groups {
		want := Lemmatize(words[0])
		for _, w := range words[1:] {
			assert.Equal(t, want, Lemmatize(w), "%s vs %s", words[0], w)
		}
	}
	assert.Equal(t, "reserv", Lemmatize("reserved"))
}

func TestExtractName(t *testing.T) {
	p := NewPreprocessor()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"my name is alice", "Alice", true},
		{"Please call me BOB.", "Bob", true},
		{"change my name to josé", "José", true},
		{"I'm", "", false},
		{"it is", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := p.ExtractName(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSentiment(t *testing.T) {
	p := NewPreprocessor()

	tests := []struct {
		in   string
		want Sentiment
	}{
		{"this is great, thank you", Positive},
		{"I hate waiting", Negative},
		{"this is not good", Negative},
		{"I am so excited", Positive},
		{"I'm thrilled", Positive},
		{"that sucks", Negative},
		{"book a table", Neutral},
		{"", Neutral},
		{"   ", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Sentiment(tt.in))
		})
	}
}

func TestSentiment_Emoji(t *testing.T) {
	assert.Equal(t, "😊", Positive.Emoji())
	assert.Equal(t, "😟", Negative.Emoji())
	assert.Empty(t, Neutral.Emoji())
}

func TestParseAnswer(t *testing.T) {
	assert.Equal(t, Yes, ParseAnswer(" Yes "))
	assert.Equal(t, Yes, ParseAnswer("yep"))
	assert.Equal(t, No, ParseAnswer("NOPE"))
	assert.Equal(t, NoAnswer, ParseAnswer("maybe"))
	assert.True(t, IsAnswer("no"))
	assert.False(t, IsAnswer("yes please"))
}

func TestLemmas_KeepsStopwords(t *testing.T) {
	p := NewPreprocessor()

	assert.Equal(t, "what is my name", p.Lemmas("What is my name?"))
	assert.Equal(t, "make a book", p.Lemmas("Make a booking"))
}
