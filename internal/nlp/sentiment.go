package nlp

import "strings"

type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

const sentimentThreshold = 0.05

// Emoji is the mood suffix appended to replies. Neutral has none.
func (s Sentiment) Emoji() string {
	switch s {
	case Positive:
		return "😊"
	case Negative:
		return "😟"
	}
	return ""
}

// Compound is the VADER compound polarity of text, in [-1, 1].
func (p *Preprocessor) Compound(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return p.analyzer.PolarityScores(text).Compound
}

func (p *Preprocessor) Sentiment(text string) Sentiment {
	score := p.Compound(text)
	switch {
	case score > sentimentThreshold:
		return Positive
	case score < -sentimentThreshold:
		return Negative
	}
	return Neutral
}
