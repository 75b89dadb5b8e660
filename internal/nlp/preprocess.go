// Package nlp turns raw utterances into the normalized form the classifier
// and retrievers compare, and scores their sentiment.
package nlp

import (
	"strings"
	"unicode"

	"tablebot/pkg/sanitizer"

	"github.com/jonreiter/govader"
	"github.com/kljensen/snowball/english"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Preprocessor is read-only after construction and safe for concurrent use.
type Preprocessor struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Tokenize lower-cases text, folds accented letters to their base form and
// splits on anything that is not a letter, digit or apostrophe.
func (p *Preprocessor) Tokenize(text string) []string {
	folded, _, err := transform.String(foldDiacritics(), text)
	if err != nil {
		folded = text
	}
	fields := strings.FieldsFunc(strings.ToLower(folded), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	tokens := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "'"); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Normalize drops stopwords and lemmatizes what is left. An utterance made up
// only of stopwords keeps all of its tokens so that it can still be matched.
func (p *Preprocessor) Normalize(text string) string {
	tokens := p.Tokenize(text)

	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !IsStopword(t) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		kept = tokens
	}

	for i, t := range kept {
		kept[i] = Lemmatize(t)
	}
	return strings.Join(kept, " ")
}

// Lemmas lemmatizes every token and keeps stopwords, so that phrases which
// differ only in function words such as "what is my name" and "my name is"
// stay apart.
func (p *Preprocessor) Lemmas(text string) string {
	tokens := p.Tokenize(text)
	for i, t := range tokens {
		tokens[i] = Lemmatize(t)
	}
	return strings.Join(tokens, " ")
}

// ExtractName returns the last alphabetic word of text that is not a
// stopword, in the canonical customer name form.
func (p *Preprocessor) ExtractName(text string) (string, bool) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	for i := len(words) - 1; i >= 0; i-- {
		w := words[i]
		if strings.ContainsRune(w, '\'') || IsStopword(strings.ToLower(w)) {
			continue
		}
		return sanitizer.NormalizeCustomerName(w), true
	}
	return "", false
}

// Lemmatize reduces word to its Porter2 stem so that inflections of one word
// compare equal. Stopwords are returned unchanged.
func Lemmatize(word string) string {
	return english.Stem(word, false)
}

func foldDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
