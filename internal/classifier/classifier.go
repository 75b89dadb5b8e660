// Package classifier resolves utterances to intents and canned responses by
// nearest-neighbour search over an embedded, labeled corpus.
package classifier

import (
	"strings"

	"tablebot/internal/intent"
)

// Normalizer is the text preparation the models are trained and queried with.
type Normalizer interface {
	Normalize(text string) string
	Lemmas(text string) string
}

type phraseLabel struct {
	phrase string
	label  intent.Label
}

// Classifier picks the intent whose phrases are closest to the utterance.
// Phrases are compared with stopwords kept.
type Classifier struct {
	norm   Normalizer
	index  *Index
	labels []intent.Label
}

func NewClassifier(c *Corpus, norm Normalizer) *Classifier {
	var entries []phraseLabel
	for _, p := range c.Booking.Phrases {
		entries = append(entries, phraseLabel{p, intent.Booking})
	}
	for _, p := range c.Booking.Responses {
		entries = append(entries, phraseLabel{p.Prompt, intent.Booking})
	}
	for _, p := range c.Identity.Phrases {
		entries = append(entries, phraseLabel{p.Phrase, intent.NameManagement})
	}
	for _, p := range c.QuestionAnswering {
		entries = append(entries, phraseLabel{p.Prompt, intent.QuestionAnswering})
	}
	for _, p := range c.SmallTalk {
		entries = append(entries, phraseLabel{p.Prompt, intent.SmallTalk})
	}
	for _, p := range c.Discovery.Phrases {
		entries = append(entries, phraseLabel{p, intent.Discovery})
	}

	docs := make([]string, len(entries))
	labels := make([]intent.Label, len(entries))
	for i, e := range entries {
		docs[i] = norm.Lemmas(e.phrase)
		labels[i] = e.label
	}
	return &Classifier{norm: norm, index: NewIndex(docs), labels: labels}
}

// Classify returns the best label and its score. The caller applies the
// threshold below which the utterance counts as unknown.
func (c *Classifier) Classify(text string) (intent.Label, float64) {
	i, score := c.index.Best(c.norm.Lemmas(text))
	if i < 0 {
		return intent.Unknown, 0
	}
	return c.labels[i], score
}

// Retriever returns the response paired with the closest prompt.
type Retriever struct {
	norm      Normalizer
	index     *Index
	responses []string
}

func NewRetriever(pairs []Pair, norm Normalizer) *Retriever {
	docs := make([]string, len(pairs))
	responses := make([]string, len(pairs))
	for i, p := range pairs {
		docs[i] = norm.Normalize(p.Prompt)
		responses[i] = p.Response
	}
	return &Retriever{norm: norm, index: NewIndex(docs), responses: responses}
}

func (r *Retriever) BestMatch(text string) (string, float64) {
	i, score := r.index.Best(r.norm.Normalize(text))
	if i < 0 {
		return "", 0
	}
	return r.responses[i], score
}

// IdentityMatcher tells setting, asking for and changing a name apart.
type IdentityMatcher struct {
	norm  Normalizer
	index *Index
	kinds []IdentityKind
}

func NewIdentityMatcher(phrases []IdentityPhrase, norm Normalizer) *IdentityMatcher {
	docs := make([]string, len(phrases))
	kinds := make([]IdentityKind, len(phrases))
	for i, p := range phrases {
		docs[i] = norm.Lemmas(p.Phrase)
		kinds[i] = p.Kind
	}
	return &IdentityMatcher{norm: norm, index: NewIndex(docs), kinds: kinds}
}

func (m *IdentityMatcher) Match(text string) (IdentityKind, float64) {
	i, score := m.index.Best(m.norm.Lemmas(text))
	if i < 0 {
		return "", 0
	}
	return m.kinds[i], score
}

// PhraseMatcher scores an utterance against an unlabeled phrase list.
type PhraseMatcher struct {
	norm  Normalizer
	index *Index
}

func NewPhraseMatcher(phrases []string, norm Normalizer) *PhraseMatcher {
	docs := make([]string, len(phrases))
	for i, p := range phrases {
		docs[i] = norm.Lemmas(p)
	}
	return &PhraseMatcher{norm: norm, index: NewIndex(docs)}
}

func (m *PhraseMatcher) Score(text string) float64 {
	_, score := m.index.Best(m.norm.Lemmas(text))
	return score
}

// Models bundles every model built from one corpus.
type Models struct {
	Corpus    *Corpus
	Intents   *Classifier
	Identity  *IdentityMatcher
	QA        *Retriever
	SmallTalk *Retriever
	Discovery *PhraseMatcher
	Booking   *Retriever
}

func Build(c *Corpus, norm Normalizer) *Models {
	return &Models{
		Corpus:    c,
		Intents:   NewClassifier(c, norm),
		Identity:  NewIdentityMatcher(c.Identity.Phrases, norm),
		QA:        NewRetriever(c.QuestionAnswering, norm),
		SmallTalk: NewRetriever(c.SmallTalk, norm),
		Discovery: NewPhraseMatcher(c.Discovery.Phrases, norm),
		Booking:   NewRetriever(c.Booking.Responses, norm),
	}
}

// Fill replaces every [token] placeholder in template with its value.
func Fill(template string, values map[string]string) string {
	for k, v := range values {
		template = strings.ReplaceAll(template, "["+k+"]", v)
	}
	return template
}
