package classifier

import (
	"math"
	"strings"
)

type vector map[string]float64

// Index scores a query against a fixed set of documents by TF-IDF cosine
// similarity over word unigrams and bigrams. Terms the index has never seen
// are ignored.
type Index struct {
	idf  map[string]float64
	docs []vector
}

// NewIndex builds an index over documents that are already normalized.
func NewIndex(docs []string) *Index {
	df := make(map[string]int)
	termDocs := make([][]string, len(docs))
	for i, d := range docs {
		termDocs[i] = terms(d)
		seen := make(map[string]struct{})
		for _, t := range termDocs[i] {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for t, count := range df {
		idf[t] = math.Log((1+n)/(1+float64(count))) + 1
	}

	ix := &Index{idf: idf, docs: make([]vector, len(docs))}
	for i, ts := range termDocs {
		ix.docs[i] = ix.weigh(ts)
	}
	return ix
}

func (ix *Index) Len() int {
	return len(ix.docs)
}

// Best returns the index of the closest document and its score in [0, 1].
// Ties go to the earliest document. An empty index or a query with no known
// terms returns (-1, 0).
func (ix *Index) Best(query string) (int, float64) {
	q := ix.weigh(terms(query))
	if len(q) == 0 {
		return -1, 0
	}

	best, bestScore := -1, 0.0
	for i, d := range ix.docs {
		if s := dot(q, d); s > bestScore {
			best, bestScore = i, s
		}
	}
	return best, math.Min(bestScore, 1)
}

func (ix *Index) weigh(ts []string) vector {
	v := make(vector)
	for _, t := range ts {
		if w, ok := ix.idf[t]; ok {
			v[t] += w
		}
	}

	var norm float64
	for _, w := range v {
		norm += w * w
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for t := range v {
		v[t] /= norm
	}
	return v
}

func terms(doc string) []string {
	words := strings.Fields(doc)
	out := make([]string, 0, 2*len(words))
	out = append(out, words...)
	for i := 1; i < len(words); i++ {
		out = append(out, words[i-1]+" "+words[i])
	}
	return out
}

func dot(a, b vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var s float64
	for t, w := range a {
		s += w * b[t]
	}
	return s
}
