// Package search provides a small, deterministic, concurrency-safe in-memory
// index over collection documents (a movie's title and description). It backs
// the free-text filter on the collection listing.
//
//   - No logging in the library (callers decide how/what to log)
//   - Functional options for stop words and document caps
//   - Unicode-aware tokenization with full case folding
//   - Immutable after construction (safe for concurrent use)
//   - Deterministic ordering (stable for ties)
//
// Scoring uses Jaccard similarity between the query token set and each
// document's token set: score = |Q ∩ D| / |Q ∪ D|.
package search

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Document is one indexed entry. ID is opaque to the index.
type Document struct {
	ID   uint
	Text string
}

// Result is a matching document id with its similarity score.
type Result struct {
	ID    uint
	Score float64
}

// Index is the minimal interface implemented by all search indices.
type Index interface {
	// TopK returns up to k matches, best first. k <= 0 returns every match.
	TopK(query string, k int) []Result
}

// DefaultStopwords are ignored in both documents and queries unless
// overridden with WithStopwords.
var DefaultStopwords = []string{
	"a", "an", "and", "at", "by", "for", "from", "in", "into", "is", "it",
	"of", "on", "or", "the", "to", "with",
}

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	stopwords map[string]struct{}
	maxDocs   int
}

func defaultConfig() config {
	return config{stopwords: stopset(DefaultStopwords)}
}

// WithStopwords replaces the stop-word list. An empty list disables
// stop-word removal.
func WithStopwords(words []string) Option {
	return func(c *config) {
		c.stopwords = stopset(words)
	}
}

// WithMaxDocs caps the number of indexed documents.
func WithMaxDocs(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDocs = n
		}
	}
}

// ----------------------------------------------------------------------------
// Implementation

type doc struct {
	id     uint
	order  int
	tokens map[string]struct{}
}

type index struct {
	cfg  config
	docs []doc
}

// NewIndex builds an Index over docs. Documents without any token are skipped.
func NewIndex(docs []Document, opts ...Option) Index {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	out := make([]doc, 0, len(docs))
	for i, d := range docs {
		toks := tokenize(d.Text, cfg.stopwords)
		if len(toks) == 0 {
			continue
		}
		out = append(out, doc{id: d.ID, order: i, tokens: toks})
		if cfg.maxDocs > 0 && len(out) >= cfg.maxDocs {
			break
		}
	}
	return &index{cfg: cfg, docs: out}
}

// TopK returns matching documents by Jaccard similarity. Ties keep the
// order in which documents were indexed.
func (i *index) TopK(q string, k int) []Result {
	if len(i.docs) == 0 || strings.TrimSpace(q) == "" {
		return nil
	}
	qTokens := tokenize(q, i.cfg.stopwords)
	if len(qTokens) == 0 {
		return nil
	}
	qLen := len(qTokens)

	type scored struct {
		id    uint
		order int
		score float64
	}
	buf := make([]scored, 0, len(i.docs))
	for _, d := range i.docs {
		over := overlap(qTokens, d.tokens)
		if over == 0 {
			continue
		}
		union := qLen + len(d.tokens) - over
		buf = append(buf, scored{id: d.id, order: d.order, score: float64(over) / float64(union)})
	}
	if len(buf) == 0 {
		return nil
	}

	sort.Slice(buf, func(a, b int) bool {
		if buf[a].score != buf[b].score {
			return buf[a].score > buf[b].score
		}
		return buf[a].order < buf[b].order
	})

	if k <= 0 || k > len(buf) {
		k = len(buf)
	}
	out := make([]Result, k)
	for j := 0; j < k; j++ {
		out[j] = Result{ID: buf[j].id, Score: buf[j].score}
	}
	return out
}

// ----------------------------------------------------------------------------
// Helpers

var wordRE = regexp.MustCompile(`[\p{L}\p{N}]+`)

// fold applies Unicode case folding, so "STRASSE" and "Straße" share a token.
// A Caser holds state, hence one per call.
func fold(s string) string { return cases.Fold().String(s) }

func tokenize(s string, stop map[string]struct{}) map[string]struct{} {
	words := wordRE.FindAllString(fold(s), -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, skip := stop[w]; skip {
			continue
		}
		out[w] = struct{}{}
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

func stopset(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = fold(strings.TrimSpace(w))
		if w != "" {
			m[w] = struct{}{}
		}
	}
	if len(m) == 0 {
		return nil
	}
	return m
}
