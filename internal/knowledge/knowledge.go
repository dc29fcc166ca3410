// Package knowledge holds the read-only prompt/completion table behind the
// assistant and the keyword matcher used to look answers up in it.
package knowledge

import (
	"slices"
	"strings"
	"sync"
	"unicode"
)

// MinScore is the lowest score Match treats as a confident answer.
const MinScore = 0.5

// substringScore is the floor granted when one normalized text contains the other.
const substringScore = 0.75

// Entry is a canned prompt/completion pair.
type Entry struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// Match is the outcome of a lookup.
type Match struct {
	Entry Entry
	Index int
	Score float64
}

type indexedEntry struct {
	entry    Entry
	norm     string
	keywords map[string]struct{}
	// informative excludes words common to most prompts.
	informative map[string]struct{}
}

// Base is an immutable, ordered knowledge base. The zero value is empty.
type Base struct {
	items  []indexedEntry
	common map[string]struct{}
}

// NewBase indexes a copy of entries; later changes to the slice do not leak in.
func NewBase(src []Entry) *Base {
	items := make([]indexedEntry, 0, len(src))
	df := make(map[string]int)
	for _, e := range src {
		words := keywords(e.Prompt)
		set := toSet(words)
		for w := range set {
			df[w]++
		}
		items = append(items, indexedEntry{
			entry:    e,
			norm:     strings.Join(words, " "),
			keywords: set,
		})
	}

	// A word in more than half the prompts ("quantum", "coin") says nothing
	// about which entry a question is after.
	common := make(map[string]struct{})
	for w, n := range df {
		if 2*n > len(src) {
			common[w] = struct{}{}
		}
	}
	for i := range items {
		items[i].informative = without(items[i].keywords, common)
	}
	return &Base{items: items, common: common}
}

var defaultBase = sync.OnceValue(func() *Base { return NewBase(entries) })

// Default returns the built-in Quantum Coin knowledge base, loaded once.
func Default() *Base { return defaultBase() }

func (b *Base) Len() int { return len(b.items) }

func (b *Base) At(i int) Entry { return b.items[i].entry }

// Entries returns a copy of the table in insertion order.
func (b *Base) Entries() []Entry {
	out := make([]Entry, 0, len(b.items))
	for _, it := range b.items {
		out = append(out, it.entry)
	}
	return out
}

// Match finds the entry whose prompt best matches query.
//
// An entry whose normalized prompt equals the normalized query always wins.
// Otherwise entries are scored on the query's informative keywords, those
// not shared by most prompts; a query made only of common words is scored on
// all of them. The score is the share of those keywords found in the prompt.
// If one normalized text contains the other on word boundaries the score is
// raised to at least 0.75, provided the contained text covers at least half
// the query's keywords. The highest score wins and ties go to the earliest
// entry. ok is false when the best score is below MinScore.
func (b *Base) Match(query string) (m Match, ok bool) {
	words := keywords(query)
	if len(words) == 0 {
		return Match{}, false
	}
	norm := strings.Join(words, " ")
	for i, it := range b.items {
		if it.norm == norm {
			return Match{Entry: it.entry, Index: i, Score: 1}, true
		}
	}

	querySet := without(toSet(words), b.common)
	useAll := len(querySet) == 0
	if useAll {
		querySet = toSet(words)
	}

	best := Match{Index: -1}
	for i, it := range b.items {
		promptSet := it.informative
		if useAll {
			promptSet = it.keywords
		}
		score := overlap(querySet, promptSet)
		if score > 0 && it.norm != "" {
			promptCovers := 2*len(promptSet) >= len(querySet) && containsWords(norm, it.norm)
			if promptCovers || containsWords(it.norm, norm) {
				score = max(score, substringScore)
			}
		}
		if score > best.Score {
			best = Match{Entry: it.entry, Index: i, Score: score}
		}
	}
	if best.Index < 0 || best.Score < MinScore {
		return best, false
	}
	return best, true
}

func overlap(query, prompt map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	hits := 0
	for w := range query {
		if _, ok := prompt[w]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}

// containsWords reports whether needle appears in haystack on word boundaries.
func containsWords(haystack, needle string) bool {
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}

var stopWords = toSet([]string{
	"a", "an", "the", "is", "are", "was", "be", "of", "for", "to", "in", "on",
	"and", "or", "what", "whats", "how", "does", "do", "can", "could", "you",
	"me", "i", "about", "its", "it", "with", "by", "tell", "please", "some",
	"there", "this", "that", "any",
})

// keywords lower-cases s, drops punctuation and stop words, and returns the
// remaining words in order. Apostrophes are removed rather than split on so
// "what's" becomes "whats".
func keywords(s string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r == '\'' || r == '’':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	words := strings.Fields(b.String())
	return slices.DeleteFunc(words, func(w string) bool {
		_, stop := stopWords[w]
		return stop
	})
}

func without(set, drop map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(set))
	for w := range set {
		if _, ok := drop[w]; !ok {
			out[w] = struct{}{}
		}
	}
	return out
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
