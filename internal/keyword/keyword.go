// Package keyword turns free text into ranked candidate terms and compares
// keyword sets.
package keyword

import (
	"regexp"
	"sort"
	"strings"
)

// MaxEntities caps the number of entities kept per text.
const MaxEntities = 10

var (
	nonWord    = regexp.MustCompile(`[^a-z0-9\s-]`)
	entityRe   = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	defaultExt = NewExtractor(nil)
)

// Extracted holds the terms found in a single text. It is a value object and
// is never mutated after Extract returns it.
type Extracted struct {
	Primary   []string
	Secondary []string
	Entities  []string
}

// Keywords returns the sequence stored on an article at ingestion time:
// entities in their original casing, then primary words that no entity
// already covers.
func (e Extracted) Keywords() []string {
	seen := make(map[string]bool, len(e.Entities)+len(e.Primary))
	out := make([]string, 0, len(e.Entities)+len(e.Primary))
	for _, ent := range e.Entities {
		lower := strings.ToLower(ent)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		out = append(out, ent)
	}
	for _, word := range e.Primary {
		if seen[word] {
			continue
		}
		seen[word] = true
		out = append(out, word)
	}
	return out
}

// EntityExtractor finds candidate proper-noun phrases in case-preserved text.
type EntityExtractor interface {
	ExtractEntities(text string) []string
}

// CapitalizedEntities treats runs of capitalized words as entities.
type CapitalizedEntities struct{}

func (CapitalizedEntities) ExtractEntities(text string) []string {
	return ExtractEntities(text)
}

// Extractor runs frequency extraction with a pluggable entity step.
type Extractor struct {
	entities EntityExtractor
}

// NewExtractor returns an Extractor; a nil entity extractor selects
// CapitalizedEntities.
func NewExtractor(entities EntityExtractor) *Extractor {
	if entities == nil {
		entities = CapitalizedEntities{}
	}
	return &Extractor{entities: entities}
}

// Extract uses the default capitalization heuristic for entities.
func Extract(text string, limit int) Extracted {
	return defaultExt.Extract(text, limit)
}

// Extract ranks the qualifying words of text by frequency. Ties keep the
// order in which words first appeared.
func (x *Extractor) Extract(text string, limit int) Extracted {
	if limit < 0 {
		limit = 0
	}

	ranked := rankWords(Tokenize(text))

	limit = min(limit, len(ranked))
	primaryEnd := limit
	secondaryEnd := min(2*limit, len(ranked))

	entities := x.entities.ExtractEntities(text)
	if len(entities) > MaxEntities {
		entities = entities[:MaxEntities]
	}

	return Extracted{
		Primary:   append([]string{}, ranked[:primaryEnd]...),
		Secondary: append([]string{}, ranked[primaryEnd:secondaryEnd]...),
		Entities:  entities,
	}
}

// Tokenize lowercases text and returns the words that survive the length
// and stop-word filters, in text order.
func Tokenize(text string) []string {
	clean := nonWord.ReplaceAllString(strings.ToLower(text), " ")

	var tokens []string
	for _, word := range strings.Fields(clean) {
		if len(word) <= 2 || IsStopWord(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func rankWords(tokens []string) []string {
	freq := make(map[string]int)
	var order []string
	for _, t := range tokens {
		if freq[t] == 0 {
			order = append(order, t)
		}
		freq[t]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})
	return order
}

// ExtractEntities returns capitalized word runs from text, deduplicated in
// order of first appearance and capped at MaxEntities.
func ExtractEntities(text string) []string {
	matches := entityRe.FindAllString(text, -1)

	seen := make(map[string]bool, len(matches))
	var entities []string
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		entities = append(entities, m)
		if len(entities) == MaxEntities {
			break
		}
	}
	return entities
}

// Matching returns keywords of text that contain, or are contained in, a
// keyword of query. Comparison ignores case.
func Matching(text, query string) []string {
	textKw := Extract(text, 20)
	queryKw := Extract(query, 10)

	queryTerms := make([]string, 0, len(queryKw.Primary)+len(queryKw.Entities))
	for _, q := range append(append([]string{}, queryKw.Primary...), queryKw.Entities...) {
		queryTerms = append(queryTerms, strings.ToLower(q))
	}

	var matched []string
	for _, t := range append(append([]string{}, textKw.Primary...), textKw.Entities...) {
		lt := strings.ToLower(t)
		for _, q := range queryTerms {
			if strings.Contains(lt, q) || strings.Contains(q, lt) {
				matched = append(matched, t)
				break
			}
		}
	}
	return matched
}
