// Package queryplan decomposes a free-text search string into structured
// filters plus residual full-text terms. Matching is substring containment
// over fixed, insertion-ordered keyword dictionaries: earlier-declared
// synonyms win ties, which keeps planning deterministic.
package queryplan

import (
	"sort"
	"strings"
)

// Kind is a filter dimension extracted from a query.
type Kind string

// Filter kinds.
const (
	KindCategory Kind = "category"
	KindColor    Kind = "color"
	KindPattern  Kind = "pattern"
	KindMaterial Kind = "material"
)

// Plan is the decomposition of one search string: at most one canonical value
// per filter kind, plus residual tokens in first-appearance order.
type Plan struct {
	Filters       map[Kind]string
	FullTextTerms []string
}

// Filter returns the matched canonical value for a kind, if any.
func (p Plan) Filter(kind Kind) (string, bool) {
	v, ok := p.Filters[kind]
	return v, ok
}

// IsEmpty reports whether the plan extracted nothing at all.
func (p Plan) IsEmpty() bool {
	return len(p.Filters) == 0 && len(p.FullTextTerms) == 0
}

// IsNaturalLanguage reports whether a raw query should go through the
// planner: multi-word queries, or ones phrased with "with"/"and". Anything
// else is served by plain substring search.
func IsNaturalLanguage(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	return strings.Contains(q, " ") ||
		strings.Contains(q, "with") ||
		strings.Contains(q, "and")
}

// Parse builds a Plan from a raw search string. The planner is total: the
// worst case is an empty filter set with the whole query as full-text terms.
func Parse(query string) Plan {
	q := strings.ToLower(strings.TrimSpace(query))

	plan := Plan{Filters: make(map[Kind]string)}
	for _, dict := range dictionaries {
		for _, entry := range dict.entries {
			if strings.Contains(q, entry.keyword) {
				plan.Filters[dict.kind] = entry.value
				break
			}
		}
	}

	plan.FullTextTerms = residualTerms(q, plan.Filters)
	return plan
}

// residualTerms removes every dictionary keyword and matched canonical value
// from the query (longest first, so overlapping keywords like "bags"/"bag"
// leave no fragments), then tokenizes what is left.
func residualTerms(q string, filters map[Kind]string) []string {
	removal := make([]string, 0, len(filters)+totalKeywords)
	for _, v := range filters {
		removal = append(removal, v)
	}
	for _, dict := range dictionaries {
		for _, entry := range dict.entries {
			removal = append(removal, entry.keyword)
		}
	}
	sort.SliceStable(removal, func(i, j int) bool {
		return len(removal[i]) > len(removal[j])
	})

	residue := q
	for _, word := range removal {
		residue = strings.ReplaceAll(residue, word, " ")
	}

	var terms []string
	seen := make(map[string]struct{})
	for _, tok := range strings.Fields(residue) {
		t := strings.Trim(tok, ".,!?:;\"'()[]-")
		if len(t) <= 2 || stopwords[t] {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	return terms
}

// stopwords are dropped from residual terms at tokenization. Dropping them
// token-wise (rather than by substring replacement) keeps words like
// "vintage" and "arduino" intact.
var stopwords = map[string]bool{
	"with": true, "and": true, "or": true, "the": true,
	"a": true, "an": true, "in": true, "on": true, "at": true,
}
