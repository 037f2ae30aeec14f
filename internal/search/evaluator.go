// Package search applies category/collection selectors and search queries to
// an in-memory item set. Filters AND-combine in fixed precedence; the only OR
// in the pipeline is the text match across title/summary/tags/OCR.
package search

import (
	"strings"

	"github.com/inventa-app/inventa/internal/domain"
	"github.com/inventa-app/inventa/internal/queryplan"
)

// SelectorAll is the sentinel that disables a selector dimension.
const SelectorAll = "all"

// Filter returns the visible subset of items for the given selectors and
// query, preserving input order. An empty result is a valid state.
func Filter(items []domain.Item, category, collection, query string) []domain.Item {
	query = strings.TrimSpace(query)

	natural := query != "" && queryplan.IsNaturalLanguage(query)
	var plan queryplan.Plan
	if natural {
		plan = queryplan.Parse(query)
	}

	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if !selectorMatch(item.Category, category, true) {
			continue
		}
		if !selectorMatch(item.Collection, collection, false) {
			continue
		}
		if query != "" {
			if natural {
				if !planMatch(item, plan) {
					continue
				}
			} else if !textMatch(item, query) {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// selectorMatch applies a single selector with the "all" sentinel.
// Category matching is case-insensitive, collection matching is exact.
func selectorMatch(value, selector string, foldCase bool) bool {
	if selector == "" || selector == SelectorAll {
		return true
	}
	if foldCase {
		return strings.EqualFold(value, selector)
	}
	return value == selector
}

// textMatch is the plain substring search: query contained in title, summary,
// any tag, or the OCR text (OR across fields, case-insensitive).
func textMatch(item domain.Item, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(item.Title), q) ||
		strings.Contains(strings.ToLower(item.Summary), q) ||
		strings.Contains(strings.ToLower(item.OCRText), q) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// planMatch applies every present plan filter as an independent AND-step,
// then requires the residual string (if any) to match the text fields.
func planMatch(item domain.Item, plan queryplan.Plan) bool {
	if v, ok := plan.Filter(queryplan.KindCategory); ok && !categoryMatch(item.Category, v) {
		return false
	}
	if v, ok := plan.Filter(queryplan.KindColor); ok && !colorMatch(item.Colors, v) {
		return false
	}
	if v, ok := plan.Filter(queryplan.KindPattern); ok && !attrOrTagMatch(item, v) {
		return false
	}
	if v, ok := plan.Filter(queryplan.KindMaterial); ok && !attrOrTagMatch(item, v) {
		return false
	}
	if len(plan.FullTextTerms) > 0 {
		return textMatch(item, strings.Join(plan.FullTextTerms, " "))
	}
	return true
}

// categoryMatch tolerates the singular canonical value against the stored
// plural category name ("bag" matches "bags").
func categoryMatch(stored, canonical string) bool {
	s := strings.ToLower(stored)
	return strings.Contains(s, canonical) || strings.Contains(canonical, s)
}

func colorMatch(colors []string, want string) bool {
	for _, c := range colors {
		if strings.Contains(strings.ToLower(c), want) {
			return true
		}
	}
	return false
}

// attrOrTagMatch checks containment in the attribute values or the tag list.
func attrOrTagMatch(item domain.Item, want string) bool {
	for _, v := range item.Attributes {
		if strings.Contains(strings.ToLower(v.Text()), want) {
			return true
		}
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), want) {
			return true
		}
	}
	return false
}
