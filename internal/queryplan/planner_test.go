package queryplan

import (
	"reflect"
	"testing"
)

func TestParse_AllFiltersNoResidual(t *testing.T) {
	plan := Parse("blue leather bag")

	want := map[Kind]string{
		KindCategory: "bag",
		KindColor:    "blue",
		KindMaterial: "leather",
	}
	if !reflect.DeepEqual(plan.Filters, want) {
		t.Errorf("filters = %v, want %v", plan.Filters, want)
	}
	if len(plan.FullTextTerms) != 0 {
		t.Errorf("full-text terms = %v, want none", plan.FullTextTerms)
	}
}

func TestParse_ResidualOnly(t *testing.T) {
	plan := Parse("vintage arduino kit with notes")

	if len(plan.Filters) != 0 {
		t.Errorf("filters = %v, want none", plan.Filters)
	}
	want := []string{"vintage", "arduino", "kit", "notes"}
	if !reflect.DeepEqual(plan.FullTextTerms, want) {
		t.Errorf("full-text terms = %v, want %v", plan.FullTextTerms, want)
	}
}

func TestParse_SynonymsCanonicalize(t *testing.T) {
	tests := []struct {
		query string
		kind  Kind
		want  string
	}{
		{"old purse", KindCategory, "bag"},
		{"grey scarf", KindColor, "gray"},
		{"stainless steel bottle", KindMaterial, "metal"},
		{"dotted dress", KindPattern, "polka dot"},
		{"my groceries list", KindCategory, "grocery"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			plan := Parse(tt.query)
			got, ok := plan.Filter(tt.kind)
			if !ok || got != tt.want {
				t.Errorf("Parse(%q).%s = %q (matched=%v), want %q", tt.query, tt.kind, got, ok, tt.want)
			}
		})
	}
}

func TestParse_FirstMatchWinsPerKind(t *testing.T) {
	// Two colors in one query: the dictionary scan stops at the first hit,
	// declared order, not query order.
	plan := Parse("red and blue scarf")
	if got := plan.Filters[KindColor]; got != "red" {
		t.Errorf("color = %q, want %q (earlier dictionary entry)", got, "red")
	}
}

func TestParse_OverlappingKeywordsLeaveNoFragments(t *testing.T) {
	// "bags" contains "bag": longest-first removal must not leave an "s" term.
	plan := Parse("canvas bags from travels")
	if got := plan.Filters[KindCategory]; got != "bag" {
		t.Errorf("category = %q, want %q", got, "bag")
	}
	for _, term := range plan.FullTextTerms {
		if term == "s" {
			t.Errorf("residual terms %v contain keyword fragment", plan.FullTextTerms)
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	a := Parse("blue leather bag")
	b := Parse("blue leather bag")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("plans differ across invocations: %v vs %v", a, b)
	}
}

func TestParse_Total(t *testing.T) {
	for _, q := range []string{"", "   ", "!!", "a", "zzzzz unknownword"} {
		plan := Parse(q)
		if plan.Filters == nil {
			t.Errorf("Parse(%q) returned nil filter map", q)
		}
	}
}

func TestParse_StopwordsDropped(t *testing.T) {
	plan := Parse("jar with lid and the label")
	want := []string{"jar", "lid", "label"}
	if !reflect.DeepEqual(plan.FullTextTerms, want) {
		t.Errorf("full-text terms = %v, want %v", plan.FullTextTerms, want)
	}
}

func TestIsNaturalLanguage(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"blue leather bag", true},
		{"sandwich", true}, // contains "and"
		{"with", true},
		{"mug", false},
		{"gucci", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := IsNaturalLanguage(tt.query); got != tt.want {
				t.Errorf("IsNaturalLanguage(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
