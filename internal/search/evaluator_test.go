package search

import (
	"testing"

	"github.com/inventa-app/inventa/internal/domain"
)

func fixtureItems() []domain.Item {
	return []domain.Item{
		{
			ID: "1",
			ItemRecord: domain.ItemRecord{
				Title:    "Blue Tote",
				Summary:  "A roomy blue tote for everyday errands.",
				Category: "bags",
				Tags:     []string{"blue", "leather", "bag"},
				Attributes: map[string]domain.AttrValue{
					"material": domain.StringAttr("leather"),
				},
			},
			Collection: "Closet",
			Colors:     []string{"Blue"},
		},
		{
			ID: "2",
			ItemRecord: domain.ItemRecord{
				Title:    "Red Mug",
				Summary:  "Ceramic mug with a striped glaze.",
				Category: "bags",
				Tags:     []string{"red", "ceramic", "mug"},
				Attributes: map[string]domain.AttrValue{
					"pattern": domain.StringAttr("striped"),
				},
			},
			Collection: "Kitchen",
			Colors:     []string{"Red"},
			OCRText:    "DISHWASHER SAFE",
		},
		{
			ID: "3",
			ItemRecord: domain.ItemRecord{
				Title:    "Arduino Starter Kit",
				Summary:  "Microcontroller kit with jumper wires.",
				Category: "electronics",
				Tags:     []string{"arduino", "electronic", "kit"},
			},
			Collection: "Workbench",
			OCRText:    "ARDUINO UNO R3",
		},
	}
}

func ids(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func assertIDs(t *testing.T, got []domain.Item, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("result = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("result = %v, want %v", gotIDs, want)
		}
	}
}

func TestFilter_CategoryAndCollectionPrecedence(t *testing.T) {
	items := fixtureItems()

	got := Filter(items, "bags", "Closet", "")
	assertIDs(t, got, "1")

	got = Filter(items, "bags", SelectorAll, "")
	assertIDs(t, got, "1", "2")

	got = Filter(items, SelectorAll, SelectorAll, "")
	assertIDs(t, got, "1", "2", "3")
}

func TestFilter_CategorySelectorCaseInsensitive(t *testing.T) {
	got := Filter(fixtureItems(), "Electronics", SelectorAll, "")
	assertIDs(t, got, "3")
}

func TestFilter_MissingCollectionExcluded(t *testing.T) {
	items := []domain.Item{{ID: "x", ItemRecord: domain.ItemRecord{Category: "general"}}}
	got := Filter(items, SelectorAll, "Closet", "")
	assertIDs(t, got)
}

func TestFilter_PlainSubstringSearch(t *testing.T) {
	items := fixtureItems()

	// single-token queries bypass the planner and match OR across fields
	got := Filter(items, SelectorAll, SelectorAll, "mug")
	assertIDs(t, got, "2")

	// OCR field participates
	got = Filter(items, SelectorAll, SelectorAll, "dishwasher")
	assertIDs(t, got, "2")

	// tag field participates
	got = Filter(items, SelectorAll, SelectorAll, "ceramic")
	assertIDs(t, got, "2")
}

func TestFilter_NaturalLanguagePlan(t *testing.T) {
	items := fixtureItems()

	got := Filter(items, SelectorAll, SelectorAll, "blue leather bag")
	assertIDs(t, got, "1")

	// pattern filter matches against the attribute blob
	got = Filter(items, SelectorAll, SelectorAll, "striped mug")
	assertIDs(t, got, "2")

	// the entire residual string must appear in one text field
	got = Filter(items, SelectorAll, SelectorAll, "arduino kit with wires")
	assertIDs(t, got)

	got = Filter(items, SelectorAll, SelectorAll, "arduino uno")
	assertIDs(t, got, "3")
}

func TestFilter_PlanCategoryANDCombinesWithSelector(t *testing.T) {
	items := fixtureItems()

	// selector narrows to bags, plan category "bag" keeps both bags,
	// plan color narrows to the blue one
	got := Filter(items, "bags", SelectorAll, "blue bag")
	assertIDs(t, got, "1")

	// selector and plan category disagree: nothing passes
	got = Filter(items, "electronics", SelectorAll, "blue bag")
	assertIDs(t, got)
}

func TestFilter_EmptyResultIsValid(t *testing.T) {
	got := Filter(fixtureItems(), "recipe", SelectorAll, "")
	if got == nil {
		t.Fatal("expected non-nil empty slice")
	}
	assertIDs(t, got)
}
