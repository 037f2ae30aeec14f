package classify

import (
	"strings"

	"github.com/inventa-app/inventa/internal/domain"
	"github.com/inventa-app/inventa/internal/tagrules"
)

// categoryScan is the priority-ordered keyword table for the terminal tier.
// The first row with a keyword contained in the joined labels+OCR text wins.
var categoryScan = []struct {
	category string
	keywords []string
}{
	{"receipt", []string{"receipt", "price", "total"}},
	{"grocery", []string{"food", "fruit", "vegetable", "grocery", "snack", "produce"}},
	{"bags", []string{"bag", "backpack", "purse", "handbag", "luggage"}},
	{"fashion", []string{"clothing", "apparel", "shirt", "dress", "shoe", "fashion"}},
	{"electronics", []string{"electronic", "phone", "laptop", "computer", "device", "gadget"}},
	{"nails", []string{"nail", "manicure", "polish"}},
	{"recipe", []string{"recipe", "ingredient", "cookbook"}},
}

// fillerTags pad the tag set up to the five-tag minimum.
var fillerTags = []string{"photo", "tracked", "visual"}

// Synthesize is the terminal classification tier: a pure function of the
// vision summary that always yields a record passing validation, even for a
// completely empty summary. It never calls out and never fails.
func Synthesize(vision domain.VisionSummary) domain.ItemRecord {
	labels := usableLabels(vision)

	return domain.ItemRecord{
		Title:      synthesizeTitle(labels, vision.Colors),
		Summary:    synthesizeSummary(labels, vision.Colors),
		Category:   scanCategory(vision),
		Tags:       synthesizeTags(labels, vision),
		Attributes: synthesizeAttributes(vision.Colors),
	}
}

// scanCategory infers the category from labels and OCR tokens, first match wins.
func scanCategory(vision domain.VisionSummary) string {
	haystack := strings.ToLower(strings.Join(vision.Labels(), " ") + " " + vision.OCRText)
	for _, row := range categoryScan {
		for _, kw := range row.keywords {
			if strings.Contains(haystack, kw) {
				return row.category
			}
		}
	}
	return "general"
}

// usableLabels returns cleaned lowercase labels in confidence order,
// excluding generic and too-short ones.
func usableLabels(vision domain.VisionSummary) []string {
	var out []string
	for _, o := range vision.Objects {
		l := cleanLabel(o.Label)
		if len(l) <= 2 || tagrules.IsGeneric(l) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// cleanLabel lowercases a detector label, replaces underscores with spaces,
// and truncates at the first comma.
func cleanLabel(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	l = strings.ReplaceAll(l, "_", " ")
	if i := strings.IndexByte(l, ','); i >= 0 {
		l = l[:i]
	}
	return strings.TrimSpace(l)
}

func synthesizeTitle(labels, colors []string) string {
	if len(labels) > 0 {
		title := titleCase(labels[0])
		if len(colors) > 0 {
			return titleCase(colors[0]) + " " + title
		}
		return title
	}
	if len(colors) >= 2 {
		return titleCase(colors[0]) + " and " + titleCase(colors[1]) + " Flowers"
	}
	if len(colors) == 1 {
		return titleCase(colors[0]) + " Flowers"
	}
	return "Captured Item"
}

func synthesizeSummary(labels, colors []string) string {
	if len(labels) == 0 && len(colors) == 0 {
		return "A captured item added to your inventory."
	}
	if len(labels) == 0 {
		return "An item with " + joinAnd(lowerAll(firstN(colors, 3))) + " colors."
	}
	sentence := "This image features " + joinAnd(firstN(labels, 3))
	if len(colors) > 0 {
		sentence += " with vibrant " + joinAnd(lowerAll(firstN(colors, 2))) + " colors"
	}
	return sentence + "."
}

// synthesizeTags unions colors, the three rule families, object-type labels,
// and OCR tokens, pads to the five-tag minimum, and truncates to twelve.
func synthesizeTags(labels []string, vision domain.VisionSummary) []string {
	set := newTagSet()

	for _, c := range firstN(vision.Colors, 3) {
		set.add(strings.ToLower(c))
	}
	set.addAll(tagrules.Materials(labels))
	set.addAll(tagrules.Functions(labels))
	set.addAll(tagrules.Contexts(labels))
	set.addAll(tagrules.ObjectTypes(labels))

	added := 0
	for _, tok := range vision.OCRTokens() {
		if added >= 3 {
			break
		}
		t := strings.ToLower(strings.Trim(tok, ".,!?:;\"'()[]"))
		if len(t) < 4 || len(t) > 19 {
			continue
		}
		if set.add(t) {
			added++
		}
	}

	for _, filler := range fillerTags {
		if set.len() >= 5 {
			break
		}
		if filler == "visual" && len(vision.Colors) == 0 {
			continue
		}
		set.add(filler)
	}

	// A fully empty summary leaves fewer fillers than the five-tag target;
	// keep the record above the validation minimum regardless.
	for _, filler := range []string{"visual", "inventory"} {
		if set.len() >= domain.MinTags {
			break
		}
		set.add(filler)
	}

	return set.first(12)
}

func synthesizeAttributes(colors []string) map[string]domain.AttrValue {
	color := "mixed"
	if len(colors) > 0 {
		color = colors[0]
	}
	return map[string]domain.AttrValue{
		"color":      domain.StringAttr(color),
		"material":   domain.StringAttr("unknown"),
		"confidence": domain.StringAttr("high"),
	}
}

// tagSet is an insertion-ordered string set.
type tagSet struct {
	seen  map[string]struct{}
	order []string
}

func newTagSet() *tagSet {
	return &tagSet{seen: make(map[string]struct{})}
}

func (s *tagSet) add(tag string) bool {
	if tag == "" {
		return false
	}
	if _, dup := s.seen[tag]; dup {
		return false
	}
	s.seen[tag] = struct{}{}
	s.order = append(s.order, tag)
	return true
}

func (s *tagSet) addAll(tags []string) {
	for _, t := range tags {
		s.add(t)
	}
}

func (s *tagSet) len() int { return len(s.order) }

func (s *tagSet) first(n int) []string {
	if len(s.order) > n {
		return s.order[:n]
	}
	return s.order
}

func firstN(ss []string, n int) []string {
	if len(ss) > n {
		return ss[:n]
	}
	return ss
}

func lowerAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}

func joinAnd(ss []string) string {
	switch len(ss) {
	case 0:
		return ""
	case 1:
		return ss[0]
	case 2:
		return ss[0] + " and " + ss[1]
	default:
		return strings.Join(ss[:len(ss)-1], ", ") + ", and " + ss[len(ss)-1]
	}
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
