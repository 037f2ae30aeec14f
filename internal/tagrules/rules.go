// Package tagrules derives tag suggestions from detected object labels.
// All matching is substring containment over the lowercase-joined label
// string, not word-boundary matching: compound labels like "flower_pot"
// must still trigger the "flower" rules.
package tagrules

import "strings"

// rule maps a set of trigger keywords to one emitted tag.
type rule struct {
	keywords []string
	tag      string
}

var materialRules = []rule{
	{[]string{"fabric", "textile", "cloth"}, "fabric"},
	{[]string{"metal", "steel", "aluminum"}, "metal"},
	{[]string{"wood", "wooden"}, "wood"},
	{[]string{"plastic", "polymer"}, "plastic"},
	{[]string{"paper", "cardboard"}, "paper"},
	{[]string{"glass"}, "glass"},
	{[]string{"ceramic", "porcelain"}, "ceramic"},
	{[]string{"leather"}, "leather"},
}

var functionRules = []rule{
	{[]string{"clothing", "apparel", "footwear"}, "wearable"},
	{[]string{"food", "beverage", "drink"}, "consumable"},
	{[]string{"book", "document", "text"}, "readable"},
	{[]string{"tool", "equipment", "instrument"}, "functional"},
	{[]string{"toy", "game"}, "entertainment"},
	{[]string{"decoration", "plant", "flower"}, "decorative"},
	{[]string{"electronic", "device", "computer"}, "electronic"},
	{[]string{"container", "bottle", "box"}, "storage"},
}

var contextRules = []rule{
	{[]string{"kitchen", "cooking", "food"}, "kitchen"},
	{[]string{"bathroom", "hygiene", "personal care"}, "bathroom"},
	{[]string{"outdoor", "nature", "garden"}, "outdoor"},
	{[]string{"indoor", "room", "furniture"}, "indoor"},
	{[]string{"office", "desk", "workspace"}, "workspace"},
	{[]string{"portable", "travel", "handheld"}, "portable"},
	{[]string{"gift", "present"}, "gift"},
}

// genericWords are label fragments too vague to be useful tags.
var genericWords = []string{"item", "thing", "object"}

// Materials returns material tags triggered by the labels.
func Materials(labels []string) []string { return apply(materialRules, labels) }

// Functions returns functional-role tags triggered by the labels.
func Functions(labels []string) []string { return apply(functionRules, labels) }

// Contexts returns usage-context tags triggered by the labels.
func Contexts(labels []string) []string { return apply(contextRules, labels) }

// ObjectTypes returns up to four of the highest-confidence labels as tags,
// lowercased, skipping generic labels and labels of length <= 2.
// Labels must be in descending confidence order.
func ObjectTypes(labels []string) []string {
	var tags []string
	seen := make(map[string]struct{})
	for _, label := range labels {
		if len(tags) >= 4 {
			break
		}
		l := strings.ToLower(strings.TrimSpace(label))
		if len(l) <= 2 || IsGeneric(l) {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		tags = append(tags, l)
	}
	return tags
}

// IsGeneric reports whether the label contains a generic filler word.
func IsGeneric(label string) bool {
	l := strings.ToLower(label)
	for _, w := range genericWords {
		if strings.Contains(l, w) {
			return true
		}
	}
	return false
}

func apply(rules []rule, labels []string) []string {
	joined := strings.ToLower(strings.Join(labels, " "))
	var tags []string
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(joined, kw) {
				tags = append(tags, r.tag)
				break
			}
		}
	}
	return tags
}
