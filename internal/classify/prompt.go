package classify

import (
	"fmt"
	"strings"

	"github.com/inventa-app/inventa/internal/domain"
)

// BuildPrompt renders the tier-independent prompt contract: the vision summary,
// an optional user hint, the strict output shape, and the tagging guidance.
func BuildPrompt(vision domain.VisionSummary, hint string) string {
	var b strings.Builder

	b.WriteString("You are cataloging a photographed item for a personal inventory.\n\n")

	b.WriteString("Detected objects (with confidence):\n")
	if len(vision.Objects) == 0 {
		b.WriteString("- none\n")
	}
	for _, o := range vision.Objects {
		fmt.Fprintf(&b, "- %s (%.0f%%)\n", o.Label, o.Confidence*100)
	}

	b.WriteString("\nText recognized in the image: ")
	if strings.TrimSpace(vision.OCRText) == "" {
		b.WriteString("None")
	} else {
		b.WriteString(vision.OCRText)
	}
	b.WriteString("\n")

	b.WriteString("\nDominant colors: ")
	if len(vision.Colors) == 0 {
		b.WriteString("None")
	} else {
		b.WriteString(strings.Join(vision.Colors, ", "))
	}
	b.WriteString("\n")

	if strings.TrimSpace(hint) != "" {
		fmt.Fprintf(&b, "\nUser hint: %s\n", hint)
	}

	b.WriteString("\nRespond with a single JSON object, no prose, exactly this shape:\n")
	b.WriteString(`{"title": "...", "summary": "...", "category": "...", "tags": ["..."], "attributes": {"key": "value"}}`)
	b.WriteString("\n\nRules:\n")
	fmt.Fprintf(&b, "- title: 2-5 words naming the item\n")
	fmt.Fprintf(&b, "- summary: 1-2 sentences describing the item\n")
	fmt.Fprintf(&b, "- category: exactly one of: %s\n", strings.Join(domain.Categories, ", "))
	b.WriteString("- tags: 5-15 entries drawn from the item's colors, materials, " +
		"function, usage context, object type, brand or text visible in the image, " +
		"and its broad category\n")
	b.WriteString("- tags must be lowercase, singular, with no duplicates\n")
	b.WriteString("- attributes: flat map of string/number/bool values " +
		"(e.g. color, material, context)\n")

	return b.String()
}
