package inventa

import (
	"fmt"
	"time"

	"github.com/inventa-app/inventa/internal/domain"
)

// DetectedObject is one labeled object from on-device vision analysis.
type DetectedObject struct {
	Label      string
	Confidence float64
}

// Vision is the device-side summary of a captured photo.
type Vision struct {
	Objects []DetectedObject
	OCRText string
	Colors  []string
}

// CaptureRequest carries everything known about a photo at capture time.
type CaptureRequest struct {
	Vision     Vision
	Hint       string
	Collection string
	Quantity   int
	ImageID    string
}

// Item is a classified inventory entry.
type Item struct {
	ID         string
	Title      string
	Summary    string
	Category   string
	Tags       []string
	Attributes map[string]any
	Collection string
	Quantity   int
	ImageID    string
	OCRText    string
	Colors     []string
	CreatedAt  time.Time
}

// ItemUpdate is a partial update: nil fields are left unchanged.
// Attribute values must be strings, numbers, or bools.
type ItemUpdate struct {
	Title      *string
	Summary    *string
	Category   *string
	Tags       *[]string
	Attributes map[string]any
	Collection *string
	Quantity   *int
}

// Note is a free-text annotation attached to an item.
type Note struct {
	ID        string
	ItemID    string
	Text      string
	CreatedAt time.Time
}

func visionToDomain(v Vision) domain.VisionSummary {
	out := domain.VisionSummary{
		OCRText: v.OCRText,
		Colors:  v.Colors,
	}
	for _, o := range v.Objects {
		out.Objects = append(out.Objects, domain.DetectedObject{
			Label:      o.Label,
			Confidence: o.Confidence,
		})
	}
	return out
}

func itemFromDomain(it *domain.Item) Item {
	return Item{
		ID:         it.ID,
		Title:      it.Title,
		Summary:    it.Summary,
		Category:   it.Category,
		Tags:       it.Tags,
		Attributes: attrsFromDomain(it.Attributes),
		Collection: it.Collection,
		Quantity:   it.Quantity,
		ImageID:    it.ImageID,
		OCRText:    it.OCRText,
		Colors:     it.Colors,
		CreatedAt:  it.CreatedAt,
	}
}

func noteFromDomain(n *domain.Note) Note {
	return Note{
		ID:        n.ID,
		ItemID:    n.ItemID,
		Text:      n.Text,
		CreatedAt: n.CreatedAt,
	}
}

func attrsFromDomain(attrs map[string]domain.AttrValue) map[string]any {
	if attrs == nil {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		switch v.Kind() {
		case domain.AttrNumber:
			out[k] = v.Num()
		case domain.AttrBool:
			out[k] = v.Bool()
		default:
			out[k] = v.Str()
		}
	}
	return out
}

func attrsToDomain(attrs map[string]any) (map[string]domain.AttrValue, error) {
	if attrs == nil {
		return nil, nil
	}
	out := make(map[string]domain.AttrValue, len(attrs))
	for k, v := range attrs {
		av, ok := attrFromAny(v)
		if !ok {
			return nil, fmt.Errorf("attribute %q: value must be string, number, or bool, got %T", k, v)
		}
		out[k] = av
	}
	return out, nil
}

// attrFromAny accepts the Go numeric types a caller is likely to pass,
// not just the float64 that JSON decoding produces.
func attrFromAny(v any) (domain.AttrValue, bool) {
	switch t := v.(type) {
	case int:
		return domain.NumberAttr(float64(t)), true
	case int64:
		return domain.NumberAttr(float64(t)), true
	case float32:
		return domain.NumberAttr(float64(t)), true
	}
	return domain.AttrFromAny(v)
}
