package item

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/inventa-app/inventa/internal/domain"
)

// Hash field names for the flattened item.
const (
	fieldTitle      = "title"
	fieldSummary    = "summary"
	fieldCategory   = "category"
	fieldTags       = "tags"
	fieldAttributes = "attributes"
	fieldCollection = "collection"
	fieldQuantity   = "quantity"
	fieldImageID    = "image_id"
	fieldOCRText    = "ocr_text"
	fieldColors     = "colors"
	fieldCreatedAt  = "created_at"
)

// buildHashFields flattens an Item for HSET: tags and colors as CSV,
// attributes as a JSON string. Tags never contain commas (they are lowercase
// single words by contract), so the CSV join is reversible.
func buildHashFields(it *domain.Item) (map[string]string, error) {
	attrs, err := json.Marshal(it.Attributes)
	if err != nil {
		return nil, fmt.Errorf("marshal attributes: %w", err)
	}
	return map[string]string{
		fieldTitle:      it.Title,
		fieldSummary:    it.Summary,
		fieldCategory:   it.Category,
		fieldTags:       strings.Join(it.Tags, ","),
		fieldAttributes: string(attrs),
		fieldCollection: it.Collection,
		fieldQuantity:   strconv.Itoa(it.Quantity),
		fieldImageID:    it.ImageID,
		fieldOCRText:    it.OCRText,
		fieldColors:     strings.Join(it.Colors, ","),
		fieldCreatedAt:  strconv.FormatInt(it.CreatedAt.UnixMilli(), 10),
	}, nil
}

// parseHashFields reconstructs an Item from its flattened hash.
func parseHashFields(id string, m map[string]string) (domain.Item, error) {
	it := domain.Item{
		ID: id,
		ItemRecord: domain.ItemRecord{
			Title:    m[fieldTitle],
			Summary:  m[fieldSummary],
			Category: m[fieldCategory],
			Tags:     splitCSV(m[fieldTags]),
		},
		Collection: m[fieldCollection],
		Quantity:   1,
		ImageID:    m[fieldImageID],
		OCRText:    m[fieldOCRText],
		Colors:     splitCSV(m[fieldColors]),
	}

	if raw := m[fieldAttributes]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &it.Attributes); err != nil {
			return domain.Item{}, fmt.Errorf("unmarshal attributes for %s: %w", id, err)
		}
	}
	if q, err := strconv.Atoi(m[fieldQuantity]); err == nil && q > 0 {
		it.Quantity = q
	}
	if ms, err := strconv.ParseInt(m[fieldCreatedAt], 10, 64); err == nil {
		it.CreatedAt = time.UnixMilli(ms).UTC()
	}
	return it, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
