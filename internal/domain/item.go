package domain

import (
	"fmt"
	"strings"
	"time"
)

// Categories is the closed set of item categories.
// A record whose category is outside this set fails validation.
var Categories = []string{
	"general",
	"grocery",
	"nails",
	"receipt",
	"bags",
	"fashion",
	"electronics",
	"recipe",
}

// Tag cardinality bounds accepted by validation.
const (
	MinTags = 3
	MaxTags = 15
)

// ValidCategory reports whether c is a member of the closed category set.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ItemRecord is the structured classification output: what the generative
// tiers (or the deterministic synthesizer) produce and validation accepts.
type ItemRecord struct {
	Title      string               `json:"title"`
	Summary    string               `json:"summary"`
	Category   string               `json:"category"`
	Tags       []string             `json:"tags"`
	Attributes map[string]AttrValue `json:"attributes"`
}

// Validate checks the record invariants: non-empty title, category membership,
// tag count within [MinTags, MaxTags], and pairwise-distinct tags.
// Violations are failures, not silent corrections.
func (r ItemRecord) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is empty", ErrValidationFailed)
	}
	if !ValidCategory(r.Category) {
		return fmt.Errorf("%w: category %q not in closed set", ErrValidationFailed, r.Category)
	}
	if len(r.Tags) < MinTags || len(r.Tags) > MaxTags {
		return fmt.Errorf("%w: tag count %d outside [%d,%d]", ErrValidationFailed, len(r.Tags), MinTags, MaxTags)
	}
	seen := make(map[string]struct{}, len(r.Tags))
	for _, t := range r.Tags {
		if _, dup := seen[t]; dup {
			return fmt.Errorf("%w: duplicate tag %q", ErrValidationFailed, t)
		}
		seen[t] = struct{}{}
	}
	return nil
}

// Item is the persisted inventory entity: a validated ItemRecord flattened
// together with user-owned fields and the capture context. Direct edits to
// Title/Summary/Category/Tags/Collection/Quantity bypass classifier validation.
type Item struct {
	ID string `json:"id"`
	ItemRecord
	Collection string    `json:"collection,omitempty"`
	Quantity   int       `json:"quantity"`
	ImageID    string    `json:"image_id,omitempty"`
	OCRText    string    `json:"ocr_text,omitempty"`
	Colors     []string  `json:"colors,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
