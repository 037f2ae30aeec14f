package inventa

import (
	"context"
	"fmt"

	itemuc "github.com/inventa-app/inventa/internal/usecase/item"
)

// SelectorAll matches every category or collection.
const SelectorAll = "all"

// ItemService manages the item lifecycle.
type ItemService struct {
	svc *itemuc.Service
}

// Capture classifies a captured photo and stores the resulting item.
// Classification never fails outright: when no generative tier answers,
// the deterministic fallback produces the record.
func (s *ItemService) Capture(ctx context.Context, req CaptureRequest) (Item, error) {
	it, err := s.svc.Capture(ctx, itemuc.CaptureInput{
		Vision:     visionToDomain(req.Vision),
		Hint:       req.Hint,
		Collection: req.Collection,
		Quantity:   req.Quantity,
		ImageID:    req.ImageID,
	})
	if err != nil {
		return Item{}, fmt.Errorf("capture: %w", err)
	}
	return itemFromDomain(&it), nil
}

// Get retrieves an item by ID.
func (s *ItemService) Get(ctx context.Context, id string) (Item, error) {
	it, err := s.svc.Get(ctx, id)
	if err != nil {
		return Item{}, fmt.Errorf("get item: %w", err)
	}
	return itemFromDomain(&it), nil
}

// Search returns items matching the selectors and free-text query,
// newest first. Pass SelectorAll (or "") to skip a selector.
func (s *ItemService) Search(ctx context.Context, category, collection, query string) ([]Item, error) {
	if category == "" {
		category = SelectorAll
	}
	if collection == "" {
		collection = SelectorAll
	}

	items, err := s.svc.Search(ctx, category, collection, query)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}

	out := make([]Item, len(items))
	for i := range items {
		out[i] = itemFromDomain(&items[i])
	}
	return out, nil
}

// Update applies a partial update and returns the updated item.
func (s *ItemService) Update(ctx context.Context, id string, upd ItemUpdate) (Item, error) {
	attrs, err := attrsToDomain(upd.Attributes)
	if err != nil {
		return Item{}, fmt.Errorf("update item: %w", err)
	}

	it, err := s.svc.Update(ctx, id, itemuc.UpdateInput{
		Title:      upd.Title,
		Summary:    upd.Summary,
		Category:   upd.Category,
		Tags:       upd.Tags,
		Attributes: attrs,
		Collection: upd.Collection,
		Quantity:   upd.Quantity,
	})
	if err != nil {
		return Item{}, fmt.Errorf("update item: %w", err)
	}
	return itemFromDomain(&it), nil
}

// Delete removes an item together with its notes.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Count returns the number of stored items.
func (s *ItemService) Count(ctx context.Context) (int, error) {
	count, err := s.svc.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}
