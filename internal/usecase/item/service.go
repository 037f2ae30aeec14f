package item

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inventa-app/inventa/internal/domain"
	"github.com/inventa-app/inventa/internal/search"
)

// Service handles the item lifecycle: capture with automatic
// classification, retrieval, search, update and deletion.
type Service struct {
	repo       Repository
	classifier Classifier
	notes      NoteRemover
}

// New creates an item service.
func New(repo Repository, classifier Classifier, notes NoteRemover) *Service {
	return &Service{repo: repo, classifier: classifier, notes: notes}
}

// CaptureInput carries everything known about a photo at capture time.
type CaptureInput struct {
	Vision     domain.VisionSummary
	Hint       string
	Collection string
	Quantity   int
	ImageID    string
}

// imageDedupTTL bounds how long a capture image ID resolves to the
// item it originally produced.
const imageDedupTTL = 24 * time.Hour

// Capture classifies a captured photo and persists the resulting item.
// A retried capture with the same image ID returns the original item
// instead of creating a duplicate.
func (s *Service) Capture(ctx context.Context, in CaptureInput) (domain.Item, error) {
	if in.ImageID != "" {
		if existingID, err := s.repo.LookupImage(ctx, in.ImageID); err == nil {
			if existing, err := s.repo.Get(ctx, existingID); err == nil {
				return existing, nil
			}
		}
	}

	record, err := s.classifier.Classify(ctx, in.Vision, in.Hint)
	if err != nil {
		return domain.Item{}, fmt.Errorf("classify capture: %w", err)
	}

	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	it := domain.Item{
		ID:         uuid.NewString(),
		ItemRecord: record,
		Collection: in.Collection,
		Quantity:   quantity,
		ImageID:    in.ImageID,
		OCRText:    in.Vision.OCRText,
		Colors:     in.Vision.Colors,
		CreatedAt:  time.Now().Truncate(time.Millisecond).UTC(),
	}

	if err := s.repo.Create(ctx, &it); err != nil {
		return domain.Item{}, fmt.Errorf("store item: %w", err)
	}

	if in.ImageID != "" {
		_ = s.repo.RememberImage(ctx, in.ImageID, it.ID, imageDedupTTL) // best effort
	}
	return it, nil
}

// Get retrieves an item by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Item, error) {
	if id == "" {
		return domain.Item{}, fmt.Errorf("empty item id: %w", domain.ErrInvalidInput)
	}
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Search returns items matching the category and collection selectors
// and the free-text query, newest first.
func (s *Service) Search(ctx context.Context, category, collection, query string) ([]domain.Item, error) {
	if c := strings.TrimSpace(category); c != "" && !strings.EqualFold(c, search.SelectorAll) {
		if !domain.ValidCategory(strings.ToLower(c)) {
			return nil, fmt.Errorf("unknown category %q: %w", category, domain.ErrInvalidInput)
		}
	}

	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return search.Filter(items, category, collection, query), nil
}

// UpdateInput is a partial update: nil fields are left unchanged.
type UpdateInput struct {
	Title      *string
	Summary    *string
	Category   *string
	Tags       *[]string
	Attributes map[string]domain.AttrValue
	Collection *string
	Quantity   *int
}

// Update applies a partial update and returns the updated item.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (domain.Item, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("get item: %w", err)
	}

	if in.Title != nil {
		it.Title = *in.Title
	}
	if in.Summary != nil {
		it.Summary = *in.Summary
	}
	if in.Category != nil {
		it.Category = strings.ToLower(strings.TrimSpace(*in.Category))
	}
	if in.Tags != nil {
		it.Tags = *in.Tags
	}
	if in.Attributes != nil {
		it.Attributes = in.Attributes
	}
	if in.Collection != nil {
		it.Collection = *in.Collection
	}
	if in.Quantity != nil {
		if *in.Quantity <= 0 {
			return domain.Item{}, fmt.Errorf("quantity must be positive: %w", domain.ErrInvalidInput)
		}
		it.Quantity = *in.Quantity
	}

	if err := it.ItemRecord.Validate(); err != nil {
		return domain.Item{}, fmt.Errorf("invalid item after update: %w", err)
	}

	if err := s.repo.Update(ctx, &it); err != nil {
		return domain.Item{}, fmt.Errorf("update item: %w", err)
	}
	return it, nil
}

// Delete removes an item together with its notes.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if err := s.notes.DeleteByItem(ctx, id); err != nil {
		return fmt.Errorf("delete item notes: %w", err)
	}
	return nil
}

// Count returns the number of stored items.
func (s *Service) Count(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}
