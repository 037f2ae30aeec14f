package item

import (
	"context"
	"time"

	"github.com/inventa-app/inventa/internal/domain"
)

// Repository defines the storage contract for items.
type Repository interface {
	Create(ctx context.Context, it *domain.Item) error
	Get(ctx context.Context, id string) (domain.Item, error)
	Update(ctx context.Context, it *domain.Item) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]domain.Item, error)
	Count(ctx context.Context) (int, error)
	RememberImage(ctx context.Context, imageID, itemID string, ttl time.Duration) error
	LookupImage(ctx context.Context, imageID string) (string, error)
}

// Classifier turns a vision summary into a structured item record.
// It is total: it degrades through its tiers rather than failing.
type Classifier interface {
	Classify(ctx context.Context, vision domain.VisionSummary, hint string) (domain.ItemRecord, error)
}

// NoteRemover cleans up annotations when their item is deleted.
type NoteRemover interface {
	DeleteByItem(ctx context.Context, itemID string) error
}
