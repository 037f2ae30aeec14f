package note

import (
	"context"

	"github.com/inventa-app/inventa/internal/domain"
)

// Repository defines the storage contract for notes.
type Repository interface {
	Create(ctx context.Context, n *domain.Note) error
	ListByItem(ctx context.Context, itemID string) ([]domain.Note, error)
	Delete(ctx context.Context, itemID, noteID string) error
}

// ItemReader checks the owning item exists before attaching notes.
type ItemReader interface {
	Get(ctx context.Context, id string) (domain.Item, error)
}
