// Package note manages free-text annotations on items.
package note

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inventa-app/inventa/internal/domain"
)

// Service handles note CRUD scoped to an owning item.
type Service struct {
	repo  Repository
	items ItemReader
}

// New creates a note service.
func New(repo Repository, items ItemReader) *Service {
	return &Service{repo: repo, items: items}
}

// Add attaches a note to an existing item.
func (s *Service) Add(ctx context.Context, itemID, text string) (domain.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Note{}, fmt.Errorf("empty note text: %w", domain.ErrInvalidInput)
	}

	if _, err := s.items.Get(ctx, itemID); err != nil {
		return domain.Note{}, fmt.Errorf("get item: %w", err)
	}

	n := domain.Note{
		ID:        uuid.NewString(),
		ItemID:    itemID,
		Text:      text,
		CreatedAt: time.Now().Truncate(time.Millisecond).UTC(),
	}
	if err := s.repo.Create(ctx, &n); err != nil {
		return domain.Note{}, fmt.Errorf("store note: %w", err)
	}
	return n, nil
}

// ListByItem returns an item's notes, newest first.
func (s *Service) ListByItem(ctx context.Context, itemID string) ([]domain.Note, error) {
	if _, err := s.items.Get(ctx, itemID); err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	notes, err := s.repo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Delete removes a single note from an item.
func (s *Service) Delete(ctx context.Context, itemID, noteID string) error {
	if err := s.repo.Delete(ctx, itemID, noteID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
