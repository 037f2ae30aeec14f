package inventa

import (
	"context"
	"fmt"

	noteuc "github.com/inventa-app/inventa/internal/usecase/note"
)

// NoteService manages free-text annotations on items.
type NoteService struct {
	svc *noteuc.Service
}

// Add attaches a note to an existing item.
func (s *NoteService) Add(ctx context.Context, itemID, text string) (Note, error) {
	n, err := s.svc.Add(ctx, itemID, text)
	if err != nil {
		return Note{}, fmt.Errorf("add note: %w", err)
	}
	return noteFromDomain(&n), nil
}

// ListByItem returns an item's notes, newest first.
func (s *NoteService) ListByItem(ctx context.Context, itemID string) ([]Note, error) {
	notes, err := s.svc.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	out := make([]Note, len(notes))
	for i := range notes {
		out[i] = noteFromDomain(&notes[i])
	}
	return out, nil
}

// Delete removes a single note from an item.
func (s *NoteService) Delete(ctx context.Context, itemID, noteID string) error {
	if err := s.svc.Delete(ctx, itemID, noteID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
