// Package note persists item annotations as Redis JSON documents.
package note

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/inventa-app/inventa/internal/db"
	"github.com/inventa-app/inventa/internal/domain"
)

// store is the consumer interface for notes (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/note.Repository.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a note repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Create stores a note under its owning item.
func (r *Repo) Create(ctx context.Context, n *domain.Note) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal note: %w", err)
	}
	if err := r.store.JSONSet(ctx, r.noteKey(n.ItemID, n.ID), "$", data); err != nil {
		return fmt.Errorf("store note %s: %w", n.ID, err)
	}
	return nil
}

// ListByItem returns all notes for an item, newest first.
func (r *Repo) ListByItem(ctx context.Context, itemID string) ([]domain.Note, error) {
	keys, err := r.store.Scan(ctx, r.noteKey(itemID, "*"))
	if err != nil {
		return nil, fmt.Errorf("scan notes for %s: %w", itemID, err)
	}

	notes := make([]domain.Note, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.JSONGet(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue // removed between SCAN and JSON.GET
			}
			return nil, fmt.Errorf("fetch note %s: %w", key, err)
		}
		var n domain.Note
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, fmt.Errorf("unmarshal note %s: %w", key, err)
		}
		notes = append(notes, n)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

// Delete removes a note from an item.
func (r *Repo) Delete(ctx context.Context, itemID, noteID string) error {
	key := r.noteKey(itemID, noteID)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check note %s: %w", noteID, err)
	}
	if !exists {
		return domain.ErrNoteNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("delete note %s: %w", noteID, err)
	}
	return nil
}

// DeleteByItem removes every note attached to an item.
func (r *Repo) DeleteByItem(ctx context.Context, itemID string) error {
	keys, err := r.store.Scan(ctx, r.noteKey(itemID, "*"))
	if err != nil {
		return fmt.Errorf("scan notes for %s: %w", itemID, err)
	}
	for _, key := range keys {
		if err := r.store.Del(ctx, key); err != nil {
			return fmt.Errorf("delete note %s: %w", key, err)
		}
	}
	return nil
}

func (r *Repo) noteKey(itemID, noteID string) string {
	return r.keyPrefix + "note:" + itemID + ":" + noteID
}
