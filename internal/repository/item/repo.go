// Package item persists inventory items as flattened Redis hashes.
package item

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/inventa-app/inventa/internal/db"
	"github.com/inventa-app/inventa/internal/domain"
)

// store is the consumer interface for items (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Repo implements usecase/item.Repository.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates an item repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Create stores an item. Last writer wins; no revision tracking.
func (r *Repo) Create(ctx context.Context, it *domain.Item) error {
	fields, err := buildHashFields(it)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, r.itemKey(it.ID), fields); err != nil {
		return fmt.Errorf("store item %s: %w", it.ID, err)
	}
	return nil
}

// Get returns an item by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.Item, error) {
	m, err := r.store.HGetAll(ctx, r.itemKey(id))
	if err != nil {
		return domain.Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	// HGETALL on a missing key is an empty map, not an error.
	if len(m) == 0 {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return parseHashFields(id, m)
}

// Update overwrites an item's fields. The item must already exist.
func (r *Repo) Update(ctx context.Context, it *domain.Item) error {
	key := r.itemKey(it.ID)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check item %s: %w", it.ID, err)
	}
	if !exists {
		return domain.ErrItemNotFound
	}

	fields, err := buildHashFields(it)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("update item %s: %w", it.ID, err)
	}
	return nil
}

// Delete removes an item.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.itemKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check item %s: %w", id, err)
	}
	if !exists {
		return domain.ErrItemNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

// ListAll returns every stored item, newest first.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Item, error) {
	keys, err := r.store.Scan(ctx, r.itemKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}

	items := make([]domain.Item, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 {
			continue // expired between SCAN and HGETALL
		}
		it, err := parseHashFields(r.itemID(keys[i]), m)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Count returns the number of stored items.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.itemKey("*"))
	if err != nil {
		return 0, fmt.Errorf("scan items: %w", err)
	}
	return len(keys), nil
}

// RememberImage records which item a capture image produced, so retried
// uploads resolve to the same item. The mapping expires after ttl.
func (r *Repo) RememberImage(ctx context.Context, imageID, itemID string, ttl time.Duration) error {
	if err := r.store.SetWithTTL(ctx, r.imageKey(imageID), []byte(itemID), ttl); err != nil {
		return fmt.Errorf("remember image %s: %w", imageID, err)
	}
	return nil
}

// LookupImage returns the item ID previously recorded for a capture image.
// Returns ErrItemNotFound when no mapping exists or it has expired.
func (r *Repo) LookupImage(ctx context.Context, imageID string) (string, error) {
	data, err := r.store.Get(ctx, r.imageKey(imageID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", domain.ErrItemNotFound
		}
		return "", fmt.Errorf("lookup image %s: %w", imageID, err)
	}
	return string(data), nil
}

func (r *Repo) itemKey(id string) string {
	return r.keyPrefix + "item:" + id
}

func (r *Repo) itemID(key string) string {
	return strings.TrimPrefix(key, r.keyPrefix+"item:")
}

func (r *Repo) imageKey(imageID string) string {
	return r.keyPrefix + "image:" + imageID
}
