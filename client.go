// Package inventa is the in-process SDK: it wires the storage,
// classification and usecase layers into a single client without the
// HTTP transport.
package inventa

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/inventa-app/inventa/internal/classify"
	"github.com/inventa-app/inventa/internal/db"
	dbRedis "github.com/inventa-app/inventa/internal/db/redis"
	itemrepo "github.com/inventa-app/inventa/internal/repository/item"
	noterepo "github.com/inventa-app/inventa/internal/repository/note"
	itemuc "github.com/inventa-app/inventa/internal/usecase/item"
	noteuc "github.com/inventa-app/inventa/internal/usecase/note"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the inventa SDK entry point.
type Client struct {
	store   db.Store
	itemSvc *itemuc.Service
	noteSvc *noteuc.Service
}

// New creates an inventa Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:        "inventa:",
		readinessTimeout: defaultReadinessTimeout,
		logger:           zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("inventa: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("inventa: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("inventa: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	itemRepo := itemrepo.New(store, cfg.keyPrefix)
	noteRepo := noterepo.New(store, cfg.keyPrefix)

	// With no generative tiers configured the pipeline still works:
	// classification degrades straight to the deterministic synthesizer.
	pipeline := classify.NewPipeline(cfg.logger, cfg.generators...)

	return &Client{
		store:   store,
		itemSvc: itemuc.New(itemRepo, pipeline, noteRepo),
		noteSvc: noteuc.New(noteRepo, itemRepo),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Items returns the item service.
func (c *Client) Items() *ItemService {
	return &ItemService{svc: c.itemSvc}
}

// Notes returns the note service.
func (c *Client) Notes() *NoteService {
	return &NoteService{svc: c.noteSvc}
}

// generatorAdapter wraps a public Generator to satisfy classify.Generator.
type generatorAdapter struct {
	inner Generator
}

func (a *generatorAdapter) Name() string { return a.inner.Name() }

func (a *generatorAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := a.inner.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return out, nil
}
