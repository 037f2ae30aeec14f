package note

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inventa-app/inventa/internal/domain"
)

type fakeRepo struct {
	notes map[string][]domain.Note
	err   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{notes: make(map[string][]domain.Note)}
}

func (f *fakeRepo) Create(_ context.Context, n *domain.Note) error {
	if f.err != nil {
		return f.err
	}
	f.notes[n.ItemID] = append(f.notes[n.ItemID], *n)
	return nil
}

func (f *fakeRepo) ListByItem(_ context.Context, itemID string) ([]domain.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.notes[itemID], nil
}

func (f *fakeRepo) Delete(_ context.Context, itemID, noteID string) error {
	if f.err != nil {
		return f.err
	}
	for i, n := range f.notes[itemID] {
		if n.ID == noteID {
			f.notes[itemID] = append(f.notes[itemID][:i], f.notes[itemID][i+1:]...)
			return nil
		}
	}
	return domain.ErrNoteNotFound
}

type fakeItemReader struct {
	known map[string]bool
}

func (f *fakeItemReader) Get(_ context.Context, id string) (domain.Item, error) {
	if !f.known[id] {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return domain.Item{ID: id}, nil
}

func TestAdd(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, &fakeItemReader{known: map[string]bool{"it-1": true}})

	n, err := svc.Add(context.Background(), "it-1", "  Needs a new zipper.  ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if n.ID == "" {
		t.Error("expected generated ID")
	}
	if n.Text != "Needs a new zipper." {
		t.Errorf("Text = %q, want trimmed", n.Text)
	}
	if n.ItemID != "it-1" {
		t.Errorf("ItemID = %q", n.ItemID)
	}
	if n.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if len(repo.notes["it-1"]) != 1 {
		t.Error("note not persisted")
	}
}

func TestAdd_EmptyText(t *testing.T) {
	svc := New(newFakeRepo(), &fakeItemReader{known: map[string]bool{"it-1": true}})

	_, err := svc.Add(context.Background(), "it-1", "   ")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAdd_MissingItem(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, &fakeItemReader{known: map[string]bool{}})

	_, err := svc.Add(context.Background(), "ghost", "text")
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
	if len(repo.notes) != 0 {
		t.Error("nothing should be persisted")
	}
}

func TestListByItem(t *testing.T) {
	repo := newFakeRepo()
	repo.notes["it-1"] = []domain.Note{
		{ID: "n-1", ItemID: "it-1", Text: "first", CreatedAt: time.Now()},
	}
	svc := New(repo, &fakeItemReader{known: map[string]bool{"it-1": true}})

	notes, err := svc.ListByItem(context.Background(), "it-1")
	if err != nil {
		t.Fatalf("ListByItem: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != "n-1" {
		t.Errorf("got %+v", notes)
	}

	if _, err := svc.ListByItem(context.Background(), "ghost"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	repo.notes["it-1"] = []domain.Note{{ID: "n-1", ItemID: "it-1"}}
	svc := New(repo, &fakeItemReader{known: map[string]bool{"it-1": true}})

	if err := svc.Delete(context.Background(), "it-1", "n-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "it-1", "n-1"); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("err = %v, want ErrNoteNotFound", err)
	}
}
