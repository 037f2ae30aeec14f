package item

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inventa-app/inventa/internal/domain"
)

type fakeRepo struct {
	items  map[string]domain.Item
	images map[string]string
	err    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:  make(map[string]domain.Item),
		images: make(map[string]string),
	}
}

func (f *fakeRepo) Create(_ context.Context, it *domain.Item) error {
	if f.err != nil {
		return f.err
	}
	f.items[it.ID] = *it
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id string) (domain.Item, error) {
	if f.err != nil {
		return domain.Item{}, f.err
	}
	it, ok := f.items[id]
	if !ok {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return it, nil
}

func (f *fakeRepo) Update(_ context.Context, it *domain.Item) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.items[it.ID]; !ok {
		return domain.ErrItemNotFound
	}
	f.items[it.ID] = *it
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) ListAll(_ context.Context) ([]domain.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Item, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it)
	}
	return out, nil
}

func (f *fakeRepo) Count(_ context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.items), nil
}

func (f *fakeRepo) RememberImage(_ context.Context, imageID, itemID string, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.images[imageID] = itemID
	return nil
}

func (f *fakeRepo) LookupImage(_ context.Context, imageID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	id, ok := f.images[imageID]
	if !ok {
		return "", domain.ErrItemNotFound
	}
	return id, nil
}

type fakeClassifier struct {
	record domain.ItemRecord
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(_ context.Context, _ domain.VisionSummary, _ string) (domain.ItemRecord, error) {
	f.calls++
	return f.record, f.err
}

type fakeNoteRemover struct {
	deleted []string
	err     error
}

func (f *fakeNoteRemover) DeleteByItem(_ context.Context, itemID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, itemID)
	return nil
}

func validRecord() domain.ItemRecord {
	return domain.ItemRecord{
		Title:    "Blue Ceramic Mug",
		Summary:  "A blue ceramic coffee mug.",
		Category: "general",
		Tags:     []string{"blue", "ceramic", "mug", "kitchen", "drinkware"},
		Attributes: map[string]domain.AttrValue{
			"color": domain.StringAttr("blue"),
		},
	}
}

func TestCapture(t *testing.T) {
	repo := newFakeRepo()
	cls := &fakeClassifier{record: validRecord()}
	svc := New(repo, cls, &fakeNoteRemover{})

	in := CaptureInput{
		Vision: domain.VisionSummary{
			Objects: []domain.DetectedObject{{Label: "mug", Confidence: 0.9}},
			OCRText: "HANDMADE",
			Colors:  []string{"Blue"},
		},
		Hint:       "my favorite mug",
		Collection: "Kitchen",
		ImageID:    "img-1",
	}

	it, err := svc.Capture(context.Background(), in)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if it.ID == "" {
		t.Error("expected generated ID")
	}
	if it.Title != "Blue Ceramic Mug" {
		t.Errorf("Title = %q", it.Title)
	}
	if it.Collection != "Kitchen" || it.ImageID != "img-1" {
		t.Errorf("capture input not carried: %+v", it)
	}
	if it.OCRText != "HANDMADE" || len(it.Colors) != 1 {
		t.Errorf("vision fields not carried: %+v", it)
	}
	if it.Quantity != 1 {
		t.Errorf("Quantity = %d, want default 1", it.Quantity)
	}
	if it.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if _, ok := repo.items[it.ID]; !ok {
		t.Error("item not persisted")
	}
}

func TestCapture_IdempotentByImageID(t *testing.T) {
	repo := newFakeRepo()
	cls := &fakeClassifier{record: validRecord()}
	svc := New(repo, cls, &fakeNoteRemover{})

	in := CaptureInput{ImageID: "img-7", Collection: "Kitchen"}

	first, err := svc.Capture(context.Background(), in)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	second, err := svc.Capture(context.Background(), in)
	if err != nil {
		t.Fatalf("retried Capture: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("retry created a new item: %q vs %q", second.ID, first.ID)
	}
	if len(repo.items) != 1 {
		t.Errorf("expected 1 stored item, got %d", len(repo.items))
	}
	if cls.calls != 1 {
		t.Errorf("classifier called %d times, want 1", cls.calls)
	}
}

func TestCapture_NoImageIDNoDedup(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, &fakeClassifier{record: validRecord()}, &fakeNoteRemover{})

	a, _ := svc.Capture(context.Background(), CaptureInput{})
	b, _ := svc.Capture(context.Background(), CaptureInput{})

	if a.ID == b.ID {
		t.Error("captures without image ID must be independent")
	}
	if len(repo.images) != 0 {
		t.Errorf("unexpected image mappings: %v", repo.images)
	}
}

func TestCapture_ClassifierError(t *testing.T) {
	repo := newFakeRepo()
	cls := &fakeClassifier{err: domain.ErrGenerationFailed}
	svc := New(repo, cls, &fakeNoteRemover{})

	_, err := svc.Capture(context.Background(), CaptureInput{})
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Errorf("err = %v, want ErrGenerationFailed", err)
	}
	if len(repo.items) != 0 {
		t.Error("nothing should be persisted on classify failure")
	}
}

func TestGet(t *testing.T) {
	repo := newFakeRepo()
	repo.items["it-1"] = domain.Item{ID: "it-1", ItemRecord: validRecord()}
	svc := New(repo, &fakeClassifier{}, &fakeNoteRemover{})

	it, err := svc.Get(context.Background(), "it-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if it.ID != "it-1" {
		t.Errorf("ID = %q", it.ID)
	}

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSearch_Selectors(t *testing.T) {
	repo := newFakeRepo()
	rec := validRecord()
	rec.Category = "bags"
	repo.items["a"] = domain.Item{
		ID: "a", ItemRecord: rec, Collection: "Closet", CreatedAt: time.Now(),
	}
	repo.items["b"] = domain.Item{
		ID: "b", ItemRecord: validRecord(), Collection: "Kitchen", CreatedAt: time.Now(),
	}
	svc := New(repo, &fakeClassifier{}, &fakeNoteRemover{})

	got, err := svc.Search(context.Background(), "bags", "all", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("category selector: got %+v", got)
	}

	got, err = svc.Search(context.Background(), "all", "Kitchen", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("collection selector: got %+v", got)
	}
}

func TestSearch_UnknownCategory(t *testing.T) {
	svc := New(newFakeRepo(), &fakeClassifier{}, &fakeNoteRemover{})

	_, err := svc.Search(context.Background(), "spaceships", "all", "")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestUpdate_Partial(t *testing.T) {
	repo := newFakeRepo()
	repo.items["it-1"] = domain.Item{ID: "it-1", ItemRecord: validRecord(), Quantity: 1}
	svc := New(repo, &fakeClassifier{}, &fakeNoteRemover{})

	title := "Renamed Mug"
	qty := 3
	it, err := svc.Update(context.Background(), "it-1", UpdateInput{Title: &title, Quantity: &qty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if it.Title != "Renamed Mug" || it.Quantity != 3 {
		t.Errorf("update not applied: %+v", it)
	}
	if it.Summary != "A blue ceramic coffee mug." {
		t.Errorf("untouched field changed: %q", it.Summary)
	}
}

func TestUpdate_Invalid(t *testing.T) {
	repo := newFakeRepo()
	repo.items["it-1"] = domain.Item{ID: "it-1", ItemRecord: validRecord(), Quantity: 1}
	svc := New(repo, &fakeClassifier{}, &fakeNoteRemover{})

	category := "spaceships"
	if _, err := svc.Update(context.Background(), "it-1", UpdateInput{Category: &category}); err == nil {
		t.Error("expected validation error for unknown category")
	}

	tags := []string{"only", "two"}
	if _, err := svc.Update(context.Background(), "it-1", UpdateInput{Tags: &tags}); err == nil {
		t.Error("expected validation error for too few tags")
	}

	qty := 0
	if _, err := svc.Update(context.Background(), "it-1", UpdateInput{Quantity: &qty}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Error("expected ErrInvalidInput for non-positive quantity")
	}

	got := repo.items["it-1"]
	if got.Category != "general" || len(got.Tags) != 5 {
		t.Errorf("failed update must not persist: %+v", got)
	}
}

func TestDelete_RemovesNotes(t *testing.T) {
	repo := newFakeRepo()
	repo.items["it-1"] = domain.Item{ID: "it-1", ItemRecord: validRecord()}
	notes := &fakeNoteRemover{}
	svc := New(repo, &fakeClassifier{}, notes)

	if err := svc.Delete(context.Background(), "it-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(notes.deleted) != 1 || notes.deleted[0] != "it-1" {
		t.Errorf("notes not cleaned up: %v", notes.deleted)
	}

	if err := svc.Delete(context.Background(), "it-1"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
}

func TestCount(t *testing.T) {
	repo := newFakeRepo()
	repo.items["a"] = domain.Item{ID: "a"}
	repo.items["b"] = domain.Item{ID: "b"}
	svc := New(repo, &fakeClassifier{}, &fakeNoteRemover{})

	n, err := svc.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}
