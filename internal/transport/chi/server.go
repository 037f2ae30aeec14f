// Package chi exposes the inventory API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/inventa-app/inventa/internal/domain"
	healthuc "github.com/inventa-app/inventa/internal/usecase/health"
	itemuc "github.com/inventa-app/inventa/internal/usecase/item"
	noteuc "github.com/inventa-app/inventa/internal/usecase/note"
)

// Error codes returned in the response body.
const (
	codeBadRequest            = "bad_request"
	codeValidationFailed      = "validation_failed"
	codeItemNotFound          = "item_not_found"
	codeNoteNotFound          = "note_not_found"
	codeGenerationFailed      = "generation_failed"
	codeCapabilityUnavailable = "capability_unavailable"
	codeInternalError         = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the item and note usecases to the chi router.
type Server struct {
	items         *itemuc.Service
	notes         *noteuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	items *itemuc.Service,
	notes *noteuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		items:  items,
		notes:  notes,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrItemNotFound, http.StatusNotFound, codeItemNotFound),
		sentinelHandler(domain.ErrNoteNotFound, http.StatusNotFound, codeNoteNotFound),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrValidationFailed, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrCapabilityUnavailable, http.StatusServiceUnavailable, codeCapabilityUnavailable),
		sentinelHandler(domain.ErrGenerationFailed, http.StatusBadGateway, codeGenerationFailed),
	}
	return s
}

// Routes registers all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1/items", func(r chi.Router) {
		r.Post("/", s.CaptureItem)
		r.Get("/", s.SearchItems)
		r.Get("/count", s.CountItems)

		r.Route("/{itemID}", func(r chi.Router) {
			r.Get("/", s.GetItem)
			r.Patch("/", s.UpdateItem)
			r.Delete("/", s.DeleteItem)

			r.Post("/notes", s.AddNote)
			r.Get("/notes", s.ListNotes)
			r.Delete("/notes/{noteID}", s.DeleteNote)
		})
	})
}

// --- wire types ---

type visionObjectDTO struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type visionDTO struct {
	Objects []visionObjectDTO `json:"objects"`
	OCRText string            `json:"ocr_text"`
	Colors  []string          `json:"colors"`
}

type captureRequest struct {
	Vision     visionDTO `json:"vision"`
	Hint       string    `json:"hint"`
	Collection string    `json:"collection"`
	Quantity   int       `json:"quantity"`
	ImageID    string    `json:"image_id"`
}

type updateItemRequest struct {
	Title      *string                     `json:"title"`
	Summary    *string                     `json:"summary"`
	Category   *string                     `json:"category"`
	Tags       *[]string                   `json:"tags"`
	Attributes map[string]domain.AttrValue `json:"attributes"`
	Collection *string                     `json:"collection"`
	Quantity   *int                        `json:"quantity"`
}

type itemResponse struct {
	ID         string                      `json:"id"`
	Title      string                      `json:"title"`
	Summary    string                      `json:"summary"`
	Category   string                      `json:"category"`
	Tags       []string                    `json:"tags"`
	Attributes map[string]domain.AttrValue `json:"attributes,omitempty"`
	Collection string                      `json:"collection,omitempty"`
	Quantity   int                         `json:"quantity"`
	ImageID    string                      `json:"image_id,omitempty"`
	OCRText    string                      `json:"ocr_text,omitempty"`
	Colors     []string                    `json:"colors,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
}

type itemListResponse struct {
	Items []itemResponse `json:"items"`
	Total int            `json:"total"`
}

type countResponse struct {
	Count int `json:"count"`
}

type addNoteRequest struct {
	Text string `json:"text"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type noteListResponse struct {
	Items []noteResponse `json:"items"`
	Total int            `json:"total"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func itemToResponse(it *domain.Item) itemResponse {
	return itemResponse{
		ID:         it.ID,
		Title:      it.Title,
		Summary:    it.Summary,
		Category:   it.Category,
		Tags:       it.Tags,
		Attributes: it.Attributes,
		Collection: it.Collection,
		Quantity:   it.Quantity,
		ImageID:    it.ImageID,
		OCRText:    it.OCRText,
		Colors:     it.Colors,
		CreatedAt:  it.CreatedAt,
	}
}

func noteToResponse(n *domain.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		ItemID:    n.ItemID,
		Text:      n.Text,
		CreatedAt: n.CreatedAt,
	}
}

// --- handlers ---

// CaptureItem handles POST /v1/items.
func (s *Server) CaptureItem(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	vision := domain.VisionSummary{
		OCRText: req.Vision.OCRText,
		Colors:  req.Vision.Colors,
	}
	for _, o := range req.Vision.Objects {
		vision.Objects = append(vision.Objects, domain.DetectedObject{
			Label:      o.Label,
			Confidence: o.Confidence,
		})
	}

	it, err := s.items.Capture(r.Context(), itemuc.CaptureInput{
		Vision:     vision,
		Hint:       req.Hint,
		Collection: req.Collection,
		Quantity:   req.Quantity,
		ImageID:    req.ImageID,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/v1/items/"+it.ID)
	writeJSON(w, http.StatusCreated, itemToResponse(&it))
}

// SearchItems handles GET /v1/items.
func (s *Server) SearchItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	category := q.Get("category")
	if category == "" {
		category = "all"
	}
	collection := q.Get("collection")
	if collection == "" {
		collection = "all"
	}

	items, err := s.items.Search(r.Context(), category, collection, q.Get("q"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := itemListResponse{Items: make([]itemResponse, len(items)), Total: len(items)}
	for i := range items {
		resp.Items[i] = itemToResponse(&items[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// CountItems handles GET /v1/items/count.
func (s *Server) CountItems(w http.ResponseWriter, r *http.Request) {
	count, err := s.items.Count(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

// GetItem handles GET /v1/items/{itemID}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	it, err := s.items.Get(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToResponse(&it))
}

// UpdateItem handles PATCH /v1/items/{itemID}.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	it, err := s.items.Update(r.Context(), chi.URLParam(r, "itemID"), itemuc.UpdateInput{
		Title:      req.Title,
		Summary:    req.Summary,
		Category:   req.Category,
		Tags:       req.Tags,
		Attributes: req.Attributes,
		Collection: req.Collection,
		Quantity:   req.Quantity,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToResponse(&it))
}

// DeleteItem handles DELETE /v1/items/{itemID}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.items.Delete(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddNote handles POST /v1/items/{itemID}/notes.
func (s *Server) AddNote(w http.ResponseWriter, r *http.Request) {
	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	n, err := s.notes.Add(r.Context(), chi.URLParam(r, "itemID"), req.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, noteToResponse(&n))
}

// ListNotes handles GET /v1/items/{itemID}/notes.
func (s *Server) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.notes.ListByItem(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := noteListResponse{Items: make([]noteResponse, len(notes)), Total: len(notes)}
	for i := range notes {
		resp.Items[i] = noteToResponse(&notes[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteNote handles DELETE /v1/items/{itemID}/notes/{noteID}.
func (s *Server) DeleteNote(w http.ResponseWriter, r *http.Request) {
	err := s.notes.Delete(r.Context(), chi.URLParam(r, "itemID"), chi.URLParam(r, "noteID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrItemNotFound,
		domain.ErrNoteNotFound,
		domain.ErrInvalidInput,
		domain.ErrValidationFailed,
		domain.ErrCapabilityUnavailable,
		domain.ErrGenerationFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
