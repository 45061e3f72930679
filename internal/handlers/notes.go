package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/notestash/notestash/internal/apperr"
	"github.com/notestash/notestash/internal/auth"
	"github.com/notestash/notestash/internal/classifier"
	"github.com/notestash/notestash/internal/models"
	"github.com/notestash/notestash/internal/query"
	"github.com/notestash/notestash/internal/storage"
)

type NotesHandler struct {
	store     storage.Storage
	suggester classifier.Suggester
	logger    *zap.Logger
}

func NewNotesHandler(store storage.Storage, suggester classifier.Suggester, logger *zap.Logger) *NotesHandler {
	return &NotesHandler{store: store, suggester: suggester, logger: logger}
}

type createNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Favorite bool     `json:"favorite"`
}

func (req createNoteRequest) validate() error {
	fields := map[string]string{}
	if req.Title == "" {
		fields["title"] = "required"
	}
	if req.Content == "" {
		fields["content"] = "required"
	}
	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}

func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, h.logger, err)
		return
	}

	note := &models.Note{
		UserID:   auth.GetUserIDFromContext(r.Context()),
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Favorite: req.Favorite,
	}
	if err := h.store.CreateNote(r.Context(), note); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())
	filter := query.ParseValues(r.URL.Query())

	notes, err := h.store.ListNotes(r.Context(), userID, filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, notes)
}

func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())
	note, err := h.store.GetNote(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.NotePatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if patch.Title != nil && *patch.Title == "" {
		respondError(w, h.logger, apperr.Validation("title", "must not be empty"))
		return
	}
	if patch.Content != nil && *patch.Content == "" {
		respondError(w, h.logger, apperr.Validation("content", "must not be empty"))
		return
	}

	userID := auth.GetUserIDFromContext(r.Context())
	note, err := h.store.UpdateNote(r.Context(), mux.Vars(r)["id"], userID, patch)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())
	if err := h.store.DeleteNote(r.Context(), mux.Vars(r)["id"], userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "note deleted"})
}

// SuggestTags asks the configured classifier for tags describing the note.
// Answers 503 when no classifier is configured.
func (h *NotesHandler) SuggestTags(w http.ResponseWriter, r *http.Request) {
	if h.suggester == nil {
		respondError(w, h.logger, apperr.ErrUnavailable)
		return
	}

	userID := auth.GetUserIDFromContext(r.Context())
	note, err := h.store.GetNote(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	tags, err := h.suggester.SuggestTags(r.Context(), strings.Join([]string{note.Title, note.Content}, "\n\n"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"tags": tags})
}
