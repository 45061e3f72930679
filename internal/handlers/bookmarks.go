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
	"github.com/notestash/notestash/internal/scrape"
	"github.com/notestash/notestash/internal/storage"
)

type BookmarksHandler struct {
	store     storage.Storage
	titles    *scrape.TitleFetcher
	suggester classifier.Suggester
	logger    *zap.Logger
}

func NewBookmarksHandler(store storage.Storage, titles *scrape.TitleFetcher, suggester classifier.Suggester, logger *zap.Logger) *BookmarksHandler {
	return &BookmarksHandler{store: store, titles: titles, suggester: suggester, logger: logger}
}

type createBookmarkRequest struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Favorite    bool     `json:"favorite"`
}

func (req createBookmarkRequest) validate() error {
	if req.URL == "" {
		return apperr.Validation("url", "required")
	}
	if !models.ValidBookmarkURL(req.URL) {
		return apperr.Validation("url", "not a valid URL")
	}
	return nil
}

func (h *BookmarksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookmarkRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, h.logger, err)
		return
	}

	// A missing title is derived from the page itself; scrape failures
	// degrade to an empty title rather than failing the create.
	if req.Title == "" && h.titles != nil {
		req.Title = h.titles.FetchTitle(r.Context(), req.URL)
	}

	bookmark := &models.Bookmark{
		UserID:      auth.GetUserIDFromContext(r.Context()),
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Favorite:    req.Favorite,
	}
	if err := h.store.CreateBookmark(r.Context(), bookmark); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, bookmark)
}

func (h *BookmarksHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())
	filter := query.ParseValues(r.URL.Query())

	bookmarks, err := h.store.ListBookmarks(r.Context(), userID, filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, bookmarks)
}

func (h *BookmarksHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())
	bookmark, err := h.store.GetBookmark(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, bookmark)
}

func (h *BookmarksHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.BookmarkPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if patch.URL != nil && !models.ValidBookmarkURL(*patch.URL) {
		respondError(w, h.logger, apperr.Validation("url", "not a valid URL"))
		return
	}

	userID := auth.GetUserIDFromContext(r.Context())
	bookmark, err := h.store.UpdateBookmark(r.Context(), mux.Vars(r)["id"], userID, patch)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, bookmark)
}

func (h *BookmarksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())
	if err := h.store.DeleteBookmark(r.Context(), mux.Vars(r)["id"], userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "bookmark deleted"})
}

func (h *BookmarksHandler) SuggestTags(w http.ResponseWriter, r *http.Request) {
	if h.suggester == nil {
		respondError(w, h.logger, apperr.ErrUnavailable)
		return
	}

	userID := auth.GetUserIDFromContext(r.Context())
	bookmark, err := h.store.GetBookmark(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	content := strings.Join([]string{bookmark.Title, bookmark.Description, bookmark.URL}, "\n")
	tags, err := h.suggester.SuggestTags(r.Context(), content)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"tags": tags})
}
