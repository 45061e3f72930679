package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/notestash/notestash/internal/auth"
	"github.com/notestash/notestash/internal/classifier"
	"github.com/notestash/notestash/internal/middleware"
	"github.com/notestash/notestash/internal/scrape"
	"github.com/notestash/notestash/internal/storage"
)

// RouterDeps carries everything the API routes need. Suggester may be nil
// (tag suggestions answer 503) and AuthLimiter may be nil (no rate limit).
type RouterDeps struct {
	Store       storage.Storage
	JWT         *auth.JWTService
	Titles      *scrape.TitleFetcher
	Suggester   classifier.Suggester
	AuthLimiter *middleware.RateLimiter
	Logger      *zap.Logger
}

// NewRouter builds the /api route tree: open auth endpoints, everything else
// behind the bearer-token middleware.
func NewRouter(deps RouterDeps) *mux.Router {
	authHandler := NewAuthHandler(deps.Store, deps.JWT, deps.Logger)
	notesHandler := NewNotesHandler(deps.Store, deps.Suggester, deps.Logger)
	bookmarksHandler := NewBookmarksHandler(deps.Store, deps.Titles, deps.Suggester, deps.Logger)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	authRoutes := api.PathPrefix("/auth").Subrouter()
	if deps.AuthLimiter != nil {
		authRoutes.Use(deps.AuthLimiter.Limit)
	}
	authRoutes.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(auth.JWTMiddleware(deps.JWT))

	protected.HandleFunc("/notes", notesHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/notes", notesHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/notes/{id}", notesHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/notes/{id}", notesHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/notes/{id}", notesHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/notes/{id}/tags/suggest", notesHandler.SuggestTags).Methods(http.MethodPost)

	protected.HandleFunc("/bookmarks", bookmarksHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/bookmarks", bookmarksHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/bookmarks/{id}", bookmarksHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/bookmarks/{id}", bookmarksHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/bookmarks/{id}", bookmarksHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/bookmarks/{id}/tags/suggest", bookmarksHandler.SuggestTags).Methods(http.MethodPost)

	return r
}
