package client

import (
	"context"
	"net/http"

	"github.com/notestash/notestash/internal/models"
	"github.com/notestash/notestash/internal/query"
)

// Entity is a record the resource stores can hold.
type Entity interface {
	EntityID() string
	IsFavorite() bool
}

// NoteDraft holds the fields sent when creating a note.
type NoteDraft struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Favorite bool     `json:"favorite"`
}

// BookmarkDraft holds the fields sent when creating a bookmark. Title may be
// empty; the server derives it from the page.
type BookmarkDraft struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Favorite    bool     `json:"favorite"`
}

// ResourceStore holds the current result set for one resource along with the
// active filter. Every mutation re-fetches the list with that filter, so the
// visible set always reflects server truth after the call returns.
//
// The store mirrors a UI event loop: it is not safe for concurrent use, and
// when callers overlap requests anyway the last response to arrive wins.
type ResourceStore[T Entity, D any, P any] struct {
	client   *Client
	resource string
	items    []T
	filter   query.Filter

	favoritePatch func(favorite bool) P
}

type NoteStore = ResourceStore[models.Note, NoteDraft, models.NotePatch]

type BookmarkStore = ResourceStore[models.Bookmark, BookmarkDraft, models.BookmarkPatch]

func NewNoteStore(c *Client) *NoteStore {
	return &NoteStore{
		client:   c,
		resource: "notes",
		favoritePatch: func(favorite bool) models.NotePatch {
			return models.NotePatch{Favorite: &favorite}
		},
	}
}

func NewBookmarkStore(c *Client) *BookmarkStore {
	return &BookmarkStore{
		client:   c,
		resource: "bookmarks",
		favoritePatch: func(favorite bool) models.BookmarkPatch {
			return models.BookmarkPatch{Favorite: &favorite}
		},
	}
}

// Items returns the result set from the most recent fetch.
func (s *ResourceStore[T, D, P]) Items() []T { return s.items }

func (s *ResourceStore[T, D, P]) SetSearchTerm(term string) { s.filter.Search = term }

func (s *ResourceStore[T, D, P]) SetSelectedTags(tags []string) { s.filter.Tags = tags }

func (s *ResourceStore[T, D, P]) SetFavoritesOnly(v bool) { s.filter.FavoritesOnly = v }

// List fetches entities matching the active filter, sorted most recently
// updated first, and replaces the local set.
func (s *ResourceStore[T, D, P]) List(ctx context.Context) ([]T, error) {
	path := "/" + s.resource
	if encoded := s.filter.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var items []T
	if err := s.client.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	s.items = items
	return items, nil
}

// Get fetches a single entity by id.
func (s *ResourceStore[T, D, P]) Get(ctx context.Context, id string) (T, error) {
	var item T
	err := s.client.do(ctx, http.MethodGet, "/"+s.resource+"/"+id, nil, &item)
	return item, err
}

// Create stores a new entity, then re-fetches the list.
func (s *ResourceStore[T, D, P]) Create(ctx context.Context, draft D) (T, error) {
	var created T
	if err := s.client.do(ctx, http.MethodPost, "/"+s.resource, draft, &created); err != nil {
		return created, err
	}
	_, err := s.List(ctx)
	return created, err
}

// Update applies a partial update, then re-fetches the list.
func (s *ResourceStore[T, D, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	var updated T
	if err := s.client.do(ctx, http.MethodPut, "/"+s.resource+"/"+id, patch, &updated); err != nil {
		return updated, err
	}
	_, err := s.List(ctx)
	return updated, err
}

// Remove deletes an entity, then re-fetches the list.
func (s *ResourceStore[T, D, P]) Remove(ctx context.Context, id string) error {
	if err := s.client.do(ctx, http.MethodDelete, "/"+s.resource+"/"+id, nil, nil); err != nil {
		return err
	}
	_, err := s.List(ctx)
	return err
}

// ToggleFavorite inverts the favorite flag of an entity in the local set. An
// id not present locally is silently ignored.
func (s *ResourceStore[T, D, P]) ToggleFavorite(ctx context.Context, id string) error {
	for _, item := range s.items {
		if item.EntityID() == id {
			_, err := s.Update(ctx, id, s.favoritePatch(!item.IsFavorite()))
			return err
		}
	}
	return nil
}

// SuggestTags asks the server for tag suggestions for an entity.
func (s *ResourceStore[T, D, P]) SuggestTags(ctx context.Context, id string) ([]string, error) {
	var resp struct {
		Tags []string `json:"tags"`
	}
	err := s.client.do(ctx, http.MethodPost, "/"+s.resource+"/"+id+"/tags/suggest", nil, &resp)
	return resp.Tags, err
}
