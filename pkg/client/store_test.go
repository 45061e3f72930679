package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notestash/notestash/internal/apperr"
	"github.com/notestash/notestash/internal/auth"
	"github.com/notestash/notestash/internal/handlers"
	"github.com/notestash/notestash/internal/models"
	"github.com/notestash/notestash/internal/scrape"
	"github.com/notestash/notestash/internal/storage"
)

// newTestServer runs the real API against in-memory storage and returns a
// client logged in as a fresh account.
func newTestServer(t *testing.T) *Client {
	t.Helper()
	router := handlers.NewRouter(handlers.RouterDeps{
		Store:  storage.NewMemoryStorage(),
		JWT:    auth.NewJWTService("test-secret", time.Hour),
		Titles: scrape.NewTitleFetcher(2 * time.Second),
		Logger: zap.NewNop(),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	c := New(srv.URL+"/api", "")
	token, err := c.Signup(context.Background(), "Test User", "test@example.com", "hunter22")
	require.NoError(t, err)
	c.SetToken(token)
	return c
}

func TestSignupAndLoginFlow(t *testing.T) {
	c := newTestServer(t)

	fresh := New(c.baseURL, "")
	token, err := fresh.Login(context.Background(), "test@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = fresh.Login(context.Background(), "test@example.com", "wrong")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = fresh.Signup(context.Background(), "Other", "test@example.com", "pw")
	assert.ErrorIs(t, err, apperr.ErrEmailTaken)
}

func TestNoteStoreCreateRefreshesList(t *testing.T) {
	c := newTestServer(t)
	store := NewNoteStore(c)
	ctx := context.Background()

	created, err := store.Create(ctx, NoteDraft{Title: "Welcome", Content: "Hello", Tags: []string{"demo"}})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// The local set was re-fetched as part of Create.
	require.Len(t, store.Items(), 1)
	assert.Equal(t, created.ID, store.Items()[0].ID)
}

func TestNoteStoreListUsesActiveFilter(t *testing.T) {
	c := newTestServer(t)
	store := NewNoteStore(c)
	ctx := context.Background()

	_, err := store.Create(ctx, NoteDraft{Title: "Welcome", Content: "Hello", Tags: []string{"demo"}})
	require.NoError(t, err)

	store.SetSearchTerm("hello")
	notes, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	store.SetSearchTerm("zzz")
	notes, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	// A mutation under an active filter re-fetches with that filter, so a
	// non-matching create leaves the visible set empty.
	_, err = store.Create(ctx, NoteDraft{Title: "Other", Content: "thing"})
	require.NoError(t, err)
	assert.Empty(t, store.Items())
}

func TestNoteStoreOrdering(t *testing.T) {
	c := newTestServer(t)
	store := NewNoteStore(c)
	ctx := context.Background()

	first, err := store.Create(ctx, NoteDraft{Title: "first", Content: "x"})
	require.NoError(t, err)
	_, err = store.Create(ctx, NoteDraft{Title: "second", Content: "x"})
	require.NoError(t, err)

	require.Len(t, store.Items(), 2)
	assert.Equal(t, "second", store.Items()[0].Title)

	content := "touched"
	_, err = store.Update(ctx, first.ID, models.NotePatch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "first", store.Items()[0].Title)
}

func TestToggleFavoriteIsIdempotentInPairs(t *testing.T) {
	c := newTestServer(t)
	store := NewNoteStore(c)
	ctx := context.Background()

	note, err := store.Create(ctx, NoteDraft{Title: "t", Content: "c"})
	require.NoError(t, err)
	require.False(t, note.Favorite)

	require.NoError(t, store.ToggleFavorite(ctx, note.ID))
	assert.True(t, store.Items()[0].Favorite)

	require.NoError(t, store.ToggleFavorite(ctx, note.ID))
	assert.False(t, store.Items()[0].Favorite)
}

func TestToggleFavoriteUnknownIDIsNoOp(t *testing.T) {
	c := newTestServer(t)
	store := NewNoteStore(c)
	ctx := context.Background()

	note, err := store.Create(ctx, NoteDraft{Title: "t", Content: "c"})
	require.NoError(t, err)

	// An id missing from the local set is silently ignored.
	require.NoError(t, store.ToggleFavorite(ctx, "no-such-id"))

	got, err := store.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.False(t, got.Favorite)
}

func TestRemoveRefreshesList(t *testing.T) {
	c := newTestServer(t)
	store := NewNoteStore(c)
	ctx := context.Background()

	note, err := store.Create(ctx, NoteDraft{Title: "t", Content: "c"})
	require.NoError(t, err)
	require.Len(t, store.Items(), 1)

	require.NoError(t, store.Remove(ctx, note.ID))
	assert.Empty(t, store.Items())
}

func TestErrorMapping(t *testing.T) {
	c := newTestServer(t)
	store := NewNoteStore(c)
	ctx := context.Background()

	_, err := store.Create(ctx, NoteDraft{Title: "missing content"})
	assert.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)

	_, err = store.Get(ctx, "no-such-id")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = store.Remove(ctx, "no-such-id")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBookmarkStoreRoundTrip(t *testing.T) {
	c := newTestServer(t)
	store := NewBookmarkStore(c)
	ctx := context.Background()

	created, err := store.Create(ctx, BookmarkDraft{
		URL:         "https://example.com",
		Title:       "Example",
		Description: "reference",
		Tags:        []string{"ref"},
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got.URL)
	assert.Equal(t, "Example", got.Title)
	assert.Equal(t, []string{"ref"}, got.Tags)

	store.SetSelectedTags([]string{"ref"})
	bookmarks, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, bookmarks, 1)

	require.NoError(t, store.ToggleFavorite(ctx, created.ID))
	assert.True(t, store.Items()[0].Favorite)
}
