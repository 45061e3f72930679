package handlers

import (
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notestash/notestash/internal/models"
)

func createNote(t *testing.T, router *mux.Router, token string, body map[string]interface{}) models.Note {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/api/notes", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var note models.Note
	decodeBody(t, rec, &note)
	require.NotEmpty(t, note.ID)
	return note
}

func TestCreateNoteValidation(t *testing.T) {
	router := newTestRouter(t)
	token := signupUser(t, router, "a@example.com")

	rec := doRequest(t, router, http.MethodPost, "/api/notes", token, map[string]interface{}{
		"title": "no content",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/notes", token, map[string]interface{}{
		"content": "no title",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAndReadNote(t *testing.T) {
	router := newTestRouter(t)
	token := signupUser(t, router, "a@example.com")

	created := createNote(t, router, token, map[string]interface{}{
		"title":   "Welcome",
		"content": "Hello",
		"tags":    []string{"demo"},
	})

	rec := doRequest(t, router, http.MethodGet, "/api/notes/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var note models.Note
	decodeBody(t, rec, &note)
	assert.Equal(t, "Welcome", note.Title)
	assert.Equal(t, "Hello", note.Content)
	assert.Equal(t, []string{"demo"}, note.Tags)
	assert.False(t, note.CreatedAt.IsZero())
	assert.False(t, note.UpdatedAt.IsZero())
}

func TestListNotesSearchScenario(t *testing.T) {
	router := newTestRouter(t)
	token := signupUser(t, router, "a@example.com")

	createNote(t, router, token, map[string]interface{}{
		"title":   "Welcome",
		"content": "Hello",
		"tags":    []string{"demo"},
	})

	var notes []models.Note
	rec := doRequest(t, router, http.MethodGet, "/api/notes?q=hello", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, "Welcome", notes[0].Title)

	rec = doRequest(t, router, http.MethodGet, "/api/notes?q=zzz", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &notes)
	assert.Empty(t, notes)
}

func TestListNotesTagIntersection(t *testing.T) {
	router := newTestRouter(t)
	token := signupUser(t, router, "a@example.com")

	createNote(t, router, token, map[string]interface{}{
		"title": "both", "content": "x", "tags": []string{"work", "urgent"},
	})
	createNote(t, router, token, map[string]interface{}{
		"title": "only work", "content": "x", "tags": []string{"work"},
	})

	var notes []models.Note
	rec := doRequest(t, router, http.MethodGet, "/api/notes?tags=work,urgent", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, "both", notes[0].Title)
}

func TestFavoriteFilterScenario(t *testing.T) {
	router := newTestRouter(t)
	token := signupUser(t, router, "a@example.com")

	note := createNote(t, router, token, map[string]interface{}{
		"title": "x", "content": "y",
	})

	rec := doRequest(t, router, http.MethodPut, "/api/notes/"+note.ID, token, map[string]interface{}{
		"favorite": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var notes []models.Note
	rec = doRequest(t, router, http.MethodGet, "/api/notes?favorite=true", token, nil)
	decodeBody(t, rec, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, note.ID, notes[0].ID)

	rec = doRequest(t, router, http.MethodPut, "/api/notes/"+note.ID, token, map[string]interface{}{
		"favorite": false,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/notes?favorite=true", token, nil)
	decodeBody(t, rec, &notes)
	assert.Empty(t, notes)
}

func TestUpdateNotePartialAndValidation(t *testing.T) {
	router := newTestRouter(t)
	token := signupUser(t, router, "a@example.com")

	note := createNote(t, router, token, map[string]interface{}{
		"title": "original", "content": "body",
	})

	rec := doRequest(t, router, http.MethodPut, "/api/notes/"+note.ID, token, map[string]interface{}{
		"title": "renamed",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Note
	decodeBody(t, rec, &updated)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "body", updated.Content)

	// Emptying a required field is rejected.
	rec = doRequest(t, router, http.MethodPut, "/api/notes/"+note.ID, token, map[string]interface{}{
		"title": "",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNoteOwnershipHiddenAcrossUsers(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := signupUser(t, router, "alice@example.com")
	bobToken := signupUser(t, router, "bob@example.com")

	note := createNote(t, router, aliceToken, map[string]interface{}{
		"title": "secret", "content": "mine",
	})

	rec := doRequest(t, router, http.MethodGet, "/api/notes/"+note.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/api/notes/"+note.ID, bobToken, map[string]interface{}{
		"title": "stolen",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/notes/"+note.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Wrong owner and wrong id answer identically.
	missing := doRequest(t, router, http.MethodGet, "/api/notes/no-such-id", bobToken, nil)
	wrongOwner := doRequest(t, router, http.MethodGet, "/api/notes/"+note.ID, bobToken, nil)
	assert.Equal(t, missing.Body.String(), wrongOwner.Body.String())
}

func TestDeleteNote(t *testing.T) {
	router := newTestRouter(t)
	token := signupUser(t, router, "a@example.com")

	note := createNote(t, router, token, map[string]interface{}{
		"title": "x", "content": "y",
	})

	rec := doRequest(t, router, http.MethodDelete, "/api/notes/"+note.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"note deleted"}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodDelete, "/api/notes/"+note.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListNotesOrderedByUpdatedAtDesc(t *testing.T) {
	router := newTestRouter(t)
	token := signupUser(t, router, "a@example.com")

	first := createNote(t, router, token, map[string]interface{}{"title": "first", "content": "x"})
	createNote(t, router, token, map[string]interface{}{"title": "second", "content": "x"})

	var notes []models.Note
	rec := doRequest(t, router, http.MethodGet, "/api/notes", token, nil)
	decodeBody(t, rec, &notes)
	require.Len(t, notes, 2)
	assert.Equal(t, "second", notes[0].Title)

	// Updating the older note moves it to the front.
	rec = doRequest(t, router, http.MethodPut, "/api/notes/"+first.ID, token, map[string]interface{}{
		"content": "touched",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/notes", token, nil)
	decodeBody(t, rec, &notes)
	assert.Equal(t, "first", notes[0].Title)
}

func TestSuggestTags(t *testing.T) {
	router := newTestRouter(t, withSuggester("go", "testing"))
	token := signupUser(t, router, "a@example.com")

	note := createNote(t, router, token, map[string]interface{}{
		"title": "Table driven tests", "content": "in Go",
	})

	rec := doRequest(t, router, http.MethodPost, "/api/notes/"+note.ID+"/tags/suggest", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tags":["go","testing"]}`, rec.Body.String())
}

func TestSuggestTagsWithoutClassifier(t *testing.T) {
	router := newTestRouter(t)
	token := signupUser(t, router, "a@example.com")

	note := createNote(t, router, token, map[string]interface{}{
		"title": "x", "content": "y",
	})

	rec := doRequest(t, router, http.MethodPost, "/api/notes/"+note.ID+"/tags/suggest", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
