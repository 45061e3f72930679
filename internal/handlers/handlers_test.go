package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notestash/notestash/internal/auth"
	"github.com/notestash/notestash/internal/scrape"
	"github.com/notestash/notestash/internal/storage"
)

type stubSuggester struct {
	tags []string
}

func (s *stubSuggester) SuggestTags(ctx context.Context, content string) ([]string, error) {
	return s.tags, nil
}

type routerOption func(*RouterDeps)

func withSuggester(tags ...string) routerOption {
	return func(deps *RouterDeps) { deps.Suggester = &stubSuggester{tags: tags} }
}

func newTestRouter(t *testing.T, opts ...routerOption) *mux.Router {
	t.Helper()
	deps := RouterDeps{
		Store:  storage.NewMemoryStorage(),
		JWT:    auth.NewJWTService("test-secret", time.Hour),
		Titles: scrape.NewTitleFetcher(2 * time.Second),
		Logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	return NewRouter(deps)
}

func doRequest(t *testing.T, router *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// signupUser registers an account through the API and returns its token.
func signupUser(t *testing.T, router *mux.Router, email string) string {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
