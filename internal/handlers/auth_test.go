package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupAndLogin(t *testing.T) {
	router := newTestRouter(t)
	signupUser(t, router, "a@example.com")

	rec := doRequest(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "a@example.com",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp["token"])
}

func TestSignupValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "a@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "A",
		"email":    "not-an-email",
		"password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	router := newTestRouter(t)
	signupUser(t, router, "a@example.com")

	rec := doRequest(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Other",
		"email":    "a@example.com",
		"password": "different",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newTestRouter(t)
	signupUser(t, router, "a@example.com")

	// Wrong password and unknown email answer with the same message.
	wrongPass := doRequest(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "a@example.com",
		"password": "wrong",
	})
	unknownEmail := doRequest(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "hunter22",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPass.Body.String(), unknownEmail.Body.String())
}

func TestResourceRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/notes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/bookmarks", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
