package handlers

import (
	"net/http"
	"regexp"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/notestash/notestash/internal/apperr"
	"github.com/notestash/notestash/internal/auth"
	"github.com/notestash/notestash/internal/models"
	"github.com/notestash/notestash/internal/storage"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type AuthHandler struct {
	store  storage.Storage
	jwt    *auth.JWTService
	logger *zap.Logger
}

func NewAuthHandler(store storage.Storage, jwt *auth.JWTService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, jwt: jwt, logger: logger}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req signupRequest) validate() error {
	fields := map[string]string{}
	if req.Name == "" {
		fields["name"] = "required"
	}
	if req.Email == "" {
		fields["email"] = "required"
	} else if !emailRegex.MatchString(req.Email) {
		fields["email"] = "invalid email"
	}
	if req.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, h.logger, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		respondError(w, h.logger, err)
		return
	}

	token, err := h.jwt.GenerateToken(user.ID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.logger.Info("user signed up", zap.String("user_id", user.ID))
	respondJSON(w, http.StatusCreated, map[string]string{"token": token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, h.logger, apperr.Validation("credentials", "email and password are required"))
		return
	}

	// A missing account and a wrong password answer identically so the
	// endpoint cannot be used to enumerate emails.
	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		respondError(w, h.logger, apperr.ErrInvalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(w, h.logger, apperr.ErrInvalidCredentials)
		return
	}

	token, err := h.jwt.GenerateToken(user.ID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
