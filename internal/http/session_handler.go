package http

import (
	"encoding/json"
	"net/http"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/session"
)

type SessionHandler struct {
	sessions *session.Manager
}

func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequestDTO struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type SessionResponseDTO struct {
	Ready         bool         `json:"ready"`
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
}

// GET /api/session
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SessionResponseDTO{
		Ready:         h.sessions.Ready(),
		Authenticated: h.sessions.IsAuthenticated(),
		User:          h.sessions.CurrentUser(),
	})
}

// POST /api/session
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	if err := h.sessions.Login(r.Context(), req.Email, req.Password); err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SessionResponseDTO{
		Ready:         true,
		Authenticated: true,
		User:          h.sessions.CurrentUser(),
	})
}

// POST /api/session/register
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.FullName == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email, full_name and password are required")
		return
	}

	err := h.sessions.Register(r.Context(), session.RegisterInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, SessionResponseDTO{
		Ready:         true,
		Authenticated: true,
		User:          h.sessions.CurrentUser(),
	})
}

// DELETE /api/session
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout()
	w.WriteHeader(http.StatusNoContent)
}
