package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tin229oo/nadias-lending/internal/auth"
	"github.com/tin229oo/nadias-lending/internal/http/respond"
	"github.com/tin229oo/nadias-lending/internal/identity"
	"github.com/tin229oo/nadias-lending/internal/middleware"
	"github.com/tin229oo/nadias-lending/internal/models/dto"
)

// AuthHandler owns the register/login/logout/me endpoints.
type AuthHandler struct {
	identity *identity.Manager
	tokens   *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(identity *identity.Manager, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{identity: identity, tokens: tokens}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/register", h.handleRegister)
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/logout", h.handleLogout)
	mux.HandleFunc("/me", h.handleMe)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "name, email, and password are required")
		return
	}

	user, err := h.identity.Register(r.Context(), name, email, strings.TrimSpace(req.Phone), req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "user registered", dto.NewUser(user))
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, sid, ok, err := h.identity.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user, sid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "login successful", dto.LoginResponse{Token: token, User: dto.NewUser(user)})
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := h.identity.Logout(r.Context(), middleware.SessionID(r.Context())); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok, err := h.identity.CurrentUser(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not logged in")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", dto.NewUser(user))
}
