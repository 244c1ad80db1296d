package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Handler exposes HTTP endpoints for user operations (signup / login / list).
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// SignupRequest request body for the signup endpoint.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Image    string `json:"image"`
}

// AuthResponse is returned by both signup and login.
type AuthResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid signup payload", "err", err)
		h.writeMessage(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if !validSignup(req) {
		h.writeMessage(w, http.StatusUnprocessableEntity, "Invalid inputs passed, please check your data.")
		return
	}
	u, token, err := h.svc.Signup(r.Context(), req.Name, req.Email, req.Password, req.Image)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			h.writeMessage(w, http.StatusUnprocessableEntity, "User exists already, please login instead.")
			return
		}
		h.logger.Warnw("signup failed", "err", err)
		h.writeMessage(w, http.StatusInternalServerError, "Signing up failed, please try again later.")
		return
	}
	h.writeJSON(w, http.StatusCreated, AuthResponse{UserID: u.ID, Email: u.Email, Token: token})
}

// LoginRequest login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		h.writeMessage(w, http.StatusBadRequest, "invalid payload")
		return
	}
	u, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			h.writeMessage(w, http.StatusUnauthorized, "Invalid credentials, could not log you in.")
			return
		}
		h.logger.Warnw("login failed", "err", err)
		h.writeMessage(w, http.StatusInternalServerError, "Logging in failed, please try again later.")
		return
	}
	h.writeJSON(w, http.StatusOK, AuthResponse{UserID: u.ID, Email: u.Email, Token: token})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Warnw("list users failed", "err", err)
		h.writeMessage(w, http.StatusInternalServerError, "Fetching users failed, please try again later.")
		return
	}
	out := make([]any, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"users": out})
}

func validSignup(req SignupRequest) bool {
	if strings.TrimSpace(req.Name) == "" {
		return false
	}
	if !strings.Contains(req.Email, "@") {
		return false
	}
	return len(req.Password) >= 6
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeMessage(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"message": msg})
}
