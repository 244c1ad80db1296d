package article

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/quillhub/service-articles-go/internal/auth"
)

// content minimums differ between create and edit; both predate this service
// and clients depend on them.
const (
	minContentCreate = 4
	minContentUpdate = 5
)

// Handler exposes HTTP endpoints for article operations.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// ArticleRequest is the body for create and update.
type ArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetByID(r.Context(), r.PathValue("aid"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeMessage(w, http.StatusNotFound, "Article does not exist.")
			return
		}
		h.logger.Warnw("get article failed", "err", err)
		h.writeMessage(w, http.StatusInternalServerError, "Could not get the article. Please try again later.")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"article": a})
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	articles, err := h.svc.ListByUser(r.Context(), r.PathValue("uid"))
	if err != nil {
		if errors.Is(err, ErrNoArticles) {
			h.writeMessage(w, http.StatusNotFound, "Articles do not exist for the provided user.")
			return
		}
		h.logger.Warnw("list articles failed", "err", err)
		h.writeMessage(w, http.StatusInternalServerError, "Could not get the articles. Please try again later.")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid article payload", "err", err)
		h.writeMessage(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if !validArticle(req, minContentCreate) {
		h.writeMessage(w, http.StatusUnprocessableEntity, "Invalid inputs passed, please check your data.")
		return
	}
	a, err := h.svc.Create(r.Context(), req.Title, req.Content, auth.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			h.writeMessage(w, http.StatusNotFound, "User does not exist.")
			return
		}
		h.logger.Errorw("create article failed", "err", err)
		h.writeMessage(w, http.StatusInternalServerError, "Could not save article. Try again later please.")
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]any{"article": a})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid article payload", "err", err)
		h.writeMessage(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if !validArticle(req, minContentUpdate) {
		h.writeMessage(w, http.StatusUnprocessableEntity, "Invalid inputs passed, please check your data.")
		return
	}
	a, err := h.svc.Update(r.Context(), r.PathValue("aid"), auth.UserID(r.Context()), req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			h.writeMessage(w, http.StatusNotFound, "Article does not exist.")
		case errors.Is(err, ErrNotOwner):
			h.writeMessage(w, http.StatusUnauthorized, "You are not allowed to edit this article.")
		default:
			h.logger.Errorw("update article failed", "err", err)
			h.writeMessage(w, http.StatusInternalServerError, "Something went wrong at the server. Try again later.")
		}
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"article": a})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), r.PathValue("aid"), auth.UserID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			h.writeMessage(w, http.StatusNotFound, "Could not find article for this id.")
		case errors.Is(err, ErrNotOwner):
			h.writeMessage(w, http.StatusUnauthorized, "You are not allowed to delete this article.")
		default:
			h.logger.Errorw("delete article failed", "err", err)
			h.writeMessage(w, http.StatusInternalServerError, "Something went wrong, could not delete article.")
		}
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Article Deleted"})
}

func validArticle(req ArticleRequest, minContent int) bool {
	return strings.TrimSpace(req.Title) != "" && len(req.Content) >= minContent
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeMessage(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"message": msg})
}
