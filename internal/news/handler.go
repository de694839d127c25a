package news

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veritas-cms/veritas-cms/internal/platform/httpx"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Handler exposes news endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountPublicRoutes registers the unauthenticated read endpoints.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/news", h.list)
	r.Get("/news/{id}", h.get)
}

// MountManagementRoutes registers the guarded write endpoints.
func (h *Handler) MountManagementRoutes(r chi.Router) {
	r.Post("/news", h.create)
	r.Put("/news/{id}", h.update)
	r.Delete("/news/{id}", h.remove)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logError("list news", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.List(w, items, len(items))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logError("get news", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", item)
}

type newsRequest struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req newsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Validation("Title is required."))
		return
	}
	item, err := h.service.Create(r.Context(), CreateInput{
		Title:       req.Title,
		Link:        req.Link,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.logError("create news", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "News created successfully.", item)
}

type newsPatchRequest struct {
	Title       *string `json:"title"`
	Link        *string `json:"link"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req newsPatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Validation("Invalid request body."))
		return
	}
	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), Patch{
		Title:       req.Title,
		Link:        req.Link,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.logError("update news", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "News updated successfully.", item)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logError("delete news", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "News deleted successfully.", nil)
}

func (h *Handler) logError(msg string, err error) {
	if h.logger != nil && shared.KindOf(err) == shared.KindInternal {
		h.logger.Error(msg, slog.Any("error", err))
	}
}
