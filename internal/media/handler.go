package media

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veritas-cms/veritas-cms/internal/platform/httpx"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Handler exposes media endpoints.
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
	r.Get("/media", h.list)
	r.Get("/media/{id}", h.get)
}

// MountManagementRoutes registers the guarded write endpoints.
func (h *Handler) MountManagementRoutes(r chi.Router) {
	r.Post("/media", h.create)
	r.Put("/media/{id}", h.update)
	r.Delete("/media/{id}", h.remove)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logError("list media", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.List(w, items, len(items))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logError("get media", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", item)
}

type mediaRequest struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req mediaRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Validation("Title, description, and link are required."))
		return
	}
	item, err := h.service.Create(r.Context(), CreateInput{
		Title:       req.Title,
		Link:        req.Link,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.logError("create media", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "Media coverage created successfully.", item)
}

type mediaPatchRequest struct {
	Title       *string `json:"title"`
	Link        *string `json:"link"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req mediaPatchRequest
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
		h.logError("update media", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Media coverage updated successfully.", item)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logError("delete media", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Media coverage deleted successfully.", nil)
}

func (h *Handler) logError(msg string, err error) {
	if h.logger != nil && shared.KindOf(err) == shared.KindInternal {
		h.logger.Error(msg, slog.Any("error", err))
	}
}
