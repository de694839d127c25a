package posts

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veritas-cms/veritas-cms/internal/platform/httpx"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Handler exposes blog post endpoints.
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
	r.Get("/posts", h.list)
	r.Get("/posts/{slug}", h.getBySlug)
}

// MountManagementRoutes registers the guarded write endpoints.
func (h *Handler) MountManagementRoutes(r chi.Router) {
	r.Post("/posts", h.create)
	r.Put("/posts/{id}", h.update)
	r.Delete("/posts/{id}", h.remove)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, limit := shared.PageParams(r, 10, 100)
	records, pagination, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		h.logError("list posts", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.Page(w, records, pagination)
}

func (h *Handler) getBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.logError("get post", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", post)
}

type postRequest struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Validation("Title, slug, and content are required."))
		return
	}
	post, err := h.service.Create(r.Context(), CreateInput{
		Title:    req.Title,
		Slug:     req.Slug,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.logError("create post", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "Post created successfully.", post)
}

type postPatchRequest struct {
	Title    *string `json:"title"`
	Slug     *string `json:"slug"`
	Content  *string `json:"content"`
	ImageURL *string `json:"imageUrl"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req postPatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Validation("Invalid request body."))
		return
	}
	post, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), Patch{
		Title:    req.Title,
		Slug:     req.Slug,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.logError("update post", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Post updated successfully.", post)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logError("delete post", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Post deleted successfully.", nil)
}

func (h *Handler) logError(msg string, err error) {
	if h.logger != nil && shared.KindOf(err) == shared.KindInternal {
		h.logger.Error(msg, slog.Any("error", err))
	}
}
