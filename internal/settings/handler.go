package settings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veritas-cms/veritas-cms/internal/platform/httpx"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Handler exposes site settings endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountPublicRoutes registers the unauthenticated read endpoint.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/settings", h.get)
}

// MountManagementRoutes registers the guarded update endpoint.
func (h *Handler) MountManagementRoutes(r chi.Router) {
	r.Put("/settings", h.update)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	current, err := h.service.Get(r.Context())
	if err != nil {
		h.logError("get settings", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", current)
}

type settingsRequest struct {
	ShowTeam     *bool `json:"showTeam"`
	ShowNews     *bool `json:"showNews"`
	ShowServices *bool `json:"showServices"`
	ShowBlog     *bool `json:"showBlog"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Validation("Invalid request body."))
		return
	}
	updated, err := h.service.Update(r.Context(), Patch{
		ShowTeam:     req.ShowTeam,
		ShowNews:     req.ShowNews,
		ShowServices: req.ShowServices,
		ShowBlog:     req.ShowBlog,
	})
	if err != nil {
		h.logError("update settings", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Settings updated successfully.", updated)
}

func (h *Handler) logError(msg string, err error) {
	if h.logger != nil && shared.KindOf(err) == shared.KindInternal {
		h.logger.Error(msg, slog.Any("error", err))
	}
}
