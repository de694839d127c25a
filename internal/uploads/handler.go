package uploads

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veritas-cms/veritas-cms/internal/platform/httpx"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Handler exposes the image upload endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountManagementRoutes registers the guarded upload endpoint.
func (h *Handler) MountManagementRoutes(r chi.Router) {
	r.Post("/upload", h.upload)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.service.maxBytes+1024)
	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.RespondError(w, shared.Validation("Image file is required."))
		return
	}
	defer file.Close()

	url, err := h.service.Save(file, header)
	if err != nil {
		if h.logger != nil && shared.KindOf(err) == shared.KindInternal {
			h.logger.Error("upload", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "File uploaded successfully.", map[string]string{"url": url})
}
