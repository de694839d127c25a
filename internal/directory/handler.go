package directory

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veritas-cms/veritas-cms/internal/platform/httpx"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Handler exposes lawyer and service endpoints.
type Handler struct {
	logger    *slog.Logger
	directory *Directory
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, directory *Directory) *Handler {
	return &Handler{logger: logger, directory: directory}
}

// MountPublicRoutes registers the unauthenticated read endpoints.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/lawyers", h.listLawyers)
	r.Get("/lawyers/{id}", h.getLawyer)
	r.Get("/services", h.listServices)
	r.Get("/services/{slug}", h.getService)
}

// MountManagementRoutes registers the guarded write endpoints. The
// caller supplies the access-control wrapping.
func (h *Handler) MountManagementRoutes(r chi.Router) {
	h.MountLawyerManagementRoutes(r)
	h.MountServiceManagementRoutes(r)
}

// MountLawyerManagementRoutes registers the lawyer write endpoints alone, for
// routes scoped to the lawyers capability.
func (h *Handler) MountLawyerManagementRoutes(r chi.Router) {
	r.Post("/lawyers", h.createLawyer)
	r.Put("/lawyers/{id}", h.updateLawyer)
	r.Delete("/lawyers/{id}", h.deleteLawyer)
}

// MountServiceManagementRoutes registers the service write endpoints alone,
// for routes scoped to the services capability.
func (h *Handler) MountServiceManagementRoutes(r chi.Router) {
	r.Post("/services", h.createService)
	r.Put("/services/{id}", h.updateService)
	r.Delete("/services/{id}", h.deleteService)
}

func (h *Handler) listLawyers(w http.ResponseWriter, r *http.Request) {
	lawyers, err := h.directory.ListLawyers(r.Context())
	if err != nil {
		h.logError("list lawyers", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.List(w, lawyers, len(lawyers))
}

func (h *Handler) getLawyer(w http.ResponseWriter, r *http.Request) {
	lawyer, err := h.directory.GetLawyer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logError("get lawyer", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", lawyer)
}

type lawyerRequest struct {
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	Bio        string   `json:"bio"`
	ImageURL   string   `json:"imageUrl"`
	ServiceIDs []string `json:"serviceIds"`
}

func (h *Handler) createLawyer(w http.ResponseWriter, r *http.Request) {
	var req lawyerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Validation("Name, title, and bio are required."))
		return
	}
	lawyer, err := h.directory.CreateLawyer(r.Context(), CreateLawyerInput{
		Name:       req.Name,
		Title:      req.Title,
		Bio:        req.Bio,
		ImageURL:   req.ImageURL,
		ServiceIDs: req.ServiceIDs,
	})
	if err != nil {
		h.logError("create lawyer", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "Lawyer created successfully.", lawyer)
}

type lawyerPatchRequest struct {
	Name       *string   `json:"name"`
	Title      *string   `json:"title"`
	Bio        *string   `json:"bio"`
	ImageURL   *string   `json:"imageUrl"`
	ServiceIDs *[]string `json:"serviceIds"`
}

func (h *Handler) updateLawyer(w http.ResponseWriter, r *http.Request) {
	var req lawyerPatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Validation("Invalid request body."))
		return
	}
	lawyer, err := h.directory.UpdateLawyer(r.Context(), chi.URLParam(r, "id"), LawyerPatch{
		Name:       req.Name,
		Title:      req.Title,
		Bio:        req.Bio,
		ImageURL:   req.ImageURL,
		ServiceIDs: req.ServiceIDs,
	})
	if err != nil {
		h.logError("update lawyer", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Lawyer updated successfully.", lawyer)
}

func (h *Handler) deleteLawyer(w http.ResponseWriter, r *http.Request) {
	if err := h.directory.DeleteLawyer(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logError("delete lawyer", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Lawyer deleted successfully.", nil)
}

func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.directory.ListServices(r.Context())
	if err != nil {
		h.logError("list services", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.List(w, services, len(services))
}

func (h *Handler) getService(w http.ResponseWriter, r *http.Request) {
	service, err := h.directory.GetServiceBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.logError("get service", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", service)
}

type serviceRequest struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	LawyerIDs   []string `json:"lawyerIds"`
}

func (h *Handler) createService(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Validation("Name, slug, and description are required."))
		return
	}
	service, err := h.directory.CreateService(r.Context(), CreateServiceInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LawyerIDs:   req.LawyerIDs,
	})
	if err != nil {
		h.logError("create service", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "Service created successfully.", service)
}

type servicePatchRequest struct {
	Name        *string   `json:"name"`
	Slug        *string   `json:"slug"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	LawyerIDs   *[]string `json:"lawyerIds"`
}

func (h *Handler) updateService(w http.ResponseWriter, r *http.Request) {
	var req servicePatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Validation("Invalid request body."))
		return
	}
	service, err := h.directory.UpdateService(r.Context(), chi.URLParam(r, "id"), ServicePatch{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LawyerIDs:   req.LawyerIDs,
	})
	if err != nil {
		h.logError("update service", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Service updated successfully.", service)
}

func (h *Handler) deleteService(w http.ResponseWriter, r *http.Request) {
	if err := h.directory.DeleteService(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logError("delete service", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Service deleted successfully.", nil)
}

func (h *Handler) logError(msg string, err error) {
	if h.logger != nil && shared.KindOf(err) == shared.KindInternal {
		h.logger.Error(msg, slog.Any("error", err))
	}
}
