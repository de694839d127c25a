package enquiries

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veritas-cms/veritas-cms/internal/platform/httpx"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Handler exposes enquiry endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountPublicRoutes registers the public submission endpoint.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/enquiry", h.create)
}

// MountManagementRoutes registers the guarded listing and delete endpoints.
func (h *Handler) MountManagementRoutes(r chi.Router) {
	r.Get("/enquiries", h.list)
	r.Delete("/enquiries/{id}", h.remove)
}

type enquiryRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	LawID     string `json:"lawId"`
	ImageURL  string `json:"imageUrl"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req enquiryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Validation("First name, last name, email, phone, message, and lawId are required."))
		return
	}
	enquiry, err := h.service.Create(r.Context(), CreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		LawID:     req.LawID,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		h.logError("create enquiry", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "Thank you for your enquiry. We will get back to you soon.", enquiry)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, limit := shared.PageParams(r, 20, 100)
	sortBy := r.URL.Query().Get("sortBy")
	order := r.URL.Query().Get("sortOrder")
	records, pagination, err := h.service.List(r.Context(), page, limit, sortBy, order)
	if err != nil {
		h.logError("list enquiries", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.Page(w, records, pagination)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logError("delete enquiry", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Enquiry deleted successfully.", nil)
}

func (h *Handler) logError(msg string, err error) {
	if h.logger != nil && shared.KindOf(err) == shared.KindInternal {
		h.logger.Error(msg, slog.Any("error", err))
	}
}
