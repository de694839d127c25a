package subadmin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/veritas-cms/veritas-cms/internal/auth"
	"github.com/veritas-cms/veritas-cms/internal/platform/httpx"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Handler exposes sub-administrator management endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountManagementRoutes registers the administrator-only account routes.
// The caller wraps them in Guard.RequireAdmin.
func (h *Handler) MountManagementRoutes(r chi.Router) {
	r.Post("/create", h.create)
	r.Get("/", h.list)
	r.Put("/{id}", h.updateRoles)
	r.Delete("/{id}", h.remove)
}

// MountProfileRoutes registers the self-service profile route. The
// caller wraps it in Guard.Require with no capability.
func (h *Handler) MountProfileRoutes(r chi.Router) {
	r.Get("/me", h.profile)
}

// permissionForms accepts the three wire shapes for a permission set:
// the original flat boolean flags, a nested flags object, and the open
// module-name list.
type permissionForms struct {
	CanManageEnquiries *bool               `json:"canManageEnquiries"`
	CanManageLawyers   *bool               `json:"canManageLawyers"`
	CanManageServices  *bool               `json:"canManageServices"`
	CanManagePosts     *bool               `json:"canManagePosts"`
	CanManageNews      *bool               `json:"canManageNews"`
	CanManageSettings  *bool               `json:"canManageSettings"`
	Permissions        *auth.CapabilitySet `json:"permissions"`
	Modules            []string            `json:"modules"`
}

// resolve collapses whichever form was sent into one set. Returns nil
// when no form was present at all.
func (p permissionForms) resolve() (auth.CapabilitySet, error) {
	if p.Modules != nil {
		return auth.CapabilitySetFromModules(p.Modules)
	}
	if p.Permissions != nil {
		return *p.Permissions, nil
	}
	flat := []struct {
		value *bool
		cap   auth.Capability
	}{
		{p.CanManageEnquiries, auth.CapEnquiries},
		{p.CanManageLawyers, auth.CapLawyers},
		{p.CanManageServices, auth.CapServices},
		{p.CanManagePosts, auth.CapPosts},
		{p.CanManageNews, auth.CapNews},
		{p.CanManageSettings, auth.CapSettings},
	}
	var (
		set  = make(auth.CapabilitySet)
		seen bool
	)
	for _, f := range flat {
		if f.value == nil {
			continue
		}
		seen = true
		if *f.value {
			set[f.cap] = true
		}
	}
	if !seen {
		return nil, nil
	}
	return set, nil
}

type createRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
	permissionForms
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Validation("Missing required fields."))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.Validation("Missing required fields."))
		return
	}
	caps, err := req.resolve()
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	creator, _ := auth.PrincipalFromContext(r.Context())
	record, err := h.service.Create(r.Context(), CreateInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Caps:      caps,
		CreatedBy: creator.ID,
	})
	if err != nil {
		h.logError("create subadmin", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "SubAdmin created successfully.", record)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		h.logError("list subadmins", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.List(w, records, len(records))
}

func (h *Handler) updateRoles(w http.ResponseWriter, r *http.Request) {
	var req permissionForms
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Validation("Permission set is required."))
		return
	}
	caps, err := req.resolve()
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	record, err := h.service.UpdateRoles(r.Context(), chi.URLParam(r, "id"), caps)
	if err != nil {
		h.logError("update subadmin roles", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "SubAdmin roles updated successfully.", record)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logError("delete subadmin", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "SubAdmin deleted successfully.", nil)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal.Role != auth.RoleSubAdmin {
		httpx.Fail(w, http.StatusForbidden, "Forbidden.")
		return
	}
	record, err := h.service.Profile(r.Context(), principal.ID)
	if err != nil {
		h.logError("subadmin profile", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", record)
}

func (h *Handler) logError(msg string, err error) {
	if h.logger != nil && shared.KindOf(err) == shared.KindInternal {
		h.logger.Error(msg, slog.Any("error", err))
	}
}
