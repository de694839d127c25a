package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/veritas-cms/veritas-cms/internal/platform/httpx"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Handler wires the login endpoints for both principal kinds.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountAdminRoutes registers the administrator login route.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Post("/login", h.handleAdminLogin)
}

// MountSubAdminRoutes registers the sub-administrator login route.
func (h *Handler) MountSubAdminRoutes(r chi.Router) {
	r.Post("/login", h.handleSubAdminLogin)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) decodeLogin(r *http.Request) (*loginRequest, error) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return nil, shared.Validation("Email and password are required.")
	}
	if err := h.validator.Struct(req); err != nil {
		return nil, shared.Validation("Email and password are required.")
	}
	return &req, nil
}

func (h *Handler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeLogin(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	token, admin, err := h.service.AuthenticateAdmin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logFailure("admin login failed", req.Email, err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Login successful.", map[string]any{
		"token": token,
		"admin": map[string]string{"id": admin.ID, "email": admin.Email},
	})
}

func (h *Handler) handleSubAdminLogin(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeLogin(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	token, _, err := h.service.AuthenticateSubAdmin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logFailure("subadmin login failed", req.Email, err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

// logFailure records the failed attempt. Only the email is logged; the
// password and any issued token never reach the log.
func (h *Handler) logFailure(msg, email string, err error) {
	if h.logger == nil || shared.KindOf(err) == shared.KindValidation {
		return
	}
	h.logger.Warn(msg, slog.String("email", shared.NormalizeEmail(email)), slog.String("reason", shared.UserSafeMessage(err)))
}
