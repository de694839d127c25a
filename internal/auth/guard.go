package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/veritas-cms/veritas-cms/internal/platform/httpx"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

const bearerPrefix = "Bearer "

// Guard is the access-control middleware for protected routes. Each
// request moves through extract → verify → resolve → authorize; every
// rejection is terminal for that request.
type Guard struct {
	Tokens    *TokenIssuer
	Admins    AdminStore
	SubAdmins SubAdminStore
	Logger    *slog.Logger
}

// RequireAdmin admits administrators only. The admin record is re-fetched
// so tokens for deleted accounts stop working immediately.
func (g Guard) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := g.extractAndVerify(r)
			if err != nil {
				httpx.RespondError(w, err)
				return
			}
			if claims.Role != RoleAdmin {
				httpx.Fail(w, http.StatusForbidden, "Forbidden.")
				return
			}
			admin, err := g.Admins.FindAdminByID(r.Context(), claims.Subject)
			if err != nil {
				if shared.KindOf(err) == shared.KindNotFound {
					httpx.Fail(w, http.StatusUnauthorized, "Access denied. Admin not found.")
					return
				}
				g.logError("resolve admin", err)
				httpx.RespondError(w, shared.Internal("Internal server error during authentication.", err))
				return
			}
			principal := Principal{ID: admin.ID, Email: admin.Email, Role: RoleAdmin}
			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
		})
	}
}

// Require admits administrators unconditionally and sub-administrators
// holding every listed capability. With no capabilities it is a pure
// role check. Account existence is re-checked against the store for both
// kinds, but capability enforcement uses the token snapshot: permission
// edits apply from the next login, deletion applies immediately.
func (g Guard) Require(caps ...Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := g.extractAndVerify(r)
			if err != nil {
				httpx.RespondError(w, err)
				return
			}
			principal := claims.Principal()
			switch claims.Role {
			case RoleAdmin:
				// Global scope, capability checks always pass.
				if _, err := g.Admins.FindAdminByID(r.Context(), claims.Subject); err != nil {
					if shared.KindOf(err) == shared.KindNotFound {
						httpx.Fail(w, http.StatusUnauthorized, "Access denied. Admin not found.")
						return
					}
					g.logError("resolve admin", err)
					httpx.RespondError(w, shared.Internal("Internal server error during authentication.", err))
					return
				}
			case RoleSubAdmin:
				if _, err := g.SubAdmins.FindSubAdminByID(r.Context(), claims.Subject); err != nil {
					if shared.KindOf(err) == shared.KindNotFound {
						httpx.Fail(w, http.StatusUnauthorized, "Access denied. Account not found.")
						return
					}
					g.logError("resolve subadmin", err)
					httpx.RespondError(w, shared.Internal("Internal server error during authentication.", err))
					return
				}
				for _, c := range caps {
					if !principal.Can(c) {
						httpx.Fail(w, http.StatusForbidden, "Access denied to this module.")
						return
					}
				}
			default:
				httpx.Fail(w, http.StatusForbidden, "Forbidden.")
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
		})
	}
}

// extractAndVerify runs the ExtractToken and VerifySignature steps.
func (g Guard) extractAndVerify(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, shared.Authentication("Access denied. No token provided or invalid format.")
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return nil, shared.Authentication("Access denied. No token provided.")
	}
	return g.Tokens.Verify(token)
}

func (g Guard) logError(msg string, err error) {
	if g.Logger != nil {
		g.Logger.Error(msg, slog.Any("error", err))
	}
}
