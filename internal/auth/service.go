package auth

import (
	"context"
	"log/slog"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Service is the credential issuer: it authenticates login attempts
// against the disjoint principal stores and mints access tokens.
type Service struct {
	admins    AdminStore
	subAdmins SubAdminStore
	tokens    *TokenIssuer
	logger    *slog.Logger
}

// NewService constructs a Service.
func NewService(admins AdminStore, subAdmins SubAdminStore, tokens *TokenIssuer, logger *slog.Logger) *Service {
	return &Service{admins: admins, subAdmins: subAdmins, tokens: tokens, logger: logger}
}

// invalidCredentials is shared by the unknown-email and wrong-password
// paths so the response never reveals which half of the pair failed.
func invalidCredentials() error {
	return shared.Authentication("Invalid credentials.")
}

// AuthenticateAdmin verifies administrator credentials and issues a token.
func (s *Service) AuthenticateAdmin(ctx context.Context, email, password string) (string, *Admin, error) {
	if email == "" || password == "" {
		return "", nil, shared.Validation("Email and password are required.")
	}
	admin, err := s.admins.FindAdminByEmail(ctx, shared.NormalizeEmail(email))
	if err != nil {
		if shared.KindOf(err) == shared.KindNotFound {
			return "", nil, invalidCredentials()
		}
		return "", nil, shared.Internal("Internal server error during login.", err)
	}
	if !CheckPassword(admin.PasswordHash, password) {
		return "", nil, invalidCredentials()
	}
	token, err := s.tokens.IssueAdmin(admin)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// AuthenticateSubAdmin verifies sub-administrator credentials and issues
// a token carrying the permission set snapshot.
func (s *Service) AuthenticateSubAdmin(ctx context.Context, email, password string) (string, *SubAdminAccount, error) {
	if email == "" || password == "" {
		return "", nil, shared.Validation("Email and password are required.")
	}
	account, err := s.subAdmins.FindSubAdminByEmail(ctx, shared.NormalizeEmail(email))
	if err != nil {
		if shared.KindOf(err) == shared.KindNotFound {
			return "", nil, invalidCredentials()
		}
		return "", nil, shared.Internal("Internal server error during login.", err)
	}
	if !CheckPassword(account.PasswordHash, password) {
		return "", nil, invalidCredentials()
	}
	token, err := s.tokens.IssueSubAdmin(account)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}
