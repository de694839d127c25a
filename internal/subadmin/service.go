package subadmin

import (
	"context"

	"github.com/google/uuid"

	"github.com/veritas-cms/veritas-cms/internal/auth"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Service handles sub-administrator account management. Every operation
// here is administrator-only; a sub-administrator can never reach these
// paths to widen its own scope.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields for a new sub-administrator.
type CreateInput struct {
	Email     string
	Password  string
	Name      string
	Caps      auth.CapabilitySet
	CreatedBy string
}

// Create provisions a new sub-administrator with a hashed credential.
// The duplicate pre-check is an optimization only; the store's unique
// constraint remains the authority under concurrent creates.
func (s *Service) Create(ctx context.Context, input CreateInput) (*SubAdmin, error) {
	if input.Email == "" || input.Password == "" {
		return nil, shared.Validation("Missing required fields.")
	}
	email := shared.NormalizeEmail(input.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, shared.Conflict("SubAdmin already exists.")
	} else if shared.KindOf(err) != shared.KindNotFound {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, shared.Internal("Failed to create SubAdmin.", err)
	}
	caps := input.Caps
	if caps == nil {
		caps = auth.NewCapabilitySet()
	}
	record := &SubAdmin{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         input.Name,
		PasswordHash: hash,
		CreatedBy:    input.CreatedBy,
		Caps:         caps,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// List returns every sub-administrator.
func (s *Service) List(ctx context.Context) ([]SubAdmin, error) {
	return s.repo.List(ctx)
}

// Profile returns the stored record for the authenticated caller.
func (s *Service) Profile(ctx context.Context, id string) (*SubAdmin, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateRoles replaces the permission set. Only an administrator route
// reaches this; the set in the token snapshot of existing logins is
// untouched until the next issuance.
func (s *Service) UpdateRoles(ctx context.Context, id string, caps auth.CapabilitySet) (*SubAdmin, error) {
	if caps == nil {
		return nil, shared.Validation("Permission set is required.")
	}
	return s.repo.UpdateCaps(ctx, id, caps)
}

// Delete removes a sub-administrator account.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
