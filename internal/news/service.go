package news

import (
	"context"

	"github.com/google/uuid"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Service handles news business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all news items, newest first.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

// Get returns one news item.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateInput carries the fields for a new news item.
type CreateInput struct {
	Title       string
	Link        string
	Description string
	ImageURL    string
}

// Create persists a new news item.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Item, error) {
	if input.Title == "" {
		return nil, shared.Validation("Title is required.")
	}
	item := &Item{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Link:        input.Link,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Item, error) {
	return s.repo.Update(ctx, id, patch)
}

// Delete removes a news item.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
