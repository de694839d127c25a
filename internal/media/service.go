package media

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Service handles media business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all media items, newest first.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

// Get returns one media item.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	return s.repo.FindByID(ctx, id)
}

// validLink accepts absolute http(s) URLs only.
func validLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// CreateInput carries the fields for a new media item.
type CreateInput struct {
	Title       string
	Link        string
	Description string
	ImageURL    string
}

// Create persists a new media item.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Item, error) {
	if input.Title == "" || input.Description == "" || input.Link == "" {
		return nil, shared.Validation("Title, description, and link are required.")
	}
	if !validLink(input.Link) {
		return nil, shared.Validation("Please provide a valid URL for the link.")
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
	if patch.Link != nil && !validLink(*patch.Link) {
		return nil, shared.Validation("Please provide a valid URL for the link.")
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes a media item.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
