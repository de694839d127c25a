package posts

import (
	"context"

	"github.com/google/uuid"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Service handles post business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns a page of posts with pagination metadata.
func (s *Service) List(ctx context.Context, page, limit int) ([]Post, shared.Pagination, error) {
	records, total, err := s.repo.List(ctx, limit, shared.Offset(page, limit))
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return records, shared.NewPagination(page, limit, total), nil
}

// GetBySlug returns one post.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	return s.repo.FindBySlug(ctx, slug)
}

// CreateInput carries the fields for a new post.
type CreateInput struct {
	Title    string
	Slug     string
	Content  string
	ImageURL string
}

// Create persists a new post after validating required fields and
// normalizing the slug.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Post, error) {
	if input.Title == "" || input.Slug == "" || input.Content == "" {
		return nil, shared.Validation("Title, slug, and content are required.")
	}
	slug := shared.Slugify(input.Slug)
	if slug == "" {
		return nil, shared.Validation("Title, slug, and content are required.")
	}
	if _, err := s.repo.FindBySlug(ctx, slug); err == nil {
		return nil, shared.Conflict("A post with this slug already exists.")
	} else if shared.KindOf(err) != shared.KindNotFound {
		return nil, err
	}
	post := &Post{
		ID:       uuid.NewString(),
		Title:    input.Title,
		Slug:     slug,
		Content:  input.Content,
		ImageURL: input.ImageURL,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Post, error) {
	if patch.Slug != nil {
		slug := shared.Slugify(*patch.Slug)
		if slug == "" {
			return nil, shared.Validation("Slug must not be empty.")
		}
		patch.Slug = &slug
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes a post.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
