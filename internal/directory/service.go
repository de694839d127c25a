package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Directory wraps the business rules around lawyer and practice-area
// records.
type Directory struct {
	repo RepositoryPort
}

// NewDirectory builds a Directory instance.
func NewDirectory(repo RepositoryPort) *Directory {
	return &Directory{repo: repo}
}

// ListLawyers returns every lawyer with linked services.
func (d *Directory) ListLawyers(ctx context.Context) ([]Lawyer, error) {
	return d.repo.ListLawyers(ctx)
}

// GetLawyer returns one lawyer with linked services.
func (d *Directory) GetLawyer(ctx context.Context, id string) (*Lawyer, error) {
	return d.repo.FindLawyer(ctx, id)
}

// CreateLawyerInput carries the fields for a new lawyer.
type CreateLawyerInput struct {
	Name       string
	Title      string
	Bio        string
	ImageURL   string
	ServiceIDs []string
}

// CreateLawyer persists a new lawyer and its optional associations.
func (d *Directory) CreateLawyer(ctx context.Context, input CreateLawyerInput) (*Lawyer, error) {
	if input.Name == "" || input.Title == "" || input.Bio == "" {
		return nil, shared.Validation("Name, title, and bio are required.")
	}
	lawyer := &Lawyer{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Title:    input.Title,
		Bio:      input.Bio,
		ImageURL: input.ImageURL,
	}
	if err := d.repo.CreateLawyer(ctx, lawyer, input.ServiceIDs); err != nil {
		return nil, err
	}
	return d.repo.FindLawyer(ctx, lawyer.ID)
}

// UpdateLawyer applies a partial update; a non-nil ServiceIDs replaces
// every association.
func (d *Directory) UpdateLawyer(ctx context.Context, id string, patch LawyerPatch) (*Lawyer, error) {
	return d.repo.UpdateLawyer(ctx, id, patch)
}

// DeleteLawyer removes a lawyer and its associations.
func (d *Directory) DeleteLawyer(ctx context.Context, id string) error {
	return d.repo.DeleteLawyer(ctx, id)
}

// ListServices returns every service with its lawyers attached: the
// explicitly linked set plus the legacy bio-name matches.
func (d *Directory) ListServices(ctx context.Context) ([]Service, error) {
	services, err := d.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range services {
		lawyers, err := d.lawyersForService(ctx, &services[i])
		if err != nil {
			return nil, err
		}
		services[i].Lawyers = lawyers
	}
	return services, nil
}

// GetServiceBySlug returns one service with its lawyers attached.
func (d *Directory) GetServiceBySlug(ctx context.Context, slug string) (*Service, error) {
	service, err := d.repo.FindServiceBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	lawyers, err := d.lawyersForService(ctx, service)
	if err != nil {
		return nil, err
	}
	service.Lawyers = lawyers
	return service, nil
}

func (d *Directory) lawyersForService(ctx context.Context, service *Service) ([]Lawyer, error) {
	linked, err := d.repo.LawyersLinkedToService(ctx, service.ID)
	if err != nil {
		return nil, err
	}
	matched, err := d.repo.LawyersWithBioMatching(ctx, service.Name)
	if err != nil {
		return nil, err
	}
	return mergeLawyers(linked, matched), nil
}

// mergeLawyers combines explicitly linked lawyers with bio matches,
// keeping link order and dropping duplicates.
func mergeLawyers(linked, matched []Lawyer) []Lawyer {
	seen := make(map[string]bool, len(linked))
	out := make([]Lawyer, 0, len(linked)+len(matched))
	for _, l := range linked {
		seen[l.ID] = true
		out = append(out, l)
	}
	for _, l := range matched {
		if !seen[l.ID] {
			seen[l.ID] = true
			out = append(out, l)
		}
	}
	return out
}

// CreateServiceInput carries the fields for a new service.
type CreateServiceInput struct {
	Name        string
	Slug        string
	Description string
	ImageURL    string
	LawyerIDs   []string
}

// CreateService persists a new practice area. The slug is normalized
// before storage; duplicates surface as ConflictError.
func (d *Directory) CreateService(ctx context.Context, input CreateServiceInput) (*Service, error) {
	if input.Name == "" || input.Slug == "" || input.Description == "" {
		return nil, shared.Validation("Name, slug, and description are required.")
	}
	slug := shared.Slugify(input.Slug)
	if slug == "" {
		return nil, shared.Validation("Name, slug, and description are required.")
	}
	if _, err := d.repo.FindServiceBySlug(ctx, slug); err == nil {
		return nil, shared.Conflict("A service with this slug already exists.")
	} else if shared.KindOf(err) != shared.KindNotFound {
		return nil, err
	}
	service := &Service{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := d.repo.CreateService(ctx, service, input.LawyerIDs); err != nil {
		return nil, err
	}
	full, err := d.repo.FindServiceByID(ctx, service.ID)
	if err != nil {
		return nil, err
	}
	lawyers, err := d.lawyersForService(ctx, full)
	if err != nil {
		return nil, err
	}
	full.Lawyers = lawyers
	return full, nil
}

// UpdateService applies a partial update with full association replace.
func (d *Directory) UpdateService(ctx context.Context, id string, patch ServicePatch) (*Service, error) {
	if patch.Slug != nil {
		slug := shared.Slugify(*patch.Slug)
		if slug == "" {
			return nil, shared.Validation("Slug must not be empty.")
		}
		patch.Slug = &slug
	}
	service, err := d.repo.UpdateService(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	lawyers, err := d.lawyersForService(ctx, service)
	if err != nil {
		return nil, err
	}
	service.Lawyers = lawyers
	return service, nil
}

// DeleteService removes a service and its associations.
func (d *Directory) DeleteService(ctx context.Context, id string) error {
	return d.repo.DeleteService(ctx, id)
}
