package enquiries

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Notifier pushes a received enquiry to whoever wants to hear about it.
// Delivery is best effort; a failed notification never fails the submission.
type Notifier interface {
	NotifyEnquiry(ctx context.Context, enquiry Enquiry) error
}

// Service handles enquiry business logic.
type Service struct {
	repo     RepositoryPort
	notifier Notifier
	logger   *slog.Logger
}

// NewService builds a Service instance. The notifier may be nil when no
// notification channel is configured.
func NewService(repo RepositoryPort, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// CreateInput carries a public enquiry submission.
type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Message   string
	LawID     string
	ImageURL  string
}

// Create validates, trims and persists an enquiry, then fires a
// notification without blocking on its outcome.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Enquiry, error) {
	enquiry := &Enquiry{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     shared.NormalizeEmail(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Message:   strings.TrimSpace(input.Message),
		LawID:     strings.TrimSpace(input.LawID),
		ImageURL:  strings.TrimSpace(input.ImageURL),
	}
	if enquiry.FirstName == "" || enquiry.LastName == "" || enquiry.Email == "" ||
		enquiry.Phone == "" || enquiry.Message == "" || enquiry.LawID == "" {
		return nil, shared.Validation("First name, last name, email, phone, message, and lawId are required.")
	}
	if _, err := mail.ParseAddress(enquiry.Email); err != nil {
		return nil, shared.Validation("Please provide a valid email address.")
	}
	if err := s.repo.Create(ctx, enquiry); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyEnquiry(ctx, *enquiry); err != nil && s.logger != nil {
			s.logger.Warn("enquiry notification failed",
				slog.String("enquiry_id", enquiry.ID),
				slog.Any("error", err))
		}
	}
	return enquiry, nil
}

// List returns a page of enquiries for the admin panel.
func (s *Service) List(ctx context.Context, page, limit int, sortBy, order string) ([]Enquiry, shared.Pagination, error) {
	records, total, err := s.repo.List(ctx, ListOptions{
		Limit:  limit,
		Offset: shared.Offset(page, limit),
		SortBy: sortBy,
		Order:  order,
	})
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return records, shared.NewPagination(page, limit, total), nil
}

// Delete removes an enquiry.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
