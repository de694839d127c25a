package enquiries

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

type fakeRepo struct {
	records []Enquiry
	lastOpt ListOptions
}

func (f *fakeRepo) Create(_ context.Context, enquiry *Enquiry) error {
	enquiry.CreatedAt = time.Now()
	f.records = append(f.records, *enquiry)
	return nil
}

func (f *fakeRepo) List(_ context.Context, opts ListOptions) ([]Enquiry, int, error) {
	f.lastOpt = opts
	return f.records, len(f.records), nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	for i, e := range f.records {
		if e.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return shared.NotFound("Enquiry not found.")
}

var _ RepositoryPort = (*fakeRepo)(nil)

type failingNotifier struct {
	calls int
}

func (n *failingNotifier) NotifyEnquiry(_ context.Context, _ Enquiry) error {
	n.calls++
	return errors.New("broker unavailable")
}

func TestCreateTrimsAndNormalizes(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil, slog.New(slog.DiscardHandler))

	enquiry, err := svc.Create(context.Background(), CreateInput{
		FirstName: "  Jane ",
		LastName:  " Doe ",
		Email:     "  Jane.Doe@Example.COM ",
		Phone:     " 555-0100 ",
		Message:   "  Need counsel.  ",
		LawID:     " corporate-law ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if enquiry.FirstName != "Jane" || enquiry.LastName != "Doe" {
		t.Fatalf("names not trimmed: %+v", enquiry)
	}
	if enquiry.Email != "jane.doe@example.com" {
		t.Fatalf("email not normalized: %q", enquiry.Email)
	}
	if enquiry.Message != "Need counsel." {
		t.Fatalf("message not trimmed: %q", enquiry.Message)
	}
	if enquiry.Phone != "555-0100" || enquiry.LawID != "corporate-law" {
		t.Fatalf("fields not trimmed: %+v", enquiry)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{FirstName: "Jane", Email: "jane@example.com"})
	if shared.KindOf(err) != shared.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	// Phone and lawId are required too.
	_, err = svc.Create(ctx, CreateInput{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Message: "hi",
	})
	if shared.KindOf(err) != shared.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.Create(ctx, CreateInput{
		FirstName: "Jane", LastName: "Doe", Email: "not-an-address",
		Phone: "555-0100", Message: "hi", LawID: "law-1",
	})
	if shared.KindOf(err) != shared.KindValidation {
		t.Fatalf("expected validation error for email, got %v", err)
	}
	if err.Error() != "Please provide a valid email address." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCreateSurvivesNotifierFailure(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &failingNotifier{}
	svc := NewService(repo, notifier, slog.New(slog.DiscardHandler))

	enquiry, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		Phone: "555-0100", Message: "hello", LawID: "law-1",
	})
	if err != nil {
		t.Fatalf("notification failure must not fail submission: %v", err)
	}
	if notifier.calls != 1 {
		t.Fatalf("notifier not invoked, calls=%d", notifier.calls)
	}
	if len(repo.records) != 1 || repo.records[0].ID != enquiry.ID {
		t.Fatal("enquiry not persisted")
	}
}

func TestListForwardsSortOptions(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil, slog.New(slog.DiscardHandler))

	_, _, err := svc.List(context.Background(), 2, 10, "firstName", "asc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastOpt.SortBy != "firstName" || repo.lastOpt.Order != "asc" {
		t.Fatalf("sort options dropped: %+v", repo.lastOpt)
	}
	if repo.lastOpt.Limit != 10 || repo.lastOpt.Offset != 10 {
		t.Fatalf("unexpected window: %+v", repo.lastOpt)
	}
}
