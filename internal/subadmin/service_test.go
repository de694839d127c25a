package subadmin

import (
	"context"
	"testing"

	"github.com/veritas-cms/veritas-cms/internal/auth"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

type fakeRepo struct {
	records map[string]*SubAdmin
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[string]*SubAdmin{}}
}

func (f *fakeRepo) Create(_ context.Context, record *SubAdmin) error {
	for _, r := range f.records {
		if r.Email == record.Email {
			return shared.Conflict("SubAdmin already exists.")
		}
	}
	clone := *record
	f.records[record.ID] = &clone
	return nil
}

func (f *fakeRepo) List(_ context.Context) ([]SubAdmin, error) {
	out := make([]SubAdmin, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*SubAdmin, error) {
	if r, ok := f.records[id]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, shared.NotFound("SubAdmin not found.")
}

func (f *fakeRepo) FindByEmail(_ context.Context, email string) (*SubAdmin, error) {
	for _, r := range f.records {
		if r.Email == email {
			clone := *r
			return &clone, nil
		}
	}
	return nil, shared.NotFound("SubAdmin not found.")
}

func (f *fakeRepo) UpdateCaps(_ context.Context, id string, caps auth.CapabilitySet) (*SubAdmin, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, shared.NotFound("SubAdmin not found.")
	}
	r.Caps = caps
	clone := *r
	return &clone, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return shared.NotFound("SubAdmin not found.")
	}
	delete(f.records, id)
	return nil
}

func TestCreateHashesPasswordAndNormalizesEmail(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	record, err := service.Create(context.Background(), CreateInput{
		Email:    "  Editor@Lawfirm.COM ",
		Password: "editor-pass-1",
		Name:     "Editor",
		Caps:     auth.NewCapabilitySet(auth.CapPosts),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.Email != "editor@lawfirm.com" {
		t.Fatalf("email not normalized: %s", record.Email)
	}
	if record.PasswordHash == "editor-pass-1" || record.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
	if !auth.CheckPassword(record.PasswordHash, "editor-pass-1") {
		t.Fatal("stored hash does not verify")
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	ctx := context.Background()

	if _, err := service.Create(ctx, CreateInput{Email: "dup@lawfirm.com", Password: "password1"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := service.Create(ctx, CreateInput{Email: "dup@lawfirm.com", Password: "password2"})
	if shared.KindOf(err) != shared.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if shared.UserSafeMessage(err) != "SubAdmin already exists." {
		t.Fatalf("unexpected message: %s", shared.UserSafeMessage(err))
	}
}

func TestCreateDefaultsToEmptyCapabilitySet(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	record, err := service.Create(context.Background(), CreateInput{
		Email:    "none@lawfirm.com",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.Caps == nil {
		t.Fatal("capability set must never be nil")
	}
	for _, c := range auth.AllCapabilities() {
		if record.Caps.Has(c) {
			t.Fatalf("expected no capabilities by default, found %s", c)
		}
	}
}

func TestUpdateRolesReplacesWholeSet(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	ctx := context.Background()

	record, err := service.Create(ctx, CreateInput{
		Email:    "editor@lawfirm.com",
		Password: "password1",
		Caps:     auth.NewCapabilitySet(auth.CapPosts, auth.CapNews),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := service.UpdateRoles(ctx, record.ID, auth.NewCapabilitySet(auth.CapEnquiries))
	if err != nil {
		t.Fatalf("update roles: %v", err)
	}
	if !updated.Caps.Has(auth.CapEnquiries) {
		t.Fatal("granted capability missing")
	}
	if updated.Caps.Has(auth.CapPosts) || updated.Caps.Has(auth.CapNews) {
		t.Fatal("update must replace the whole set, not merge")
	}
}

func TestUpdateRolesRequiresASet(t *testing.T) {
	service := NewService(newFakeRepo())

	_, err := service.UpdateRoles(context.Background(), "any", nil)
	if shared.KindOf(err) != shared.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteUnknownSubAdmin(t *testing.T) {
	service := NewService(newFakeRepo())

	err := service.Delete(context.Background(), "missing")
	if shared.KindOf(err) != shared.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
