package auth

import (
	"testing"
	"time"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAdminVerifiesWithExpectedClaims(t *testing.T) {
	issued := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("secret", 24*time.Hour, 168*time.Hour).WithClock(fixedClock(issued))

	token, err := issuer.IssueAdmin(&Admin{ID: "admin-1", Email: "admin@lawfirm.com"})
	if err != nil {
		t.Fatalf("issue admin: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "admin-1" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != RoleAdmin {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.Email != "admin@lawfirm.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if len(claims.Perms) != 0 {
		t.Fatalf("admin tokens must not carry perms, got %v", claims.Perms)
	}
	if got := claims.ExpiresAt.Time; !got.Equal(issued.Add(24 * time.Hour)) {
		t.Fatalf("unexpected expiry: %s", got)
	}
}

func TestIssueSubAdminSnapshotsPermissions(t *testing.T) {
	issued := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("secret", 24*time.Hour, 168*time.Hour).WithClock(fixedClock(issued))

	account := &SubAdminAccount{
		ID:    "sub-1",
		Email: "editor@lawfirm.com",
		Caps:  NewCapabilitySet(CapPosts, CapEnquiries),
	}
	token, err := issuer.IssueSubAdmin(account)
	if err != nil {
		t.Fatalf("issue subadmin: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Role != RoleSubAdmin {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if len(claims.Perms) != 2 || claims.Perms[0] != "enquiries" || claims.Perms[1] != "posts" {
		t.Fatalf("expected sorted perms snapshot, got %v", claims.Perms)
	}
	if got := claims.ExpiresAt.Time; !got.Equal(issued.Add(168 * time.Hour)) {
		t.Fatalf("unexpected expiry: %s", got)
	}

	principal := claims.Principal()
	if !principal.Can(CapPosts) || principal.Can(CapSettings) {
		t.Fatalf("principal capabilities do not match snapshot: %+v", principal.Caps)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issued := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("secret", 24*time.Hour, 168*time.Hour).WithClock(fixedClock(issued))

	token, err := issuer.IssueAdmin(&Admin{ID: "admin-1", Email: "admin@lawfirm.com"})
	if err != nil {
		t.Fatalf("issue admin: %v", err)
	}

	issuer.WithClock(fixedClock(issued.Add(25 * time.Hour)))
	_, err = issuer.Verify(token)
	if err == nil {
		t.Fatal("expected expiry error")
	}
	if shared.UserSafeMessage(err) != "Token expired." {
		t.Fatalf("unexpected message: %s", shared.UserSafeMessage(err))
	}
	if shared.KindOf(err) != shared.KindAuthentication {
		t.Fatalf("unexpected kind: %v", shared.KindOf(err))
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer := NewTokenIssuer("secret", 24*time.Hour, 168*time.Hour)
	other := NewTokenIssuer("other-secret", 24*time.Hour, 168*time.Hour)

	token, err := other.IssueAdmin(&Admin{ID: "admin-1", Email: "admin@lawfirm.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = issuer.Verify(token)
	if err == nil {
		t.Fatal("expected signature error")
	}
	if shared.UserSafeMessage(err) != "Invalid token." {
		t.Fatalf("unexpected message: %s", shared.UserSafeMessage(err))
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("secret", 24*time.Hour, 168*time.Hour)
	if _, err := issuer.Verify("not-a-token"); err == nil {
		t.Fatal("expected parse error")
	}
}
