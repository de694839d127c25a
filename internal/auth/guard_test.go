package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestGuard(t *testing.T) (Guard, *TokenIssuer, stubAdminStore, stubSubAdminStore) {
	t.Helper()
	tokens := NewTokenIssuer("secret", 24*time.Hour, 168*time.Hour)
	admins := stubAdminStore{admins: map[string]*Admin{
		"admin-1": {ID: "admin-1", Email: "admin@lawfirm.com"},
	}}
	subAdmins := stubSubAdminStore{accounts: map[string]*SubAdminAccount{
		"sub-1": {ID: "sub-1", Email: "editor@lawfirm.com", Caps: NewCapabilitySet(CapPosts)},
	}}
	guard := Guard{Tokens: tokens, Admins: admins, SubAdmins: subAdmins}
	return guard, tokens, admins, subAdmins
}

func protected(mw func(http.Handler) http.Handler, probe *Principal) http.Handler {
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := PrincipalFromContext(r.Context()); ok && probe != nil {
			*probe = p
		}
		w.WriteHeader(http.StatusNoContent)
	}))
}

func doRequest(t *testing.T, handler http.Handler, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func assertFailure(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected status %d, got %d (body %s)", status, rr.Code, rr.Body.String())
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success {
		t.Fatal("failure responses must set success=false")
	}
	if body.Message != message {
		t.Fatalf("expected message %q, got %q", message, body.Message)
	}
}

func TestRequireAdminRejectsMissingHeader(t *testing.T) {
	guard, _, _, _ := newTestGuard(t)
	handler := protected(guard.RequireAdmin(), nil)

	assertFailure(t, doRequest(t, handler, ""), http.StatusUnauthorized,
		"Access denied. No token provided or invalid format.")
	assertFailure(t, doRequest(t, handler, "Token abc"), http.StatusUnauthorized,
		"Access denied. No token provided or invalid format.")
	assertFailure(t, doRequest(t, handler, "Bearer "), http.StatusUnauthorized,
		"Access denied. No token provided.")
}

func TestRequireAdminRejectsExpiredToken(t *testing.T) {
	guard, tokens, _, _ := newTestGuard(t)
	issued := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	tokens.WithClock(func() time.Time { return issued })
	token, err := tokens.IssueAdmin(&Admin{ID: "admin-1", Email: "admin@lawfirm.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	tokens.WithClock(func() time.Time { return issued.Add(25 * time.Hour) })

	handler := protected(guard.RequireAdmin(), nil)
	assertFailure(t, doRequest(t, handler, "Bearer "+token), http.StatusUnauthorized, "Token expired.")
}

func TestRequireAdminAdmitsAdmin(t *testing.T) {
	guard, tokens, _, _ := newTestGuard(t)
	token, err := tokens.IssueAdmin(&Admin{ID: "admin-1", Email: "admin@lawfirm.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var principal Principal
	handler := protected(guard.RequireAdmin(), &principal)
	rr := doRequest(t, handler, "Bearer "+token)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected admit, got %d: %s", rr.Code, rr.Body.String())
	}
	if principal.ID != "admin-1" || principal.Role != RoleAdmin {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestRequireAdminRejectsDeletedAdmin(t *testing.T) {
	guard, tokens, admins, _ := newTestGuard(t)
	token, err := tokens.IssueAdmin(&Admin{ID: "admin-1", Email: "admin@lawfirm.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	delete(admins.admins, "admin-1")

	handler := protected(guard.RequireAdmin(), nil)
	assertFailure(t, doRequest(t, handler, "Bearer "+token), http.StatusUnauthorized,
		"Access denied. Admin not found.")
}

func TestRequireAdminRejectsSubAdminRole(t *testing.T) {
	guard, tokens, _, subAdmins := newTestGuard(t)
	token, err := tokens.IssueSubAdmin(subAdmins.accounts["sub-1"])
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	handler := protected(guard.RequireAdmin(), nil)
	assertFailure(t, doRequest(t, handler, "Bearer "+token), http.StatusForbidden, "Forbidden.")
}

func TestRequireAdmitsSubAdminWithCapability(t *testing.T) {
	guard, tokens, _, subAdmins := newTestGuard(t)
	token, err := tokens.IssueSubAdmin(subAdmins.accounts["sub-1"])
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var principal Principal
	handler := protected(guard.Require(CapPosts), &principal)
	rr := doRequest(t, handler, "Bearer "+token)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected admit, got %d: %s", rr.Code, rr.Body.String())
	}
	if principal.Role != RoleSubAdmin || !principal.Can(CapPosts) {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestRequireRejectsMissingCapability(t *testing.T) {
	guard, tokens, _, subAdmins := newTestGuard(t)
	token, err := tokens.IssueSubAdmin(subAdmins.accounts["sub-1"])
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	handler := protected(guard.Require(CapSettings), nil)
	assertFailure(t, doRequest(t, handler, "Bearer "+token), http.StatusForbidden,
		"Access denied to this module.")
}

func TestRequireRejectsDeletedSubAdmin(t *testing.T) {
	guard, tokens, _, subAdmins := newTestGuard(t)
	token, err := tokens.IssueSubAdmin(subAdmins.accounts["sub-1"])
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	delete(subAdmins.accounts, "sub-1")

	handler := protected(guard.Require(CapPosts), nil)
	assertFailure(t, doRequest(t, handler, "Bearer "+token), http.StatusUnauthorized,
		"Access denied. Account not found.")
}

func TestRequireRejectsDeletedAdmin(t *testing.T) {
	guard, tokens, admins, _ := newTestGuard(t)
	token, err := tokens.IssueAdmin(&Admin{ID: "admin-1", Email: "admin@lawfirm.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	delete(admins.admins, "admin-1")

	// Deletion is immediate for admins on module routes too, not just
	// on the admin-only routes.
	handler := protected(guard.Require(CapPosts), nil)
	assertFailure(t, doRequest(t, handler, "Bearer "+token), http.StatusUnauthorized,
		"Access denied. Admin not found.")
}

func TestRequireAdmitsAdminWithoutCapabilityCheck(t *testing.T) {
	guard, tokens, _, _ := newTestGuard(t)
	token, err := tokens.IssueAdmin(&Admin{ID: "admin-1", Email: "admin@lawfirm.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	handler := protected(guard.Require(CapSettings, CapEnquiries), nil)
	rr := doRequest(t, handler, "Bearer "+token)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("admin must bypass capability checks, got %d", rr.Code)
	}
}

func TestCapabilityEnforcementUsesTokenSnapshot(t *testing.T) {
	guard, tokens, _, subAdmins := newTestGuard(t)
	token, err := tokens.IssueSubAdmin(subAdmins.accounts["sub-1"])
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Revoking the capability in the store does not affect tokens already
	// in flight; the change lands at the next login.
	subAdmins.accounts["sub-1"].Caps = NewCapabilitySet()

	handler := protected(guard.Require(CapPosts), nil)
	rr := doRequest(t, handler, "Bearer "+token)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected snapshot-based admit, got %d", rr.Code)
	}
}
