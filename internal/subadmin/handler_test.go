package subadmin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/veritas-cms/veritas-cms/internal/auth"
)

func newManagementRouter() (chi.Router, *fakeRepo) {
	repo := newFakeRepo()
	handler := NewHandler(nil, NewService(repo))
	r := chi.NewRouter()
	r.Route("/api/subadmin", func(r chi.Router) {
		handler.MountManagementRoutes(r)
		handler.MountProfileRoutes(r)
	})
	return r, repo
}

func asAdmin(req *http.Request) *http.Request {
	principal := auth.Principal{ID: "admin-1", Email: "admin@lawfirm.com", Role: auth.RoleAdmin}
	return req.WithContext(auth.ContextWithPrincipal(req.Context(), principal))
}

func createSubAdmin(t *testing.T, router http.Handler, body string) map[string]any {
	t.Helper()
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/subadmin/create", strings.NewReader(body)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return envelope.Data
}

func TestCreateAcceptsFlatFlagForm(t *testing.T) {
	router, _ := newManagementRouter()

	data := createSubAdmin(t, router,
		`{"email":"a@lawfirm.com","password":"password1","name":"A","canManagePosts":true,"canManageNews":false}`)

	perms, _ := data["permissions"].(map[string]any)
	if perms["canManagePosts"] != true || perms["canManageNews"] != false {
		t.Fatalf("unexpected permissions: %v", perms)
	}
}

func TestCreateAcceptsModulesForm(t *testing.T) {
	router, _ := newManagementRouter()

	data := createSubAdmin(t, router,
		`{"email":"b@lawfirm.com","password":"password1","modules":["enquiries","settings"]}`)

	perms, _ := data["permissions"].(map[string]any)
	if perms["canManageEnquiries"] != true || perms["canManageSettings"] != true || perms["canManagePosts"] != false {
		t.Fatalf("unexpected permissions: %v", perms)
	}
}

func TestCreateAcceptsNestedPermissionsForm(t *testing.T) {
	router, _ := newManagementRouter()

	data := createSubAdmin(t, router,
		`{"email":"c@lawfirm.com","password":"password1","permissions":{"canManageLawyers":true}}`)

	perms, _ := data["permissions"].(map[string]any)
	if perms["canManageLawyers"] != true {
		t.Fatalf("unexpected permissions: %v", perms)
	}
}

func TestCreateRejectsUnknownModule(t *testing.T) {
	router, _ := newManagementRouter()

	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/subadmin/create",
		strings.NewReader(`{"email":"d@lawfirm.com","password":"password1","modules":["billing"]}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestCreateResponseNeverLeaksHash(t *testing.T) {
	router, _ := newManagementRouter()

	data := createSubAdmin(t, router,
		`{"email":"e@lawfirm.com","password":"password1","name":"E"}`)
	for key := range data {
		if strings.Contains(strings.ToLower(key), "password") || strings.Contains(strings.ToLower(key), "hash") {
			t.Fatalf("credential material leaked under key %q", key)
		}
	}
}

func TestCreateConflictStatus(t *testing.T) {
	router, _ := newManagementRouter()

	createSubAdmin(t, router, `{"email":"dup@lawfirm.com","password":"password1"}`)
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/subadmin/create",
		strings.NewReader(`{"email":"dup@lawfirm.com","password":"password1"}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestCreateValidatesPasswordLength(t *testing.T) {
	router, _ := newManagementRouter()

	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/subadmin/create",
		strings.NewReader(`{"email":"f@lawfirm.com","password":"short"}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestUpdateRolesEndpoint(t *testing.T) {
	router, repo := newManagementRouter()
	created := createSubAdmin(t, router,
		`{"email":"g@lawfirm.com","password":"password1","modules":["posts"]}`)
	id, _ := created["id"].(string)

	req := asAdmin(httptest.NewRequest(http.MethodPut, "/api/subadmin/"+id,
		strings.NewReader(`{"modules":["news"]}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	stored := repo.records[id]
	if !stored.Caps.Has(auth.CapNews) || stored.Caps.Has(auth.CapPosts) {
		t.Fatalf("roles not replaced: %v", stored.Caps)
	}
}

func TestProfileRequiresSubAdminRole(t *testing.T) {
	router, repo := newManagementRouter()
	created := createSubAdmin(t, router,
		`{"email":"h@lawfirm.com","password":"password1"}`)
	id, _ := created["id"].(string)

	// An administrator hitting /me gets refused, the route is self-service.
	adminReq := asAdmin(httptest.NewRequest(http.MethodGet, "/api/subadmin/me", nil))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, adminReq)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin, got %d", rr.Code)
	}

	principal := auth.Principal{ID: id, Email: "h@lawfirm.com", Role: auth.RoleSubAdmin}
	req := httptest.NewRequest(http.MethodGet, "/api/subadmin/me", nil)
	req = req.WithContext(auth.ContextWithPrincipal(req.Context(), principal))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if repo.records[id] == nil {
		t.Fatal("record vanished")
	}
}
