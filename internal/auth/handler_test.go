package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newLoginRouter(t *testing.T) chi.Router {
	t.Helper()
	service, _ := newTestService(t)
	handler := NewHandler(nil, service)
	r := chi.NewRouter()
	r.Route("/api/admin/auth", handler.MountAdminRoutes)
	r.Route("/api/subadmin", handler.MountSubAdminRoutes)
	return r
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestAdminLoginSuccessShape(t *testing.T) {
	router := newLoginRouter(t)

	rr := postJSON(t, router, "/api/admin/auth/login",
		`{"email":"admin@lawfirm.com","password":"admin123"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Token string `json:"token"`
			Admin struct {
				ID    string `json:"id"`
				Email string `json:"email"`
			} `json:"admin"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Message != "Login successful." {
		t.Fatalf("unexpected envelope: %s", rr.Body.String())
	}
	if body.Data.Token == "" {
		t.Fatal("expected a token in the response")
	}
	if body.Data.Admin.Email != "admin@lawfirm.com" || body.Data.Admin.ID == "" {
		t.Fatalf("unexpected admin payload: %+v", body.Data.Admin)
	}
}

func TestAdminLoginFailureBodiesAreIdentical(t *testing.T) {
	router := newLoginRouter(t)

	unknown := postJSON(t, router, "/api/admin/auth/login",
		`{"email":"nobody@lawfirm.com","password":"admin123"}`)
	wrong := postJSON(t, router, "/api/admin/auth/login",
		`{"email":"admin@lawfirm.com","password":"nope"}`)

	if unknown.Code != http.StatusUnauthorized || wrong.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", unknown.Code, wrong.Code)
	}
	if unknown.Body.String() != wrong.Body.String() {
		t.Fatalf("bodies must not distinguish the failing field: %s vs %s",
			unknown.Body.String(), wrong.Body.String())
	}
}

func TestAdminLoginValidation(t *testing.T) {
	router := newLoginRouter(t)

	for _, body := range []string{
		`{"email":"","password":"x"}`,
		`{"email":"a@b.c"}`,
		`not json`,
	} {
		rr := postJSON(t, router, "/api/admin/auth/login", body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", body, rr.Code)
		}
	}
}

func TestSubAdminLoginShape(t *testing.T) {
	router := newLoginRouter(t)

	rr := postJSON(t, router, "/api/subadmin/login",
		`{"email":"editor@lawfirm.com","password":"editor123"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("expected token field")
	}
	if _, hasData := body["data"]; hasData {
		t.Fatal("subadmin login uses the flat shape, not the data envelope")
	}
}
