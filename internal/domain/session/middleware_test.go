package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mednexus/hms/internal/domain/registry"
)

func newTestServer(t *testing.T) (*echo.Echo, *Service) {
	t.Helper()
	svc := newTestService()

	e := echo.New()
	e.Use(Middleware(svc))

	h := NewHandler(svc, nil)
	public := e.Group("/api")
	authed := e.Group("/api", RequireIdentity())
	h.RegisterRoutes(public, authed)

	patients := e.Group("/api/patients", RequireIdentity(), RequireSection("/patients"))
	patients.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e, svc
}

func login(t *testing.T, svc *Service, role registry.Role) string {
	t.Helper()
	token, _, err := svc.Login(context.Background(), role)
	if err != nil {
		t.Fatalf("Login(%s): %v", role, err)
	}
	return token
}

func TestLoginEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"role":"Doctor"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token   string  `json:"token"`
		Session Session `json:"session"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.Session.User.Role != registry.RoleDoctor {
		t.Errorf("expected Doctor session, got %s", resp.Session.User.Role)
	}
}

func TestLoginEndpointUnknownRole(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"role":"Janitor"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetSessionRequiresIdentity(t *testing.T) {
	e, svc := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous, got %d", rec.Code)
	}

	token := login(t, svc, registry.RoleNurse)
	req = httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}

	var sess Session
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sess.User.Role != registry.RoleNurse {
		t.Errorf("expected Nurse, got %s", sess.User.Role)
	}
}

func TestMalformedTokenTreatedAsAnonymous(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for malformed token, got %d", rec.Code)
	}
}

func TestRequireSection(t *testing.T) {
	e, svc := newTestServer(t)

	doctor := login(t, svc, registry.RoleDoctor)
	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+doctor)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("doctor should reach /patients, got %d", rec.Code)
	}

	patient := login(t, svc, registry.RolePatient)
	req = httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+patient)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("patient should be forbidden from /patients, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous should get 401, got %d", rec.Code)
	}
}

func TestSelectHospitalEndpoint(t *testing.T) {
	e, svc := newTestServer(t)
	token := login(t, svc, registry.RoleSuperAdmin)

	req := httptest.NewRequest(http.MethodPut, "/api/session/hospital",
		strings.NewReader(`{"hospital_id":"hosp_2"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var sess Session
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sess.HospitalID != "hosp_2" {
		t.Errorf("expected hosp_2, got %s", sess.HospitalID)
	}
}

func TestLogoutEndpoint(t *testing.T) {
	e, svc := newTestServer(t)
	token := login(t, svc, registry.RoleDoctor)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", rec.Code)
	}
}
