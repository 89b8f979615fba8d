package emr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mednexus/hms/internal/domain/registry"
	"github.com/mednexus/hms/internal/domain/session"
	"github.com/mednexus/hms/internal/platform/auth"
)

func newTestServer(t *testing.T, gw Analyzer) (*echo.Echo, string) {
	t.Helper()

	users := registry.NewUserRepoMem(registry.SeedUsers())
	hospitals := registry.NewHospitalRepoMem(registry.SeedHospitals())
	patients := registry.NewPatientRepoMem(registry.SeedPatients())

	sessSvc := session.NewService(users, hospitals,
		session.NewMemStore(time.Hour),
		auth.NewTokenCodec([]byte("test-key"), time.Hour))

	e := echo.New()
	e.Use(session.Middleware(sessSvc))

	h := NewHandler(NewManager(), gw, patients)
	h.RegisterRoutes(e.Group("/api/patients",
		session.RequireIdentity(), session.RequireSection("/patients")))

	token, _, err := sessSvc.Login(context.Background(), registry.RoleDoctor)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return e, token
}

func do(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandlerTriageFlow(t *testing.T) {
	gw := newFakeAnalyzer()
	e, token := newTestServer(t, gw)

	rec := do(e, http.MethodPost, "/api/patients/P-1001/emr/triage", token,
		`{"symptoms":"chest pain"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var st State
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !st.TriageLoading {
		t.Error("expected triage loading after accept")
	}

	// a second request while in flight conflicts
	rec = do(e, http.MethodPost, "/api/patients/P-1001/emr/triage", token,
		`{"symptoms":"chest pain"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 while loading, got %d", rec.Code)
	}

	gw.triageGate <- ok("Red. Immediate attention. ICD-10: I21.9")

	deadline := time.Now().Add(time.Second)
	for {
		rec = do(e, http.MethodGet, "/api/patients/P-1001/emr", token, "")
		if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !st.TriageLoading {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("triage never settled")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if st.TriageText != "Red. Immediate attention. ICD-10: I21.9" {
		t.Errorf("unexpected triage text: %q", st.TriageText)
	}
}

func TestHandlerTriageEmptySymptoms(t *testing.T) {
	e, token := newTestServer(t, newFakeAnalyzer())

	rec := do(e, http.MethodPost, "/api/patients/P-1001/emr/triage", token,
		`{"symptoms":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerUnknownPatient(t *testing.T) {
	e, token := newTestServer(t, newFakeAnalyzer())

	rec := do(e, http.MethodGet, "/api/patients/P-9999/emr", token, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandlerRequiresSession(t *testing.T) {
	e, _ := newTestServer(t, newFakeAnalyzer())

	rec := do(e, http.MethodGet, "/api/patients/P-1001/emr", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestHandlerUpdateDraft(t *testing.T) {
	e, token := newTestServer(t, newFakeAnalyzer())

	rec := do(e, http.MethodPut, "/api/patients/P-1001/emr/draft", token,
		`{"subjective":"headache for 3 days","plan":"hydration, rest"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var st State
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Draft.Subjective != "headache for 3 days" || st.Draft.Plan != "hydration, rest" {
		t.Errorf("unexpected draft: %+v", st.Draft)
	}
}

func summarizedNotes(t *testing.T, gw *fakeAnalyzer) string {
	t.Helper()
	select {
	case notes := <-gw.summaryNotes:
		return notes
	case <-time.After(time.Second):
		t.Fatal("summarizer was never called")
		return ""
	}
}

func TestHandlerSummaryUsesDraftSubjective(t *testing.T) {
	gw := newFakeAnalyzer()
	e, token := newTestServer(t, gw)

	rec := do(e, http.MethodPut, "/api/patients/P-1001/emr/draft", token,
		`{"subjective":"persistent cough, two weeks"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("draft update: expected 200, got %d", rec.Code)
	}

	rec = do(e, http.MethodPost, "/api/patients/P-1001/emr/summary", token, `{}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if notes := summarizedNotes(t, gw); notes != "persistent cough, two weeks" {
		t.Errorf("expected the draft subjective, got %q", notes)
	}
	gw.summaryGate <- ok("- Persistent cough")
}

func TestHandlerSummaryEmptyInputReachesGateway(t *testing.T) {
	gw := newFakeAnalyzer()
	e, token := newTestServer(t, gw)

	rec := do(e, http.MethodPost, "/api/patients/P-1001/emr/summary", token, `{}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if notes := summarizedNotes(t, gw); notes != "" {
		t.Errorf("expected empty notes to pass through, got %q", notes)
	}
	gw.summaryGate <- ok("No notes recorded.")
}

func TestLogoutDropsScope(t *testing.T) {
	users := registry.NewUserRepoMem(registry.SeedUsers())
	hospitals := registry.NewHospitalRepoMem(registry.SeedHospitals())
	patients := registry.NewPatientRepoMem(registry.SeedPatients())

	sessSvc := session.NewService(users, hospitals,
		session.NewMemStore(time.Hour),
		auth.NewTokenCodec([]byte("test-key"), time.Hour))

	manager := NewManager()

	e := echo.New()
	e.Use(session.Middleware(sessSvc))
	session.NewHandler(sessSvc, manager.Drop).RegisterRoutes(
		e.Group("/api"), e.Group("/api", session.RequireIdentity()))
	NewHandler(manager, newFakeAnalyzer(), patients).RegisterRoutes(
		e.Group("/api/patients", session.RequireIdentity(), session.RequireSection("/patients")))

	token, _, err := sessSvc.Login(context.Background(), registry.RoleDoctor)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	rec := do(e, http.MethodPut, "/api/patients/P-1001/emr/draft", token,
		`{"subjective":"dizziness"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("draft update: expected 200, got %d", rec.Code)
	}

	manager.mu.Lock()
	n := len(manager.scopes)
	manager.mu.Unlock()
	if n != 1 {
		t.Fatalf("expected 1 live scope, got %d", n)
	}

	rec = do(e, http.MethodPost, "/api/logout", token, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", rec.Code)
	}

	manager.mu.Lock()
	n = len(manager.scopes)
	manager.mu.Unlock()
	if n != 0 {
		t.Errorf("expected no scopes after logout, got %d", n)
	}
}

func TestHandlerSaveRecordNotImplemented(t *testing.T) {
	e, token := newTestServer(t, newFakeAnalyzer())

	rec := do(e, http.MethodPost, "/api/patients/P-1001/emr/record", token, "")
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("expected 501, got %d", rec.Code)
	}
}
