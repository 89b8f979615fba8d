package main

import (
	"bytes"
	"context"
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

func TestPrintSectionTable(t *testing.T) {
	var buf bytes.Buffer
	printSectionTable(&buf)
	out := buf.String()

	for _, want := range []string{
		"Super Admin:", "Doctor:", "Patient:",
		"Pharmacy", "/laboratory", "My Health",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q:\n%s", want, out)
		}
	}
}

func TestCheckSeeds(t *testing.T) {
	if problems := checkSeeds(); len(problems) != 0 {
		t.Errorf("expected clean fixtures, got %v", problems)
	}
}

func TestPlaceholderSections(t *testing.T) {
	users := registry.NewUserRepoMem(registry.SeedUsers())
	hospitals := registry.NewHospitalRepoMem(registry.SeedHospitals())
	sessSvc := session.NewService(users, hospitals,
		session.NewMemStore(time.Hour),
		auth.NewTokenCodec([]byte("test-key"), time.Hour))

	e := echo.New()
	e.Use(session.Middleware(sessSvc))
	mountPlaceholderSections(e)

	get := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	adminToken, _, err := sessSvc.Login(context.Background(), registry.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	for _, path := range []string{"/api/pharmacy", "/api/laboratory", "/api/billing"} {
		if rec := get(path, adminToken); rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200 for admin, got %d", path, rec.Code)
		}
	}

	doctorToken, _, err := sessSvc.Login(context.Background(), registry.RoleDoctor)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec := get("/api/pharmacy", doctorToken); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for doctor on /api/pharmacy, got %d", rec.Code)
	}

	patientToken, _, err := sessSvc.Login(context.Background(), registry.RolePatient)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec := get("/api/reports", patientToken); rec.Code != http.StatusOK {
		t.Errorf("expected 200 for patient on /api/reports, got %d", rec.Code)
	}

	if rec := get("/api/billing", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without identity, got %d", rec.Code)
	}
}
