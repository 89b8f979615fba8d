package emr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mednexus/hms/internal/domain/registry"
	"github.com/mednexus/hms/internal/domain/session"
)

type Handler struct {
	manager  *Manager
	gateway  Analyzer
	patients registry.PatientRepository
}

func NewHandler(manager *Manager, gateway Analyzer, patients registry.PatientRepository) *Handler {
	return &Handler{manager: manager, gateway: gateway, patients: patients}
}

// RegisterRoutes mounts the EMR workflow under g. The group arrives
// behind the patients section guard.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/:id/emr", h.GetState)
	g.PUT("/:id/emr/draft", h.UpdateDraft)
	g.POST("/:id/emr/triage", h.RequestTriage)
	g.POST("/:id/emr/summary", h.RequestSummary)
	g.POST("/:id/emr/record", h.SaveRecord)
}

// scope resolves the caller's editing scope for the patient in the
// path, verifying the patient exists.
func (h *Handler) scope(c echo.Context) (*Scope, *registry.Patient, error) {
	sess, ok := session.CurrentIdentity(c)
	if !ok {
		return nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	p, err := h.patients.GetByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, registry.ErrNotFound) {
		return nil, nil, echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.manager.Scope(sess.ID, p.ID), p, nil
}

func (h *Handler) GetState(c echo.Context) error {
	scope, _, err := h.scope(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scope.Snapshot())
}

func (h *Handler) UpdateDraft(c echo.Context) error {
	scope, _, err := h.scope(c)
	if err != nil {
		return err
	}
	var draft registry.SOAP
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	scope.UpdateDraft(draft)
	return c.JSON(http.StatusOK, scope.Snapshot())
}

type triageRequest struct {
	Symptoms string `json:"symptoms"`
}

func (h *Handler) RequestTriage(c echo.Context) error {
	scope, _, err := h.scope(c)
	if err != nil {
		return err
	}
	var req triageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err = scope.RequestTriage(h.gateway, req.Symptoms)
	if errors.Is(err, ErrEmptyInput) {
		return echo.NewHTTPError(http.StatusBadRequest, "symptoms required")
	}
	if errors.Is(err, ErrBusy) {
		return echo.NewHTTPError(http.StatusConflict, "analysis already in progress")
	}
	return c.JSON(http.StatusAccepted, scope.Snapshot())
}

type summaryRequest struct {
	Notes string `json:"notes"`
}

// RequestSummary kicks off a summary of the draft's subjective notes.
// The body may override the input; empty text is passed through, the
// gateway decides what to make of it.
func (h *Handler) RequestSummary(c echo.Context) error {
	scope, _, err := h.scope(c)
	if err != nil {
		return err
	}
	var req summaryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	notes := req.Notes
	if notes == "" {
		notes = scope.Snapshot().Draft.Subjective
	}

	_, err = scope.RequestSummary(h.gateway, notes)
	if errors.Is(err, ErrBusy) {
		return echo.NewHTTPError(http.StatusConflict, "summary already in progress")
	}
	return c.JSON(http.StatusAccepted, scope.Snapshot())
}

func (h *Handler) SaveRecord(c echo.Context) error {
	scope, _, err := h.scope(c)
	if err != nil {
		return err
	}
	if err := scope.SaveRecord(); errors.Is(err, ErrNotImplemented) {
		return echo.NewHTTPError(http.StatusNotImplemented, "record persistence not available")
	}
	return c.NoContent(http.StatusNoContent)
}
