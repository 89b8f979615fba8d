package registry

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mednexus/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the registry endpoints. Access control is
// attached by the caller; the groups arrive with the section guards
// already applied.
func (h *Handler) RegisterRoutes(patients, appointments, hospitals *echo.Group) {
	hospitals.GET("", h.ListHospitals)
	hospitals.GET("/:id", h.GetHospital)

	patients.GET("", h.ListPatients)
	patients.GET("/:id", h.GetPatient)
	patients.GET("/:id/idcard", h.GetIDCard)

	appointments.GET("", h.ListAppointments)
	appointments.GET("/:id", h.GetAppointment)
}

func (h *Handler) ListHospitals(c echo.Context) error {
	items, err := h.svc.ListHospitals(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetHospital(c echo.Context) error {
	hosp, err := h.svc.GetHospital(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "hospital not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, hosp)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPatients(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.GetPatient(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetIDCard(c echo.Context) error {
	card, err := h.svc.BuildIDCard(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, card)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListAppointments(c.Request().Context(), c.QueryParam("patient_id"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetAppointment(c echo.Context) error {
	appt, err := h.svc.GetAppointment(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, appt)
}
