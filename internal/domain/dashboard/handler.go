package dashboard

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mednexus/hms/internal/domain/registry"
	"github.com/mednexus/hms/internal/domain/session"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.GetDashboard)
}

// GetDashboard returns the landing view for the caller's role: patients
// get their personal overview, everyone else the hospital dashboard
// scoped to the session's active hospital.
func (h *Handler) GetDashboard(c echo.Context) error {
	sess, ok := session.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	if sess.User.Role == registry.RolePatient {
		return c.JSON(http.StatusOK, h.svc.PatientView(sess.User))
	}

	view, err := h.svc.StaffView(c.Request().Context(), sess.HospitalID)
	if errors.Is(err, registry.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "hospital not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}
