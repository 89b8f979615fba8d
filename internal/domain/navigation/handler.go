package navigation

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mednexus/hms/internal/domain/registry"
)

// RoleFunc resolves the role of the authenticated caller. The session
// layer supplies it at wiring time.
type RoleFunc func(c echo.Context) (registry.Role, bool)

type Handler struct {
	roleOf RoleFunc
}

func NewHandler(roleOf RoleFunc) *Handler {
	return &Handler{roleOf: roleOf}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/navigation", h.GetNavigation)
}

// GetNavigation returns the sidebar sections for the caller's role.
func (h *Handler) GetNavigation(c echo.Context) error {
	role, ok := h.roleOf(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	return c.JSON(http.StatusOK, SectionsFor(role))
}
