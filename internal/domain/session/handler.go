package session

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mednexus/hms/internal/domain/registry"
)

type Handler struct {
	svc      *Service
	onLogout func(sessionID string)
}

// NewHandler builds the session endpoints. onLogout, when non-nil, is
// invoked with the session id after a signed-in caller logs out so
// collaborators can release per-session state.
func NewHandler(svc *Service, onLogout func(sessionID string)) *Handler {
	return &Handler{svc: svc, onLogout: onLogout}
}

// RegisterRoutes mounts the session endpoints. public carries no
// guards; authed arrives behind RequireIdentity.
func (h *Handler) RegisterRoutes(public, authed *echo.Group) {
	public.POST("/login", h.Login)
	public.POST("/logout", h.Logout)
	authed.GET("/session", h.GetSession)
	authed.PUT("/session/hospital", h.SelectHospital)
}

type loginRequest struct {
	Role string `json:"role"`
}

type loginResponse struct {
	Token   string   `json:"token"`
	Session *Session `json:"session"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, sess, err := h.svc.Login(c.Request().Context(), registry.Role(req.Role))
	if errors.Is(err, ErrUnknownRole) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}
	if errors.Is(err, ErrNoUserForRole) {
		return echo.NewHTTPError(http.StatusNotFound, "no account for role")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, Session: sess})
}

func (h *Handler) Logout(c echo.Context) error {
	sess, ok := CurrentIdentity(c)
	if err := h.svc.Logout(c.Request().Context(), bearerToken(c)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if ok && h.onLogout != nil {
		h.onLogout(sess.ID)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetSession(c echo.Context) error {
	sess, ok := CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	return c.JSON(http.StatusOK, sess)
}

type selectHospitalRequest struct {
	HospitalID string `json:"hospital_id"`
}

func (h *Handler) SelectHospital(c echo.Context) error {
	sess, ok := CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	var req selectHospitalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.svc.SelectHospital(c.Request().Context(), sess, req.HospitalID)
	if errors.Is(err, registry.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "hospital not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}
