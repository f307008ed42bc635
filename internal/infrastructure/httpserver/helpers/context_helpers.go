package helpers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by the JWT middleware.
const (
	ContextDoctorID    = "doctor_id"
	ContextDoctorName  = "doctor_name"
	ContextDoctorEmail = "doctor_email"
)

// GetDoctorID returns the acting doctor's ID set by the JWT middleware.
func GetDoctorID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(ContextDoctorID).(uuid.UUID)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "doctor identity missing from request context")
	}
	return id, nil
}

func GetJWTTokenFromContext(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "empty token")
	}
	return token, nil
}
