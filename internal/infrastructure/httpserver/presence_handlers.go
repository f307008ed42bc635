package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicboard/clinicboard/internal/core/domain/doctor"
	"github.com/clinicboard/clinicboard/internal/core/ports"
	"github.com/clinicboard/clinicboard/internal/infrastructure/httpserver/helpers"
)

// setMyStatus updates the acting doctor's presence. Invalid values are a
// client error; an unreachable presence store is 503 because presence has no
// durable fallback.
func (s *Server) setMyStatus(c echo.Context) error {
	doctorID, err := helpers.GetDoctorID(c)
	if err != nil {
		return err
	}

	var req struct {
		Status doctor.PresenceStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := s.presenceSvc.SetStatus(c.Request().Context(), doctorID, req.Status); err != nil {
		switch {
		case errors.Is(err, ports.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, "status must be one of available, busy, offline")
		case errors.Is(err, ports.ErrPresenceUnavailable):
			return echo.NewHTTPError(http.StatusServiceUnavailable, "presence store unavailable")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"doctor_id": doctorID,
		"status":    req.Status,
	})
}

func (s *Server) getDoctorStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor ID")
	}

	status := s.presenceSvc.GetStatus(c.Request().Context(), id)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"doctor_id": id,
		"status":    status,
	})
}

func (s *Server) getAllStatuses(c echo.Context) error {
	statuses, err := s.presenceSvc.GetAllStatuses(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list doctors")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"statuses": statuses,
	})
}
