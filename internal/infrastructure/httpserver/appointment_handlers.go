package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicboard/clinicboard/internal/core/domain/event"
	"github.com/clinicboard/clinicboard/internal/core/ports"
	"github.com/clinicboard/clinicboard/internal/infrastructure/httpserver/helpers"
)

// getMyAppointments serves the acting doctor's listing. A store failure
// degrades to an empty listing with a degraded flag instead of failing the
// request; the client decides how to render that.
func (s *Server) getMyAppointments(c echo.Context) error {
	doctorID, err := helpers.GetDoctorID(c)
	if err != nil {
		return err
	}

	list, source, err := s.appointmentSvc.GetListing(c.Request().Context(), doctorID)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"appointments": list,
			"source":       source,
			"degraded":     true,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"appointments": list,
		"source":       source,
	})
}

func (s *Server) acceptAppointment(c echo.Context) error {
	return s.settleAppointment(c, s.appointmentSvc.Accept)
}

func (s *Server) rejectAppointment(c echo.Context) error {
	return s.settleAppointment(c, s.appointmentSvc.Reject)
}

// settleAppointment runs one of the two status-changing operations. The
// event returned by the service has already been handed to the notifier; it
// is included in the acknowledgment body.
func (s *Server) settleAppointment(c echo.Context, settle func(context.Context, uuid.UUID) (*event.AppointmentStatusChanged, error)) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment ID")
	}

	evt, err := settle(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrAppointmentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"event":   evt,
	})
}
