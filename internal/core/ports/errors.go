package ports

import "errors"

// Sentinel errors matched with errors.Is at the handler boundary. Cache and
// notification failures are deliberately absent: those are absorbed inside
// the components and never propagate to callers.
var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrInvalidStatus       = errors.New("invalid presence status")
	ErrPresenceUnavailable = errors.New("presence store unavailable")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
