package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicboard/clinicboard/internal/core/domain/appointment"
	"github.com/clinicboard/clinicboard/internal/core/domain/event"
)

// Source tells a caller whether a listing came from the cache or from the
// durable store.
type Source string

const (
	SourceCache Source = "cache"
	SourceStore Source = "store"
)

// AppointmentRepository is the durable-store access needed by the
// coordination layer.
type AppointmentRepository interface {
	// ListByDoctor returns all appointments for the doctor ordered pending
	// first, then by date and start time ascending.
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]appointment.Appointment, error)
	// GetDetail returns the appointment joined with doctor and patient
	// display fields, or ErrAppointmentNotFound.
	GetDetail(ctx context.Context, id uuid.UUID) (*appointment.Detail, error)
	// UpdateStatus sets the status column unconditionally. Returns
	// ErrAppointmentNotFound when no row matched.
	UpdateStatus(ctx context.Context, id uuid.UUID, status appointment.Status) error
}

// AppointmentService is the cache-aside read path plus the
// write-invalidation path.
type AppointmentService interface {
	// GetListing serves the doctor's appointment list cache-first. A cache
	// failure degrades to the store; a store failure returns an empty slice
	// and the error.
	GetListing(ctx context.Context, doctorID uuid.UUID) ([]appointment.Appointment, Source, error)
	// Accept and Reject settle a pending request. The returned event has
	// already been handed to the notifier; it is exposed for the handler's
	// acknowledgment body.
	Accept(ctx context.Context, id uuid.UUID) (*event.AppointmentStatusChanged, error)
	Reject(ctx context.Context, id uuid.UUID) (*event.AppointmentStatusChanged, error)
}
