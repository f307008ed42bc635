package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicboard/clinicboard/internal/core/domain/doctor"
)

// PresenceService manages the cache-only availability value of each doctor.
type PresenceService interface {
	// SetStatus stores the status. Rejects with ErrInvalidStatus on an
	// unknown value and ErrPresenceUnavailable when the cache layer is down;
	// presence has no durable fallback.
	SetStatus(ctx context.Context, doctorID uuid.UUID, status doctor.PresenceStatus) error
	// GetStatus never fails: absence, expiry, and cache unavailability all
	// read as offline.
	GetStatus(ctx context.Context, doctorID uuid.UUID) doctor.PresenceStatus
	// GetAllStatuses resolves the valid doctor ids from the durable store
	// and looks each one up. With the cache down every doctor reports
	// offline.
	GetAllStatuses(ctx context.Context) (map[uuid.UUID]doctor.PresenceStatus, error)
}
