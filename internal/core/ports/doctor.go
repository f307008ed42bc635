package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicboard/clinicboard/internal/core/domain/doctor"
)

// DoctorRepository reads doctor records from the durable store.
type DoctorRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*doctor.Doctor, error)
	// List returns every doctor; bounded by total doctor count, used for
	// the presence fan-out.
	List(ctx context.Context) ([]doctor.Doctor, error)
}
