package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/clinicboard/clinicboard/internal/core/domain/doctor"
	"github.com/clinicboard/clinicboard/internal/core/ports"
	"github.com/clinicboard/clinicboard/internal/infrastructure/db"
)

// DoctorRepository implements ports.DoctorRepository on Postgres.
type DoctorRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewDoctorRepository(database *db.Database, logger *logrus.Logger) ports.DoctorRepository {
	return &DoctorRepository{
		db:     database,
		logger: logger,
	}
}

func (r *DoctorRepository) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	var d doctor.Doctor
	query := `
		SELECT id, name, specialty, email, password_hash, created_at, updated_at
		FROM doctors
		WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &d, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"doctor_id": id}).Debug("db: doctor not found by ID")
			}
			return nil, ports.ErrDoctorNotFound
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"doctor_id": id}).WithError(err).Error("db: failed to get doctor by ID")
		}
		return nil, fmt.Errorf("failed to get doctor by ID: %w", err)
	}

	return &d, nil
}

func (r *DoctorRepository) GetByEmail(ctx context.Context, email string) (*doctor.Doctor, error) {
	var d doctor.Doctor
	query := `
		SELECT id, name, specialty, email, password_hash, created_at, updated_at
		FROM doctors
		WHERE email = $1`

	err := r.db.DB.GetContext(ctx, &d, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"email": email}).Debug("db: doctor not found by email")
			}
			return nil, ports.ErrDoctorNotFound
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"email": email}).WithError(err).Error("db: failed to get doctor by email")
		}
		return nil, fmt.Errorf("failed to get doctor by email: %w", err)
	}

	return &d, nil
}

func (r *DoctorRepository) List(ctx context.Context) ([]doctor.Doctor, error) {
	var list []doctor.Doctor
	query := `
		SELECT id, name, specialty, email, password_hash, created_at, updated_at
		FROM doctors
		ORDER BY name ASC`

	if err := r.db.DB.SelectContext(ctx, &list, query); err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to list doctors")
		}
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	return list, nil
}
