package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/clinicboard/clinicboard/internal/core/domain/appointment"
	"github.com/clinicboard/clinicboard/internal/core/ports"
	"github.com/clinicboard/clinicboard/internal/infrastructure/db"
)

// AppointmentRepository implements ports.AppointmentRepository on Postgres.
type AppointmentRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewAppointmentRepository(database *db.Database, logger *logrus.Logger) ports.AppointmentRepository {
	return &AppointmentRepository{
		db:     database,
		logger: logger,
	}
}

// ListByDoctor returns the doctor's appointments with pending requests first,
// settled ones after, each group in chronological order.
func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]appointment.Appointment, error) {
	var list []appointment.Appointment
	query := `
		SELECT id, doctor_id, patient_id, status, appointment_date, start_time, end_time, created_at, updated_at
		FROM appointments
		WHERE doctor_id = $1
		ORDER BY CASE WHEN status = 'pending' THEN 0 ELSE 1 END, appointment_date ASC, start_time ASC`

	if err := r.db.DB.SelectContext(ctx, &list, query, doctorID); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"doctor_id": doctorID}).WithError(err).Error("db: failed to list appointments")
		}
		return nil, fmt.Errorf("failed to list appointments for doctor %s: %w", doctorID, err)
	}

	return list, nil
}

// GetDetail reads the appointment joined with its doctor and patient display
// fields in a single query.
func (r *AppointmentRepository) GetDetail(ctx context.Context, id uuid.UUID) (*appointment.Detail, error) {
	var d appointment.Detail
	query := `
		SELECT a.id, a.doctor_id, a.patient_id, a.status, a.appointment_date, a.start_time, a.end_time,
			   a.created_at, a.updated_at,
			   doc.name AS doctor_name, doc.specialty AS doctor_specialty,
			   pat.name AS patient_name
		FROM appointments a
		JOIN doctors doc ON doc.id = a.doctor_id
		JOIN patients pat ON pat.id = a.patient_id
		WHERE a.id = $1`

	err := r.db.DB.GetContext(ctx, &d, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"appointment_id": id}).Debug("db: appointment not found")
			}
			return nil, ports.ErrAppointmentNotFound
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"appointment_id": id}).WithError(err).Error("db: failed to get appointment detail")
		}
		return nil, fmt.Errorf("failed to get appointment %s: %w", id, err)
	}

	return &d, nil
}

// UpdateStatus overwrites the status column. There is no guard on the prior
// status: concurrent accept/reject settle last-write-wins.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status appointment.Status) error {
	query := `UPDATE appointments SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"appointment_id": id, "status": status}).WithError(err).Error("db: failed to update appointment status")
		}
		return fmt.Errorf("failed to update appointment %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return ports.ErrAppointmentNotFound
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"appointment_id": id, "status": status}).Info("db: appointment status updated")
	}
	return nil
}
