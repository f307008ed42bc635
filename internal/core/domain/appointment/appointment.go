package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Settled reports whether the status is a terminal decision a doctor can
// apply to a pending request.
func (s Status) Settled() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Appointment is the authoritative record owned by the durable store.
// Rows are never deleted; they only transition status.
type Appointment struct {
	ID              uuid.UUID `json:"id" db:"id"`
	DoctorID        uuid.UUID `json:"doctor_id" db:"doctor_id"`
	PatientID       uuid.UUID `json:"patient_id" db:"patient_id"`
	Status          Status    `json:"status" db:"status"`
	AppointmentDate time.Time `json:"appointment_date" db:"appointment_date"`
	StartTime       string    `json:"start_time" db:"start_time"`
	EndTime         string    `json:"end_time" db:"end_time"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Detail is the appointment joined with the display fields of its doctor and
// patient, as read in one query before a status change is applied.
type Detail struct {
	Appointment
	DoctorName      string `json:"doctor_name" db:"doctor_name"`
	DoctorSpecialty string `json:"doctor_specialty" db:"doctor_specialty"`
	PatientName     string `json:"patient_name" db:"patient_name"`
}
