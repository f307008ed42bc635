package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicboard/clinicboard/internal/core/domain/appointment"
	"github.com/clinicboard/clinicboard/internal/core/domain/doctor"
)

// Topics the notifier publishes on. The same string doubles as the event
// name for direct in-process delivery.
const (
	TopicAppointmentStatus = "appointment.status"
	TopicDoctorPresence    = "doctor.presence"
)

// AppointmentStatusChanged describes one status transition. Display fields
// are denormalized from the pre-mutation snapshot so subscribers can render
// the change without re-querying.
type AppointmentStatusChanged struct {
	AppointmentID   uuid.UUID          `json:"appointment_id"`
	PatientID       uuid.UUID          `json:"patient_id"`
	Status          appointment.Status `json:"status"`
	DoctorID        uuid.UUID          `json:"doctor_id"`
	DoctorName      string             `json:"doctor_name"`
	DoctorSpecialty string             `json:"doctor_specialty"`
	AppointmentDate time.Time          `json:"appointment_date"`
	StartTime       string             `json:"start_time"`
	EndTime         string             `json:"end_time"`
}

// PresenceChanged describes one presence transition.
type PresenceChanged struct {
	DoctorID   uuid.UUID             `json:"doctor_id"`
	DoctorName string                `json:"doctor_name"`
	Status     doctor.PresenceStatus `json:"status"`
	Timestamp  time.Time             `json:"timestamp"`
}
