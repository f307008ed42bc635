package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/clinicboard/clinicboard/internal/core/domain/appointment"
	"github.com/clinicboard/clinicboard/internal/core/domain/event"
	"github.com/clinicboard/clinicboard/internal/core/ports"
)

// AppointmentService orchestrates the cache-aside read path and the
// write-invalidation path for per-doctor appointment listings. The cache is
// strictly derived data: every cache failure degrades to the durable store,
// never to a caller-visible error.
type AppointmentService struct {
	repo       ports.AppointmentRepository
	cache      ports.Cache
	notifier   ports.Notifier
	listingTTL time.Duration
	logger     *logrus.Logger

	// coalesces concurrent miss loads per doctor key
	sf singleflight.Group
}

func NewAppointmentService(repo ports.AppointmentRepository, cache ports.Cache, notifier ports.Notifier, listingTTL time.Duration, logger *logrus.Logger) ports.AppointmentService {
	return &AppointmentService{
		repo:       repo,
		cache:      cache,
		notifier:   notifier,
		listingTTL: listingTTL,
		logger:     logger,
	}
}

func listingKey(doctorID uuid.UUID) string {
	return "appointments:doctor:" + doctorID.String()
}

// GetListing serves the doctor's appointments cache-first. On a miss it
// queries the store, repopulates the cache best-effort and returns with
// Source=store. A store failure yields an empty listing plus the error so
// the handler can render a degraded view.
func (s *AppointmentService) GetListing(ctx context.Context, doctorID uuid.UUID) ([]appointment.Appointment, ports.Source, error) {
	key := listingKey(doctorID)

	if list, ok := s.cachedListing(ctx, key); ok {
		listingCacheLookups.WithLabelValues("hit").Inc()
		return list, ports.SourceCache, nil
	}
	listingCacheLookups.WithLabelValues("miss").Inc()

	res, err, _ := s.sf.Do(key, func() (any, error) {
		list, err := s.repo.ListByDoctor(ctx, doctorID)
		if err != nil {
			return nil, err
		}
		s.populateListing(ctx, key, list)
		return list, nil
	})
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"doctor_id": doctorID}).WithError(err).Error("failed to load appointment listing from store")
		}
		return []appointment.Appointment{}, ports.SourceStore, fmt.Errorf("failed to load appointments: %w", err)
	}

	list, ok := res.([]appointment.Appointment)
	if !ok {
		return []appointment.Appointment{}, ports.SourceStore, fmt.Errorf("unexpected type from singleflight result")
	}
	return list, ports.SourceStore, nil
}

// cachedListing attempts the cache read. Any failure, miss or undecodable
// entry reads as a miss.
func (s *AppointmentService) cachedListing(ctx context.Context, key string) ([]appointment.Appointment, bool) {
	if s.cache == nil {
		return nil, false
	}
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Debug("cache unreachable, falling back to store")
		}
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var list []appointment.Appointment
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, false
	}
	return list, true
}

// populateListing writes the listing back with the bounded-staleness TTL.
// A populate failure only costs freshness; the read already succeeded.
func (s *AppointmentService) populateListing(ctx context.Context, key string, list []appointment.Appointment) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, b, s.listingTTL); err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Debug("failed to populate listing cache")
	}
}

// Accept settles the appointment as accepted.
func (s *AppointmentService) Accept(ctx context.Context, id uuid.UUID) (*event.AppointmentStatusChanged, error) {
	return s.applyStatusChange(ctx, id, appointment.StatusAccepted)
}

// Reject settles the appointment as rejected.
func (s *AppointmentService) Reject(ctx context.Context, id uuid.UUID) (*event.AppointmentStatusChanged, error) {
	return s.applyStatusChange(ctx, id, appointment.StatusRejected)
}

// applyStatusChange is the write-invalidation path. The joined snapshot is
// read before the mutation so the emitted event carries pre-transition
// display data plus the new status. Steps after the update are best-effort:
// a failed invalidation or publish never rolls back the durable write.
func (s *AppointmentService) applyStatusChange(ctx context.Context, id uuid.UUID, newStatus appointment.Status) (*event.AppointmentStatusChanged, error) {
	if !newStatus.Settled() {
		return nil, fmt.Errorf("status %q cannot be applied to an appointment", newStatus)
	}

	snapshot, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx, snapshot.DoctorID)

	evt := &event.AppointmentStatusChanged{
		AppointmentID:   snapshot.ID,
		PatientID:       snapshot.PatientID,
		Status:          newStatus,
		DoctorID:        snapshot.DoctorID,
		DoctorName:      snapshot.DoctorName,
		DoctorSpecialty: snapshot.DoctorSpecialty,
		AppointmentDate: snapshot.AppointmentDate,
		StartTime:       snapshot.StartTime,
		EndTime:         snapshot.EndTime,
	}
	if s.notifier != nil {
		s.notifier.Publish(ctx, event.TopicAppointmentStatus, evt)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"appointment_id": id, "doctor_id": snapshot.DoctorID, "status": newStatus}).Info("appointment status changed")
	}
	return evt, nil
}

// invalidateListing deletes the stale cache entry for the doctor. Failure is
// logged and swallowed: the next read will repopulate, and the TTL bounds
// staleness in the meantime.
func (s *AppointmentService) invalidateListing(ctx context.Context, doctorID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listingKey(doctorID)); err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"doctor_id": doctorID}).WithError(err).Warn("failed to invalidate listing cache")
	}
}
