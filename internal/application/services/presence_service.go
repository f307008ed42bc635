package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/clinicboard/clinicboard/internal/core/domain/doctor"
	"github.com/clinicboard/clinicboard/internal/core/domain/event"
	"github.com/clinicboard/clinicboard/internal/core/ports"
)

// PresenceService keeps the per-doctor availability value. Presence lives
// only in the cache: available and busy expire after presenceTTL, offline is
// stored without expiry, and any absence reads as offline.
type PresenceService struct {
	doctors     ports.DoctorRepository
	cache       ports.Cache
	notifier    ports.Notifier
	presenceTTL time.Duration
	logger      *logrus.Logger
}

func NewPresenceService(doctors ports.DoctorRepository, cache ports.Cache, notifier ports.Notifier, presenceTTL time.Duration, logger *logrus.Logger) ports.PresenceService {
	return &PresenceService{
		doctors:     doctors,
		cache:       cache,
		notifier:    notifier,
		presenceTTL: presenceTTL,
		logger:      logger,
	}
}

func presenceKey(doctorID uuid.UUID) string {
	return "presence:doctor:" + doctorID.String()
}

// SetStatus validates and stores the status, then announces the transition
// best-effort. Unlike the listing cache there is no durable fallback, so a
// cache failure here is the one place the cache layer surfaces to a caller.
func (s *PresenceService) SetStatus(ctx context.Context, doctorID uuid.UUID, status doctor.PresenceStatus) error {
	if !status.Valid() {
		return ports.ErrInvalidStatus
	}
	if s.cache == nil {
		return ports.ErrPresenceUnavailable
	}

	ttl := s.presenceTTL
	if status == doctor.PresenceOffline {
		ttl = 0
	}
	if err := s.cache.Set(ctx, presenceKey(doctorID), []byte(status), ttl); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"doctor_id": doctorID, "status": status}).WithError(err).Warn("presence store unavailable")
		}
		return ports.ErrPresenceUnavailable
	}

	s.announce(ctx, doctorID, status)

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"doctor_id": doctorID, "status": status}).Info("presence updated")
	}
	return nil
}

// announce publishes the presence transition. The doctor name is resolved
// for the event payload; a failed lookup only drops the event, never the
// status update that already succeeded.
func (s *PresenceService) announce(ctx context.Context, doctorID uuid.UUID, status doctor.PresenceStatus) {
	if s.notifier == nil {
		return
	}
	doc, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"doctor_id": doctorID}).WithError(err).Debug("skipping presence event, doctor lookup failed")
		}
		return
	}
	s.notifier.Publish(ctx, event.TopicDoctorPresence, &event.PresenceChanged{
		DoctorID:   doc.ID,
		DoctorName: doc.Name,
		Status:     status,
		Timestamp:  time.Now().UTC(),
	})
}

// GetStatus never fails: absence of information degrades to offline.
func (s *PresenceService) GetStatus(ctx context.Context, doctorID uuid.UUID) doctor.PresenceStatus {
	if s.cache == nil {
		return doctor.PresenceOffline
	}
	b, ok, err := s.cache.Get(ctx, presenceKey(doctorID))
	if err != nil || !ok {
		return doctor.PresenceOffline
	}
	status := doctor.PresenceStatus(b)
	if !status.Valid() {
		return doctor.PresenceOffline
	}
	return status
}

// GetAllStatuses resolves the set of doctors from the durable store and
// fans out one presence lookup per doctor. N is bounded by the total doctor
// count, so the fan-out stays cheap.
func (s *PresenceService) GetAllStatuses(ctx context.Context) (map[uuid.UUID]doctor.PresenceStatus, error) {
	docs, err := s.doctors.List(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make(map[uuid.UUID]doctor.PresenceStatus, len(docs))
	for _, d := range docs {
		statuses[d.ID] = s.GetStatus(ctx, d.ID)
	}
	return statuses, nil
}
