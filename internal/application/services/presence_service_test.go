package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	impl "github.com/clinicboard/clinicboard/internal/application/services"
	"github.com/clinicboard/clinicboard/internal/core/domain/doctor"
	"github.com/clinicboard/clinicboard/internal/core/domain/event"
	"github.com/clinicboard/clinicboard/internal/core/ports"
)

type doctorRepoMock struct {
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
	getByEmailFn func(ctx context.Context, email string) (*doctor.Doctor, error)
	listFn       func(ctx context.Context) ([]doctor.Doctor, error)
}

func (m *doctorRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, ports.ErrDoctorNotFound
}
func (m *doctorRepoMock) GetByEmail(ctx context.Context, email string) (*doctor.Doctor, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, ports.ErrDoctorNotFound
}
func (m *doctorRepoMock) List(ctx context.Context) ([]doctor.Doctor, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

const presenceTTL = 1800 * time.Second

func TestSetStatus_InvalidStatus(t *testing.T) {
	touched := false
	cache := &cacheMock{setFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		touched = true
		return nil
	}}
	published := false
	notifier := &notifierMock{publishFn: func(ctx context.Context, topic string, evt any) { published = true }}

	svc := impl.NewPresenceService(&doctorRepoMock{}, cache, notifier, presenceTTL, nil)
	err := svc.SetStatus(context.Background(), uuid.New(), doctor.PresenceStatus("flying"))
	require.ErrorIs(t, err, ports.ErrInvalidStatus)
	assert.False(t, touched, "no mutation on invalid input")
	assert.False(t, published, "no event on invalid input")
}

func TestSetStatus_CacheUnavailable(t *testing.T) {
	cache := &cacheMock{setFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		return errors.New("connection refused")
	}}

	svc := impl.NewPresenceService(&doctorRepoMock{}, cache, nil, presenceTTL, nil)
	err := svc.SetStatus(context.Background(), uuid.New(), doctor.PresenceBusy)
	require.ErrorIs(t, err, ports.ErrPresenceUnavailable)
}

func TestSetStatus_BusyExpires(t *testing.T) {
	var gotTTL time.Duration
	var gotValue []byte
	cache := &cacheMock{setFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		gotTTL = ttl
		gotValue = value
		return nil
	}}

	svc := impl.NewPresenceService(&doctorRepoMock{}, cache, nil, presenceTTL, nil)
	require.NoError(t, svc.SetStatus(context.Background(), uuid.New(), doctor.PresenceBusy))
	assert.Equal(t, presenceTTL, gotTTL)
	assert.Equal(t, []byte(doctor.PresenceBusy), gotValue)
}

func TestSetStatus_OfflinePersists(t *testing.T) {
	var gotTTL time.Duration
	cache := &cacheMock{setFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		gotTTL = ttl
		return nil
	}}

	svc := impl.NewPresenceService(&doctorRepoMock{}, cache, nil, presenceTTL, nil)
	require.NoError(t, svc.SetStatus(context.Background(), uuid.New(), doctor.PresenceOffline))
	assert.Equal(t, time.Duration(0), gotTTL, "offline is stored without expiration")
}

func TestSetStatus_PublishesPresenceEvent(t *testing.T) {
	doctorID := uuid.New()
	doctors := &doctorRepoMock{getByIDFn: func(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
		return &doctor.Doctor{ID: doctorID, Name: "Dr. Reed"}, nil
	}}

	var gotTopic string
	var gotEvent *event.PresenceChanged
	notifier := &notifierMock{publishFn: func(ctx context.Context, topic string, evt any) {
		gotTopic = topic
		gotEvent, _ = evt.(*event.PresenceChanged)
	}}

	svc := impl.NewPresenceService(doctors, &cacheMock{}, notifier, presenceTTL, nil)
	require.NoError(t, svc.SetStatus(context.Background(), doctorID, doctor.PresenceAvailable))
	assert.Equal(t, event.TopicDoctorPresence, gotTopic)
	require.NotNil(t, gotEvent)
	assert.Equal(t, doctorID, gotEvent.DoctorID)
	assert.Equal(t, "Dr. Reed", gotEvent.DoctorName)
	assert.Equal(t, doctor.PresenceAvailable, gotEvent.Status)
	assert.False(t, gotEvent.Timestamp.IsZero())
}

func TestSetStatus_DoctorLookupFailureOnlyDropsEvent(t *testing.T) {
	published := false
	notifier := &notifierMock{publishFn: func(ctx context.Context, topic string, evt any) { published = true }}

	svc := impl.NewPresenceService(&doctorRepoMock{}, &cacheMock{}, notifier, presenceTTL, nil)
	require.NoError(t, svc.SetStatus(context.Background(), uuid.New(), doctor.PresenceBusy))
	assert.False(t, published)
}

func TestGetStatus_AbsentReadsOffline(t *testing.T) {
	svc := impl.NewPresenceService(&doctorRepoMock{}, &cacheMock{}, nil, presenceTTL, nil)
	assert.Equal(t, doctor.PresenceOffline, svc.GetStatus(context.Background(), uuid.New()))
}

func TestGetStatus_CacheErrorReadsOffline(t *testing.T) {
	cache := &cacheMock{getFn: func(ctx context.Context, key string) ([]byte, bool, error) {
		return nil, false, errors.New("connection refused")
	}}
	svc := impl.NewPresenceService(&doctorRepoMock{}, cache, nil, presenceTTL, nil)
	assert.Equal(t, doctor.PresenceOffline, svc.GetStatus(context.Background(), uuid.New()))
}

func TestGetStatus_StoredValue(t *testing.T) {
	cache := &cacheMock{getFn: func(ctx context.Context, key string) ([]byte, bool, error) {
		return []byte(doctor.PresenceAvailable), true, nil
	}}
	svc := impl.NewPresenceService(&doctorRepoMock{}, cache, nil, presenceTTL, nil)
	assert.Equal(t, doctor.PresenceAvailable, svc.GetStatus(context.Background(), uuid.New()))
}

func TestGetAllStatuses_CacheDownAllOffline(t *testing.T) {
	docs := make([]doctor.Doctor, 5)
	for i := range docs {
		docs[i] = doctor.Doctor{ID: uuid.New()}
	}
	doctors := &doctorRepoMock{listFn: func(ctx context.Context) ([]doctor.Doctor, error) { return docs, nil }}
	cache := &cacheMock{getFn: func(ctx context.Context, key string) ([]byte, bool, error) {
		return nil, false, errors.New("connection refused")
	}}

	svc := impl.NewPresenceService(doctors, cache, nil, presenceTTL, nil)
	statuses, err := svc.GetAllStatuses(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 5)
	for _, d := range docs {
		assert.Equal(t, doctor.PresenceOffline, statuses[d.ID])
	}
}

func TestGetAllStatuses_MixedValues(t *testing.T) {
	online := doctor.Doctor{ID: uuid.New()}
	silent := doctor.Doctor{ID: uuid.New()}
	doctors := &doctorRepoMock{listFn: func(ctx context.Context) ([]doctor.Doctor, error) {
		return []doctor.Doctor{online, silent}, nil
	}}
	cache := &cacheMock{getFn: func(ctx context.Context, key string) ([]byte, bool, error) {
		if key == "presence:doctor:"+online.ID.String() {
			return []byte(doctor.PresenceBusy), true, nil
		}
		return nil, false, nil
	}}

	svc := impl.NewPresenceService(doctors, cache, nil, presenceTTL, nil)
	statuses, err := svc.GetAllStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, doctor.PresenceBusy, statuses[online.ID])
	assert.Equal(t, doctor.PresenceOffline, statuses[silent.ID])
}

func TestGetAllStatuses_StoreFailure(t *testing.T) {
	doctors := &doctorRepoMock{listFn: func(ctx context.Context) ([]doctor.Doctor, error) {
		return nil, errors.New("db down")
	}}
	svc := impl.NewPresenceService(doctors, &cacheMock{}, nil, presenceTTL, nil)
	_, err := svc.GetAllStatuses(context.Background())
	require.Error(t, err)
}
