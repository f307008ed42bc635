package repositories_test

import (
	"context"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicboard/clinicboard/internal/core/domain/appointment"
	"github.com/clinicboard/clinicboard/internal/infrastructure/db"
	"github.com/clinicboard/clinicboard/internal/infrastructure/repositories"
)

var appointmentColumns = []string{
	"id", "doctor_id", "patient_id", "status",
	"appointment_date", "start_time", "end_time",
	"created_at", "updated_at",
}

// The listing query must sort pending requests before settled ones, each
// group chronologically. The clause lives in SQL, so the unit test pins the
// exact ORDER BY and the integration test below verifies it against a real
// database.
func TestListByDoctor_QueryOrdersPendingFirst(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	database := &db.Database{DB: sqlx.NewDb(mockDB, "sqlmock")}
	repo := repositories.NewAppointmentRepository(database, nil)

	doctorID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows(appointmentColumns).
		AddRow(uuid.NewString(), doctorID.String(), uuid.NewString(), "pending",
			time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "10:00:00", "11:00:00", now, now).
		AddRow(uuid.NewString(), doctorID.String(), uuid.NewString(), "accepted",
			time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "09:00:00", "09:30:00", now, now).
		AddRow(uuid.NewString(), doctorID.String(), uuid.NewString(), "accepted",
			time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "09:00:00", "09:30:00", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(
		"ORDER BY CASE WHEN status = 'pending' THEN 0 ELSE 1 END, appointment_date ASC, start_time ASC",
	)).WithArgs(doctorID).WillReturnRows(rows)

	list, err := repo.ListByDoctor(context.Background(), doctorID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, appointment.StatusPending, list[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByDoctor_OrderingAgainstPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	dbx, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	defer dbx.Close()

	database := &db.Database{DB: dbx}
	repo := repositories.NewAppointmentRepository(database, nil)

	ctx := context.Background()
	doctorID := seedOrderingFixture(t, ctx, dbx)

	list, err := repo.ListByDoctor(ctx, doctorID)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// The pending request leads even though both accepted ones are dated
	// earlier or equal; the settled group follows in chronological order.
	assert.Equal(t, appointment.StatusPending, list[0].Status)
	assert.Equal(t, appointment.StatusAccepted, list[1].Status)
	assert.Equal(t, "2024-01-05", list[1].AppointmentDate.Format("2006-01-02"))
	assert.Equal(t, appointment.StatusAccepted, list[2].Status)
	assert.Equal(t, "2024-01-10", list[2].AppointmentDate.Format("2006-01-02"))
}

func seedOrderingFixture(t *testing.T, ctx context.Context, dbx *sqlx.DB) uuid.UUID {
	t.Helper()

	doctorID := uuid.New()
	patientID := uuid.New()
	_, err := dbx.ExecContext(ctx, `
		INSERT INTO doctors (id, name, specialty, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)`,
		doctorID, "Dr. Reed", "Cardiology", doctorID.String()+"@example.com", "unused")
	require.NoError(t, err)
	_, err = dbx.ExecContext(ctx, `
		INSERT INTO patients (id, name, email)
		VALUES ($1, $2, $3)`,
		patientID, "Ada", patientID.String()+"@example.com")
	require.NoError(t, err)

	fixtures := []struct {
		status string
		date   string
		start  string
	}{
		{"pending", "2024-01-10", "10:00:00"},
		{"accepted", "2024-01-10", "09:00:00"},
		{"accepted", "2024-01-05", "09:00:00"},
	}
	for _, f := range fixtures {
		_, err = dbx.ExecContext(ctx, `
			INSERT INTO appointments (id, doctor_id, patient_id, status, appointment_date, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), doctorID, patientID, f.status, f.date, f.start, "11:00:00")
		require.NoError(t, err)
	}

	t.Cleanup(func() {
		_, _ = dbx.Exec(`DELETE FROM appointments WHERE doctor_id = $1`, doctorID)
		_, _ = dbx.Exec(`DELETE FROM patients WHERE id = $1`, patientID)
		_, _ = dbx.Exec(`DELETE FROM doctors WHERE id = $1`, doctorID)
	})
	return doctorID
}
