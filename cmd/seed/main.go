package main

import (
	"context"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicboard/clinicboard/configs"
	"github.com/clinicboard/clinicboard/internal/core/domain/appointment"
	"github.com/clinicboard/clinicboard/internal/infrastructure/db"
)

// Seeds a demo dataset: doctors (password "password"), patients, and a mix
// of pending and settled appointment requests.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	database, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer database.Close()

	if err := database.Migrate("./migrations"); err != nil {
		log.Printf("migrate: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	ctx := context.Background()
	doctorIDs, err := seedDoctors(ctx, database, 10)
	if err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	patientIDs, err := seedPatients(ctx, database, 50)
	if err != nil {
		log.Fatalf("seed patients: %v", err)
	}
	if err := seedAppointments(ctx, database, doctorIDs, patientIDs, 200); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

var specialties = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
}

func seedDoctors(ctx context.Context, database *db.Database, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d doctors", count)

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		_, err := database.DB.ExecContext(ctx, `
			INSERT INTO doctors (id, name, specialty, email, password_hash)
			VALUES ($1, $2, $3, $4, $5)
		`, id, gofakeit.Name(), specialties[gofakeit.Number(0, len(specialties)-1)], gofakeit.Email(), string(hash))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedPatients(ctx context.Context, database *db.Database, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d patients", count)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		_, err := database.DB.ExecContext(ctx, `
			INSERT INTO patients (id, name, email)
			VALUES ($1, $2, $3)
		`, id, gofakeit.Name(), gofakeit.Email())
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedAppointments(ctx context.Context, database *db.Database, doctorIDs, patientIDs []uuid.UUID, count int) error {
	log.Printf("seeding %d appointments", count)

	statuses := []appointment.Status{
		appointment.StatusPending,
		appointment.StatusPending,
		appointment.StatusAccepted,
		appointment.StatusRejected,
	}

	for i := 0; i < count; i++ {
		doctorID := doctorIDs[gofakeit.Number(0, len(doctorIDs)-1)]
		patientID := patientIDs[gofakeit.Number(0, len(patientIDs)-1)]
		status := statuses[gofakeit.Number(0, len(statuses)-1)]

		date := time.Now().AddDate(0, 0, gofakeit.Number(-14, 30))
		startHour := gofakeit.Number(8, 16)

		_, err := database.DB.ExecContext(ctx, `
			INSERT INTO appointments (id, doctor_id, patient_id, status, appointment_date, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New(), doctorID, patientID, status,
			date.Format("2006-01-02"),
			time.Date(0, 1, 1, startHour, 0, 0, 0, time.UTC).Format("15:04:05"),
			time.Date(0, 1, 1, startHour+1, 0, 0, 0, time.UTC).Format("15:04:05"))
		if err != nil {
			return err
		}
	}
	return nil
}
