package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/armacare/insurance-admin/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	bg := context.Background()

	insuranceIDs, err := seedInsurances(bg, pool, 10)
	if err != nil {
		log.Fatalf("seed insurances: %v", err)
	}
	professionalIDs, err := seedProfessionals(bg, pool, 100)
	if err != nil {
		log.Fatalf("seed professionals: %v", err)
	}
	patientIDs, err := seedPatients(bg, pool, 2000)
	if err != nil {
		log.Fatalf("seed patients: %v", err)
	}
	contractIDs, err := seedContracts(bg, pool, patientIDs, insuranceIDs)
	if err != nil {
		log.Fatalf("seed contracts: %v", err)
	}
	if err := seedInvoices(bg, pool, 5000, professionalIDs, contractIDs); err != nil {
		log.Fatalf("seed invoices: %v", err)
	}

	log.Println("seed complete")
}

// senegalPhone returns a mobile number in the +221 7X range.
func senegalPhone() string {
	return fmt.Sprintf("+2217%d", gofakeit.Number(70000000, 79999999))
}

func seedInsurances(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d insurances", count)

	types := []string{"Mutuelle", "IPM", "Assurance privée"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		name := gofakeit.Company()
		email := gofakeit.Email()
		username := fmt.Sprintf("%s-%d", gofakeit.Username(), i)

		_, err := tx.Exec(ctx, `
			INSERT INTO insurances (
				id, name, type, email, phone_number, address, city, country,
				username, password, license_number,
				contact_person_name, contact_person_position,
				contact_person_email, contact_person_phone,
				registration_number, active, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 'Sénégal',
			        $8, $9, $10, $11, $12, $13, $14, $15, TRUE, now(), now())
		`, id, name, types[gofakeit.Number(0, len(types)-1)], email, senegalPhone(),
			gofakeit.Street(), "Dakar",
			username, gofakeit.Password(true, true, true, false, false, 16),
			fmt.Sprintf("LIC-%06d", gofakeit.Number(1, 999999)),
			gofakeit.Name(), gofakeit.JobTitle(), gofakeit.Email(), senegalPhone(),
			fmt.Sprintf("REG-%06d", gofakeit.Number(1, 999999)))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("insurances seeded")
	return ids, nil
}

func seedProfessionals(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d professionals", count)

	specialities := []string{
		"Médecine générale",
		"Cardiologie",
		"Dermatologie",
		"Pédiatrie",
		"Ophtalmologie",
		"Dentisterie",
		"Gynécologie",
		"Kinésithérapie",
	}
	statuses := []string{"PENDING_VERIFICATION", "ACTIVE", "ACTIVE", "ACTIVE", "SUSPENDED"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		status := statuses[gofakeit.Number(0, len(statuses)-1)]
		email := gofakeit.Email()

		_, err := tx.Exec(ctx, `
			INSERT INTO professionals (
				id, first_name, last_name, speciality, registration_number,
				phone, email, address, city, country,
				account_status, status_change_reason, status_change_date,
				created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'Sénégal',
			        $10, $11, now(), now(), now())
		`, id, gofakeit.FirstName(), gofakeit.LastName(),
			specialities[gofakeit.Number(0, len(specialities)-1)],
			fmt.Sprintf("SN-%06d", i+1),
			senegalPhone(), email, gofakeit.Street(), gofakeit.City(),
			status, "seeded")
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("professionals seeded")
	return ids, nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d patients", count)

	const batchSize = 500

	genders := []string{"M", "F"}
	bloodGroups := []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

	ids := make([]uuid.UUID, 0, count)

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return nil, err
		}

		for i := offset; i < end; i++ {
			id := uuid.New()
			dob := gofakeit.DateRange(
				time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC),
			)

			_, err := tx.Exec(ctx, `
				INSERT INTO patients (
					id, first_name, last_name, date_of_birth, gender,
					national_id, address, city, country, phone, email,
					blood_group, active, created_at, updated_at
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'Sénégal',
				        $9, $10, $11, TRUE, now(), now())
			`, id, gofakeit.FirstName(), gofakeit.LastName(), dob,
				genders[gofakeit.Number(0, 1)],
				fmt.Sprintf("1%012d", i+1),
				gofakeit.Street(), gofakeit.City(),
				senegalPhone(), gofakeit.Email(),
				bloodGroups[gofakeit.Number(0, len(bloodGroups)-1)])
			if err != nil {
				_ = tx.Rollback(ctx)
				return nil, err
			}
			ids = append(ids, id)
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}

		log.Printf("patients seeded: %d/%d", end, count)
	}

	log.Println("patients seeded")
	return ids, nil
}

// seedContracts gives roughly two thirds of patients one contract, each
// with one to three coverages.
func seedContracts(ctx context.Context, pool *pgxpool.Pool, patientIDs, insuranceIDs []uuid.UUID) ([]uuid.UUID, error) {
	log.Printf("seeding contracts for %d patients", len(patientIDs))

	contractTypes := []string{"INDIVIDUEL", "FAMILLE", "ENTREPRISE"}
	coverageTypes := []string{"consultation", "hospitalisation", "pharmacie", "dentaire", "optique"}

	const batchSize = 500

	ids := make([]uuid.UUID, 0, len(patientIDs))
	seq := 0

	for offset := 0; offset < len(patientIDs); offset += batchSize {
		end := offset + batchSize
		if end > len(patientIDs) {
			end = len(patientIDs)
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return nil, err
		}

		for _, patientID := range patientIDs[offset:end] {
			if gofakeit.Number(0, 2) == 0 {
				continue
			}

			seq++
			contractID := uuid.New()
			start := gofakeit.DateRange(
				time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			)
			endDate := start.AddDate(1, 0, 0)

			_, err := tx.Exec(ctx, `
				INSERT INTO insurance_contracts (
					id, contract_number, contract_type, start_date, end_date,
					deductible, active, patient_id, insurance_id,
					created_at, updated_at
				)
				VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8, now(), now())
			`, contractID, fmt.Sprintf("CTR-%08d", seq),
				contractTypes[gofakeit.Number(0, len(contractTypes)-1)],
				start, endDate, float64(gofakeit.Number(0, 50000)),
				patientID, insuranceIDs[gofakeit.Number(0, len(insuranceIDs)-1)])
			if err != nil {
				_ = tx.Rollback(ctx)
				return nil, err
			}

			for i := 0; i < gofakeit.Number(1, 3); i++ {
				_, err := tx.Exec(ctx, `
					INSERT INTO coverages (
						id, coverage_type, coverage_rate, coverage_ceiling,
						contract_id, created_at
					)
					VALUES ($1, $2, $3, $4, $5, now())
				`, uuid.New(),
					coverageTypes[gofakeit.Number(0, len(coverageTypes)-1)],
					gofakeit.Number(50, 100),
					float64(gofakeit.Number(100000, 1000000)),
					contractID)
				if err != nil {
					_ = tx.Rollback(ctx)
					return nil, err
				}
			}

			ids = append(ids, contractID)
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}

		log.Printf("contracts seeded: %d", len(ids))
	}

	log.Println("contracts seeded")
	return ids, nil
}

func seedInvoices(ctx context.Context, pool *pgxpool.Pool, count int, professionalIDs, contractIDs []uuid.UUID) error {
	log.Printf("seeding %d invoices", count)

	if len(contractIDs) == 0 || len(professionalIDs) == 0 {
		log.Println("no contracts or professionals, skipping invoices")
		return nil
	}

	statuses := []string{"PENDING", "PENDING", "PAID", "REIMBURSED", "PARTIALLY_REIMBURSED", "REJECTED"}

	const batchSize = 500

	// Invoices need the contract's patient; read the pairs back once.
	type contractRef struct {
		id        uuid.UUID
		patientID uuid.UUID
	}
	rows, err := pool.Query(ctx, `SELECT id, patient_id FROM insurance_contracts`)
	if err != nil {
		return err
	}
	var refs []contractRef
	for rows.Next() {
		var ref contractRef
		if err := rows.Scan(&ref.id, &ref.patientID); err != nil {
			rows.Close()
			return err
		}
		refs = append(refs, ref)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(refs) == 0 {
		return nil
	}

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := offset; i < end; i++ {
			ref := refs[gofakeit.Number(0, len(refs)-1)]
			total := float64(gofakeit.Number(5000, 500000))
			reimbursable := total * float64(gofakeit.Number(50, 100)) / 100

			_, err := tx.Exec(ctx, `
				INSERT INTO invoices (
					id, invoice_date, total_amount, reimbursable_amount,
					status, professional_id, patient_id, contract_id,
					created_at, updated_at
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
			`, uuid.New(),
				gofakeit.DateRange(
					time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
					time.Now(),
				),
				total, reimbursable,
				statuses[gofakeit.Number(0, len(statuses)-1)],
				professionalIDs[gofakeit.Number(0, len(professionalIDs)-1)],
				ref.patientID, ref.id)
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		log.Printf("invoices seeded: %d/%d", end, count)
	}

	log.Println("invoices seeded")
	return nil
}
