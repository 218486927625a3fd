package ward

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ward/ward/internal/platform/db"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func conn(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}

// -- Admissions --

type admissionRepoPG struct {
	pool *pgxpool.Pool
}

func NewAdmissionRepo(pool *pgxpool.Pool) AdmissionRepository {
	return &admissionRepoPG{pool: pool}
}

const admissionCols = `id, bht, admitted_on, admitted_at, ward_no, consultant_name,
	patient_name, patient_phn, patient_nic, patient_date_of_birth, patient_age,
	patient_gender, patient_address, patient_phone,
	guardian_name, guardian_nic, guardian_phone, guardian_address, guardian_relationship,
	type_of_admission, complaints, examination, allergies, current_medications,
	problems, management, stamps, notifiable_disease, admitting_officer,
	created_at`

func (r *admissionRepoPG) GetByBHT(ctx context.Context, bht string) (*Admission, error) {
	return scanAdmission(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+admissionCols+` FROM admissions WHERE bht = $1`, bht))
}

func (r *admissionRepoPG) Create(ctx context.Context, a *Admission) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO admissions (
			id, bht, admitted_on, admitted_at, ward_no, consultant_name,
			patient_name, patient_phn, patient_nic, patient_date_of_birth, patient_age,
			patient_gender, patient_address, patient_phone,
			guardian_name, guardian_nic, guardian_phone, guardian_address, guardian_relationship,
			type_of_admission, complaints, examination, allergies, current_medications,
			problems, management, stamps, notifiable_disease, admitting_officer
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,
			$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
			$21,$22,$23,$24,$25,$26,$27,$28,$29
		) RETURNING created_at`,
		a.ID, a.BHT, a.AdmittedOn, a.AdmittedAt, a.WardNo, a.ConsultantName,
		a.PatientName, a.PatientPHN, a.PatientNIC, a.PatientDateOfBirth, a.PatientAge,
		a.PatientGender, a.PatientAddress, a.PatientPhone,
		a.GuardianName, a.GuardianNIC, a.GuardianPhone, a.GuardianAddress, a.GuardianRelationship,
		a.TypeOfAdmission, a.Complaints, a.Examination, a.Allergies, a.CurrentMedications,
		a.Problems, a.Management, a.Stamps, a.NotifiableDisease, a.AdmittingOfficer,
	).Scan(&a.CreatedAt)
}

func (r *admissionRepoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM admissions`).Scan(&n)
	return n, err
}

func (r *admissionRepoPG) ListBHTs(ctx context.Context) ([]string, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT bht FROM admissions ORDER BY bht`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bhts := []string{}
	for rows.Next() {
		var bht string
		if err := rows.Scan(&bht); err != nil {
			return nil, err
		}
		bhts = append(bhts, bht)
	}
	return bhts, rows.Err()
}

func scanAdmission(row pgx.Row) (*Admission, error) {
	var a Admission
	err := row.Scan(
		&a.ID, &a.BHT, &a.AdmittedOn, &a.AdmittedAt, &a.WardNo, &a.ConsultantName,
		&a.PatientName, &a.PatientPHN, &a.PatientNIC, &a.PatientDateOfBirth, &a.PatientAge,
		&a.PatientGender, &a.PatientAddress, &a.PatientPhone,
		&a.GuardianName, &a.GuardianNIC, &a.GuardianPhone, &a.GuardianAddress, &a.GuardianRelationship,
		&a.TypeOfAdmission, &a.Complaints, &a.Examination, &a.Allergies, &a.CurrentMedications,
		&a.Problems, &a.Management, &a.Stamps, &a.NotifiableDisease, &a.AdmittingOfficer,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// -- Doctor notes --

type noteRepoPG struct {
	pool *pgxpool.Pool
}

func NewNoteRepo(pool *pgxpool.Pool) NoteRepository {
	return &noteRepoPG{pool: pool}
}

const noteCols = `n.id, n.admission_id, n.author_name, n.text, n.created_at`

func (r *noteRepoPG) Create(ctx context.Context, n *DoctorNote) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO doctor_notes (id, admission_id, author_name, text, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.AdmissionID, n.AuthorName, n.Text, n.CreatedAt,
	)
	return err
}

func (r *noteRepoPG) ListByBHT(ctx context.Context, bht string, limit, offset int) ([]*DoctorNote, int, error) {
	q := conn(ctx, r.pool)

	var total int
	if err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM doctor_notes n
		JOIN admissions a ON a.id = n.admission_id
		WHERE a.bht = $1`, bht).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx, `
		SELECT `+noteCols+` FROM doctor_notes n
		JOIN admissions a ON a.id = n.admission_id
		WHERE a.bht = $1
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT $2 OFFSET $3`, bht, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectNotes(rows, total)
}

func (r *noteRepoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM doctor_notes`).Scan(&n)
	return n, err
}

func collectNotes(rows pgx.Rows, total int) ([]*DoctorNote, int, error) {
	notes := []*DoctorNote{}
	for rows.Next() {
		var n DoctorNote
		if err := rows.Scan(&n.ID, &n.AdmissionID, &n.AuthorName, &n.Text, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		notes = append(notes, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}
