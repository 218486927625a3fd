package ward

import (
	"time"

	"github.com/google/uuid"
)

// Admission maps to the admissions table. One row per admission episode,
// keyed naturally by its bed-head ticket.
type Admission struct {
	ID             uuid.UUID  `db:"id"`
	BHT            string     `db:"bht"`
	AdmittedOn     *time.Time `db:"admitted_on"`
	AdmittedAt     *string    `db:"admitted_at"`
	WardNo         *string    `db:"ward_no"`
	ConsultantName *string    `db:"consultant_name"`

	PatientName        *string    `db:"patient_name"`
	PatientPHN         *string    `db:"patient_phn"`
	PatientNIC         *string    `db:"patient_nic"`
	PatientDateOfBirth *time.Time `db:"patient_date_of_birth"`
	PatientAge         *int       `db:"patient_age"`
	PatientGender      *string    `db:"patient_gender"`
	PatientAddress     *string    `db:"patient_address"`
	PatientPhone       *string    `db:"patient_phone"`

	GuardianName         *string `db:"guardian_name"`
	GuardianNIC          *string `db:"guardian_nic"`
	GuardianPhone        *string `db:"guardian_phone"`
	GuardianAddress      *string `db:"guardian_address"`
	GuardianRelationship *string `db:"guardian_relationship"`

	TypeOfAdmission    *string `db:"type_of_admission"`
	Complaints         *string `db:"complaints"`
	Examination        *string `db:"examination"`
	Allergies          *string `db:"allergies"`
	CurrentMedications *string `db:"current_medications"`
	Problems           *string `db:"problems"`
	Management         *string `db:"management"`
	Stamps             *string `db:"stamps"`
	NotifiableDisease  bool    `db:"notifiable_disease"`
	AdmittingOfficer   *string `db:"admitting_officer"`

	CreatedAt time.Time `db:"created_at"`
}

// DoctorNote maps to the doctor_notes table. Notes are immutable once written.
type DoctorNote struct {
	ID          uuid.UUID `db:"id"`
	AdmissionID uuid.UUID `db:"admission_id"`
	AuthorName  *string   `db:"author_name"`
	Text        string    `db:"text"`
	CreatedAt   time.Time `db:"created_at"`
}
