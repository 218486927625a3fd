package ward

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type PatientDTO struct {
	Name        *string `json:"name,omitempty"`
	PHN         *string `json:"phn,omitempty"`
	NIC         *string `json:"nic,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}

type GuardianDTO struct {
	Name         *string `json:"name,omitempty"`
	NIC          *string `json:"nic,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	Relationship *string `json:"relationship,omitempty"`
}

type ClinicalDTO struct {
	TypeOfAdmission    *string `json:"typeOfAdmission,omitempty"`
	Complaints         *string `json:"complaints,omitempty"`
	Examination        *string `json:"examination,omitempty"`
	Allergies          *string `json:"allergies,omitempty"`
	CurrentMedications *string `json:"currentMedications,omitempty"`
	Problems           *string `json:"problems,omitempty"`
	Management         *string `json:"management,omitempty"`
	Stamps             *string `json:"stamps,omitempty"`
	NotifiableDisease  bool    `json:"notifiableDisease"`
	AdmittingOfficer   *string `json:"admittingOfficer,omitempty"`
}

// AdmissionDTO is the admission as served over HTTP, with patient, guardian
// and clinical fields grouped into sub-objects.
type AdmissionDTO struct {
	BHT            string      `json:"bht"`
	AdmittedOn     *string     `json:"admittedOn,omitempty"`
	AdmittedAt     *string     `json:"admittedAt,omitempty"`
	WardNo         *string     `json:"wardNo,omitempty"`
	ConsultantName *string     `json:"consultantName,omitempty"`
	Patient        PatientDTO  `json:"patient"`
	Guardian       GuardianDTO `json:"guardian"`
	Clinical       ClinicalDTO `json:"clinical"`
}

type DoctorNoteDTO struct {
	ID         uuid.UUID `json:"id"`
	AuthorName *string   `json:"authorName,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateNoteRequest struct {
	AuthorName *string `json:"authorName,omitempty"`
	Text       string  `json:"text" validate:"notblank"`
}

// SeedCheckDTO is the payload of the debug seed-check endpoint.
type SeedCheckDTO struct {
	Admissions  int      `json:"admissions"`
	DoctorNotes int      `json:"doctorNotes"`
	BHTs        []string `json:"bhts"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func NewAdmissionDTO(a *Admission) *AdmissionDTO {
	return &AdmissionDTO{
		BHT:            a.BHT,
		AdmittedOn:     formatDate(a.AdmittedOn),
		AdmittedAt:     a.AdmittedAt,
		WardNo:         a.WardNo,
		ConsultantName: a.ConsultantName,
		Patient: PatientDTO{
			Name:        a.PatientName,
			PHN:         a.PatientPHN,
			NIC:         a.PatientNIC,
			DateOfBirth: formatDate(a.PatientDateOfBirth),
			Age:         a.PatientAge,
			Gender:      a.PatientGender,
			Address:     a.PatientAddress,
			Phone:       a.PatientPhone,
		},
		Guardian: GuardianDTO{
			Name:         a.GuardianName,
			NIC:          a.GuardianNIC,
			Phone:        a.GuardianPhone,
			Address:      a.GuardianAddress,
			Relationship: a.GuardianRelationship,
		},
		Clinical: ClinicalDTO{
			TypeOfAdmission:    a.TypeOfAdmission,
			Complaints:         a.Complaints,
			Examination:        a.Examination,
			Allergies:          a.Allergies,
			CurrentMedications: a.CurrentMedications,
			Problems:           a.Problems,
			Management:         a.Management,
			Stamps:             a.Stamps,
			NotifiableDisease:  a.NotifiableDisease,
			AdmittingOfficer:   a.AdmittingOfficer,
		},
	}
}

func NewDoctorNoteDTO(n *DoctorNote) *DoctorNoteDTO {
	return &DoctorNoteDTO{
		ID:         n.ID,
		AuthorName: n.AuthorName,
		Text:       n.Text,
		CreatedAt:  n.CreatedAt,
	}
}
