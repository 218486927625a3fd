package ward

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// SeedAdmission is one demo admission plus the note texts written for it.
type SeedAdmission struct {
	Admission Admission
	Notes     []string
}

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func datep(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// DemoAdmissions returns the fixture data loaded by the seed command.
func DemoAdmissions() []SeedAdmission {
	return []SeedAdmission{
		{
			Admission: Admission{
				BHT:                  "BHT-0001",
				AdmittedOn:           datep(2024, time.March, 4),
				AdmittedAt:           strp("08:45"),
				WardNo:               strp("12"),
				ConsultantName:       strp("Dr. N. Perera"),
				PatientName:          strp("K. M. Silva"),
				PatientPHN:           strp("PHN-100231"),
				PatientNIC:           strp("198512345678"),
				PatientDateOfBirth:   datep(1985, time.June, 17),
				PatientAge:           intp(38),
				PatientGender:        strp("Male"),
				PatientAddress:       strp("14 Lake Road, Kandy"),
				PatientPhone:         strp("0771234567"),
				GuardianName:         strp("S. Silva"),
				GuardianNIC:          strp("198722345678"),
				GuardianPhone:        strp("0777654321"),
				GuardianAddress:      strp("14 Lake Road, Kandy"),
				GuardianRelationship: strp("Spouse"),
				TypeOfAdmission:      strp("Emergency"),
				Complaints:           strp("Fever for 3 days, productive cough"),
				Examination:          strp("Temp 38.6C, crepitations right lower zone"),
				Allergies:            strp("Penicillin"),
				CurrentMedications:   strp("Metformin 500mg bd"),
				Problems:             strp("Community acquired pneumonia"),
				Management:           strp("IV clarithromycin, oxygen as needed"),
				AdmittingOfficer:     strp("Dr. A. Fernando"),
			},
			Notes: []string{
				"Admitted via ETU, started on IV antibiotics.",
				"Fever settling, SpO2 96% on room air.",
				"Patient stable, plan discharge tomorrow.",
			},
		},
		{
			Admission: Admission{
				BHT:                  "BHT-0002",
				AdmittedOn:           datep(2024, time.March, 5),
				AdmittedAt:           strp("14:10"),
				WardNo:               strp("7"),
				ConsultantName:       strp("Dr. R. Jayasinghe"),
				PatientName:          strp("N. Rajapaksha"),
				PatientPHN:           strp("PHN-100544"),
				PatientGender:        strp("Female"),
				PatientAge:           intp(62),
				GuardianName:         strp("P. Rajapaksha"),
				GuardianRelationship: strp("Son"),
				TypeOfAdmission:      strp("Clinic referral"),
				Complaints:           strp("Chest pain on exertion"),
				Problems:             strp("Unstable angina"),
				NotifiableDisease:    false,
				AdmittingOfficer:     strp("Dr. H. Wickramasinghe"),
			},
			Notes: []string{
				"ECG shows ST depression in V4-V6.",
				"Troponin negative x2, cardiology review requested.",
			},
		},
		{
			Admission: Admission{
				BHT:               "BHT-0003",
				AdmittedOn:        datep(2024, time.March, 6),
				AdmittedAt:        strp("22:30"),
				WardNo:            strp("12"),
				ConsultantName:    strp("Dr. N. Perera"),
				PatientName:       strp("T. Kumaran"),
				PatientGender:     strp("Male"),
				PatientAge:        intp(24),
				TypeOfAdmission:   strp("Emergency"),
				Complaints:        strp("High fever, myalgia, retro-orbital pain"),
				Problems:          strp("Dengue fever"),
				NotifiableDisease: true,
			},
		},
	}
}

// Seed inserts each admission whose bht is not yet present, along with its
// notes spaced one minute apart ending at the service clock. It returns the
// number of admissions inserted; existing tickets are left untouched.
func (s *Service) Seed(ctx context.Context, fixtures []SeedAdmission) (int, error) {
	inserted := 0
	for _, f := range fixtures {
		_, err := s.admissions.GetByBHT(ctx, f.Admission.BHT)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return inserted, fmt.Errorf("check admission %s: %w", f.Admission.BHT, err)
		}

		a := f.Admission
		if err := s.admissions.Create(ctx, &a); err != nil {
			return inserted, fmt.Errorf("seed admission %s: %w", a.BHT, err)
		}

		base := s.now()
		for i, text := range f.Notes {
			note := &DoctorNote{
				AdmissionID: a.ID,
				AuthorName:  a.AdmittingOfficer,
				Text:        text,
				CreatedAt:   base.Add(time.Duration(i-len(f.Notes)+1) * time.Minute),
			}
			if err := s.notes.Create(ctx, note); err != nil {
				return inserted, fmt.Errorf("seed note for %s: %w", a.BHT, err)
			}
		}
		inserted++
	}
	return inserted, nil
}
