package registry

import (
	"context"
	"fmt"
	"time"
)

// Service exposes read operations over the registry. All lookups go
// through the repository interfaces so the same service works against
// the seeded in-memory repos and Postgres.
type Service struct {
	hospitals    HospitalRepository
	users        UserRepository
	patients     PatientRepository
	appointments AppointmentRepository

	now func() time.Time
}

func NewService(h HospitalRepository, u UserRepository, p PatientRepository, a AppointmentRepository) *Service {
	return &Service{
		hospitals:    h,
		users:        u,
		patients:     p,
		appointments: a,
		now:          time.Now,
	}
}

func (s *Service) ListHospitals(ctx context.Context) ([]*Hospital, error) {
	return s.hospitals.List(ctx)
}

func (s *Service) GetHospital(ctx context.Context, id string) (*Hospital, error) {
	return s.hospitals.GetByID(ctx, id)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) GetPatient(ctx context.Context, id string) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, patientID string, limit, offset int) ([]*Appointment, int, error) {
	if patientID != "" {
		return s.appointments.ListByPatient(ctx, patientID, limit, offset)
	}
	return s.appointments.List(ctx, limit, offset)
}

// IDCard is the printable identification card derived from a patient
// record. It carries no state of its own; regenerating it for the same
// patient on the same day yields the same card.
type IDCard struct {
	PatientID     string `json:"patient_id"`
	FullName      string `json:"full_name"`
	DOB           string `json:"dob"`
	Gender        string `json:"gender"`
	BloodType     string `json:"blood_type"`
	IssuedOn      string `json:"issued_on"`
	ValidThru     string `json:"valid_thru"`
	EmergencyLine string `json:"emergency_line"`
	QRPayload     string `json:"qr_payload"`
}

// EmergencyLine is printed on every issued card.
const EmergencyLine = "+1 (800) 555-0199"

// BuildIDCard derives an ID card from the patient record. Cards are
// valid for one year from issue.
func (s *Service) BuildIDCard(ctx context.Context, patientID string) (*IDCard, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("build id card: %w", err)
	}

	issued := s.now().UTC()
	card := &IDCard{
		PatientID:     p.ID,
		FullName:      p.FullName,
		DOB:           p.DOB,
		Gender:        p.Gender,
		BloodType:     p.BloodType,
		IssuedOn:      issued.Format("2006-01-02"),
		ValidThru:     issued.AddDate(1, 0, 0).Format("2006-01-02"),
		EmergencyLine: EmergencyLine,
	}
	card.QRPayload = fmt.Sprintf("MEDNEXUS|%s|%s|%s|%s", p.ID, p.FullName, p.DOB, p.BloodType)
	return card, nil
}
