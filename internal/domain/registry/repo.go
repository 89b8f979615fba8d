package registry

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a registry entity does not exist.
var ErrNotFound = errors.New("not found")

type HospitalRepository interface {
	GetByID(ctx context.Context, id string) (*Hospital, error)
	List(ctx context.Context) ([]*Hospital, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	// FindByRole returns the first user carrying the given role.
	FindByRole(ctx context.Context, role Role) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

type PatientRepository interface {
	GetByID(ctx context.Context, id string) (*Patient, error)
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}

type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
	ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*Appointment, int, error)
}
