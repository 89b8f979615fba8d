package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres-backed repositories. Used when DATABASE_URL is configured;
// demo deployments use the seeded in-memory repositories instead.

type hospitalRepoPG struct{ pool *pgxpool.Pool }

func NewHospitalRepoPG(pool *pgxpool.Pool) HospitalRepository { return &hospitalRepoPG{pool: pool} }

const hospitalCols = `id, name, location, stat_patients, stat_staff, stat_revenue, stat_occupancy`

func scanHospital(row pgx.Row) (*Hospital, error) {
	var h Hospital
	err := row.Scan(&h.ID, &h.Name, &h.Location,
		&h.Stats.Patients, &h.Stats.Staff, &h.Stats.Revenue, &h.Stats.Occupancy)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *hospitalRepoPG) GetByID(ctx context.Context, id string) (*Hospital, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+hospitalCols+` FROM hospital WHERE id = $1`, id)
	h, err := scanHospital(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get hospital: %w", err)
	}
	return h, nil
}

func (r *hospitalRepoPG) List(ctx context.Context) ([]*Hospital, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+hospitalCols+` FROM hospital ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	defer rows.Close()

	var out []*Hospital
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hospital: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

type userRepoPG struct{ pool *pgxpool.Pool }

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository { return &userRepoPG{pool: pool} }

const userCols = `id, name, email, role, avatar_url, hospital_id`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.AvatarURL, &u.HospitalID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepoPG) GetByID(ctx context.Context, id string) (*User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *userRepoPG) FindByRole(ctx context.Context, role Role) (*User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE role = $1 ORDER BY id LIMIT 1`, string(role))
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by role: %w", err)
	}
	return u, nil
}

func (r *userRepoPG) List(ctx context.Context) ([]*User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM app_user ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository { return &patientRepoPG{pool: pool} }

const patientCols = `id, full_name, dob, gender, phone, blood_type, last_visit,
	status, triage_level, allergies, medical_history`

func scanPatient(row pgx.Row) (*Patient, error) {
	var (
		p      Patient
		triage *string
	)
	err := row.Scan(&p.ID, &p.FullName, &p.DOB, &p.Gender, &p.Phone, &p.BloodType,
		&p.LastVisit, &p.Status, &triage, &p.Allergies, &p.MedicalHistory)
	if err != nil {
		return nil, err
	}
	if triage != nil {
		p.TriageLevel = *triage
	}
	return &p, nil
}

func (r *patientRepoPG) GetByID(ctx context.Context, id string) (*Patient, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1`, id)
	p, err := scanPatient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+patientCols+` FROM patient ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var out []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan patient: %w", err)
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

const appointmentCols = `id, patient_id, patient_name, doctor_id, doctor_name,
	date, time, type, status`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.PatientName, &a.DoctorID, &a.DoctorName,
		&a.Date, &a.Time, &a.Type, &a.Status)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id string) (*Appointment, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointment WHERE id = $1`, id)
	a, err := scanAppointment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (r *appointmentRepoPG) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointment`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+appointmentCols+` FROM appointment ORDER BY date, time LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (r *appointmentRepoPG) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointment WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+appointmentCols+` FROM appointment
		 WHERE patient_id = $1 ORDER BY date, time LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments by patient: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}
