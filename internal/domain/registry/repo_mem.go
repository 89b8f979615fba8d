package registry

import (
	"context"
	"sync"
)

// In-memory repositories backing the demo dataset. Insertion order is
// preserved so list endpoints are stable across calls.

type hospitalRepoMem struct {
	mu    sync.RWMutex
	order []string
	data  map[string]*Hospital
}

// NewHospitalRepoMem builds an in-memory hospital repository from the
// given fixtures.
func NewHospitalRepoMem(hospitals []*Hospital) HospitalRepository {
	r := &hospitalRepoMem{data: make(map[string]*Hospital, len(hospitals))}
	for _, h := range hospitals {
		stored := *h
		r.data[h.ID] = &stored
		r.order = append(r.order, h.ID)
	}
	return r
}

func (r *hospitalRepoMem) GetByID(_ context.Context, id string) (*Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *h
	return &cp, nil
}

func (r *hospitalRepoMem) List(_ context.Context) ([]*Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Hospital, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.data[id]
		out = append(out, &cp)
	}
	return out, nil
}

type userRepoMem struct {
	mu    sync.RWMutex
	order []string
	data  map[string]*User
}

// NewUserRepoMem builds an in-memory user repository from fixtures.
func NewUserRepoMem(users []*User) UserRepository {
	r := &userRepoMem{data: make(map[string]*User, len(users))}
	for _, u := range users {
		stored := *u
		r.data[u.ID] = &stored
		r.order = append(r.order, u.ID)
	}
	return r
}

func (r *userRepoMem) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepoMem) FindByRole(_ context.Context, role Role) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if r.data[id].Role == role {
			cp := *r.data[id]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *userRepoMem) List(_ context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*User, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.data[id]
		out = append(out, &cp)
	}
	return out, nil
}

type patientRepoMem struct {
	mu    sync.RWMutex
	order []string
	data  map[string]*Patient
}

// NewPatientRepoMem builds an in-memory patient repository from fixtures.
func NewPatientRepoMem(patients []*Patient) PatientRepository {
	r := &patientRepoMem{data: make(map[string]*Patient, len(patients))}
	for _, p := range patients {
		stored := *p
		r.data[p.ID] = &stored
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *patientRepoMem) GetByID(_ context.Context, id string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *patientRepoMem) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := len(r.order)
	ids := page(r.order, limit, offset)
	out := make([]*Patient, 0, len(ids))
	for _, id := range ids {
		cp := *r.data[id]
		out = append(out, &cp)
	}
	return out, total, nil
}

type appointmentRepoMem struct {
	mu    sync.RWMutex
	order []string
	data  map[string]*Appointment
}

// NewAppointmentRepoMem builds an in-memory appointment repository from
// fixtures.
func NewAppointmentRepoMem(appointments []*Appointment) AppointmentRepository {
	r := &appointmentRepoMem{data: make(map[string]*Appointment, len(appointments))}
	for _, a := range appointments {
		stored := *a
		r.data[a.ID] = &stored
		r.order = append(r.order, a.ID)
	}
	return r
}

func (r *appointmentRepoMem) GetByID(_ context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *appointmentRepoMem) List(_ context.Context, limit, offset int) ([]*Appointment, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := len(r.order)
	ids := page(r.order, limit, offset)
	out := make([]*Appointment, 0, len(ids))
	for _, id := range ids {
		cp := *r.data[id]
		out = append(out, &cp)
	}
	return out, total, nil
}

func (r *appointmentRepoMem) ListByPatient(_ context.Context, patientID string, limit, offset int) ([]*Appointment, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []string
	for _, id := range r.order {
		if r.data[id].PatientID == patientID {
			matched = append(matched, id)
		}
	}
	total := len(matched)
	ids := page(matched, limit, offset)
	out := make([]*Appointment, 0, len(ids))
	for _, id := range ids {
		cp := *r.data[id]
		out = append(out, &cp)
	}
	return out, total, nil
}

// page applies limit/offset to an ordered id slice. limit <= 0 means all.
func page(ids []string, limit, offset int) []string {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids
}
