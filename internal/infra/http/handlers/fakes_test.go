package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

// memLeadRepo guarda os leads em memória, carimbando datas como o banco faria.
type memLeadRepo struct {
	mu    sync.Mutex
	leads []entity.Lead
	err   error
}

func (r *memLeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	now := time.Now()
	l.ID = uuid.NewString()
	l.ContactedAt, l.CreatedAt = &now, &now
	r.leads = append([]entity.Lead{*l}, r.leads...)
	return nil
}

func (r *memLeadRepo) FindAll(ctx context.Context) ([]entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]entity.Lead, len(r.leads))
	copy(out, r.leads)
	return out, nil
}

func (r *memLeadRepo) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.ID == id {
			found := l
			return &found, nil
		}
	}
	return nil, entity.ErrLeadNotFound
}

func (r *memLeadRepo) Update(ctx context.Context, l *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.leads {
		if r.leads[i].ID == l.ID {
			now := time.Now()
			l.ContactedAt, l.CreatedAt, l.UpdatedAt = r.leads[i].ContactedAt, r.leads[i].CreatedAt, &now
			r.leads[i] = *l
			return nil
		}
	}
	return entity.ErrLeadNotFound
}

func (r *memLeadRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.leads {
		if r.leads[i].ID == id {
			r.leads = append(r.leads[:i], r.leads[i+1:]...)
			return nil
		}
	}
	return entity.ErrLeadNotFound
}

type memAppointmentRepo struct {
	mu           sync.Mutex
	appointments []entity.Appointment
}

func (r *memAppointmentRepo) Create(ctx context.Context, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	a.ID = uuid.NewString()
	a.CreatedAt = &now
	r.appointments = append(r.appointments, *a)
	return nil
}

func (r *memAppointmentRepo) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Appointment, len(r.appointments))
	copy(out, r.appointments)
	return out, nil
}

func (r *memAppointmentRepo) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appointments {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, entity.ErrAppointmentNotFound
}

func (r *memAppointmentRepo) Update(ctx context.Context, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appointments {
		if r.appointments[i].ID == a.ID {
			a.ReminderSent = r.appointments[i].ReminderSent
			r.appointments[i] = *a
			return nil
		}
	}
	return entity.ErrAppointmentNotFound
}

func (r *memAppointmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appointments {
		if r.appointments[i].ID == id {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return nil
		}
	}
	return entity.ErrAppointmentNotFound
}

func (r *memAppointmentRepo) FindPendingReminders(ctx context.Context, from, to entity.Date) ([]entity.Appointment, error) {
	return nil, nil
}

func (r *memAppointmentRepo) MarkReminderSent(ctx context.Context, id string) error {
	return nil
}

type fakeIdentity struct{}

func (fakeIdentity) SignIn(ctx context.Context, credential string) (*entity.Session, error) {
	if credential != "google-ok" {
		return nil, entity.ErrInvalidIdentity
	}
	return &entity.Session{
		Token:     "good",
		ExpiresAt: time.Now().Add(time.Hour),
		Identity:  entity.Identity{Name: "Ana", Email: "ana@empresa.com"},
	}, nil
}

func (fakeIdentity) SignOut(ctx context.Context, token string) error { return nil }

func (fakeIdentity) Current(ctx context.Context, token string) (*entity.Identity, error) {
	if token != "good" {
		return nil, entity.ErrNoIdentity
	}
	return &entity.Identity{Name: "Ana", Email: "ana@empresa.com"}, nil
}

type fakeQueue struct {
	mu        sync.Mutex
	published []entity.Appointment
	err       error
}

func (q *fakeQueue) PublishAppointmentScheduled(ctx context.Context, a entity.Appointment) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.published = append(q.published, a)
	return nil
}

func (q *fakeQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.published)
}
