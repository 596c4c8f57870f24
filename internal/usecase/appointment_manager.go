package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

// AppointmentManager é o dono do CRUD de agendamentos e das visões por dia.
type AppointmentManager struct {
	Repo     entity.AppointmentRepositoryInterface
	Notifier ChangeNotifier
	Location *time.Location

	mu           sync.RWMutex
	appointments []entity.Appointment
}

func NewAppointmentManager(repo entity.AppointmentRepositoryInterface, notifier ChangeNotifier, loc *time.Location) *AppointmentManager {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AppointmentManager{
		Repo:     repo,
		Notifier: notifier,
		Location: loc,
	}
}

// Load recarrega todos os agendamentos (ordenados por data e horário).
func (m *AppointmentManager) Load(ctx context.Context) ([]entity.Appointment, error) {
	list, err := m.Repo.FindAll(ctx)
	if err != nil {
		log.Printf("❌ Erro ao carregar agendamentos: %v", err)
		return nil, storeFailure("não foi possível carregar os agendamentos", err)
	}

	m.mu.Lock()
	m.appointments = list
	m.mu.Unlock()

	return m.Appointments(), nil
}

func (m *AppointmentManager) Appointments() []entity.Appointment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.Appointment, len(m.appointments))
	copy(out, m.appointments)
	return out
}

func (m *AppointmentManager) Get(ctx context.Context, id string) (*entity.Appointment, error) {
	a, err := m.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrAppointmentNotFound) {
			return nil, notFound("agendamento não encontrado")
		}
		log.Printf("❌ Erro ao buscar agendamento %s: %v", id, err)
		return nil, storeFailure("não foi possível abrir o agendamento", err)
	}
	return a, nil
}

// Create é a única porta de criação de agendamentos (painel e formulário avulso).
func (m *AppointmentManager) Create(ctx context.Context, input AppointmentInput) (*entity.Appointment, error) {
	if errs := ValidateAppointmentInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	a := input.toEntity(nil)
	a.ReminderSent = false

	if err := m.Repo.Create(ctx, a); err != nil {
		log.Printf("❌ Erro ao criar agendamento: %v", err)
		return nil, saveFailure("ocorreu um erro ao salvar o agendamento", err)
	}

	m.changed(ctx, entity.ChangeCreated, a.ID)
	return a, nil
}

// Submit cria ou atualiza, como o formulário do painel.
func (m *AppointmentManager) Submit(ctx context.Context, input AppointmentInput, editingID string) (*entity.Appointment, error) {
	if editingID == "" {
		return m.Create(ctx, input)
	}

	if errs := ValidateAppointmentInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	prev, err := m.Repo.FindByID(ctx, editingID)
	if err != nil {
		if errors.Is(err, entity.ErrAppointmentNotFound) {
			return nil, notFound("agendamento não encontrado")
		}
		log.Printf("❌ Erro ao buscar agendamento %s: %v", editingID, err)
		return nil, storeFailure("não foi possível abrir o agendamento", err)
	}

	a := input.toEntity(prev)
	a.ID = editingID

	if err := m.Repo.Update(ctx, a); err != nil {
		if errors.Is(err, entity.ErrAppointmentNotFound) {
			return nil, notFound("agendamento não encontrado")
		}
		log.Printf("❌ Erro ao atualizar agendamento %s: %v", editingID, err)
		return nil, saveFailure("ocorreu um erro ao salvar o agendamento", err)
	}

	m.changed(ctx, entity.ChangeUpdated, a.ID)
	return a, nil
}

func (m *AppointmentManager) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}

	if err := m.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrAppointmentNotFound) {
			return notFound("agendamento não encontrado")
		}
		log.Printf("❌ Erro ao excluir agendamento %s: %v", id, err)
		return storeFailure("ocorreu um erro ao excluir o agendamento", err)
	}

	m.changed(ctx, entity.ChangeDeleted, id)
	return nil
}

// Today filtra a lista em memória pelo dia de hoje no fuso do negócio.
func (m *AppointmentManager) Today(now time.Time) []entity.Appointment {
	return m.OnDate(entity.DateIn(now, m.Location))
}

func (m *AppointmentManager) OnDate(day entity.Date) []entity.Appointment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []entity.Appointment{}
	for _, a := range m.appointments {
		if a.Date == day {
			out = append(out, a)
		}
	}
	return out
}

func (m *AppointmentManager) changed(ctx context.Context, op entity.ChangeOp, id string) {
	m.Notifier.Notify(entity.ChangeEvent{
		Collection: entity.CollectionAppointments,
		Op:         op,
		ID:         id,
		At:         time.Now(),
	})

	if _, err := m.Load(ctx); err != nil {
		log.Printf("⚠️ Agendamento %s %s, mas a lista não foi recarregada", id, op)
	}
}
