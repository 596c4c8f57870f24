package usecase

import (
	"context"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

// ChangeNotifier recebe os eventos de mudança das coleções (feed em tempo real).
type ChangeNotifier interface {
	Notify(event entity.ChangeEvent)
}

// NotificationProducer enfileira o e-mail de confirmação de um agendamento.
type NotificationProducer interface {
	PublishAppointmentScheduled(ctx context.Context, a entity.Appointment) error
}

type noopNotifier struct{}

func (noopNotifier) Notify(entity.ChangeEvent) {}
