package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

type ReminderPublisher interface {
	PublishReminder(ctx context.Context, a entity.Appointment) error
}

// ReminderWorker é o único escritor de reminder_sent: a cada execução enfileira o
// lembrete dos agendamentos que começam dentro da janela e marca o flag.
type ReminderWorker struct {
	repo      entity.AppointmentRepositoryInterface
	publisher ReminderPublisher
	loc       *time.Location
	window    time.Duration
	spec      string
	cron      *cron.Cron
	now       func() time.Time
}

func NewReminderWorker(repo entity.AppointmentRepositoryInterface, publisher ReminderPublisher, loc *time.Location, window time.Duration, spec string) *ReminderWorker {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderWorker{
		repo:      repo,
		publisher: publisher,
		loc:       loc,
		window:    window,
		spec:      spec,
		cron:      cron.New(cron.WithLocation(loc)),
		now:       time.Now,
	}
}

// Start agenda a varredura e bloqueia até ctx ser cancelado.
func (w *ReminderWorker) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.spec, func() {
		if _, err := w.Sweep(ctx); err != nil {
			log.Printf("❌ Erro na varredura de lembretes: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("REMINDER_CRON inválido (%s): %w", w.spec, err)
	}

	log.Printf("🕒 Reminder Worker iniciado (%s, janela de %s)", w.spec, w.window)
	w.cron.Start()

	<-ctx.Done()
	stopped := w.cron.Stop()
	<-stopped.Done()
	log.Println("⚠️ Reminder Worker encerrado")
	return nil
}

// Sweep devolve quantos lembretes foram enfileirados.
func (w *ReminderWorker) Sweep(ctx context.Context) (int, error) {
	now := w.now().In(w.loc)
	limit := now.Add(w.window)

	pending, err := w.repo.FindPendingReminders(ctx, entity.DateIn(now, w.loc), entity.DateIn(limit, w.loc))
	if err != nil {
		return 0, fmt.Errorf("buscar lembretes pendentes: %w", err)
	}

	sent := 0
	for _, a := range pending {
		startsAt, err := a.StartsAt(w.loc)
		if err != nil {
			log.Printf("⚠️ Agendamento %s com horário inválido (%s), ignorado", a.ID, a.Time)
			continue
		}
		if startsAt.Before(now) || startsAt.After(limit) {
			continue
		}

		if err := w.publisher.PublishReminder(ctx, a); err != nil {
			// fica pendente e entra na próxima varredura
			log.Printf("❌ Falha ao enfileirar lembrete de %s: %v", a.ID, err)
			continue
		}
		if err := w.repo.MarkReminderSent(ctx, a.ID); err != nil {
			log.Printf("⚠️ Lembrete de %s enfileirado, mas o flag não foi gravado: %v", a.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		log.Printf("✅ %d lembrete(s) enfileirado(s)", sent)
	}
	return sent, nil
}
