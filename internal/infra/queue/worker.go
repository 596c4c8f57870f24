package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Mailer envia os e-mails de agendamento (implementado por mail.EmailSender).
type Mailer interface {
	SendConfirmation(ctx context.Context, p NotificationPayload) error
	SendReminder(ctx context.Context, p NotificationPayload) error
}

type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel Consumer
	Mailer  Mailer
}

func NewWorker(ch Consumer, mailer Mailer) *Worker {
	return &Worker{Channel: ch, Mailer: mailer}
}

// Start consome a fila até o contexto ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Worker de notificações encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				log.Println("⚠️ Canal do RabbitMQ fechado")
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload NotificationPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		log.Printf("❌ [WORKER] JSON inválido: %s", err)
		// mensagem podre vai direto para a DLQ
		d.Nack(false, false)
		return
	}

	if err := w.process(ctx, payload); err != nil {
		log.Printf("❌ [WORKER] Falha ao notificar %s: %s", payload.Email, err)
		d.Nack(false, false)
		return
	}

	log.Printf("✅ [WORKER] %s enviado para %s", payload.Kind, payload.Email)
	d.Ack(false)
}

func (w *Worker) process(ctx context.Context, payload NotificationPayload) error {
	switch payload.Kind {
	case KindConfirmation:
		return w.Mailer.SendConfirmation(ctx, payload)
	case KindReminder:
		return w.Mailer.SendReminder(ctx, payload)
	default:
		// sem tratamento: só loga e tira da fila
		log.Printf("⚠️ Tipo de notificação desconhecido: %s", payload.Kind)
		return nil
	}
}
