package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

type NotificationKind string

const (
	KindConfirmation NotificationKind = "confirmation"
	KindReminder     NotificationKind = "reminder"
)

type NotificationPayload struct {
	Kind          NotificationKind `json:"kind"`
	AppointmentID string           `json:"appointment_id"`
	Title         string           `json:"title"`
	ClientName    string           `json:"client_name"`
	Email         string           `json:"email"`
	Date          string           `json:"date"`
	Time          string           `json:"time"`
	MeetingKind   string           `json:"meeting_kind"`
	Location      string           `json:"location,omitempty"`
	Link          string           `json:"link,omitempty"`
}

func PayloadFor(kind NotificationKind, a entity.Appointment) NotificationPayload {
	return NotificationPayload{
		Kind:          kind,
		AppointmentID: a.ID,
		Title:         a.Title,
		ClientName:    a.ClientName,
		Email:         a.Email,
		Date:          a.Date.String(),
		Time:          a.Time,
		MeetingKind:   string(a.Kind),
		Location:      a.Location,
		Link:          a.Link,
	}
}

// Publisher é o pedaço do *amqp.Channel que o produtor usa.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishAppointmentScheduled(ctx context.Context, a entity.Appointment) error {
	return p.publish(ctx, PayloadFor(KindConfirmation, a))
}

func (p *RabbitMQProducer) PublishReminder(ctx context.Context, a entity.Appointment) error {
	return p.publish(ctx, PayloadFor(KindReminder, a))
}

func (p *RabbitMQProducer) publish(ctx context.Context, payload NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Type:         string(payload.Kind),
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}
