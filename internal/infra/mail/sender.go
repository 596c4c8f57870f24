package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/queue"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// NewEmailSender devolve um sender sem Dialer quando host está vazio: os envios só são logados.
func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	s := &EmailSender{From: from}
	if host != "" {
		s.Dialer = gomail.NewDialer(host, port, user, password)
	}
	return s
}

func (s *EmailSender) SendConfirmation(ctx context.Context, p queue.NotificationPayload) error {
	subject := fmt.Sprintf("Agendamento confirmado: %s em %s às %s", p.Title, displayDate(p.Date), p.Time)
	return s.send(p, "confirmation.html", subject)
}

func (s *EmailSender) SendReminder(ctx context.Context, p queue.NotificationPayload) error {
	subject := fmt.Sprintf("Lembrete: %s em %s às %s", p.Title, displayDate(p.Date), p.Time)
	return s.send(p, "reminder.html", subject)
}

func (s *EmailSender) send(p queue.NotificationPayload, tmpl, subject string) error {
	m, err := s.buildMessage(p, tmpl, subject)
	if err != nil {
		return err
	}

	if s.Dialer == nil {
		log.Printf("📧 (SMTP não configurado) %s -> %s", subject, p.Email)
		return nil
	}

	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) buildMessage(p queue.NotificationPayload, tmpl, subject string) (*gomail.Message, error) {
	data := AppointmentEmailData{
		ClientName: p.ClientName,
		Title:      p.Title,
		Date:       displayDate(p.Date),
		Time:       p.Time,
		Link:       p.Link,
		Location:   p.Location,
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, tmpl, data); err != nil {
		return nil, fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", p.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())
	return m, nil
}

// displayDate converte YYYY-MM-DD para DD/MM/YYYY.
func displayDate(iso string) string {
	d, err := entity.ParseDate(iso)
	if err != nil {
		return iso
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format("02/01/2006")
}
