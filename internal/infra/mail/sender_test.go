package mail

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/assistant-flow-hub/internal/infra/queue"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func payload() queue.NotificationPayload {
	return queue.NotificationPayload{
		Kind:       queue.KindConfirmation,
		Title:      "Consultoria Inicial",
		ClientName: "Ana",
		Email:      "ana@example.com",
		Date:       "2026-03-12",
		Time:       "14:30",
		Link:       "https://meet.jit.si/atendimento-1",
	}
}

func TestSendConfirmation(t *testing.T) {
	d := &fakeDialer{}
	s := &EmailSender{From: "agenda@empresa.com", Dialer: d}

	err := s.SendConfirmation(context.Background(), payload())

	require.NoError(t, err)
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"ana@example.com"}, d.sent[0].GetHeader("To"))

	// gomail codifica o assunto em Q-encoding por causa do "às"
	subject := d.sent[0].GetHeader("Subject")
	require.Len(t, subject, 1)
	decoded, err := new(mime.WordDecoder).DecodeHeader(subject[0])
	require.NoError(t, err)
	assert.Equal(t, "Agendamento confirmado: Consultoria Inicial em 12/03/2026 às 14:30", decoded)
}

func TestSendReminderDialError(t *testing.T) {
	cause := errors.New("connection refused")
	s := &EmailSender{From: "agenda@empresa.com", Dialer: &fakeDialer{err: cause}}

	err := s.SendReminder(context.Background(), payload())

	assert.ErrorIs(t, err, cause)
}

func TestSendWithoutSMTPOnlyLogs(t *testing.T) {
	s := NewEmailSender("", 587, "", "", "agenda@empresa.com")

	assert.Nil(t, s.Dialer)
	assert.NoError(t, s.SendConfirmation(context.Background(), payload()))
}

func TestTemplatesRender(t *testing.T) {
	data := AppointmentEmailData{
		ClientName: "Ana",
		Title:      "Consultoria Inicial",
		Date:       "12/03/2026",
		Time:       "14:30",
		Location:   "Sala 3",
	}

	var body bytes.Buffer
	require.NoError(t, templates.ExecuteTemplate(&body, "reminder.html", data))

	assert.Contains(t, body.String(), "Ana")
	assert.Contains(t, body.String(), "12/03/2026")
	assert.Contains(t, body.String(), "Sala 3")
	assert.NotContains(t, body.String(), "Link da reuni")
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "01/02/2026", displayDate("2026-02-01"))
	assert.Equal(t, "amanhã", displayDate("amanhã"))
}
