package mail

import "gopkg.in/gomail.v2"

type AppointmentEmailData struct {
	ClientName string
	Title      string
	Date       string
	Time       string
	Link       string
	Location   string
}

// Dialer é satisfeito por *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From   string
	Dialer Dialer
}
