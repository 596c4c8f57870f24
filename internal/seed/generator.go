package seed

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
	"github.com/xavierca1/assistant-flow-hub/internal/usecase"
)

var (
	leadStatuses   = []string{"novo", "qualificado", "proposta", "fechado", "perdido"}
	leadPriorities = []string{"baixa", "media", "alta"}
	leadSources    = []string{"manual", "whatsapp", "website", "referencia", "social"}
	interests      = []string{"Atendimento automático no WhatsApp", "Chatbot para site", "Agenda online", "Integração com CRM", "Respostas com IA"}
	meetingKinds   = []string{"presencial", "online", "telefone"}
	statuses       = []string{"agendado", "confirmado", "concluido", "cancelado"}
)

// Generator monta dados de demonstração; mesma seed, mesmos dados.
type Generator struct {
	faker *gofakeit.Faker
}

func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

func (g *Generator) Leads(n int) []usecase.LeadInput {
	out := make([]usecase.LeadInput, 0, n)
	for i := 0; i < n; i++ {
		person := g.faker.Person()
		out = append(out, usecase.LeadInput{
			Name:     person.FirstName + " " + person.LastName,
			Email:    g.faker.Email(),
			Phone:    fmt.Sprintf("(%02d) 9%04d-%04d", g.faker.IntRange(11, 99), g.faker.IntRange(0, 9999), g.faker.IntRange(0, 9999)),
			Interest: g.faker.RandomString(interests),
			Status:   entity.LeadStatus(g.faker.RandomString(leadStatuses)),
			Priority: entity.LeadPriority(g.faker.RandomString(leadPriorities)),
			Source:   entity.LeadSource(g.faker.RandomString(leadSources)),
			Notes:    g.faker.Sentence(12),
		})
	}
	return out
}

// Appointments espalha n agendamentos entre uma semana antes e duas depois de today.
func (g *Generator) Appointments(n int, today entity.Date) []usecase.AppointmentInput {
	slots := usecase.TimeSlots()
	out := make([]usecase.AppointmentInput, 0, n)
	for i := 0; i < n; i++ {
		kind := entity.MeetingKind(g.faker.RandomString(meetingKinds))
		in := usecase.AppointmentInput{
			Title:           g.faker.RandomString(usecase.MeetingTypes),
			ClientName:      g.faker.Name(),
			Email:           g.faker.Email(),
			Date:            today.AddDays(g.faker.IntRange(-7, 14)),
			Time:            g.faker.RandomString(slots),
			DurationMinutes: g.faker.RandomInt([]int{30, 45, 60, 90}),
			Kind:            kind,
			Notes:           g.faker.Sentence(8),
			Status:          entity.AppointmentStatus(g.faker.RandomString(statuses)),
		}
		switch kind {
		case entity.MeetingInPerson:
			in.Location = g.faker.Street() + ", " + g.faker.City()
		case entity.MeetingOnline:
			in.Link = "https://meet.jit.si/demo-" + g.faker.UUID()
		}
		out = append(out, in)
	}
	return out
}

// Today é o dia atual no fuso do negócio.
func Today(loc *time.Location) entity.Date {
	return entity.DateIn(time.Now(), loc)
}
