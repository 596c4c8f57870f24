package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

var MeetingTypes = []string{
	"Consultoria Inicial",
	"Reunião de Follow-up",
	"Apresentação de Proposta",
	"Reunião de Alinhamento",
	"Consultoria Técnica",
	"Outro",
}

const (
	firstSlot    = 8 * 60
	lastSlot     = 18 * 60
	slotInterval = 30
)

// TimeSlots devolve a grade de meia em meia hora das 08:00 às 18:00.
func TimeSlots() []string {
	slots := make([]string, 0, (lastSlot-firstSlot)/slotInterval+1)
	for m := firstSlot; m <= lastSlot; m += slotInterval {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

type ScheduleInput struct {
	ClientName  string      `json:"client_name" validate:"required,max=200"`
	ClientEmail string      `json:"client_email" validate:"required,email,max=254"`
	MeetingType string      `json:"meeting_type" validate:"required"`
	Date        entity.Date `json:"date"`
	Time        string      `json:"time" validate:"required"`
	Notes       string      `json:"notes" validate:"max=5000"`
}

type AppointmentCreator interface {
	Create(ctx context.Context, input AppointmentInput) (*entity.Appointment, error)
	Delete(ctx context.Context, id string, confirmed bool) error
}

// ScheduleAppointmentUseCase é o formulário avulso de agendamento: valida e
// delega a criação ao AppointmentManager, depois enfileira a confirmação.
type ScheduleAppointmentUseCase struct {
	Appointments   AppointmentCreator
	Queue          NotificationProducer
	MeetingBaseURL string
	Location       *time.Location
	Now            func() time.Time
}

func NewScheduleAppointmentUseCase(
	appointments AppointmentCreator,
	queue NotificationProducer,
	meetingBaseURL string,
	loc *time.Location,
) *ScheduleAppointmentUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ScheduleAppointmentUseCase{
		Appointments:   appointments,
		Queue:          queue,
		MeetingBaseURL: meetingBaseURL,
		Location:       loc,
		Now:            time.Now,
	}
}

func (uc *ScheduleAppointmentUseCase) Validate(input ScheduleInput) []ValidationError {
	input.ClientName = strings.TrimSpace(input.ClientName)
	input.ClientEmail = strings.TrimSpace(input.ClientEmail)
	input.MeetingType = strings.TrimSpace(input.MeetingType)
	input.Time = strings.TrimSpace(input.Time)

	errs := validateStruct(input)

	if input.MeetingType != "" && !contains(MeetingTypes, input.MeetingType) {
		errs = append(errs, ValidationError{Field: "meeting_type", Message: "must be one of the available meeting types"})
	}
	if input.Time != "" && !contains(TimeSlots(), input.Time) {
		errs = append(errs, ValidationError{Field: "time", Message: "must be a slot between 08:00 and 18:00"})
	}

	if input.Date.IsZero() {
		errs = append(errs, ValidationError{Field: "date", Message: "is required"})
	} else if input.Date.Before(entity.DateIn(uc.Now(), uc.Location)) {
		errs = append(errs, ValidationError{Field: "date", Message: "must not be in the past"})
	}

	return errs
}

// Execute persiste o agendamento e só então chama onScheduled.
// Se a validação ou a persistência falhar, onScheduled nunca é chamado.
func (uc *ScheduleAppointmentUseCase) Execute(ctx context.Context, input ScheduleInput, onScheduled func(entity.Appointment)) (*entity.Appointment, error) {
	if errs := uc.Validate(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	appointmentInput := AppointmentInput{
		Title:           strings.TrimSpace(input.MeetingType),
		ClientName:      input.ClientName,
		Email:           input.ClientEmail,
		Date:            input.Date,
		Time:            strings.TrimSpace(input.Time),
		DurationMinutes: entity.DefaultDurationMinutes,
		Kind:            entity.MeetingOnline,
		Link:            uc.meetingLink(),
		Notes:           input.Notes,
		Status:          entity.AppointmentConfirmed,
	}

	var created *entity.Appointment
	txn := NewTransaction()

	txn.AddStep("create_appointment",
		func(ctx context.Context) error {
			a, err := uc.Appointments.Create(ctx, appointmentInput)
			if err != nil {
				return err
			}
			created = a
			return nil
		},
		func(ctx context.Context) error {
			return uc.Appointments.Delete(ctx, created.ID, true)
		},
	)

	if uc.Queue != nil {
		txn.AddStep("enqueue_confirmation", func(ctx context.Context) error {
			return uc.Queue.PublishAppointmentScheduled(ctx, *created)
		}, nil)
	}

	if err := txn.Execute(ctx); err != nil {
		// falha na criação: devolve o erro tipado do manager (validação, banco)
		if created == nil {
			var de *DomainError
			if errors.As(err, &de) {
				return nil, de
			}
			var te *TechnicalError
			if errors.As(err, &te) {
				return nil, te
			}
		}
		log.Printf("❌ Agendamento de %s desfeito: %v", input.ClientEmail, err)
		return nil, &TechnicalError{
			Code:    CodeQueue,
			Message: "não foi possível concluir o agendamento",
			Err:     err,
		}
	}

	if onScheduled != nil {
		onScheduled(*created)
	}
	return created, nil
}

func (uc *ScheduleAppointmentUseCase) meetingLink() string {
	base := strings.TrimRight(uc.MeetingBaseURL, "/")
	if base == "" {
		base = "https://meet.jit.si"
	}
	return base + "/atendimento-" + uuid.New().String()
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
