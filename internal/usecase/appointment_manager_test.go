package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
	"github.com/xavierca1/assistant-flow-hub/internal/usecase"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func validAppointmentInput() usecase.AppointmentInput {
	return usecase.AppointmentInput{
		Title:      "Consultoria Inicial",
		ClientName: "Ana Souza",
		Email:      "ana@example.com",
		Date:       entity.Date{Year: 2026, Month: time.March, Day: 10},
		Time:       "09:00",
		Kind:       entity.MeetingInPerson,
		Location:   "Av. Paulista, 1000",
		Link:       "https://meet.example.com/abc",
	}
}

// TestAppointmentCreateDefaults - reminder_sent sempre começa falso
func TestAppointmentCreateDefaults(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAppointmentRepository)

	var saved *entity.Appointment
	repo.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.Appointment)
			saved.ID = "apt-1"
		}).
		Return(nil)
	repo.On("FindAll", ctx).Return([]entity.Appointment{}, nil)

	m := usecase.NewAppointmentManager(repo, nil, time.UTC)

	a, err := m.Create(ctx, validAppointmentInput())

	require.NoError(t, err)
	assert.Equal(t, "apt-1", a.ID)
	assert.False(t, saved.ReminderSent)
	assert.Equal(t, entity.AppointmentScheduled, saved.Status)
	assert.Equal(t, entity.DefaultDurationMinutes, saved.DurationMinutes)
	// presencial não guarda link
	assert.Empty(t, saved.Link)
	assert.Equal(t, "Av. Paulista, 1000", saved.Location)
}

// TestAppointmentCreateValidation
func TestAppointmentCreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAppointmentRepository)
	m := usecase.NewAppointmentManager(repo, nil, time.UTC)

	input := validAppointmentInput()
	input.Time = "25:00"
	input.Date = entity.Date{}
	input.Kind = "videochamada"

	_, err := m.Create(ctx, input)

	var de *usecase.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, usecase.CodeValidation, de.Code)

	fields := map[string]bool{}
	for _, f := range de.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["time"])
	assert.True(t, fields["date"])
	assert.True(t, fields["kind"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestAppointmentCreateKeepsFreeText - texto livre é gravado como veio, horário é aparado
func TestAppointmentCreateKeepsFreeText(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAppointmentRepository)

	var saved *entity.Appointment
	repo.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Appointment) }).
		Return(nil)
	repo.On("FindAll", ctx).Return([]entity.Appointment{}, nil)

	m := usecase.NewAppointmentManager(repo, nil, time.UTC)

	input := validAppointmentInput()
	input.Title = " Consultoria Inicial"
	input.ClientName = "Ana Souza "
	input.Notes = " trazer contrato "
	input.Time = " 09:00 "

	_, err := m.Create(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, " Consultoria Inicial", saved.Title)
	assert.Equal(t, "Ana Souza ", saved.ClientName)
	assert.Equal(t, " trazer contrato ", saved.Notes)
	assert.Equal(t, "09:00", saved.Time)
}

// TestAppointmentBlankTitleIsRequired
func TestAppointmentBlankTitleIsRequired(t *testing.T) {
	input := validAppointmentInput()
	input.Title = "   "

	errs := usecase.ValidateAppointmentInput(input)

	require.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].Field)
}

// TestAppointmentSubmitUpdateClearsLocationForOnline
func TestAppointmentSubmitUpdateClearsLocationForOnline(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAppointmentRepository)
	repo.On("FindByID", ctx, "apt-2").Return(&entity.Appointment{ID: "apt-2", Kind: entity.MeetingInPerson}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(a *entity.Appointment) bool {
		return a.ID == "apt-2" && a.Location == "" && a.Link != ""
	})).Return(nil)
	repo.On("FindAll", ctx).Return([]entity.Appointment{}, nil)

	m := usecase.NewAppointmentManager(repo, nil, time.UTC)

	input := validAppointmentInput()
	input.Kind = entity.MeetingOnline

	_, err := m.Submit(ctx, input, "apt-2")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

// TestAppointmentSubmitUpdateKeepsStoredValues - campos omitidos não voltam ao padrão
func TestAppointmentSubmitUpdateKeepsStoredValues(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAppointmentRepository)
	repo.On("FindByID", ctx, "apt-3").Return(&entity.Appointment{
		ID:              "apt-3",
		Kind:            entity.MeetingOnline,
		Status:          entity.AppointmentConfirmed,
		DurationMinutes: 30,
	}, nil)

	var saved *entity.Appointment
	repo.On("Update", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Appointment) }).
		Return(nil)
	repo.On("FindAll", ctx).Return([]entity.Appointment{}, nil)

	m := usecase.NewAppointmentManager(repo, nil, time.UTC)

	input := validAppointmentInput()
	input.Kind = ""
	input.Status = ""
	input.DurationMinutes = 0

	_, err := m.Submit(ctx, input, "apt-3")

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, entity.AppointmentConfirmed, saved.Status)
	assert.Equal(t, entity.MeetingOnline, saved.Kind)
	assert.Equal(t, 30, saved.DurationMinutes)
	assert.Empty(t, saved.Location)
}

// TestAppointmentSubmitUpdateNotFound
func TestAppointmentSubmitUpdateNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAppointmentRepository)
	repo.On("FindByID", ctx, "nope").Return(nil, entity.ErrAppointmentNotFound)

	m := usecase.NewAppointmentManager(repo, nil, time.UTC)

	_, err := m.Submit(ctx, validAppointmentInput(), "nope")

	var de *usecase.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, usecase.CodeNotFound, de.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// TestAppointmentDeleteRequiresConfirmation
func TestAppointmentDeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAppointmentRepository)
	m := usecase.NewAppointmentManager(repo, nil, time.UTC)

	err := m.Delete(ctx, "apt-1", false)

	assert.ErrorIs(t, err, usecase.ErrDeleteNotConfirmed)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// TestAppointmentDeleteNotFound
func TestAppointmentDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAppointmentRepository)
	repo.On("Delete", ctx, "apt-x").Return(entity.ErrAppointmentNotFound)

	m := usecase.NewAppointmentManager(repo, nil, time.UTC)

	err := m.Delete(ctx, "apt-x", true)

	var de *usecase.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, usecase.CodeNotFound, de.Code)
}

// TestAppointmentToday - um hoje às 09:00 e outro amanhã: só um entra na lista
func TestAppointmentToday(t *testing.T) {
	ctx := context.Background()
	loc := saoPaulo(t)
	repo := new(MockAppointmentRepository)

	today := entity.Date{Year: 2026, Month: time.March, Day: 10}
	repo.On("FindAll", ctx).Return([]entity.Appointment{
		{ID: "a", Date: today, Time: "09:00"},
		{ID: "b", Date: today.AddDays(1), Time: "09:00"},
	}, nil)

	m := usecase.NewAppointmentManager(repo, nil, loc)
	_, err := m.Load(ctx)
	require.NoError(t, err)

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, loc)
	list := m.Today(now)

	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)
}

// TestAppointmentTodayUsesBusinessTimezone - 01:00 UTC ainda é o dia anterior em São Paulo
func TestAppointmentTodayUsesBusinessTimezone(t *testing.T) {
	ctx := context.Background()
	loc := saoPaulo(t)
	repo := new(MockAppointmentRepository)

	repo.On("FindAll", ctx).Return([]entity.Appointment{
		{ID: "a", Date: entity.Date{Year: 2026, Month: time.March, Day: 10}, Time: "20:00"},
	}, nil)

	m := usecase.NewAppointmentManager(repo, nil, loc)
	_, err := m.Load(ctx)
	require.NoError(t, err)

	now := time.Date(2026, time.March, 11, 1, 0, 0, 0, time.UTC)

	assert.Len(t, m.Today(now), 1)
}

// TestAppointmentTodayEmptyStore
func TestAppointmentTodayEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAppointmentRepository)
	repo.On("FindAll", ctx).Return([]entity.Appointment{}, nil)

	m := usecase.NewAppointmentManager(repo, nil, time.UTC)
	_, err := m.Load(ctx)
	require.NoError(t, err)

	list := m.Today(time.Now())

	assert.NotNil(t, list)
	assert.Empty(t, list)
}

// TestAppointmentOnDate
func TestAppointmentOnDate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAppointmentRepository)
	day := entity.Date{Year: 2026, Month: time.April, Day: 2}
	repo.On("FindAll", ctx).Return([]entity.Appointment{
		{ID: "a", Date: day, Time: "09:00"},
		{ID: "b", Date: day, Time: "14:30"},
		{ID: "c", Date: day.AddDays(-1), Time: "10:00"},
	}, nil)

	m := usecase.NewAppointmentManager(repo, nil, time.UTC)
	_, err := m.Load(ctx)
	require.NoError(t, err)

	list := m.OnDate(day)

	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
}
