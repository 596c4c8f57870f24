package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
	"github.com/xavierca1/assistant-flow-hub/internal/usecase"
)

// TestDashboardSummary - números calculados a partir do banco
func TestDashboardSummary(t *testing.T) {
	ctx := context.Background()
	loc := saoPaulo(t)
	today := entity.Date{Year: 2026, Month: time.March, Day: 10}

	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindAll", ctx).Return([]entity.Lead{
		{ID: "l1", Status: entity.LeadStatusNew},
		{ID: "l2", Status: entity.LeadStatusNew},
		{ID: "l3", Status: entity.LeadStatusClosed},
	}, nil)

	aptRepo := new(MockAppointmentRepository)
	aptRepo.On("FindAll", ctx).Return([]entity.Appointment{
		{ID: "old", Date: today.AddDays(-2), Time: "10:00", DurationMinutes: 30, Status: entity.AppointmentCompleted},
		{ID: "cancel", Date: today, Time: "08:00", DurationMinutes: 60, Status: entity.AppointmentCancelled},
		{ID: "t1", Date: today, Time: "09:00", DurationMinutes: 60, Status: entity.AppointmentScheduled},
		{ID: "t2", Date: today, Time: "15:00", DurationMinutes: 90, Status: entity.AppointmentConfirmed},
		{ID: "next", Date: today.AddDays(3), Time: "11:00", DurationMinutes: 60, Status: entity.AppointmentScheduled},
	}, nil)

	uc := usecase.NewDashboardUseCase(
		usecase.NewLeadManager(leadRepo, nil),
		usecase.NewAppointmentManager(aptRepo, nil, loc),
	)

	summary, err := uc.Summary(ctx, time.Date(2026, time.March, 10, 7, 0, 0, 0, loc))

	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalLeads)
	assert.Equal(t, 2, summary.LeadsByStatus["novo"])
	assert.Equal(t, 1, summary.LeadsByStatus["fechado"])
	// o cancelado de hoje também aparece no dia
	assert.Equal(t, 3, summary.AppointmentsToday)
	assert.Equal(t, 25.0, summary.CompletionRate)
	assert.Equal(t, 60.0, summary.AverageDuration)

	ids := []string{}
	for _, a := range summary.Upcoming {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"t1", "t2", "next"}, ids)
	require.NotEmpty(t, summary.QuickActions)
	assert.Equal(t, "new_appointment", summary.QuickActions[0].ID)
}

// TestDashboardSummaryEmpty - sem dados não divide por zero
func TestDashboardSummaryEmpty(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindAll", ctx).Return([]entity.Lead{}, nil)
	aptRepo := new(MockAppointmentRepository)
	aptRepo.On("FindAll", ctx).Return([]entity.Appointment{}, nil)

	uc := usecase.NewDashboardUseCase(
		usecase.NewLeadManager(leadRepo, nil),
		usecase.NewAppointmentManager(aptRepo, nil, time.UTC),
	)

	summary, err := uc.Summary(ctx, time.Now())

	require.NoError(t, err)
	assert.Zero(t, summary.CompletionRate)
	assert.Zero(t, summary.AverageDuration)
	assert.Empty(t, summary.Upcoming)
}

// TestDashboardSummaryStoreError
func TestDashboardSummaryStoreError(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindAll", ctx).Return(nil, errors.New("timeout"))

	uc := usecase.NewDashboardUseCase(
		usecase.NewLeadManager(leadRepo, nil),
		usecase.NewAppointmentManager(new(MockAppointmentRepository), nil, time.UTC),
	)

	_, err := uc.Summary(ctx, time.Now())

	assert.True(t, usecase.IsTechnicalError(err))
}
