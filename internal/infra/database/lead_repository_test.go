package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var leadRowColumns = []string{
	"id", "name", "email", "phone", "interest", "status", "priority",
	"notes", "source", "contacted_at", "created_at", "updated_at",
}

func TestLeadRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO leads").
		WithArgs("Ana", "ana@example.com", nil, nil, "novo", "media", nil, "manual").
		WillReturnRows(sqlmock.NewRows([]string{"id", "contacted_at", "created_at"}).
			AddRow("b3a1c2d4-0000-4000-8000-000000000001", now, now))

	lead := &entity.Lead{
		Name:     "Ana",
		Email:    "ana@example.com",
		Status:   entity.LeadStatusNew,
		Priority: entity.LeadPriorityMedium,
		Source:   entity.LeadSourceManual,
	}

	err := repo.Create(context.Background(), lead)

	require.NoError(t, err)
	assert.Equal(t, "b3a1c2d4-0000-4000-8000-000000000001", lead.ID)
	require.NotNil(t, lead.ContactedAt)
	assert.True(t, lead.ContactedAt.Equal(now))
	assert.Nil(t, lead.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_CreateCheckViolation(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery("INSERT INTO leads").
		WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "leads_status_check"})

	err := repo.Create(context.Background(), &entity.Lead{Name: "Ana", Email: "a@b.com", Status: "x"})

	assert.ErrorIs(t, err, entity.ErrConstraintViolation)
}

func TestLeadRepository_FindAll(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM leads ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(leadRowColumns).
			AddRow("1", "Ana", "ana@example.com", "(11) 91234-5678", "Plano", "proposta", "alta", "", "whatsapp", now, now, now).
			AddRow("2", "Bruno", "bruno@example.com", "", "", "novo", "media", "", "manual", now, now, nil))

	leads, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, entity.LeadStatusProposal, leads[0].Status)
	assert.Equal(t, entity.LeadSourceWhatsApp, leads[0].Source)
	assert.Equal(t, "(11) 91234-5678", leads[0].Phone)
	assert.NotNil(t, leads[0].UpdatedAt)
	assert.Nil(t, leads[1].UpdatedAt)
}

func TestLeadRepository_FindAllEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM leads").
		WillReturnRows(sqlmock.NewRows(leadRowColumns))

	leads, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
}

func TestLeadRepository_FindAllError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM leads").WillReturnError(errors.New("connection refused"))

	_, err := repo.FindAll(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "list leads")
}

func TestLeadRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(leadRowColumns))

	_, err := repo.FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}

func TestLeadRepository_UpdateNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery("UPDATE leads SET").
		WillReturnRows(sqlmock.NewRows([]string{"contacted_at", "created_at", "updated_at"}))

	err := repo.Update(context.Background(), &entity.Lead{ID: "missing", Name: "Ana", Email: "a@b.com"})

	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}

func TestLeadRepository_UpdateStampsUpdatedAt(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	updated := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("UPDATE leads SET").
		WillReturnRows(sqlmock.NewRows([]string{"contacted_at", "created_at", "updated_at"}).
			AddRow(created, created, updated))

	lead := &entity.Lead{ID: "1", Name: "Ana", Email: "a@b.com", Status: "fechado", Priority: "alta", Source: "manual"}
	err := repo.Update(context.Background(), lead)

	require.NoError(t, err)
	require.NotNil(t, lead.UpdatedAt)
	assert.True(t, lead.UpdatedAt.Equal(updated))
}

func TestLeadRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)

	mock.ExpectExec("DELETE FROM leads").WithArgs("1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM leads").WithArgs("2").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "2"), entity.ErrLeadNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_MalformedIDIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)
	invalidUUID := &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").WithArgs("abc").WillReturnError(invalidUUID)
	mock.ExpectExec("DELETE FROM leads").WithArgs("abc").WillReturnError(invalidUUID)

	_, err := repo.FindByID(context.Background(), "abc")
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), "abc"), entity.ErrLeadNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
