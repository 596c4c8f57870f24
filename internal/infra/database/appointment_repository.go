package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

type AppointmentRepository struct {
	DB *sql.DB
}

func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: db}
}

const appointmentColumns = `
	id, title, client_name, email, COALESCE(phone, ''),
	date, time, duration_minutes, kind,
	COALESCE(location, ''), COALESCE(link, ''), COALESCE(notes, ''),
	status, reminder_sent, created_at, updated_at`

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	query := `
		INSERT INTO appointments
			(title, client_name, email, phone, date, time, duration_minutes, kind, location, link, notes, status, reminder_sent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING id, created_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		a.Title,
		a.ClientName,
		a.Email,
		nullString(a.Phone),
		a.Date,
		a.Time,
		a.DurationMinutes,
		a.Kind,
		nullString(a.Location),
		nullString(a.Link),
		nullString(a.Notes),
		a.Status,
		a.ReminderSent,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return translate("insert appointment", err)
	}

	return nil
}

// FindAll devolve os agendamentos em ordem de data e horário.
func (r *AppointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY date ASC, time ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, translate("list appointments", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var a entity.Appointment
	err := scanAppointment(r.DB.QueryRowContext(ctx, query, id), &a)
	if errors.Is(err, sql.ErrNoRows) || badID(err) {
		return nil, entity.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, translate("find appointment", err)
	}

	return &a, nil
}

// Update não mexe em reminder_sent: só o lembrete escreve essa coluna.
func (r *AppointmentRepository) Update(ctx context.Context, a *entity.Appointment) error {
	query := `
		UPDATE appointments SET
			title = $1, client_name = $2, email = $3, phone = $4,
			date = $5, time = $6, duration_minutes = $7, kind = $8,
			location = $9, link = $10, notes = $11, status = $12,
			updated_at = NOW()
		WHERE id = $13
		RETURNING reminder_sent, created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		a.Title,
		a.ClientName,
		a.Email,
		nullString(a.Phone),
		a.Date,
		a.Time,
		a.DurationMinutes,
		a.Kind,
		nullString(a.Location),
		nullString(a.Link),
		nullString(a.Notes),
		a.Status,
		a.ID,
	).Scan(&a.ReminderSent, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) || badID(err) {
		return entity.ErrAppointmentNotFound
	}
	if err != nil {
		return translate("update appointment", err)
	}

	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if badID(err) {
		return entity.ErrAppointmentNotFound
	}
	if err != nil {
		return translate("delete appointment", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return translate("delete appointment", err)
	}
	if n == 0 {
		return entity.ErrAppointmentNotFound
	}

	return nil
}

// FindPendingReminders lista os ativos entre from e to (inclusive) que ainda não receberam lembrete.
func (r *AppointmentRepository) FindPendingReminders(ctx context.Context, from, to entity.Date) ([]entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE reminder_sent = FALSE
		  AND status IN ('agendado', 'confirmado')
		  AND date BETWEEN $1 AND $2
		ORDER BY date ASC, time ASC`

	rows, err := r.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, translate("list pending reminders", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *AppointmentRepository) MarkReminderSent(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE appointments SET reminder_sent = TRUE WHERE id = $1`, id)
	if err != nil {
		return translate("mark reminder", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return translate("mark reminder", err)
	}
	if n == 0 {
		return entity.ErrAppointmentNotFound
	}

	return nil
}

func collectAppointments(rows *sql.Rows) ([]entity.Appointment, error) {
	list := []entity.Appointment{}
	for rows.Next() {
		var a entity.Appointment
		if err := scanAppointment(rows, &a); err != nil {
			return nil, translate("scan appointment", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list appointments", err)
	}
	return list, nil
}

func scanAppointment(row rowScanner, a *entity.Appointment) error {
	return row.Scan(
		&a.ID,
		&a.Title,
		&a.ClientName,
		&a.Email,
		&a.Phone,
		&a.Date,
		&a.Time,
		&a.DurationMinutes,
		&a.Kind,
		&a.Location,
		&a.Link,
		&a.Notes,
		&a.Status,
		&a.ReminderSent,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}
