package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, name, email, COALESCE(phone, ''), COALESCE(interest, ''),
	status, priority, COALESCE(notes, ''), source,
	contacted_at, created_at, updated_at`

// Create grava o lead; id e datas vêm do banco.
func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (name, email, phone, interest, status, priority, notes, source, contacted_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, contacted_at, created_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		lead.Name,
		lead.Email,
		nullString(lead.Phone),
		nullString(lead.Interest),
		lead.Status,
		lead.Priority,
		nullString(lead.Notes),
		lead.Source,
	).Scan(&lead.ID, &lead.ContactedAt, &lead.CreatedAt)
	if err != nil {
		return translate("insert lead", err)
	}

	return nil
}

func (r *LeadRepository) FindAll(ctx context.Context) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, translate("list leads", err)
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		var l entity.Lead
		if err := scanLead(rows, &l); err != nil {
			return nil, translate("scan lead", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list leads", err)
	}

	return leads, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	var l entity.Lead
	err := scanLead(r.DB.QueryRowContext(ctx, query, id), &l)
	if errors.Is(err, sql.ErrNoRows) || badID(err) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, translate("find lead", err)
	}

	return &l, nil
}

// Update troca os campos editáveis e carimba updated_at.
func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			name = $1, email = $2, phone = $3, interest = $4,
			status = $5, priority = $6, notes = $7, source = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING contacted_at, created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		lead.Name,
		lead.Email,
		nullString(lead.Phone),
		nullString(lead.Interest),
		lead.Status,
		lead.Priority,
		nullString(lead.Notes),
		lead.Source,
		lead.ID,
	).Scan(&lead.ContactedAt, &lead.CreatedAt, &lead.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) || badID(err) {
		return entity.ErrLeadNotFound
	}
	if err != nil {
		return translate("update lead", err)
	}

	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if badID(err) {
		return entity.ErrLeadNotFound
	}
	if err != nil {
		return translate("delete lead", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return translate("delete lead", err)
	}
	if n == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner, l *entity.Lead) error {
	return row.Scan(
		&l.ID,
		&l.Name,
		&l.Email,
		&l.Phone,
		&l.Interest,
		&l.Status,
		&l.Priority,
		&l.Notes,
		&l.Source,
		&l.ContactedAt,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
}
