package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

const (
	pgNotNullViolation = "23502"
	pgCheckViolation   = "23514"
	pgInvalidText      = "22P02"
)

// translate converte erros do Postgres nos erros de domínio que a camada de cima entende.
func translate(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgNotNullViolation, pgCheckViolation, pgInvalidText:
			return fmt.Errorf("%s: %w (%s)", op, entity.ErrConstraintViolation, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// badID: o id recebido nem é um uuid, então o registro não existe.
func badID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidText
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
