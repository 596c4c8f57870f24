package entity

import "errors"

// ErrConstraintViolation: o banco recusou o registro (CHECK / NOT NULL).
var ErrConstraintViolation = errors.New("registro viola uma restrição do banco")
