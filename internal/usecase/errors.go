package usecase

import (
	"errors"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeConfirmationRequired = "CONFIRMATION_REQUIRED"
	CodeMissingCredentials   = "MISSING_CREDENTIALS"
	CodeUnknownProvider      = "UNKNOWN_PROVIDER"
	CodeStore                = "STORE_ERROR"
	CodeQueue                = "QUEUE_ERROR"
	CodeIntegration          = "INTEGRATION_ERROR"
)

type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

// ErrDeleteNotConfirmed: exclusão pedida sem a confirmação do usuário. Nada é tocado no banco.
var ErrDeleteNotConfirmed = &DomainError{
	Code:    CodeConfirmationRequired,
	Message: "confirme a exclusão antes de continuar",
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func validationFailed(fields []ValidationError) *DomainError {
	msg := "validation failed: "
	for i, f := range fields {
		if i > 0 {
			msg += ", "
		}
		msg += f.Field + " (" + f.Message + ")"
	}
	return &DomainError{Code: CodeValidation, Message: msg, Fields: fields}
}

func notFound(msg string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: msg}
}

func storeFailure(msg string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeStore, Message: msg, Err: err}
}

// saveFailure separa recusa do banco por restrição (dado inválido) de falha técnica.
func saveFailure(msg string, err error) error {
	if errors.Is(err, entity.ErrConstraintViolation) {
		return &DomainError{Code: CodeValidation, Message: "o registro tem valores fora do permitido"}
	}
	return storeFailure(msg, err)
}
