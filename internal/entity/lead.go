package entity

import (
	"context"
	"errors"
	"time"
)

var ErrLeadNotFound = errors.New("lead não encontrado")

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "novo"
	LeadStatusQualified LeadStatus = "qualificado"
	LeadStatusProposal  LeadStatus = "proposta"
	LeadStatusClosed    LeadStatus = "fechado"
	LeadStatusLost      LeadStatus = "perdido"
)

type LeadPriority string

const (
	LeadPriorityLow    LeadPriority = "baixa"
	LeadPriorityMedium LeadPriority = "media"
	LeadPriorityHigh   LeadPriority = "alta"
)

type LeadSource string

const (
	LeadSourceManual   LeadSource = "manual"
	LeadSourceWhatsApp LeadSource = "whatsapp"
	LeadSourceWebsite  LeadSource = "website"
	LeadSourceReferral LeadSource = "referencia"
	LeadSourceSocial   LeadSource = "social"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusQualified, LeadStatusProposal, LeadStatusClosed, LeadStatusLost:
		return true
	}
	return false
}

func (p LeadPriority) Valid() bool {
	switch p {
	case LeadPriorityLow, LeadPriorityMedium, LeadPriorityHigh:
		return true
	}
	return false
}

func (s LeadSource) Valid() bool {
	switch s {
	case LeadSourceManual, LeadSourceWhatsApp, LeadSourceWebsite, LeadSourceReferral, LeadSourceSocial:
		return true
	}
	return false
}

// Lead é um contato em prospecção. ID vazio = ainda não salvo.
type Lead struct {
	ID          string       `json:"id,omitempty"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Interest    string       `json:"interest"`
	Status      LeadStatus   `json:"status"`
	Priority    LeadPriority `json:"priority"`
	Notes       string       `json:"notes"`
	Source      LeadSource   `json:"source"`
	ContactedAt *time.Time   `json:"contacted_at,omitempty"`
	CreatedAt   *time.Time   `json:"created_at,omitempty"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty"`
}

// ApplyDefaults preenche os enums que vieram em branco.
func (l *Lead) ApplyDefaults() {
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	if l.Priority == "" {
		l.Priority = LeadPriorityMedium
	}
	if l.Source == "" {
		l.Source = LeadSourceManual
	}
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindAll(ctx context.Context) ([]Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
}
