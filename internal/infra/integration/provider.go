package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrProviderNotImplemented: o painel só guarda configuração, nenhuma mensagem sai daqui.
var ErrProviderNotImplemented = errors.New("integration: provider messaging is not implemented")

const DefaultRegion = "BR"

type Field struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Secret bool   `json:"secret"`
	Phone  bool   `json:"phone"`
}

type Definition struct {
	Name     string
	Title    string
	Required []Field
	Defaults map[string]any
}

// IsSecret indica se a chave deve ser mascarada nas respostas.
func (d Definition) IsSecret(key string) bool {
	for _, f := range d.Required {
		if f.Key == key && f.Secret {
			return true
		}
	}
	return false
}

func (d Definition) IsPhone(key string) bool {
	for _, f := range d.Required {
		if f.Key == key {
			return f.Phone
		}
	}
	return false
}

func (d Definition) Known(key string) bool {
	if _, ok := d.Defaults[key]; ok {
		return true
	}
	for _, f := range d.Required {
		if f.Key == key {
			return true
		}
	}
	return false
}

type CredentialProblem struct {
	Field  string
	Reason string
}

type CredentialsError struct {
	Provider string
	Problems []CredentialProblem
}

func (e *CredentialsError) Error() string {
	keys := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		keys = append(keys, p.Field)
	}
	return fmt.Sprintf("%s: missing or invalid credentials: %s", e.Provider, strings.Join(keys, ", "))
}

// CheckCredentials devolve nil quando todos os campos obrigatórios estão preenchidos
// (e os de telefone são números válidos).
func (d Definition) CheckCredentials(settings map[string]any) error {
	var problems []CredentialProblem
	for _, f := range d.Required {
		v := StringValue(settings[f.Key])
		switch {
		case v == "":
			problems = append(problems, CredentialProblem{Field: f.Key, Reason: "is required"})
		case f.Phone && !ValidPhone(v):
			problems = append(problems, CredentialProblem{Field: f.Key, Reason: "must be a valid phone number"})
		}
	}
	if len(problems) > 0 {
		return &CredentialsError{Provider: d.Name, Problems: problems}
	}
	return nil
}

func ValidPhone(raw string) bool {
	num, err := phonenumbers.Parse(raw, DefaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

// FormatPhone devolve o número em E.164, ou o texto original se não for possível interpretar.
func FormatPhone(raw string) string {
	num, err := phonenumbers.Parse(raw, DefaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

func StringValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

type Provider interface {
	Definition() Definition
	Connect(ctx context.Context, settings map[string]any) error
	Disconnect(ctx context.Context) error
	SendMessage(ctx context.Context, to, text string) error
	ReceiveWebhook(ctx context.Context, payload []byte) error
}

// offlineProvider valida credenciais localmente e não abre conexão com ninguém.
type offlineProvider struct {
	def Definition
}

func (p *offlineProvider) Definition() Definition {
	return p.def
}

func (p *offlineProvider) Connect(ctx context.Context, settings map[string]any) error {
	return p.def.CheckCredentials(settings)
}

func (p *offlineProvider) Disconnect(ctx context.Context) error {
	return nil
}

func (p *offlineProvider) SendMessage(ctx context.Context, to, text string) error {
	return fmt.Errorf("%s: %w", p.def.Name, ErrProviderNotImplemented)
}

func (p *offlineProvider) ReceiveWebhook(ctx context.Context, payload []byte) error {
	return fmt.Errorf("%s: %w", p.def.Name, ErrProviderNotImplemented)
}
