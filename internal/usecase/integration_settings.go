package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/xavierca1/assistant-flow-hub/internal/infra/integration"
)

const secretMask = "••••"

type IntegrationState struct {
	Provider  string              `json:"provider"`
	Title     string              `json:"title"`
	Connected bool                `json:"connected"`
	Required  []integration.Field `json:"required"`
	Settings  map[string]any      `json:"settings"`
}

type panel struct {
	provider  integration.Provider
	connected bool
	settings  map[string]any
}

// IntegrationSettings guarda em memória a configuração de cada painel.
// Nada aqui é persistido nem enviado aos provedores.
type IntegrationSettings struct {
	mu     sync.RWMutex
	order  []string
	panels map[string]*panel
}

func NewIntegrationSettings(providers ...integration.Provider) *IntegrationSettings {
	s := &IntegrationSettings{panels: make(map[string]*panel)}
	for _, p := range providers {
		def := p.Definition()
		settings := make(map[string]any, len(def.Defaults))
		for k, v := range def.Defaults {
			settings[k] = v
		}
		s.order = append(s.order, def.Name)
		s.panels[def.Name] = &panel{provider: p, settings: settings}
	}
	return s
}

func (s *IntegrationSettings) All() []IntegrationState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]IntegrationState, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.panels[name].state())
	}
	return out
}

func (s *IntegrationSettings) State(provider string) (IntegrationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.panel(provider)
	if err != nil {
		return IntegrationState{}, err
	}
	return p.state(), nil
}

// Save sempre funciona localmente. Chaves desconhecidas são ignoradas e um segredo
// reenviado ainda mascarado mantém o valor guardado. Se a integração estava conectada
// e alguma credencial ficou vazia ou inválida, ela é desconectada.
func (s *IntegrationSettings) Save(ctx context.Context, provider string, settings map[string]any) (IntegrationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.panel(provider)
	if err != nil {
		return IntegrationState{}, err
	}

	def := p.provider.Definition()
	for k, v := range settings {
		if !def.Known(k) {
			continue
		}
		if def.IsSecret(k) && strings.HasPrefix(integration.StringValue(v), secretMask) {
			continue
		}
		if def.IsPhone(k) {
			v = integration.FormatPhone(integration.StringValue(v))
		}
		p.settings[k] = v
	}

	if p.connected && def.CheckCredentials(p.settings) != nil {
		if err := p.provider.Disconnect(ctx); err != nil {
			log.Printf("⚠️ %s: erro ao desconectar: %v", def.Name, err)
		}
		p.connected = false
		log.Printf("🔌 %s desconectado: credenciais incompletas", def.Name)
	}

	log.Printf("⚙️ Configurações de %s salvas", def.Name)
	return p.state(), nil
}

// Toggle desconecta sem condição; para conectar exige as credenciais.
func (s *IntegrationSettings) Toggle(ctx context.Context, provider string) (IntegrationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.panel(provider)
	if err != nil {
		return IntegrationState{}, err
	}

	def := p.provider.Definition()

	if p.connected {
		if err := p.provider.Disconnect(ctx); err != nil {
			log.Printf("⚠️ %s: erro ao desconectar: %v", def.Name, err)
		}
		p.connected = false
		log.Printf("🔌 %s desconectado", def.Name)
		return p.state(), nil
	}

	if err := p.provider.Connect(ctx, p.settings); err != nil {
		var credErr *integration.CredentialsError
		if errors.As(err, &credErr) {
			fields := make([]ValidationError, 0, len(credErr.Problems))
			for _, pr := range credErr.Problems {
				fields = append(fields, ValidationError{Field: pr.Field, Message: pr.Reason})
			}
			return p.state(), &DomainError{
				Code:    CodeMissingCredentials,
				Message: "preencha as credenciais de " + def.Title + " antes de conectar",
				Fields:  fields,
			}
		}
		log.Printf("❌ %s: erro ao conectar: %v", def.Name, err)
		return p.state(), &TechnicalError{Code: CodeIntegration, Message: "não foi possível conectar " + def.Title, Err: err}
	}

	p.connected = true
	log.Printf("✅ %s conectado", def.Name)
	return p.state(), nil
}

func (s *IntegrationSettings) panel(provider string) (*panel, error) {
	p, ok := s.panels[provider]
	if !ok {
		return nil, &DomainError{Code: CodeUnknownProvider, Message: "integração desconhecida: " + provider}
	}
	return p, nil
}

func (p *panel) state() IntegrationState {
	def := p.provider.Definition()

	settings := make(map[string]any, len(p.settings))
	for k, v := range p.settings {
		if def.IsSecret(k) {
			settings[k] = mask(integration.StringValue(v))
			continue
		}
		settings[k] = v
	}

	return IntegrationState{
		Provider:  def.Name,
		Title:     def.Title,
		Connected: p.connected,
		Required:  def.Required,
		Settings:  settings,
	}
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	r := []rune(secret)
	if len(r) <= 4 {
		return secretMask
	}
	return secretMask + string(r[len(r)-4:])
}
