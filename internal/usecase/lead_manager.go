package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

// LeadManager cuida do ciclo de vida dos leads e guarda a última lista carregada.
type LeadManager struct {
	Repo     entity.LeadRepositoryInterface
	Notifier ChangeNotifier

	mu    sync.RWMutex
	leads []entity.Lead
}

func NewLeadManager(repo entity.LeadRepositoryInterface, notifier ChangeNotifier) *LeadManager {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &LeadManager{
		Repo:     repo,
		Notifier: notifier,
	}
}

// Load busca todos os leads e substitui a lista em memória.
// Se o banco falhar, a lista anterior continua valendo.
func (m *LeadManager) Load(ctx context.Context) ([]entity.Lead, error) {
	leads, err := m.Repo.FindAll(ctx)
	if err != nil {
		log.Printf("❌ Erro ao carregar leads: %v", err)
		return nil, storeFailure("não foi possível carregar os leads", err)
	}

	m.mu.Lock()
	m.leads = leads
	m.mu.Unlock()

	return m.Leads(), nil
}

func (m *LeadManager) Leads() []entity.Lead {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.Lead, len(m.leads))
	copy(out, m.leads)
	return out
}

// Get abre um lead para edição. Só leitura: cancelar a edição não altera nada.
func (m *LeadManager) Get(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := m.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, notFound("lead não encontrado")
		}
		log.Printf("❌ Erro ao buscar lead %s: %v", id, err)
		return nil, storeFailure("não foi possível abrir o lead", err)
	}
	return lead, nil
}

// Submit cria (editingID vazio) ou atualiza um lead e recarrega a lista.
func (m *LeadManager) Submit(ctx context.Context, input LeadInput, editingID string) (*entity.Lead, error) {
	if errs := ValidateLeadInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	op := entity.ChangeCreated
	var lead *entity.Lead
	var err error
	if editingID == "" {
		lead = input.toEntity(nil)
		err = m.Repo.Create(ctx, lead)
	} else {
		op = entity.ChangeUpdated
		var prev *entity.Lead
		if prev, err = m.Get(ctx, editingID); err != nil {
			return nil, err
		}
		lead = input.toEntity(prev)
		lead.ID = editingID
		err = m.Repo.Update(ctx, lead)
	}
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, notFound("lead não encontrado")
		}
		log.Printf("❌ Erro ao salvar lead: %v", err)
		return nil, saveFailure("ocorreu um erro ao salvar o lead", err)
	}

	m.Notifier.Notify(entity.ChangeEvent{
		Collection: entity.CollectionLeads,
		Op:         op,
		ID:         lead.ID,
		At:         time.Now(),
	})

	if _, err := m.Load(ctx); err != nil {
		log.Printf("⚠️ Lead %s salvo, mas a lista não foi recarregada", lead.ID)
	}

	return lead, nil
}

// Delete só vai ao banco com confirmação explícita.
func (m *LeadManager) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}

	if err := m.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return notFound("lead não encontrado")
		}
		log.Printf("❌ Erro ao excluir lead %s: %v", id, err)
		return storeFailure("ocorreu um erro ao excluir o lead", err)
	}

	m.Notifier.Notify(entity.ChangeEvent{
		Collection: entity.CollectionLeads,
		Op:         entity.ChangeDeleted,
		ID:         id,
		At:         time.Now(),
	})

	if _, err := m.Load(ctx); err != nil {
		log.Printf("⚠️ Lead %s excluído, mas a lista não foi recarregada", id)
	}
	return nil
}
