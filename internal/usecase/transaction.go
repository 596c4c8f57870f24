package usecase

import (
	"context"
	"fmt"
	"log"
)

// Transaction executa passos em ordem; se um falhar, desfaz os anteriores de trás pra frente.
type Transaction struct {
	steps []step
}

type step struct {
	name string
	do   func(context.Context) error
	undo func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

// AddStep registra um passo. undo pode ser nil quando não há o que desfazer.
func (t *Transaction) AddStep(name string, do, undo func(context.Context) error) {
	t.steps = append(t.steps, step{name: name, do: do, undo: undo})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, s := range t.steps {
		if err := s.do(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", s.name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) {
	for i := failedAt - 1; i >= 0; i-- {
		s := t.steps[i]
		if s.undo == nil {
			continue
		}
		if err := s.undo(ctx); err != nil {
			log.Printf("⚠️ WARNING: Compensation '%s' failed: %v (inconsistency risk!)", s.name, err)
		}
	}
}
