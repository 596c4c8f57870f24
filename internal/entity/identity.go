package entity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNoIdentity      = errors.New("nenhum usuário autenticado")
	ErrInvalidIdentity = errors.New("credencial de login inválida")
)

// Identity é o usuário autenticado mostrado no cabeçalho do painel.
type Identity struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Identity  Identity  `json:"user"`
}

// IdentityProvider é o único ponto de autenticação do app, injetado na raiz.
type IdentityProvider interface {
	SignIn(ctx context.Context, credential string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	Current(ctx context.Context, token string) (*Identity, error)
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}
