package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

type Revoker interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// GoogleSessionProvider troca um ID token do Google por uma sessão própria (JWT HS256).
type GoogleSessionProvider struct {
	ClientID     string
	TokenInfoURL string
	Secret       string
	TTL          time.Duration
	Revoked      Revoker
	HTTPClient   *http.Client
	Now          func() time.Time
}

func NewGoogleSessionProvider(clientID, tokenInfoURL, secret string, ttl time.Duration, revoked Revoker) *GoogleSessionProvider {
	return &GoogleSessionProvider{
		ClientID:     clientID,
		TokenInfoURL: tokenInfoURL,
		Secret:       secret,
		TTL:          ttl,
		Revoked:      revoked,
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
		Now:          time.Now,
	}
}

type tokenInfo struct {
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (p *GoogleSessionProvider) SignIn(ctx context.Context, credential string) (*entity.Session, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, entity.ErrInvalidIdentity
	}

	info, err := p.verify(ctx, credential)
	if err != nil {
		return nil, err
	}

	id := entity.Identity{Name: info.Name, Email: info.Email, Avatar: info.Picture}
	if id.Name == "" {
		id.Name = info.Email
	}

	token, expiresAt, err := issueToken(id, p.Secret, p.TTL, p.Now())
	if err != nil {
		return nil, err
	}

	log.Printf("🔐 Login: %s", id.Email)
	return &entity.Session{Token: token, ExpiresAt: expiresAt, Identity: id}, nil
}

// SignOut revoga a sessão até ela expirar. Token inválido não é erro: já não dá acesso a nada.
func (p *GoogleSessionProvider) SignOut(ctx context.Context, token string) error {
	claims, err := parseToken(token, p.Secret)
	if err != nil {
		return nil
	}
	if p.Revoked == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := p.Revoked.Add(ctx, token, ttl); err != nil {
		return fmt.Errorf("revogar sessão: %w", err)
	}

	log.Printf("👋 Logout: %s", claims.Email)
	return nil
}

func (p *GoogleSessionProvider) Current(ctx context.Context, token string) (*entity.Identity, error) {
	if token == "" {
		return nil, entity.ErrNoIdentity
	}

	claims, err := parseToken(token, p.Secret)
	if err != nil {
		return nil, entity.ErrNoIdentity
	}

	if p.Revoked != nil {
		revoked, err := p.Revoked.IsRevoked(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("consultar sessões revogadas: %w", err)
		}
		if revoked {
			return nil, entity.ErrNoIdentity
		}
	}

	return &entity.Identity{Name: claims.Name, Email: claims.Email, Avatar: claims.Avatar}, nil
}

func (p *GoogleSessionProvider) verify(ctx context.Context, idToken string) (*tokenInfo, error) {
	endpoint := p.TokenInfoURL + "?" + url.Values{"id_token": {idToken}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("montar requisição tokeninfo: %w", err)
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return nil, entity.ErrInvalidIdentity
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo respondeu %d", resp.StatusCode)
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decodificar tokeninfo: %w", err)
	}

	if p.ClientID == "" || info.Aud != p.ClientID {
		log.Printf("⚠️ Login recusado: audience %q não confere", info.Aud)
		return nil, entity.ErrInvalidIdentity
	}
	if info.Email == "" || info.EmailVerified != "true" {
		return nil, entity.ErrInvalidIdentity
	}

	return &info, nil
}

func IsAuthError(err error) bool {
	return errors.Is(err, entity.ErrInvalidIdentity) || errors.Is(err, entity.ErrNoIdentity)
}
