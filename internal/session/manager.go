package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the identity inside the signed token. The redis session
// id (sid) is what makes revocation possible.
type Claims struct {
	Name      string `json:"name,omitempty"`
	Image     string `json:"image,omitempty"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager issues and resolves bearer tokens. Resolve returns (nil, nil)
// for anything that is not a live session: absent, malformed, expired or
// revoked tokens all look the same to callers, an anonymous request.
type Manager struct {
	secret []byte
	ttl    time.Duration
	store  *Store
}

func NewManager(secret string, ttl time.Duration, store *Store) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, store: store}
}

func (m *Manager) Issue(ctx context.Context, id Identity) (string, error) {
	sid := uuid.New().String()
	if err := m.store.Put(ctx, sid, id); err != nil {
		return "", err
	}
	now := time.Now()
	claims := Claims{
		Name:      id.Name,
		Image:     id.Image,
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, nil
	}
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, nil
	}
	return m.store.Get(ctx, claims.SessionID)
}

// Revoke deletes the redis session behind the token. A token that does
// not parse is already dead; nothing to do.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil
	}
	return m.store.Delete(ctx, claims.SessionID)
}
