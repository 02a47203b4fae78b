package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Identity is the resolved identity of the current requester.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

// Store keeps live sessions in redis so that logout actually revokes a
// token before it expires. This is session state, not a data cache.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func key(sid string) string { return "session:" + sid }

func (s *Store) Put(ctx context.Context, sid string, id Identity) error {
	payload, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(sid), payload, s.ttl).Err()
}

// Get returns (nil, nil) when the session does not exist or has expired.
func (s *Store) Get(ctx context.Context, sid string) (*Identity, error) {
	data, err := s.rdb.Get(ctx, key(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &id, nil
}

func (s *Store) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, key(sid)).Err()
}
