package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis создает клиент Redis и проверяет соединение
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return rdb, nil
}

const revokedPrefix = "barter:revoked:"

// RevocationStore хранит id отозванных токенов до окончания их срока действия
type RevocationStore struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRevocationStore(rdb *redis.Client) *RevocationStore {
	return &RevocationStore{rdb: rdb, now: time.Now}
}

// Revoke помечает токен отозванным до момента until.
// Уже истекший токен не сохраняется.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("check token: %w", err)
	}
	return n > 0, nil
}
