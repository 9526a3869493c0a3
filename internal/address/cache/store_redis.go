package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"givebridge/internal/address/models"
	"givebridge/pkg/platform/sentinel"
)

const postalKeyPrefix = "postal:"

type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, postalCode string) (*models.PostalAddress, error) {
	payload, err := s.client.Get(ctx, postalKeyPrefix+postalCode).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read postal cache: %w", err)
	}
	var address models.PostalAddress
	if err := json.Unmarshal(payload, &address); err != nil {
		return nil, fmt.Errorf("decode postal cache entry: %w", err)
	}
	return &address, nil
}

func (s *RedisStore) Set(ctx context.Context, address *models.PostalAddress, ttl time.Duration) error {
	payload, err := json.Marshal(address)
	if err != nil {
		return fmt.Errorf("encode postal cache entry: %w", err)
	}
	if err := s.client.Set(ctx, postalKeyPrefix+address.PostalCode, payload, ttl).Err(); err != nil {
		return fmt.Errorf("write postal cache: %w", err)
	}
	return nil
}
