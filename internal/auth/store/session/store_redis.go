package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"givebridge/internal/auth/models"
	id "givebridge/pkg/domain"
	"givebridge/pkg/platform/sentinel"
)

const (
	sessionKeyPrefix        = "session:"
	accountSessionKeyPrefix = "account_sessions:"
)

// RedisStore persists sessions as JSON values that expire with the session.
// A per-account set tracks session ids so an account's sessions can be dropped
// together.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(sessionID id.SessionID) string {
	return sessionKeyPrefix + sessionID.String()
}

func accountKey(accountID id.AccountID) string {
	return accountSessionKeyPrefix + accountID.String()
}

func (s *RedisStore) Save(ctx context.Context, session *models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(session.ID), payload, ttl)
	pipe.SAdd(ctx, accountKey(session.Account.ID), session.ID.String())
	pipe.ExpireGT(ctx, accountKey(session.Account.ID), ttl)
	pipe.ExpireNX(ctx, accountKey(session.Account.ID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID id.SessionID) error {
	session, err := s.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(sessionID))
	pipe.SRem(ctx, accountKey(session.Account.ID), sessionID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteByAccount(ctx context.Context, accountID id.AccountID) error {
	members, err := s.client.SMembers(ctx, accountKey(accountID)).Result()
	if err != nil {
		return fmt.Errorf("list account sessions: %w", err)
	}
	if len(members) == 0 {
		return sentinel.ErrNotFound
	}
	keys := make([]string, 0, len(members)+1)
	for _, m := range members {
		keys = append(keys, sessionKeyPrefix+m)
	}
	keys = append(keys, accountKey(accountID))
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete account sessions: %w", err)
	}
	return nil
}
