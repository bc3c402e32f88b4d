// internal/draft/redis.go

package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"loan-wizard/internal/common/database"
	"loan-wizard/internal/common/errors"
	"loan-wizard/internal/common/logger"
	"loan-wizard/internal/common/metrics"
	"loan-wizard/internal/common/validation"
	"loan-wizard/internal/models"
)

const redisKeyPrefix = "wizard:draft:"

// RedisStore persists the draft in Redis, one key per wizard session.
type RedisStore struct {
	client    *database.RedisClient
	sessionID string
	log       logger.Logger
	mu        sync.Mutex
}

func NewRedisStore(client *database.RedisClient, sessionID string, log logger.Logger) *RedisStore {
	return &RedisStore{
		client:    client,
		sessionID: sessionID,
		log:       log,
	}
}

func (s *RedisStore) key() string {
	return fmt.Sprintf("%s%s", redisKeyPrefix, s.sessionID)
}

func (s *RedisStore) Load(ctx context.Context) (models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *RedisStore) Merge(ctx context.Context, partial models.Draft, drops ...models.Field) (models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return models.Draft{}, err
	}

	merged := current.Merge(partial, drops...)

	raw, err := json.Marshal(merged)
	if err != nil {
		return models.Draft{}, errors.NewStorageFailedError("failed to encode draft", err)
	}
	if err := s.client.Set(ctx, s.key(), raw, 0); err != nil {
		return models.Draft{}, errors.NewStorageFailedError("failed to persist draft", err)
	}

	metrics.DraftsPersisted.Inc()
	return merged, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.Del(ctx, s.key()); err != nil {
		return errors.NewStorageFailedError("failed to clear draft", err)
	}
	return nil
}

func (s *RedisStore) load(ctx context.Context) (models.Draft, error) {
	val, err := s.client.Get(ctx, s.key())
	if err == goredis.Nil {
		return models.Draft{}, nil
	}
	if err != nil {
		return models.Draft{}, errors.NewStorageFailedError("failed to read draft", err)
	}

	raw := []byte(val)
	if err := validation.CheckDraftShape(raw); err != nil {
		s.log.Warn("Discarding corrupt draft", map[string]interface{}{
			"key":   s.key(),
			"error": err.Error(),
		})
		return models.Draft{}, nil
	}

	var d models.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		s.log.Warn("Discarding undecodable draft", map[string]interface{}{
			"key":   s.key(),
			"error": err.Error(),
		})
		return models.Draft{}, nil
	}
	return d, nil
}
