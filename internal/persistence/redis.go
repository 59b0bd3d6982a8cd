package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/deskops/incident-desk/internal/config"
	"github.com/deskops/incident-desk/internal/domain"
	apperrors "github.com/deskops/incident-desk/pkg/util/errorutil"
)

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// RedisStore keeps the desk as a list of JSON records under one key.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore returns a store writing to key.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// Load decodes every list element. A missing key is an empty desk.
func (s *RedisStore) Load(ctx context.Context) ([]domain.Record, error) {
	values, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", s.key, err)
	}

	records := make([]domain.Record, 0, len(values))
	for i, value := range values {
		var rec domain.Record
		if err := json.Unmarshal([]byte(value), &rec); err != nil {
			return nil, apperrors.WrapInvalidArgument(fmt.Sprintf("decode %s[%d]", s.key, i), err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save replaces the list atomically.
func (s *RedisStore) Save(ctx context.Context, records []domain.Record) error {
	values := make([]any, 0, len(records))
	for _, rec := range records {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode incident %d: %w", rec.ID, err)
		}
		values = append(values, payload)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(values) > 0 {
			pipe.RPush(ctx, s.key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}
