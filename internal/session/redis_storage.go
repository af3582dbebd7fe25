package session

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/helpdesk-labs/ticketera/internal/config"
)

const redisKeyPrefix = "ticketera:sess:"

// redisStorage adapts a shared go-redis client to fiber.Storage so sessions
// survive restarts and can be shared across instances.
type redisStorage struct {
	client *redis.Client
}

// NewStorage selects the session backing store. Redis when configured and
// available, otherwise nil, which makes fiber use its in-memory storage.
func NewStorage(cfg config.SessionConfig, client *redis.Client) fiber.Storage {
	if cfg.Store == "redis" && client != nil {
		return &redisStorage{client: client}
	}
	return nil
}

func (s *redisStorage) Get(key string) ([]byte, error) {
	val, err := s.client.Get(context.Background(), redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *redisStorage) Set(key string, val []byte, exp time.Duration) error {
	return s.client.Set(context.Background(), redisKeyPrefix+key, val, exp).Err()
}

func (s *redisStorage) Delete(key string) error {
	return s.client.Del(context.Background(), redisKeyPrefix+key).Err()
}

func (s *redisStorage) Reset() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close is a no-op; the client is owned by the persistence layer.
func (s *redisStorage) Close() error {
	return nil
}
