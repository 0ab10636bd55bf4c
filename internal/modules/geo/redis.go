// README: Redis-backed driver location store.
package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	locationKeyPrefix = "geo:driver:%s"
	// Locations go stale quickly; a short TTL keeps the keyspace bounded.
	locationTTL = 24 * time.Hour
)

type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{redis: client}
}

func (s *RedisStore) SetDriverLocation(ctx context.Context, driverName, location string) error {
	return s.redis.Set(ctx, locationKey(driverName), location, locationTTL).Err()
}

func (s *RedisStore) DriverLocation(ctx context.Context, driverName string) (string, error) {
	val, err := s.redis.Get(ctx, locationKey(driverName)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrUnknownDriver
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func locationKey(driverName string) string {
	return fmt.Sprintf(locationKeyPrefix, driverName)
}
