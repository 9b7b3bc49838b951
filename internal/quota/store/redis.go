package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tanomu-app/tanomu/internal/quota/domain"
	redis "github.com/redis/go-redis/v9"
)

const redisKeyFormat = "quota:state:%s"

// RedisStore keeps the gate record as a JSON value. Suitable when the
// relational store and the gate should not share a database.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, name string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    fmt.Sprintf(redisKeyFormat, name),
	}
}

func (s *RedisStore) Load(ctx context.Context) (*domain.QuotaRecord, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record domain.QuotaRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode quota record: %w", err)
	}
	return &record, nil
}

func (s *RedisStore) Save(ctx context.Context, record domain.QuotaRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	// No TTL: the record must survive until the next day's rollover
	// overwrites it.
	return s.client.Set(ctx, s.key, raw, 0).Err()
}
