package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisPersister stores the snapshot as a single string value.
type RedisPersister struct {
	logger *zap.Logger
	client *redis.Client
	key    string
}

// NewRedisPersister expects a connected *redis.Client.
func NewRedisPersister(logger *zap.Logger, client *redis.Client, key string) *RedisPersister {
	return &RedisPersister{logger: logger, client: client, key: key}
}

// Load translates redis.Nil to an empty result.
func (p *RedisPersister) Load(ctx context.Context) ([]byte, error) {
	val, err := p.client.Get(ctx, p.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot from redis: %w", err)
	}
	return val, nil
}

func (p *RedisPersister) Save(ctx context.Context, blob []byte) error {
	if err := p.client.Set(ctx, p.key, blob, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot to redis: %w", err)
	}
	p.logger.Debug("Snapshot written", zap.String("key", p.key), zap.Int("bytes", len(blob)))
	return nil
}

func (p *RedisPersister) Close() error {
	return p.client.Close()
}
