package redis

import (
	"context"
	"crypto/tls"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const logKey = "canvas:log"

// RedisCanvasStore keeps the stroke log in a single Redis list. RPUSH
// preserves arrival order and LRANGE returns it oldest first, which is
// exactly the replay contract. A missing key is an empty log.
type RedisCanvasStore struct {
	client redis.UniversalClient
}

func NewRedisCanvasStore(ctx context.Context, devMode bool, redisEndpoint string) (*RedisCanvasStore, error) {
	var client redis.UniversalClient
	if devMode {
		client = redis.NewClient(&redis.Options{
			Addr: redisEndpoint,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: redisEndpoint,
			// AWS elasticache endpoints require TLS
			TLSConfig: &tls.Config{},
		})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCanvasStore{client: client}, nil
}

func (redisStore *RedisCanvasStore) Load(ctx context.Context) ([]json.RawMessage, error) {
	values, err := redisStore.client.LRange(ctx, logKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		entries = append(entries, json.RawMessage(v))
	}
	return entries, nil
}

func (redisStore *RedisCanvasStore) Append(ctx context.Context, entry json.RawMessage) error {
	return redisStore.client.RPush(ctx, logKey, []byte(entry)).Err()
}

func (redisStore *RedisCanvasStore) Reset(ctx context.Context) error {
	return redisStore.client.Del(ctx, logKey).Err()
}
