package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Channel carries every recommendation lifecycle event.
const Channel = "recommendations"

// RedisPublisher implements Publisher over redis pub/sub.
type RedisPublisher struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{
		client: client,
		ctx:    ctx,
	}, nil
}

func (p *RedisPublisher) Publish(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(p.ctx, Channel, data).Err()
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// Client exposes the underlying connection for shared use (rate limiter).
func (p *RedisPublisher) Client() *redis.Client {
	return p.client
}
