package redisstream

import (
	"context"
	"encoding/json"
	"fmt"

	"agrocredito/internal/domain/event"

	"github.com/redis/go-redis/v9"
)

// maxLen bounds the stream; older entries are trimmed approximately.
const maxLen = 100_000

// Publisher appends domain events to a redis stream consumed by the notification service.
type Publisher struct {
	rdb    *redis.Client
	stream string
}

func NewPublisher(rdb *redis.Client, stream string) *Publisher {
	return &Publisher{rdb: rdb, stream: stream}
}

// Publish returns the stream entry id.
func (p *Publisher) Publish(ctx context.Context, e event.Event) (string, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encode %s event: %w", e.Type, err)
	}
	id, err := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: maxLen,
		Approx: true,
		Values: map[string]any{
			"type":           string(e.Type),
			"application_id": e.ApplicationID,
			"payload":        payload,
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return id, nil
}
