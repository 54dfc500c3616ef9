package redisstream

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"agrocredito/internal/domain/event"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestPublisher_Publish(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	p := NewPublisher(rdb, "agro:events")
	ctx := context.Background()
	in := event.Event{
		Type:           event.TypeApplicationApproved,
		ApplicationID:  "APP-1",
		Reference:      "AC-20261019-ABC123",
		OwnerID:        "farmer-1",
		ReviewerID:     "officer-1",
		AccountID:      "ACC-1",
		MonthlyPayment: "44424",
		OccurredAt:     time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC),
	}

	id, err := p.Publish(ctx, in)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if id == "" {
		t.Fatal("empty stream id")
	}

	msgs, err := rdb.XRange(ctx, "agro:events", "-", "+").Result()
	if err != nil {
		t.Fatalf("XRange: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != id {
		t.Fatalf("unexpected stream content: %+v", msgs)
	}
	if msgs[0].Values["type"] != string(event.TypeApplicationApproved) {
		t.Fatalf("type field = %v", msgs[0].Values["type"])
	}
	var out event.Event
	if err := json.Unmarshal([]byte(msgs[0].Values["payload"].(string)), &out); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if out.AccountID != "ACC-1" || !out.OccurredAt.Equal(in.OccurredAt) {
		t.Fatalf("payload mismatch: %+v", out)
	}
}

func TestPublisher_RedisDown(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	s.Close()

	_, err := NewPublisher(rdb, "agro:events").Publish(context.Background(), event.Event{Type: event.TypeApplicationRejected})
	if err == nil {
		t.Fatal("expected error when redis is unavailable")
	}
}
