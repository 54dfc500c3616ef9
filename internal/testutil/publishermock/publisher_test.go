package publishermock

import (
	"context"
	"errors"
	"testing"

	"agrocredito/internal/domain/event"
)

func TestPublisher_Records(t *testing.T) {
	m := &Publisher{}
	if _, err := m.Publish(context.Background(), event.Event{Type: event.TypeApplicationApproved}); err != nil {
		t.Fatalf("default Publish: %v", err)
	}
	wantErr := errors.New("down")
	m.PublishFn = func(context.Context, event.Event) (string, error) { return "", wantErr }
	if _, err := m.Publish(context.Background(), event.Event{Type: event.TypeApplicationRejected}); !errors.Is(err, wantErr) {
		t.Fatalf("want %v, got %v", wantErr, err)
	}
	got := m.Events()
	if len(got) != 2 || got[1].Type != event.TypeApplicationRejected {
		t.Fatalf("events = %+v", got)
	}
}
