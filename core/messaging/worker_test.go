package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWorker_Handle(t *testing.T) {
	var seen []string
	handler := func(ctx context.Context, data []byte) (any, error) {
		seen = append(seen, string(data))
		if string(data) == "bad" {
			return nil, errors.New("validation failed")
		}
		return map[string]int{"records_added": 1}, nil
	}

	w := NewWorker(nil, Config{Subject: "adherence.loads"}, handler, zap.NewNop())

	ok := w.Handle(context.Background(), &nats.Msg{Subject: "adherence.loads", Data: []byte("good")})
	assert.True(t, ok.OK)
	assert.Equal(t, map[string]int{"records_added": 1}, ok.Result)
	assert.Empty(t, ok.Error)

	failed := w.Handle(context.Background(), &nats.Msg{Subject: "adherence.loads", Data: []byte("bad")})
	assert.False(t, failed.OK)
	assert.Equal(t, "validation failed", failed.Error)

	assert.Equal(t, []string{"good", "bad"}, seen)
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(Config{URL: "nats://127.0.0.1:1", Name: "test"})
	assert.Error(t, err)
}
