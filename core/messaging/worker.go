package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// HandlerFunc processes one message payload and returns the value sent back as reply.
type HandlerFunc func(ctx context.Context, data []byte) (any, error)

// Reply is the envelope sent back to a requester.
type Reply struct {
	OK     bool   `json:"ok"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Connect opens a connection to the NATS server.
func Connect(cfg Config) (*nats.Conn, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return nc, nil
}

// Worker consumes a subject with a synchronous subscription, so that messages are
// handled strictly one after another.
type Worker struct {
	conn    *nats.Conn
	cfg     Config
	handler HandlerFunc
	logger  *zap.Logger
}

// NewWorker creates a worker bound to an open connection.
func NewWorker(conn *nats.Conn, cfg Config, handler HandlerFunc, logger *zap.Logger) *Worker {
	return &Worker{conn: conn, cfg: cfg, handler: handler, logger: logger}
}

// Run blocks, handling messages until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	sub, err := w.conn.QueueSubscribeSync(w.cfg.Subject, w.cfg.Queue)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", w.cfg.Subject, err)
	}
	defer sub.Unsubscribe()

	w.logger.Info("Listening for loads", zap.String("subject", w.cfg.Subject), zap.String("queue", w.cfg.Queue))

	for {
		msg, err := sub.NextMsgWithContext(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("failed to receive message: %w", err)
		}

		reply := w.Handle(ctx, msg)
		if msg.Reply == "" {
			continue
		}
		data, err := json.Marshal(reply)
		if err != nil {
			w.logger.Error("Failed to encode reply", zap.Error(err))
			continue
		}
		if err := msg.Respond(data); err != nil {
			w.logger.Warn("Failed to send reply", zap.Error(err))
		}
	}
}

// Handle runs the handler for one message and builds its reply.
func (w *Worker) Handle(ctx context.Context, msg *nats.Msg) Reply {
	result, err := w.handler(ctx, msg.Data)
	if err != nil {
		w.logger.Error("Message handling failed", zap.String("subject", msg.Subject), zap.Error(err))
		return Reply{OK: false, Error: err.Error()}
	}
	return Reply{OK: true, Result: result}
}
