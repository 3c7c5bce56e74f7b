package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"taskchat/domain/ports"
	"taskchat/pkg/logger"
)

const (
	// StreamName holds audit events for downstream consumers.
	StreamName = "AUDIT"

	streamMaxAge = 7 * 24 * time.Hour
)

// Client wraps the NATS connection with a JetStream context and implements
// the event publisher port.
type Client struct {
	conn *nats.Conn
	js   jetstream.JetStream
}

func NewClient(url string) (*Client, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	client := &Client{conn: nc, js: js}

	if err := client.setupStream(context.Background()); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to setup stream: %w", err)
	}

	logger.Info("NATS client initialized", "url", url, "stream", StreamName)
	return client, nil
}

func (c *Client) setupStream(ctx context.Context) error {
	_, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{"audit.>"},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      streamMaxAge,
		Replicas:    1,
		Description: "Audit event log",
	})
	return err
}

// Publish sends one audit event. The ack is logged, not returned; the
// database row remains the source of truth.
func (c *Client) Publish(ctx context.Context, subject string, payload []byte) error {
	ack, err := c.js.Publish(ctx, subject, payload)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	logger.Debug("Audit event published", "subject", subject, "stream", ack.Stream, "sequence", ack.Sequence)
	return nil
}

// Ping reports connection health, used by the readiness probe.
func (c *Client) Ping(_ context.Context) error {
	if !c.conn.IsConnected() {
		return errors.New("nats connection is down")
	}
	return nil
}

func (c *Client) Close() error {
	c.conn.Close()
	return nil
}

var _ ports.EventPublisher = (*Client)(nil)
