package bus

import (
	"context"
	"errors"
	"strings"

	"github.com/nats-io/nats.go"

	"zonedemo/pkg/openlineage"
)

// Bus publishes submitted lineage run events on a NATS JetStream subject.
type Bus struct {
	conn    *nats.Conn
	js      publisher
	subject string
}

type publisher interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// New connects to the given NATS servers. The subject must be bound to a stream.
func New(servers []string, subject string, opts ...nats.Option) (*Bus, error) {
	if len(servers) == 0 {
		return nil, errors.New("at least one nats server is required")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, errors.New("subject is required")
	}

	nc, err := nats.Connect(strings.Join(servers, ","), opts...)
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	return &Bus{conn: nc, js: js, subject: subject}, nil
}

// Close shuts down the underlying NATS connection.
func (b *Bus) Close() {
	if b == nil || b.conn == nil {
		return
	}
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
	}
}

// Name identifies the sink in logs.
func (b *Bus) Name() string {
	return "nats:" + b.subject
}

// Deliver publishes payload, using the run id as the JetStream dedup id.
func (b *Bus) Deliver(ctx context.Context, event openlineage.RunEvent, payload []byte) error {
	if b == nil {
		return errors.New("nil bus")
	}

	_, err := b.js.Publish(b.subject, payload, nats.MsgId(event.Run.ID), nats.Context(ctx))
	return err
}
