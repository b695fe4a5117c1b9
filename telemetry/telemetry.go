// Package telemetry mirrors agent lifecycle events onto NATS subjects so a
// fleet-level collector can watch every radio without touching the 1905.1
// control plane.
package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/abelviageiro/prplMesh/errors"
	"github.com/abelviageiro/prplMesh/pkg/retry"
)

// Publisher sends agent events to NATS. It satisfies the supervisor's
// EventSink; publishing is fire-and-forget and never blocks supervision.
type Publisher struct {
	conn          *nats.Conn
	subjectPrefix string
	iface         string
	logger        *slog.Logger
	queue         chan envelope
	done          chan struct{}
}

type envelope struct {
	Event     string         `json:"event"`
	Iface     string         `json:"iface"`
	Timestamp time.Time      `json:"timestamp"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Deps carries the publisher dependencies.
type Deps struct {
	URL           string
	SubjectPrefix string
	Iface         string
	Logger        *slog.Logger
}

// queueDepth bounds in-flight events; on overflow the newest event is
// dropped, which is acceptable for telemetry.
const queueDepth = 128

// NewPublisher connects to NATS and starts the publish loop.
func NewPublisher(ctx context.Context, deps Deps) (*Publisher, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "telemetry")

	var conn *nats.Conn
	connect := func() error {
		var err error
		conn, err = nats.Connect(deps.URL,
			nats.MaxReconnects(-1),
			nats.ReconnectWait(2*time.Second),
			nats.Name("meshagent-"+deps.Iface),
		)
		return err
	}
	if err := retry.Do(ctx, retry.DefaultConfig(), connect); err != nil {
		return nil, errors.WrapTransient(err, "telemetry", "NewPublisher", "nats connect")
	}

	p := &Publisher{
		conn:          conn,
		subjectPrefix: deps.SubjectPrefix,
		iface:         deps.Iface,
		logger:        logger,
		queue:         make(chan envelope, queueDepth),
		done:          make(chan struct{}),
	}
	go p.publishLoop()
	return p, nil
}

// Publish enqueues one event. A full queue drops the event with a debug log.
func (p *Publisher) Publish(event string, fields map[string]any) {
	env := envelope{
		Event:     event,
		Iface:     p.iface,
		Timestamp: time.Now().UTC(),
		Fields:    fields,
	}
	select {
	case p.queue <- env:
	default:
		p.logger.Debug("telemetry queue full, dropping event", "event", event)
	}
}

func (p *Publisher) publishLoop() {
	defer close(p.done)
	for env := range p.queue {
		raw, err := json.Marshal(env)
		if err != nil {
			p.logger.Error("event marshal failed", "event", env.Event, "error", err)
			continue
		}
		subject := p.subjectPrefix + ".agent." + p.iface + "." + env.Event
		if err := p.conn.Publish(subject, raw); err != nil {
			p.logger.Debug("event publish failed", "subject", subject, "error", err)
		}
	}
}

// Close drains the queue and closes the connection.
func (p *Publisher) Close() {
	close(p.queue)
	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
