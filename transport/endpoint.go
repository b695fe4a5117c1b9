// Package transport provides framed CMDU endpoints over local unix sockets.
// Each peer of the supervisor owns one endpoint; decoded frames from all
// endpoints are multiplexed onto a single event channel consumed by the
// supervisor loop, preserving per-endpoint arrival order.
package transport

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/abelviageiro/prplMesh/errors"
	"github.com/abelviageiro/prplMesh/message"
	"github.com/abelviageiro/prplMesh/metric"
)

// Event is one item on the supervisor's input queue: a decoded CMDU or a
// disconnect notice from the endpoint that produced it.
type Event struct {
	Source *Endpoint
	CMDU   *message.CMDU
	Err    error // non-nil exactly when the endpoint disconnected
}

// Endpoint is a framed connection to one peer. The origin starts as the
// dialled peer's kind, or unknown for accepted worker connections until their
// first identifying message arrives.
type Endpoint struct {
	origin  atomic.Int32
	conn    net.Conn
	events  chan<- Event
	logger  *slog.Logger
	metrics *metric.CoreMetrics

	writeMu sync.Mutex
	closed  atomic.Bool
	done    chan struct{}
}

// Deps carries the runtime dependencies of an endpoint.
type Deps struct {
	Origin  message.Origin
	Conn    net.Conn
	Events  chan<- Event
	Logger  *slog.Logger
	Metrics *metric.CoreMetrics
}

// NewEndpoint wraps a connection and starts its read loop.
func NewEndpoint(deps Deps) *Endpoint {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	e := &Endpoint{
		conn:    deps.Conn,
		events:  deps.Events,
		logger:  logger.With("component", "endpoint", "peer", deps.Origin.String()),
		metrics: deps.Metrics,
		done:    make(chan struct{}),
	}
	e.origin.Store(int32(deps.Origin))

	go e.readLoop()
	return e
}

// Origin returns the peer kind this endpoint is bound to.
func (e *Endpoint) Origin() message.Origin {
	return message.Origin(e.origin.Load())
}

// SetOrigin binds an accepted worker connection to its peer kind once the
// identifying message has arrived.
func (e *Endpoint) SetOrigin(o message.Origin) {
	e.origin.Store(int32(o))
}

// Send encodes the CMDU and writes it as one frame.
func (e *Endpoint) Send(c *message.CMDU) error {
	if e.closed.Load() {
		return errors.WrapTransient(errors.ErrEndpointLost, "endpoint", "Send", "closed endpoint write")
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if err := message.WriteFrame(e.conn, c); err != nil {
		return errors.WrapTransient(err, "endpoint", "Send", "frame write")
	}
	if e.metrics != nil {
		e.metrics.FramesSent.WithLabelValues(e.Origin().String()).Inc()
	}
	return nil
}

// Close shuts the endpoint down. The read loop exits without emitting a
// disconnect event; Close is the deliberate path.
func (e *Endpoint) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := e.conn.Close()
	<-e.done
	return err
}

// readLoop decodes frames until the connection fails, pushing each onto the
// shared event channel in arrival order.
func (e *Endpoint) readLoop() {
	defer close(e.done)

	for {
		cmdu, err := message.ReadFrame(e.conn)
		if err != nil {
			if e.closed.Load() {
				return
			}
			if err != io.EOF {
				e.logger.Debug("endpoint read failed", "error", err)
			}
			e.closed.Store(true)
			e.events <- Event{Source: e, Err: errors.WrapTransient(errors.ErrEndpointLost,
				"endpoint", "readLoop", fmt.Sprintf("%s read", e.Origin()))}
			return
		}

		if e.metrics != nil {
			e.metrics.FramesReceived.WithLabelValues(e.Origin().String()).Inc()
		}
		e.events <- Event{Source: e, CMDU: cmdu}
	}
}
