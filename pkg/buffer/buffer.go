// Package buffer provides a generic bounded circular buffer with configurable
// overflow policies, used for the backhaul scan-measurement history.
package buffer

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/abelviageiro/prplMesh/metric"
)

// OverflowPolicy controls behaviour when writing to a full buffer.
type OverflowPolicy int

const (
	// DropOldest evicts the oldest item to make room for the new one.
	DropOldest OverflowPolicy = iota
	// DropNewest discards the incoming item.
	DropNewest
)

// Buffer is a bounded FIFO container.
type Buffer[T any] interface {
	Write(item T) error
	Read() (T, bool)
	ReadBatch(max int) []T
	Peek() (T, bool)
	Size() int
	Capacity() int
	IsFull() bool
	IsEmpty() bool
	Clear()
	Stats() Statistics
	Close() error
}

// Option configures a buffer.
type Option[T any] func(*options[T])

type options[T any] struct {
	overflowPolicy OverflowPolicy
	dropCallback   func(T)
	metricsReg     *metric.Registry
	metricsPrefix  string
}

// WithOverflowPolicy sets the policy applied when the buffer is full.
func WithOverflowPolicy[T any](p OverflowPolicy) Option[T] {
	return func(o *options[T]) { o.overflowPolicy = p }
}

// WithDropCallback invokes fn for every item evicted or discarded on overflow.
func WithDropCallback[T any](fn func(T)) Option[T] {
	return func(o *options[T]) { o.dropCallback = fn }
}

// WithMetrics exposes buffer statistics as Prometheus metrics under prefix.
func WithMetrics[T any](reg *metric.Registry, prefix string) Option[T] {
	return func(o *options[T]) {
		o.metricsReg = reg
		o.metricsPrefix = prefix
	}
}

// Statistics is a snapshot of buffer activity counters.
type Statistics struct {
	Writes    int64
	Reads     int64
	Drops     int64
	Overflows int64
	Size      int64
}

type bufferMetrics struct {
	size  prometheus.Gauge
	drops prometheus.Counter
}

func newBufferMetrics(reg *metric.Registry, prefix string) (*bufferMetrics, error) {
	m := &bufferMetrics{
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meshagent",
			Subsystem: "buffer",
			Name:      prefix + "_size",
			Help:      "Current number of buffered items",
		}),
		drops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meshagent",
			Subsystem: "buffer",
			Name:      prefix + "_drops_total",
			Help:      "Items dropped due to buffer overflow",
		}),
	}
	if err := reg.RegisterGauge(prefix, "size", m.size); err != nil {
		return nil, err
	}
	if err := reg.RegisterCounter(prefix, "drops", m.drops); err != nil {
		return nil, err
	}
	return m, nil
}
