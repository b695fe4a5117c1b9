// Package metric manages the agent's Prometheus metrics registry.
package metric

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/abelviageiro/prplMesh/errors"
)

// Registrar defines the interface for registering service-specific metrics
type Registrar interface {
	RegisterCounter(serviceName, metricName string, counter prometheus.Counter) error
	RegisterGauge(serviceName, metricName string, gauge prometheus.Gauge) error
	RegisterHistogram(serviceName, metricName string, histogram prometheus.Histogram) error
	RegisterCounterVec(serviceName, metricName string, counterVec *prometheus.CounterVec) error
	RegisterGaugeVec(serviceName, metricName string, gaugeVec *prometheus.GaugeVec) error
	Unregister(serviceName, metricName string) bool
}

// Registry manages the registration and lifecycle of metrics
type Registry struct {
	prometheusRegistry *prometheus.Registry
	Core               *CoreMetrics
	registeredMetrics  map[string]prometheus.Collector
	mu                 sync.RWMutex
}

// CoreMetrics holds the platform-wide agent metrics every deployment exports.
type CoreMetrics struct {
	FramesReceived  *prometheus.CounterVec
	FramesSent      *prometheus.CounterVec
	FramesDropped   *prometheus.CounterVec
	SupervisorState prometheus.Gauge
	ResetsTotal     prometheus.Counter
	KeepAliveRetry  prometheus.Gauge
	PendingActions  prometheus.Gauge
}

func newCoreMetrics() *CoreMetrics {
	return &CoreMetrics{
		FramesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meshagent",
			Name:      "frames_received_total",
			Help:      "CMDU frames received per peer endpoint",
		}, []string{"peer"}),
		FramesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meshagent",
			Name:      "frames_sent_total",
			Help:      "CMDU frames sent per peer endpoint",
		}, []string{"peer"}),
		FramesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meshagent",
			Name:      "frames_dropped_total",
			Help:      "Frames dropped as malformed or misaddressed",
		}, []string{"peer"}),
		SupervisorState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meshagent",
			Name:      "supervisor_state",
			Help:      "Numeric supervisor FSM state",
		}),
		ResetsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meshagent",
			Name:      "supervisor_resets_total",
			Help:      "Supervisor resets since process start",
		}),
		KeepAliveRetry: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meshagent",
			Name:      "keep_alive_retries",
			Help:      "Current controller keep-alive retry counter",
		}),
		PendingActions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meshagent",
			Name:      "pending_iface_actions",
			Help:      "Outstanding interface actions awaiting the platform adapter",
		}),
	}
}

// NewRegistry creates a new metrics registry with core platform metrics
func NewRegistry() *Registry {
	prometheusRegistry := prometheus.NewRegistry()

	registry := &Registry{
		prometheusRegistry: prometheusRegistry,
		registeredMetrics:  make(map[string]prometheus.Collector),
	}

	registry.Core = newCoreMetrics()
	prometheusRegistry.MustRegister(
		registry.Core.FramesReceived,
		registry.Core.FramesSent,
		registry.Core.FramesDropped,
		registry.Core.SupervisorState,
		registry.Core.ResetsTotal,
		registry.Core.KeepAliveRetry,
		registry.Core.PendingActions,
	)

	// Add Go runtime metrics
	prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

// PrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

func (r *Registry) register(serviceName, metricName, kind string, c prometheus.Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s.%s", serviceName, metricName)

	if _, exists := r.registeredMetrics[key]; exists {
		return errors.WrapInvalid(
			fmt.Errorf("metric %s already registered for service %s", metricName, serviceName),
			"Registry", kind, "duplicate metric registration")
	}

	if err := r.prometheusRegistry.Register(c); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if stderrors.As(err, &alreadyRegErr) {
			return errors.WrapInvalid(err, "Registry", kind,
				fmt.Sprintf("prometheus conflict for metric %s", metricName))
		}
		return errors.WrapFatal(err, "Registry", kind, "prometheus registration")
	}

	r.registeredMetrics[key] = c
	return nil
}

// RegisterCounter registers a counter metric for a service
func (r *Registry) RegisterCounter(serviceName, metricName string, counter prometheus.Counter) error {
	return r.register(serviceName, metricName, "RegisterCounter", counter)
}

// RegisterGauge registers a gauge metric for a service
func (r *Registry) RegisterGauge(serviceName, metricName string, gauge prometheus.Gauge) error {
	return r.register(serviceName, metricName, "RegisterGauge", gauge)
}

// RegisterHistogram registers a histogram metric for a service
func (r *Registry) RegisterHistogram(serviceName, metricName string, histogram prometheus.Histogram) error {
	return r.register(serviceName, metricName, "RegisterHistogram", histogram)
}

// RegisterCounterVec registers a counter vector metric for a service
func (r *Registry) RegisterCounterVec(serviceName, metricName string, counterVec *prometheus.CounterVec) error {
	return r.register(serviceName, metricName, "RegisterCounterVec", counterVec)
}

// RegisterGaugeVec registers a gauge vector metric for a service
func (r *Registry) RegisterGaugeVec(serviceName, metricName string, gaugeVec *prometheus.GaugeVec) error {
	return r.register(serviceName, metricName, "RegisterGaugeVec", gaugeVec)
}

// Unregister removes a metric from the registry
func (r *Registry) Unregister(serviceName, metricName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s.%s", serviceName, metricName)

	collector, exists := r.registeredMetrics[key]
	if !exists {
		return false
	}

	success := r.prometheusRegistry.Unregister(collector)
	if success {
		delete(r.registeredMetrics, key)
	}

	return success
}
