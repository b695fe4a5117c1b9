// Package http serves the agent's local status surface: health, Prometheus
// metrics, and a websocket event feed for live diagnostics.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abelviageiro/prplMesh/errors"
	"github.com/abelviageiro/prplMesh/health"
	"github.com/abelviageiro/prplMesh/metric"
)

// Server is the local status HTTP server.
type Server struct {
	addr      string
	logger    *slog.Logger
	healthMon *health.Monitor
	metrics   *metric.Registry

	srv      *http.Server
	upgrader websocket.Upgrader

	mu          sync.Mutex
	subscribers map[chan []byte]struct{}
}

// Deps carries the server dependencies.
type Deps struct {
	Addr    string
	Logger  *slog.Logger
	Health  *health.Monitor
	Metrics *metric.Registry
}

// NewServer creates the status server.
func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		addr:      deps.Addr,
		logger:    logger.With("component", "gateway"),
		healthMon: deps.Health,
		metrics:   deps.Metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The server binds to loopback; cross-origin requests are not a
			// concern on the local diagnostics surface.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subscribers: make(map[chan []byte]struct{}),
	}
}

// Start binds the listener and serves until Stop.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/ws/events", s.handleEvents)
	if s.metrics != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.PrometheusRegistry(),
			promhttp.HandlerOpts{}))
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.WrapFatal(err, "gateway", "Start", "listener bind")
	}

	s.srv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if serveErr := s.srv.Serve(ln); serveErr != nil && serveErr != http.ErrServerClosed {
			s.logger.Error("status server failed", "error", serveErr)
		}
	}()
	s.logger.Info("status server listening", "addr", ln.Addr().String())
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(timeout time.Duration) error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// Publish pushes an agent event to all connected websocket clients. It also
// satisfies the supervisor's EventSink.
func (s *Server) Publish(event string, fields map[string]any) {
	payload, err := json.Marshal(map[string]any{
		"event":     event,
		"timestamp": time.Now().UTC(),
		"fields":    fields,
	})
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- payload:
		default:
			// Slow consumer; skip this event for it.
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := health.NewHealthy("agent", "no components monitored")
	if s.healthMon != nil {
		status = s.healthMon.AggregateHealth("agent")
	}

	w.Header().Set("Content-Type", "application/json")
	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(status)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	ch := make(chan []byte, 32)
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.subscribers, ch)
		s.mu.Unlock()
		_ = conn.Close()
	}()

	// Reader goroutine detects client departure.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	for {
		select {
		case payload := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if writeErr := conn.WriteMessage(websocket.TextMessage, payload); writeErr != nil {
				return
			}
		case <-done:
			return
		}
	}
}
