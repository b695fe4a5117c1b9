// Package liveness owns the supervisor's three timer disciplines: worker
// heartbeats, the controller keep-alive, and pending-interface-action
// deadlines. All of them read time through the injected clock.
package liveness

import (
	"time"

	"github.com/abelviageiro/prplMesh/message"
	"github.com/abelviageiro/prplMesh/pkg/clock"
)

// Default thresholds.
const (
	HeartbeatTimeout  = 10 * time.Second
	HeartbeatRetries  = 5
	KeepAliveInterval = 10 * time.Second
	IfaceActionTimeout = 15 * time.Second
)

// HeartbeatTracker watches one worker's heartbeat notifications.
type HeartbeatTracker struct {
	clk        clock.Clock
	timeout    time.Duration
	maxRetries int
	lastSeen   time.Time
	retries    int
}

// NewHeartbeatTracker creates a tracker armed at the current instant.
func NewHeartbeatTracker(clk clock.Clock, timeout time.Duration, maxRetries int) *HeartbeatTracker {
	return &HeartbeatTracker{
		clk:        clk,
		timeout:    timeout,
		maxRetries: maxRetries,
		lastSeen:   clk.Now(),
	}
}

// Beat records a heartbeat from the worker.
func (h *HeartbeatTracker) Beat() {
	h.lastSeen = h.clk.Now()
	h.retries = 0
}

// Rearm resets the tracker, used when the worker (re)connects.
func (h *HeartbeatTracker) Rearm() {
	h.lastSeen = h.clk.Now()
	h.retries = 0
}

// Check advances the liveness state. It returns false when the retry counter
// reaches the retry bound; the retry counter is cleared so the caller's reset starts fresh.
func (h *HeartbeatTracker) Check() bool {
	if h.clk.Now().Sub(h.lastSeen) > h.timeout {
		h.retries++
		h.lastSeen = h.clk.Now()
	}
	if h.retries >= h.maxRetries {
		h.retries = 0
		return false
	}
	return true
}

// Retries exposes the current retry counter.
func (h *HeartbeatTracker) Retries() int { return h.retries }

// KeepAliveAction is the verdict of one keep-alive evaluation.
type KeepAliveAction int

const (
	// KeepAliveIdle means the controller was heard recently enough.
	KeepAliveIdle KeepAliveAction = iota
	// KeepAliveSendPing means a ping should be sent now.
	KeepAliveSendPing
	// KeepAliveTimeout means the retry bound was exceeded.
	KeepAliveTimeout
)

// KeepAlive tracks controller silence.
type KeepAlive struct {
	clk      clock.Clock
	interval time.Duration
	lastSeen time.Time
	retries  int
}

// NewKeepAlive creates a keep-alive tracker armed at the current instant.
func NewKeepAlive(clk clock.Clock, interval time.Duration) *KeepAlive {
	return &KeepAlive{clk: clk, interval: interval, lastSeen: clk.Now()}
}

// Touch records controller activity and clears the retry counter.
func (k *KeepAlive) Touch() {
	k.lastSeen = k.clk.Now()
	k.retries = 0
}

// Process evaluates the keep-alive once. maxRetries <= 0 disables keep-alive
// entirely. A SendPing verdict counts as a retry and rearms the interval.
func (k *KeepAlive) Process(maxRetries int) KeepAliveAction {
	if maxRetries <= 0 {
		return KeepAliveIdle
	}
	if k.clk.Now().Sub(k.lastSeen) < k.interval {
		return KeepAliveIdle
	}
	if k.retries >= maxRetries {
		return KeepAliveTimeout
	}
	k.retries++
	k.lastSeen = k.clk.Now()
	return KeepAliveSendPing
}

// Retries exposes the current retry counter.
func (k *KeepAlive) Retries() int { return k.retries }

// PendingAction is one outstanding interface transition.
type PendingAction struct {
	Iface     string
	Operation message.IfaceOperation
	IssuedAt  time.Time
}

// PendingActions holds at most one outstanding operation per interface. While
// any action is pending the FSM is paused.
type PendingActions struct {
	clk     clock.Clock
	timeout time.Duration
	actions map[string]PendingAction
}

// NewPendingActions creates the pending-action set.
func NewPendingActions(clk clock.Clock, timeout time.Duration) *PendingActions {
	return &PendingActions{
		clk:     clk,
		timeout: timeout,
		actions: make(map[string]PendingAction),
	}
}

// Add records a new pending operation. When the same operation is already
// pending for the interface the call is a no-op; a different pending
// operation for the interface is a conflict.
func (p *PendingActions) Add(iface string, op message.IfaceOperation) (added, conflict bool) {
	if existing, ok := p.actions[iface]; ok {
		if existing.Operation == op {
			return false, false
		}
		return false, true
	}
	p.actions[iface] = PendingAction{Iface: iface, Operation: op, IssuedAt: p.clk.Now()}
	return true, false
}

// Resolve removes the pending action for the interface.
func (p *PendingActions) Resolve(iface string) {
	delete(p.actions, iface)
}

// Expired returns the first action older than the timeout, if any.
func (p *PendingActions) Expired() (PendingAction, bool) {
	now := p.clk.Now()
	for _, a := range p.actions {
		if now.Sub(a.IssuedAt) > p.timeout {
			return a, true
		}
	}
	return PendingAction{}, false
}

// Len returns the number of outstanding actions.
func (p *PendingActions) Len() int { return len(p.actions) }

// Clear drops all outstanding actions.
func (p *PendingActions) Clear() {
	p.actions = make(map[string]PendingAction)
}
