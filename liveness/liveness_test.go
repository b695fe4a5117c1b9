package liveness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abelviageiro/prplMesh/message"
	"github.com/abelviageiro/prplMesh/pkg/clock"
)

func TestHeartbeatHealthyWhileBeating(t *testing.T) {
	clk := clock.NewFake()
	h := NewHeartbeatTracker(clk, 10*time.Second, 3)

	for i := 0; i < 10; i++ {
		clk.Advance(5 * time.Second)
		h.Beat()
		assert.True(t, h.Check())
		assert.Equal(t, 0, h.Retries())
	}
}

func TestHeartbeatFailsAfterRetries(t *testing.T) {
	clk := clock.NewFake()
	h := NewHeartbeatTracker(clk, 10*time.Second, 3)

	for i := 0; i < 2; i++ {
		clk.Advance(11 * time.Second)
		assert.True(t, h.Check())
	}
	assert.Equal(t, 2, h.Retries())

	clk.Advance(11 * time.Second)
	assert.False(t, h.Check())
	// Counter is cleared so the post-reset tracker starts fresh.
	assert.Equal(t, 0, h.Retries())
}

func TestKeepAliveDisabledWithZeroRetries(t *testing.T) {
	clk := clock.NewFake()
	k := NewKeepAlive(clk, 10*time.Second)

	clk.Advance(time.Hour)
	assert.Equal(t, KeepAliveIdle, k.Process(0))
	assert.Equal(t, 0, k.Retries())
}

func TestKeepAlivePingSeriesThenTimeout(t *testing.T) {
	clk := clock.NewFake()
	k := NewKeepAlive(clk, 10*time.Second)

	clk.Advance(5 * time.Second)
	assert.Equal(t, KeepAliveIdle, k.Process(2))

	clk.Advance(6 * time.Second)
	assert.Equal(t, KeepAliveSendPing, k.Process(2))
	assert.Equal(t, 1, k.Retries())

	clk.Advance(11 * time.Second)
	assert.Equal(t, KeepAliveSendPing, k.Process(2))

	clk.Advance(11 * time.Second)
	assert.Equal(t, KeepAliveTimeout, k.Process(2))
}

func TestKeepAliveTouchResetsRetries(t *testing.T) {
	clk := clock.NewFake()
	k := NewKeepAlive(clk, 10*time.Second)

	clk.Advance(11 * time.Second)
	assert.Equal(t, KeepAliveSendPing, k.Process(3))

	k.Touch()
	assert.Equal(t, 0, k.Retries())
	assert.Equal(t, KeepAliveIdle, k.Process(3))
}

func TestPendingActionsAddResolve(t *testing.T) {
	clk := clock.NewFake()
	p := NewPendingActions(clk, 15*time.Second)

	added, conflict := p.Add("wlan0", message.IfaceOperEnable)
	assert.True(t, added)
	assert.False(t, conflict)
	assert.Equal(t, 1, p.Len())

	// Same op again: idempotent.
	added, conflict = p.Add("wlan0", message.IfaceOperEnable)
	assert.False(t, added)
	assert.False(t, conflict)

	// Different op for same iface: conflict.
	added, conflict = p.Add("wlan0", message.IfaceOperDisable)
	assert.False(t, added)
	assert.True(t, conflict)

	p.Resolve("wlan0")
	assert.Equal(t, 0, p.Len())
}

func TestPendingActionsExpiry(t *testing.T) {
	clk := clock.NewFake()
	p := NewPendingActions(clk, 15*time.Second)

	p.Add("wlan0", message.IfaceOperRestore)
	_, expired := p.Expired()
	assert.False(t, expired)

	clk.Advance(16 * time.Second)
	a, expired := p.Expired()
	assert.True(t, expired)
	assert.Equal(t, "wlan0", a.Iface)
	assert.Equal(t, message.IfaceOperRestore, a.Operation)

	p.Clear()
	assert.Equal(t, 0, p.Len())
}
