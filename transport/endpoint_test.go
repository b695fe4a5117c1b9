package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelviageiro/prplMesh/message"
)

func newPipeEndpoint(t *testing.T, origin message.Origin) (*Endpoint, net.Conn, chan Event) {
	t.Helper()
	local, remote := net.Pipe()
	events := make(chan Event, 16)
	ep := NewEndpoint(Deps{Origin: origin, Conn: local, Events: events})
	t.Cleanup(func() {
		_ = ep.Close()
		_ = remote.Close()
	})
	return ep, remote, events
}

func TestEndpointDeliversFramesInOrder(t *testing.T) {
	_, remote, events := newPipeEndpoint(t, message.OriginPlatform)

	go func() {
		_ = message.WriteFrame(remote, message.NewVendor(message.OpPlatformGetWlanReadyStatusResponse,
			&message.ResultResponse{Result: true}))
		_ = message.WriteFrame(remote, message.NewVendor(message.OpPlatformOperationalNotification,
			&message.OperationalNotification{Operational: true}))
	}()

	ev := <-events
	require.NoError(t, ev.Err)
	assert.Equal(t, message.OpPlatformGetWlanReadyStatusResponse, ev.CMDU.Vendor.Op)
	assert.Equal(t, message.OriginPlatform, ev.Source.Origin())

	ev = <-events
	require.NoError(t, ev.Err)
	assert.Equal(t, message.OpPlatformOperationalNotification, ev.CMDU.Vendor.Op)
}

func TestEndpointSend(t *testing.T) {
	ep, remote, _ := newPipeEndpoint(t, message.OriginBackhaul)

	done := make(chan *message.CMDU, 1)
	go func() {
		c, err := message.ReadFrame(remote)
		if err != nil {
			close(done)
			return
		}
		done <- c
	}()

	require.NoError(t, ep.Send(message.NewVendor(message.OpBackhaulRegisterRequest,
		&message.BackhaulRegisterRequest{HostapIface: "wlan0"})))

	select {
	case c := <-done:
		require.NotNil(t, c)
		req, ok := c.Payload.(*message.BackhaulRegisterRequest)
		require.True(t, ok)
		assert.Equal(t, "wlan0", req.HostapIface)
	case <-time.After(time.Second):
		t.Fatal("frame not received")
	}
}

func TestEndpointEmitsDisconnect(t *testing.T) {
	_, remote, events := newPipeEndpoint(t, message.OriginAPManager)

	require.NoError(t, remote.Close())

	select {
	case ev := <-events:
		require.Error(t, ev.Err)
		assert.Nil(t, ev.CMDU)
		assert.Equal(t, message.OriginAPManager, ev.Source.Origin())
	case <-time.After(time.Second):
		t.Fatal("no disconnect event")
	}
}

func TestEndpointCloseSuppressesDisconnectEvent(t *testing.T) {
	local, remote := net.Pipe()
	events := make(chan Event, 1)
	ep := NewEndpoint(Deps{Origin: message.OriginMonitor, Conn: local, Events: events})

	require.NoError(t, ep.Close())
	_ = remote.Close()

	select {
	case ev := <-events:
		t.Fatalf("unexpected event after deliberate close: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}

	assert.Error(t, ep.Send(message.NewVendor(message.OpMonitorJoinedNotification, nil)))
}

func TestSetOriginForAcceptedWorker(t *testing.T) {
	ep, _, _ := newPipeEndpoint(t, 0)
	assert.Equal(t, message.Origin(0), ep.Origin())
	ep.SetOrigin(message.OriginAPManager)
	assert.Equal(t, message.OriginAPManager, ep.Origin())
}

func TestSocketPaths(t *testing.T) {
	assert.Equal(t, "/tmp/beerocks/BEEROCKS_SLAVE_UDS_wlan2", SlaveSocketPath("/tmp/beerocks", "wlan2"))
	assert.Equal(t, "/tmp/beerocks/BEEROCKS_BACKHAUL_MGR_UDS", BackhaulSocketPath("/tmp/beerocks"))
	assert.Equal(t, "/tmp/beerocks/BEEROCKS_PLAT_MGR_UDS", PlatformSocketPath("/tmp/beerocks"))
}
