package supervisor

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abelviageiro/prplMesh/config"
	"github.com/abelviageiro/prplMesh/message"
	"github.com/abelviageiro/prplMesh/pkg/clock"
	"github.com/abelviageiro/prplMesh/wsc"
)

var (
	testRadioUID = message.MAC{0x02, 0x10, 0x20, 0x30, 0x40, 0x50}
	testIfaceMAC = message.MAC{0x02, 0x10, 0x20, 0x30, 0x40, 0x51}
)

// recorder collects the CMDUs a fake peer receives from the supervisor.
type recorder struct {
	mu     sync.Mutex
	frames []*message.CMDU
}

func (r *recorder) run(conn net.Conn) {
	for {
		c, err := message.ReadFrame(conn)
		if err != nil {
			return
		}
		r.mu.Lock()
		r.frames = append(r.frames, c)
		r.mu.Unlock()
	}
}

func (r *recorder) byOp(op message.ActionOp) []*message.CMDU {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*message.CMDU
	for _, c := range r.frames {
		if c.Vendor != nil && c.Vendor.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *recorder) countOp(op message.ActionOp) int {
	return len(r.byOp(op))
}

func (r *recorder) byType(t message.Type) []*message.CMDU {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*message.CMDU
	for _, c := range r.frames {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

type fakeConnector struct {
	platformLocal net.Conn
	backhaulLocal net.Conn
}

func (f *fakeConnector) DialPlatform() (net.Conn, error) { return f.platformLocal, nil }
func (f *fakeConnector) DialBackhaul() (net.Conn, error) { return f.backhaulLocal, nil }

type fakeWorkers struct {
	mu        sync.Mutex
	apStarts  int
	apStops   int
	monStarts int
	monStops  int
}

func (w *fakeWorkers) StartAPManager() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.apStarts++
	return nil
}

func (w *fakeWorkers) StopAPManager() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.apStops++
}

func (w *fakeWorkers) StartMonitor() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.monStarts++
	return nil
}

func (w *fakeWorkers) StopMonitor() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.monStops++
}

// harness wires a supervisor to fake peers over in-memory pipes.
type harness struct {
	t   *testing.T
	s   *Supervisor
	clk *clock.Fake

	workers *fakeWorkers

	platformRemote net.Conn
	backhaulRemote net.Conn
	apRemote       net.Conn
	monRemote      net.Conn

	platformRx *recorder
	backhaulRx *recorder
	apRx       *recorder
	monRx      *recorder
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.HostapIface = "wlan0"
	cfg.HostapIfaceType = "intel"
	cfg.RadioIdentifier = testRadioUID.String()
	cfg.BackhaulWirelessIface = "wlan1"
	cfg.BackhaulWirelessIfaceType = "intel"
	cfg.BackhaulWireIface = "eth1"
	cfg.BackhaulWireIfaceType = "eth"
	cfg.BridgeIface = "br-lan"
	return &cfg
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}

	platformLocal, platformRemote := net.Pipe()
	backhaulLocal, backhaulRemote := net.Pipe()

	h := &harness{
		t:              t,
		clk:            clock.NewFake(),
		workers:        &fakeWorkers{},
		platformRemote: platformRemote,
		backhaulRemote: backhaulRemote,
		platformRx:     &recorder{},
		backhaulRx:     &recorder{},
		apRx:           &recorder{},
		monRx:          &recorder{},
	}

	go h.platformRx.run(platformRemote)
	go h.backhaulRx.run(backhaulRemote)

	s, err := New(Deps{
		Config:    cfg,
		Clock:     h.clk,
		Connector: &fakeConnector{platformLocal: platformLocal, backhaulLocal: backhaulLocal},
		Workers:   h.workers,
	})
	require.NoError(t, err)
	h.s = s

	t.Cleanup(func() {
		_ = platformRemote.Close()
		_ = backhaulRemote.Close()
		if h.apRemote != nil {
			_ = h.apRemote.Close()
		}
		if h.monRemote != nil {
			_ = h.monRemote.Close()
		}
	})
	return h
}

// pump delivers queued endpoint events to the supervisor.
func (h *harness) pump() {
	h.t.Helper()
	for {
		select {
		case ev := <-h.s.Events():
			h.s.HandleEvent(ev)
		case <-time.After(100 * time.Millisecond):
			return
		}
	}
}

// sendFrom writes one CMDU from a fake peer and pumps it through.
func (h *harness) sendFrom(conn net.Conn, c *message.CMDU) {
	h.t.Helper()
	require.NoError(h.t, message.WriteFrame(conn, c))
	h.pump()
}

// sendFromController stamps the controller direction and the local radio mac
// the way the real controller link does.
func (h *harness) sendFromController(c *message.CMDU) {
	h.t.Helper()
	if c.Vendor != nil {
		c.Vendor.Direction = message.DirectionToAgent
		c.Vendor.RadioMAC = h.s.hostapParams.IfaceMAC
	}
	h.sendFrom(h.backhaulRemote, c)
}

func (h *harness) tickUntil(state State, maxTicks int) {
	h.t.Helper()
	for i := 0; i < maxTicks; i++ {
		if h.s.State() == state {
			h.pump()
			return
		}
		h.s.Tick()
		h.pump()
	}
	require.Equal(h.t, state, h.s.State(), "state not reached after %d ticks", maxTicks)
}

func defaultPlatformSettings() message.PlatformSettings {
	return message.PlatformSettings{
		FrontSSID:         "TestNet",
		FrontPass:         "pass1234",
		FrontSecurityType: "WPA2-Personal",
		BackSSID:          "TestNet-BH",
		BackPass:          "pass1234",
		BackSecurityType:  "WPA2-Personal",
	}
}

func defaultWlanSettings() message.WlanSettings {
	return message.WlanSettings{
		BandEnabled:  true,
		ACSEnabled:   true,
		SSID:         "TestNet",
		Pass:         "pass1234",
		SecurityType: "WPA2-Personal",
	}
}

// registerWithPlatform drives the supervisor through platform registration.
func (h *harness) registerWithPlatform(settings message.PlatformSettings, wlan message.WlanSettings) {
	h.t.Helper()
	h.tickUntil(StateWaitForPlatformManagerRegisterResponse, 5)
	require.Equal(h.t, 1, h.platformRx.countOp(message.OpPlatformSonSlaveRegisterRequest))

	h.sendFrom(h.platformRemote, message.NewVendor(message.OpPlatformSonSlaveRegisterResponse,
		&message.PlatformRegisterResponse{
			Valid:            true,
			PlatformSettings: settings,
			WlanSettings:     wlan,
		}))
}

// bringUpWorkers drives the FSM from backhaul registration through both
// workers joining.
func (h *harness) bringUpWorkers() {
	h.t.Helper()

	h.tickUntil(StateWaitForBackhaulManagerRegisterResponse, 5)
	require.Equal(h.t, 1, h.backhaulRx.countOp(message.OpBackhaulRegisterRequest))
	h.sendFrom(h.backhaulRemote, message.NewVendor(message.OpBackhaulRegisterResponse, nil))
	require.Equal(h.t, StateJoinInit, h.s.State())

	h.tickUntil(StateWaitForWlanReadyStatusResponse, 5)
	h.sendFrom(h.platformRemote, message.NewVendor(message.OpPlatformGetWlanReadyStatusResponse,
		&message.ResultResponse{Result: true}))
	require.Equal(h.t, StateJoinInitBringUpInterfaces, h.s.State())

	// Interface enables for the radio and the wireless backhaul.
	h.s.Tick()
	h.pump()
	require.Equal(h.t, StateJoinInitWaitForIfaceChangeDone, h.s.State())
	require.Equal(h.t, 2, h.platformRx.countOp(message.OpPlatformWifiSetIfaceStateRequest))

	// FSM is paused while the actions are pending.
	h.s.Tick()
	require.Equal(h.t, StateJoinInitWaitForIfaceChangeDone, h.s.State())

	for _, iface := range []string{"wlan0", "wlan1"} {
		h.sendFrom(h.platformRemote, message.NewVendor(message.OpPlatformWifiSetIfaceStateResponse,
			&message.IfaceStateResponse{IfaceName: iface, Operation: message.IfaceOperEnable, Success: true}))
	}

	h.tickUntil(StateWaitForAPManagerInitDoneNotification, 5)

	// The AP worker connects and identifies itself.
	apLocal, apRemote := net.Pipe()
	h.apRemote = apRemote
	go h.apRx.run(apRemote)
	h.s.AdoptWorkerConn(apLocal)
	h.sendFrom(apRemote, message.NewVendor(message.OpAPManagerInitDoneNotification, nil))
	require.Equal(h.t, StateWaitForAPManagerJoined, h.s.State())

	h.sendFrom(apRemote, message.NewVendor(message.OpAPManagerJoinedNotification,
		&message.APManagerJoined{
			Params: message.HostApParams{
				IfaceName:   "wlan0",
				IfaceMAC:    testIfaceMAC,
				IfaceIs5GHz: true,
			},
			CSParams: message.ChannelSwitchParams{Channel: 36, Bandwidth: 80},
		}))
	require.Equal(h.t, StateAPManagerJoined, h.s.State())

	h.tickUntil(StateWaitForMonitorJoined, 5)

	// The monitor worker connects and identifies itself.
	monLocal, monRemote := net.Pipe()
	h.monRemote = monRemote
	go h.monRx.run(monRemote)
	h.s.AdoptWorkerConn(monLocal)
	h.sendFrom(monRemote, message.NewVendor(message.OpMonitorJoinedNotification, nil))
	require.Equal(h.t, StateBackhaulEnable, h.s.State())
}

// connectBackhaul reports the uplink up and carries the FSM to the join.
func (h *harness) connectBackhaul(isBackhaulManager, wireless bool) {
	h.t.Helper()

	h.tickUntil(StateWaitForBackhaulManagerConnectedNotification, 5)
	require.Equal(h.t, 1, h.backhaulRx.countOp(message.OpBackhaulEnable))

	h.sendFrom(h.backhaulRemote, message.NewVendor(message.OpBackhaulConnectedNotification,
		&message.BackhaulConnectedParams{
			IsBackhaulManager:   isBackhaulManager,
			GWIPv4:              message.IPv4{192, 168, 1, 1},
			ControllerBridgeMAC: message.MAC{0x02, 0xcc, 0, 0, 0, 1},
			BridgeMAC:           message.MAC{0x02, 0xbb, 0, 0, 0, 1},
			BridgeIPv4:          message.IPv4{192, 168, 1, 10},
			BackhaulBSSID:       message.MAC{0x02, 0xaa, 0, 0, 0, 9},
			BackhaulChannel:     44,
			BackhaulIsWireless:  wireless,
			ScanMeasurements: []message.ScanMeasurement{
				{MAC: message.MAC{0x02, 0xaa, 0, 0, 0, 9}, Channel: 44, RSSI: -58},
			},
		}))
	require.Equal(h.t, StateBackhaulManagerConnected, h.s.State())

	// BackhaulManagerConnected flows straight into the join.
	h.s.Tick()
	h.pump()
	require.Equal(h.t, StateWaitForJoinedResponse, h.s.State())
}

// joinController answers the M1 with the given join response.
func (h *harness) joinController(resp *message.SlaveJoinedResponse) {
	h.t.Helper()
	m2, err := wsc.BuildJoinResponse(testRadioUID, "Intel", resp)
	require.NoError(h.t, err)
	h.sendFrom(h.backhaulRemote, m2)
}

// fullJoin drives the whole happy path to Operational.
func (h *harness) fullJoin() {
	h.t.Helper()
	h.registerWithPlatform(defaultPlatformSettings(), defaultWlanSettings())
	h.bringUpWorkers()
	h.connectBackhaul(true, true)
	h.joinController(&message.SlaveJoinedResponse{
		ErrCode:       message.JoinRespOK,
		MasterVersion: "1.0.0",
		Config:        message.SONConfig{SlaveKeepAliveRetries: 3},
	})
	h.tickUntil(StateOperational, 5)
}

// slaveJoinedCount counts M1 announcements on the controller link.
func (h *harness) slaveJoinedCount() int {
	count := 0
	for _, c := range h.backhaulRx.byType(message.TypeAPAutoconfigurationWSC) {
		if wsc.IsLoopbackM1(c) {
			count++
		}
	}
	return count
}
