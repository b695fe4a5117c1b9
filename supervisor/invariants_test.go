package supervisor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelviageiro/prplMesh/message"
)

// Every inbound controller frame clears the keep-alive retry counter.
func TestKeepAliveRetriesResetOnControllerFrame(t *testing.T) {
	h := newHarness(t, nil)
	h.fullJoin()

	h.clk.Advance(11 * time.Second)
	h.s.Tick()
	h.pump()
	assert.Equal(t, 1, h.s.keepAlive.Retries())
	assert.Equal(t, 1, h.backhaulRx.countOp(message.OpControlAgentPingRequest))

	h.sendFromController(message.NewVendor(message.OpControlSonConfigUpdate,
		&message.SONConfig{SlaveKeepAliveRetries: 3}))
	assert.Equal(t, 0, h.s.keepAlive.Retries())
}

// Keep-alive silence beyond the retry bound resets the supervisor with a
// typed error.
func TestKeepAliveTimeoutResets(t *testing.T) {
	h := newHarness(t, nil)
	h.fullJoin()
	h.s.sonConfig.SlaveKeepAliveRetries = 1

	h.clk.Advance(11 * time.Second)
	h.s.Tick() // ping sent, retries = 1
	h.pump()

	h.clk.Advance(11 * time.Second)
	h.s.Tick() // retries exceeded
	h.pump()

	errs := h.platformRx.byOp(message.OpPlatformErrorNotification)
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.Payload.(*message.PlatformErrorNotification).Code == uint32(ErrCodeMasterKeepAliveTimeout) {
			found = true
		}
	}
	assert.True(t, found, "expected master keep-alive timeout error")
	assert.NotEqual(t, StateOperational, h.s.State())
}

// slave_keep_alive_retries = 0 disables keep-alive entirely.
func TestKeepAliveDisabled(t *testing.T) {
	h := newHarness(t, nil)
	h.registerWithPlatform(defaultPlatformSettings(), defaultWlanSettings())
	h.bringUpWorkers()
	h.connectBackhaul(true, true)
	h.joinController(&message.SlaveJoinedResponse{
		ErrCode:       message.JoinRespOK,
		MasterVersion: "1.0.0",
		Config:        message.SONConfig{SlaveKeepAliveRetries: 0},
	})
	h.tickUntil(StateOperational, 5)

	// Beat the workers so their heartbeats do not interfere.
	for i := 0; i < 3; i++ {
		h.clk.Advance(8 * time.Second)
		h.sendFrom(h.apRemote, message.NewVendor(message.OpAPManagerHeartbeatNotification, nil))
		h.sendFrom(h.monRemote, message.NewVendor(message.OpMonitorHeartbeatNotification, nil))
		h.s.Tick()
		h.pump()
	}

	assert.Equal(t, StateOperational, h.s.State())
	assert.Equal(t, 0, h.backhaulRx.countOp(message.OpControlAgentPingRequest))
}

// Frames addressed to a different radio never alter supervisor state.
func TestForeignRadioMACIgnored(t *testing.T) {
	h := newHarness(t, nil)
	h.fullJoin()

	before := h.s.sonConfig

	frame := message.NewVendor(message.OpControlSonConfigUpdate,
		&message.SONConfig{SlaveKeepAliveRetries: 99})
	frame.Vendor.Direction = message.DirectionToAgent
	frame.Vendor.RadioMAC = message.MAC{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
	h.sendFrom(h.backhaulRemote, frame)

	assert.Equal(t, before, h.s.sonConfig)
}

// A held client association is forwarded exactly once at the first join, or
// removed by a matching disconnect - never both.
func TestPendingClientAssociationDrain(t *testing.T) {
	h := newHarness(t, nil)
	h.registerWithPlatform(defaultPlatformSettings(), defaultWlanSettings())
	h.bringUpWorkers()

	keptMAC := message.MAC{0x0a, 0, 0, 0, 0, 1}
	droppedMAC := message.MAC{0x0a, 0, 0, 0, 0, 2}

	// No controller attached yet: both associations are held.
	h.sendFrom(h.apRemote, message.NewVendor(message.OpAPManagerClientAssociatedNotification,
		&message.ClientAssociationParams{MAC: keptMAC, VapID: 0}))
	h.sendFrom(h.apRemote, message.NewVendor(message.OpAPManagerClientAssociatedNotification,
		&message.ClientAssociationParams{MAC: droppedMAC, VapID: 0}))
	require.Len(t, h.s.pendingAssoc, 2)

	// A disconnect while detached removes the held entry.
	h.sendFrom(h.apRemote, message.NewVendor(message.OpAPManagerClientDisconnectedNotification,
		&message.ClientAssociationParams{MAC: droppedMAC, VapID: 0}))
	require.Len(t, h.s.pendingAssoc, 1)

	h.connectBackhaul(true, true)
	h.joinController(&message.SlaveJoinedResponse{
		ErrCode:       message.JoinRespOK,
		MasterVersion: "1.0.0",
		Config:        message.SONConfig{SlaveKeepAliveRetries: 3},
	})
	h.tickUntil(StateOperational, 5)

	assocs := h.backhaulRx.byOp(message.OpControlClientAssociatedNotification)
	require.Len(t, assocs, 1)
	assert.Equal(t, keptMAC, assocs[0].Payload.(*message.ClientAssociationParams).MAC)
	assert.Empty(t, h.s.pendingAssoc)
}

// The failure budget never increases within one life; a worker loss decrements
// it.
func TestFailureBudgetMonotonic(t *testing.T) {
	h := newHarness(t, nil)
	h.registerWithPlatform(defaultPlatformSettings(), defaultWlanSettings())
	h.bringUpWorkers()

	before := h.s.stopOnFailureAttempts
	require.NoError(t, h.monRemote.Close())
	h.pump()

	assert.Equal(t, before-1, h.s.stopOnFailureAttempts)
	assert.Equal(t, StateInit, h.s.State())
}

// Worker heartbeat loss beyond the retry bound resets the supervisor.
func TestWorkerHeartbeatLossResets(t *testing.T) {
	h := newHarness(t, nil)
	h.fullJoin()
	// Keep-alive off, so the controller silence cannot cause the reset.
	h.s.sonConfig.SlaveKeepAliveRetries = 0

	for i := 0; i < 6; i++ {
		h.clk.Advance(11 * time.Second)
		h.s.Tick()
		h.pump()
		if h.s.State() != StateOperational {
			break
		}
	}
	assert.NotEqual(t, StateOperational, h.s.State())
}

// A pending interface action that outlives its deadline produces a typed
// error and a reset.
func TestIfaceActionTimeout(t *testing.T) {
	h := newHarness(t, nil)
	h.registerWithPlatform(defaultPlatformSettings(), defaultWlanSettings())

	h.tickUntil(StateWaitForBackhaulManagerRegisterResponse, 5)
	h.sendFrom(h.backhaulRemote, message.NewVendor(message.OpBackhaulRegisterResponse, nil))
	h.tickUntil(StateWaitForWlanReadyStatusResponse, 5)
	h.sendFrom(h.platformRemote, message.NewVendor(message.OpPlatformGetWlanReadyStatusResponse,
		&message.ResultResponse{Result: true}))
	h.s.Tick()
	h.pump()
	require.Equal(t, StateJoinInitWaitForIfaceChangeDone, h.s.State())
	require.Greater(t, h.s.pendingActions.Len(), 0)

	budget := h.s.stopOnFailureAttempts
	h.clk.Advance(16 * time.Second)
	h.s.Tick()
	h.pump()

	assert.Equal(t, budget-1, h.s.stopOnFailureAttempts)
	assert.Equal(t, 0, h.s.pendingActions.Len())

	errs := h.platformRx.byOp(message.OpPlatformErrorNotification)
	require.NotEmpty(t, errs)
}

// The channel preference query gets the placeholder report.
func TestChannelPreferenceQueryReply(t *testing.T) {
	h := newHarness(t, nil)
	h.fullJoin()

	h.sendFrom(h.backhaulRemote, message.New1905(message.TypeChannelPreferenceQuery, 99))

	reports := h.backhaulRx.byType(message.TypeChannelPreferenceReport)
	require.Len(t, reports, 1)
	assert.Equal(t, uint16(99), reports[0].MID)
}

// A wifi configuration update quiesces the supervisor and completion returns
// it to Operational.
func TestWifiConfigurationUpdateQuiescence(t *testing.T) {
	h := newHarness(t, nil)
	h.fullJoin()

	h.sendFrom(h.platformRemote, message.NewVendor(message.OpPlatformWifiConfigurationUpdateRequest,
		&message.WifiConfigurationUpdateRequest{ConfigStart: true}))
	assert.Equal(t, StateWaitForWifiConfigurationUpdateComplete, h.s.State())

	// A worker loss during the window is absorbed.
	require.NoError(t, h.monRemote.Close())
	h.pump()
	assert.Equal(t, StateWaitForWifiConfigurationUpdateComplete, h.s.State())
	assert.True(t, h.s.detachOnConfChange)

	// Completion with a detached worker resets instead of resuming.
	h.sendFrom(h.platformRemote, message.NewVendor(message.OpPlatformWifiConfigurationUpdateRequest,
		&message.WifiConfigurationUpdateRequest{ConfigStart: false}))
	assert.NotEqual(t, StateOperational, h.s.State())
}

// The logging-level broadcast fans out to the monitor and the platform.
func TestLoggingLevelBroadcast(t *testing.T) {
	h := newHarness(t, nil)
	h.fullJoin()

	h.sendFromController(message.NewVendor(message.OpControlChangeModuleLoggingLevel,
		&message.LoggingLevelParams{ModuleName: message.ProcessAll, LogLevel: "debug", Enable: true}))

	assert.Equal(t, 1, h.monRx.countOp(message.OpMonitorChangeModuleLoggingLevel))
	assert.Equal(t, 1, h.platformRx.countOp(message.OpPlatformChangeModuleLoggingLevel))
}
