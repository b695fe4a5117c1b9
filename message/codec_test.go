package message

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorRoundTrip(t *testing.T) {
	in := NewVendor(OpControlControllerPingRequest, &PingParams{Total: 3, Seq: 0, Size: 16}).WithID(7)
	in.Vendor.Direction = DirectionToAgent
	in.Vendor.RadioMAC = MAC{0x02, 0x11, 0x22, 0x33, 0x44, 0x55}

	frame, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(frame)
	require.NoError(t, err)

	require.NotNil(t, out.Vendor)
	assert.Equal(t, TypeVendorSpecific, out.Type)
	assert.Equal(t, ActionControl, out.Vendor.Action)
	assert.Equal(t, OpControlControllerPingRequest, out.Vendor.Op)
	assert.Equal(t, uint16(7), out.Vendor.ID)
	assert.Equal(t, in.Vendor.RadioMAC, out.Vendor.RadioMAC)

	ping, ok := out.Payload.(*PingParams)
	require.True(t, ok)
	assert.Equal(t, PingParams{Total: 3, Seq: 0, Size: 16}, *ping)
}

func TestVendorWithoutPayload(t *testing.T) {
	in := NewVendor(OpBackhaulReset, nil)
	frame, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, OpBackhaulReset, out.Vendor.Op)
	assert.Nil(t, out.Payload)
}

func TestTLVRoundTrip(t *testing.T) {
	in := New1905(TypeAPAutoconfigurationWSC, 42,
		TLV{Type: 0x85, Value: []byte{1, 2, 3}},
		TLV{Type: TLVTypeWSC, Value: []byte{9}},
	)

	frame, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, TypeAPAutoconfigurationWSC, out.Type)
	assert.Equal(t, uint16(42), out.MID)
	require.Len(t, out.TLVs, 2)
	assert.Equal(t, in.TLVs, out.TLVs)

	first, ok := out.FirstTLV(0x85)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, first.Value)
}

func TestDecodeRejectsActionOpMismatch(t *testing.T) {
	in := NewVendor(OpControlSonConfigUpdate, &SONConfig{})
	frame, err := Encode(in)
	require.NoError(t, err)

	// Corrupt the action byte so it no longer matches the opcode block.
	frame[8] = uint8(ActionMonitor)
	_, err = Decode(frame)
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedFrame(t *testing.T) {
	_, err := Decode([]byte{0, 0})
	assert.Error(t, err)

	in := NewVendor(OpControlBackhaulReset, nil)
	frame, err := Encode(in)
	require.NoError(t, err)
	// Lie about the length.
	frame[3] = frame[3] + 5
	_, err = Decode(frame)
	assert.Error(t, err)
}

func TestReadWriteFrameStream(t *testing.T) {
	var buf bytes.Buffer

	first := NewVendor(OpMonitorHeartbeatNotification, nil)
	second := NewVendor(OpControlAgentPingRequest, &PingParams{Total: 1})

	require.NoError(t, WriteFrame(&buf, first))
	require.NoError(t, WriteFrame(&buf, second))

	out1, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, OpMonitorHeartbeatNotification, out1.Vendor.Op)

	out2, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, OpControlAgentPingRequest, out2.Vendor.Op)
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, ActionControl, ActionFor(OpControlSlaveJoinedResponse))
	assert.Equal(t, ActionBackhaul, ActionFor(OpBackhaulEnable))
	assert.Equal(t, ActionPlatform, ActionFor(OpPlatformErrorNotification))
	assert.Equal(t, ActionAPManager, ActionFor(OpAPManagerJoinedNotification))
	assert.Equal(t, ActionMonitor, ActionFor(OpMonitorJoinedNotification))
}

func TestParseMAC(t *testing.T) {
	m, err := ParseMAC("02:aa:bb:cc:dd:ee")
	require.NoError(t, err)
	assert.Equal(t, "02:aa:bb:cc:dd:ee", m.String())

	_, err = Decode(nil)
	assert.Error(t, err)

	_, err = ParseMAC("not-a-mac")
	assert.Error(t, err)
}

func TestParseWiFiSec(t *testing.T) {
	assert.Equal(t, WiFiSecNone, ParseWiFiSec("None"))
	assert.Equal(t, WiFiSecWPA2PSK, ParseWiFiSec("WPA2-Personal"))
	assert.Equal(t, WiFiSecWPAWPA2PSK, ParseWiFiSec("WPA-WPA2-Personal"))
	assert.Equal(t, WiFiSecInvalid, ParseWiFiSec("WPA3-SAE"))
}
