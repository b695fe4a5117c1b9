package wsc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelviageiro/prplMesh/message"
)

var (
	radioUID = message.MAC{0x02, 0x10, 0x20, 0x30, 0x40, 0x50}
	ifaceMAC = message.MAC{0x02, 0x10, 0x20, 0x30, 0x40, 0x51}
)

func buildTestM1(t *testing.T) *message.CMDU {
	t.Helper()
	key, err := NewKeyExchange()
	require.NoError(t, err)

	c, err := BuildM1(M1Params{
		RadioUID:    radioUID,
		IfaceMAC:    ifaceMAC,
		IfaceIs5GHz: true,
		Key:         key,
		Joined: &message.SlaveJoinedNotification{
			SlaveVersion:    "1.0.0",
			RadioIdentifier: radioUID,
		},
	})
	require.NoError(t, err)
	return c
}

func TestBuildM1Shape(t *testing.T) {
	c := buildTestM1(t)

	assert.Equal(t, message.TypeAPAutoconfigurationWSC, c.Type)
	require.Len(t, c.TLVs, 3)
	assert.Equal(t, TLVTypeAPRadioBasicCapabilities, c.TLVs[0].Type)
	assert.Equal(t, message.TLVTypeWSC, c.TLVs[1].Type)
	assert.Equal(t, message.TLVTypeVendorSpecific, c.TLVs[2].Type)

	caps, err := unmarshalTLV[RadioBasicCapabilities](c.TLVs[0])
	require.NoError(t, err)
	assert.Equal(t, radioUID, caps.RadioUID)
	assert.Equal(t, uint8(4), caps.MaxBSSSupported)
	assert.Len(t, caps.OperatingClasses, 4)

	m1, err := unmarshalTLV[M1](c.TLVs[1])
	require.NoError(t, err)
	assert.Equal(t, "Intel", m1.Manufacturer)
	assert.Equal(t, RFBand5G, m1.RFBand)
	assert.Equal(t, AuthOpen|AuthWPA2, m1.AuthFlags)
	assert.Equal(t, EncrNone, m1.EncrFlags)
	assert.Equal(t, FronthaulBSS|BackhaulBSS, m1.BSSTypeFlags)
	assert.NotEmpty(t, m1.PublicKey)

	// uuid_e is deterministic per radio MAC.
	c2 := buildTestM1(t)
	m1b, err := unmarshalTLV[M1](c2.TLVs[1])
	require.NoError(t, err)
	assert.Equal(t, m1.UUIDE, m1b.UUIDE)
}

// A looped-back M1 is recognised by its leading TLV.
func TestLoopbackDetection(t *testing.T) {
	m1 := buildTestM1(t)
	assert.True(t, IsLoopbackM1(m1))

	resp, err := BuildJoinResponse(radioUID, "Intel", &message.SlaveJoinedResponse{})
	require.NoError(t, err)
	assert.False(t, IsLoopbackM1(resp))
}

func TestParseJoinResponseOK(t *testing.T) {
	in, err := BuildJoinResponse(radioUID, "Intel", &message.SlaveJoinedResponse{
		ErrCode:       message.JoinRespOK,
		MasterVersion: "1.2.0",
		Config:        message.SONConfig{SlaveKeepAliveRetries: 3},
	})
	require.NoError(t, err)

	resp, err := ParseJoinResponse(in, radioUID, []string{"Intel"})
	require.NoError(t, err)
	assert.Equal(t, message.JoinRespOK, resp.ErrCode)
	assert.Equal(t, "1.2.0", resp.MasterVersion)
	assert.Equal(t, uint8(3), resp.Config.SlaveKeepAliveRetries)
}

func TestParseJoinResponseIgnoresForeignRadio(t *testing.T) {
	other := message.MAC{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
	in, err := BuildJoinResponse(other, "Intel", &message.SlaveJoinedResponse{})
	require.NoError(t, err)

	_, err = ParseJoinResponse(in, radioUID, []string{"Intel"})
	assert.ErrorIs(t, err, ErrNotForThisRadio)
}

func TestParseJoinResponseRejectsManufacturer(t *testing.T) {
	in, err := BuildJoinResponse(radioUID, "OtherCorp", &message.SlaveJoinedResponse{})
	require.NoError(t, err)

	_, err = ParseJoinResponse(in, radioUID, []string{"Intel"})
	require.Error(t, err)

	// Policy is configuration: accepting the manufacturer makes the same
	// frame parse.
	_, err = ParseJoinResponse(in, radioUID, []string{"Intel", "OtherCorp"})
	assert.NoError(t, err)
}

func TestParseJoinResponseRequiresM2(t *testing.T) {
	ruidTLV, err := marshalTLV(TLVTypeAPRadioIdentifier, RadioIdentifier{RadioUID: radioUID})
	require.NoError(t, err)
	in := message.New1905(message.TypeAPAutoconfigurationWSC, 0, ruidTLV)

	_, err = ParseJoinResponse(in, radioUID, []string{"Intel"})
	assert.Error(t, err)
}

func TestChannelPreferenceReportStub(t *testing.T) {
	c, err := BuildChannelPreferenceReport(77, radioUID)
	require.NoError(t, err)

	assert.Equal(t, message.TypeChannelPreferenceReport, c.Type)
	assert.Equal(t, uint16(77), c.MID)
	require.Len(t, c.TLVs, 1)

	pref, err := unmarshalTLV[ChannelPreference](c.TLVs[0])
	require.NoError(t, err)
	assert.Equal(t, radioUID, pref.RadioUID)
	require.Len(t, pref.Entries, 1)
	assert.Equal(t, uint8(80), pref.Entries[0].OperatingClass)
	assert.Equal(t, uint8(15), pref.Entries[0].Preference)
	assert.Equal(t, []uint8{36, 38, 40, 42, 44, 46, 48}, pref.Entries[0].Channels)
}

func TestKeyExchangeSharedSecret(t *testing.T) {
	a, err := NewKeyExchange()
	require.NoError(t, err)
	b, err := NewKeyExchange()
	require.NoError(t, err)

	ab, err := a.ComputeKey(b.PublicKey())
	require.NoError(t, err)
	ba, err := b.ComputeKey(a.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, ab, ba)

	_, err = a.ComputeKey(nil)
	assert.Error(t, err)
}
