package router

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelviageiro/prplMesh/message"
)

func TestDispatchRoutesByOriginAndOp(t *testing.T) {
	table := NewTable(nil)

	var got *message.CMDU
	table.Register(message.OriginController, message.OpControlClientAllowRequest,
		func(in *message.CMDU) ([]Outbound, error) {
			got = in
			return Forward(message.OriginAPManager,
				Translate(in, message.OpAPManagerClientAllowRequest)), nil
		})

	in := message.NewVendor(message.OpControlClientAllowRequest,
		&message.ClientAllow{MAC: message.MAC{1, 2, 3, 4, 5, 6}}).WithID(9)

	out, err := table.Dispatch(message.OriginController, in)
	require.NoError(t, err)
	assert.Same(t, in, got)
	require.Len(t, out, 1)
	assert.Equal(t, message.OriginAPManager, out[0].To)
	assert.Equal(t, message.OpAPManagerClientAllowRequest, out[0].CMDU.Vendor.Op)
	assert.Equal(t, uint16(9), out[0].CMDU.Vendor.ID)
}

func TestDispatchUnknownOpFails(t *testing.T) {
	table := NewTable(nil)
	in := message.NewVendor(message.OpControlBackhaulReset, nil)
	_, err := table.Dispatch(message.OriginController, in)
	assert.Error(t, err)
}

func TestDispatchRejectsNonVendorCMDU(t *testing.T) {
	table := NewTable(nil)
	_, err := table.Dispatch(message.OriginController,
		message.New1905(message.TypeChannelPreferenceQuery, 1))
	assert.Error(t, err)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	table := NewTable(nil)
	h := func(in *message.CMDU) ([]Outbound, error) { return nil, nil }
	table.Register(message.OriginMonitor, message.OpMonitorJoinedNotification, h)
	assert.Panics(t, func() {
		table.Register(message.OriginMonitor, message.OpMonitorJoinedNotification, h)
	})
}

// Translate-and-forward rules are copy-faithful: the forwarded payload is
// serialisation-equal to the source payload.
func TestTranslateIsCopyFaithful(t *testing.T) {
	payloads := []struct {
		name    string
		in      message.ActionOp
		out     message.ActionOp
		payload any
	}{
		{"rssi request", message.OpControlClientRxRSSIMeasurementRequest,
			message.OpMonitorClientRxRSSIMeasurementRequest,
			&message.RSSIMeasurementRequest{MAC: message.MAC{1, 2, 3, 4, 5, 6}, Channel: 36, Cross: true}},
		{"bss steer", message.OpControlClientBSSSteerRequest,
			message.OpAPManagerClientBSSSteerRequest,
			&message.BSSSteerRequest{TargetChannel: 44, DisassocTimerMS: 100}},
		{"csa notification", message.OpAPManagerHostapCSANotification,
			message.OpControlHostapCSANotification,
			&message.CSANotification{CSParams: message.ChannelSwitchParams{Channel: 149, Bandwidth: 80}}},
		{"stats response", message.OpMonitorHostapStatsMeasurementResponse,
			message.OpControlHostapStatsMeasurementResponse,
			&message.StatsMeasurementResponse{AP: message.APStats{ActiveClientCount: 3},
				Sta: []message.StaStats{{RxRSSI: -61}}}},
	}

	for _, tt := range payloads {
		t.Run(tt.name, func(t *testing.T) {
			in := message.NewVendor(tt.in, tt.payload).WithID(5)
			out := Translate(in, tt.out)

			assert.Equal(t, message.ActionFor(tt.out), out.Vendor.Action)
			assert.Equal(t, in.Vendor.ID, out.Vendor.ID)

			inJSON, err := json.Marshal(in.Payload)
			require.NoError(t, err)
			outJSON, err := json.Marshal(out.Payload)
			require.NoError(t, err)
			assert.JSONEq(t, string(inJSON), string(outJSON))
		})
	}
}
