package wsc

import (
	"encoding/json"
	"fmt"

	"github.com/abelviageiro/prplMesh/errors"
	"github.com/abelviageiro/prplMesh/message"
)

// M2 is the WSC registrar frame returned by the controller.
type M2 struct {
	Manufacturer string `json:"manufacturer"`
	UUIDR        [16]byte `json:"uuid_r"`
	AuthFlags    uint16 `json:"auth_flags"`
	EncrFlags    uint16 `json:"encr_flags"`
	RFBand       uint8  `json:"rf_band"`
	PublicKey    []byte `json:"public_key,omitempty"`
	EncryptedSettings []byte `json:"encrypted_settings,omitempty"`
}

// IsLoopbackM1 reports whether an inbound AP_AUTOCONFIGURATION_WSC CMDU is
// our own M1 announcement echoed back on the local bus. The M1 starts with
// the radio basic capabilities TLV while an M2 starts with the radio
// identifier TLV.
func IsLoopbackM1(c *message.CMDU) bool {
	return len(c.TLVs) > 0 && c.TLVs[0].Type == TLVTypeAPRadioBasicCapabilities
}

// ErrNotForThisRadio marks an M2 addressed to a peer radio; the caller treats
// the frame as handled.
var ErrNotForThisRadio = fmt.Errorf("radio identifier mismatch")

// ParseJoinResponse parses an inbound M2 CMDU: the leading radio identifier
// TLV, one or more WSC M2 TLVs, and the trailing vendor TLV carrying the
// join response. acceptManufacturers lists the registrar manufacturers the
// agent accepts; the policy is configuration because mixed-vendor handling is
// deliberately not decided here.
func ParseJoinResponse(c *message.CMDU, radioUID message.MAC, acceptManufacturers []string) (*message.SlaveJoinedResponse, error) {
	if len(c.TLVs) == 0 || c.TLVs[0].Type != TLVTypeAPRadioIdentifier {
		return nil, errors.WrapInvalid(errors.ErrTLVMissing, "wsc", "ParseJoinResponse", "radio identifier tlv")
	}
	ruid, err := unmarshalTLV[RadioIdentifier](c.TLVs[0])
	if err != nil {
		return nil, err
	}
	if ruid.RadioUID != radioUID {
		return nil, ErrNotForThisRadio
	}

	rest := c.TLVs[1:]
	var m2s []*M2
	for len(rest) > 0 && rest[0].Type == message.TLVTypeWSC {
		m2, err := unmarshalTLV[M2](rest[0])
		if err != nil {
			return nil, err
		}
		m2s = append(m2s, m2)
		rest = rest[1:]
	}
	if len(m2s) == 0 {
		return nil, errors.WrapInvalid(errors.ErrTLVMissing, "wsc", "ParseJoinResponse", "wsc m2 tlv")
	}

	for _, m2 := range m2s {
		if !manufacturerAccepted(m2.Manufacturer, acceptManufacturers) {
			return nil, errors.WrapInvalid(errors.ErrManufacturer, "wsc", "ParseJoinResponse",
				fmt.Sprintf("manufacturer %q", m2.Manufacturer))
		}
	}

	if len(rest) == 0 || rest[0].Type != message.TLVTypeVendorSpecific {
		return nil, errors.WrapInvalid(errors.ErrTLVMissing, "wsc", "ParseJoinResponse", "vendor tlv")
	}
	vendor, err := unmarshalTLV[VendorTLV](rest[0])
	if err != nil {
		return nil, err
	}
	if vendor.Op != message.OpControlSlaveJoinedResponse {
		return nil, errors.WrapInvalid(errors.ErrUnknownActionOp, "wsc", "ParseJoinResponse",
			fmt.Sprintf("vendor op %s", vendor.Op))
	}

	var resp message.SlaveJoinedResponse
	if err := json.Unmarshal(vendor.Payload, &resp); err != nil {
		return nil, errors.WrapInvalid(err, "wsc", "ParseJoinResponse", "join response unmarshal")
	}
	return &resp, nil
}

func manufacturerAccepted(manufacturer string, accepted []string) bool {
	for _, a := range accepted {
		if manufacturer == a {
			return true
		}
	}
	return false
}

// BuildJoinResponse assembles an M2 CMDU carrying a join response. The
// supervisor never sends one; tests and local tooling use it to exercise the
// parse path with frames shaped like the controller's.
func BuildJoinResponse(radioUID message.MAC, manufacturer string, resp *message.SlaveJoinedResponse) (*message.CMDU, error) {
	ruidTLV, err := marshalTLV(TLVTypeAPRadioIdentifier, RadioIdentifier{RadioUID: radioUID})
	if err != nil {
		return nil, err
	}
	m2TLV, err := marshalTLV(message.TLVTypeWSC, M2{Manufacturer: manufacturer})
	if err != nil {
		return nil, err
	}
	respRaw, err := json.Marshal(resp)
	if err != nil {
		return nil, errors.WrapInvalid(err, "wsc", "BuildJoinResponse", "response marshal")
	}
	vendorTLV, err := marshalTLV(message.TLVTypeVendorSpecific, VendorTLV{
		OUI:     OUIIntel,
		Op:      message.OpControlSlaveJoinedResponse,
		Payload: respRaw,
	})
	if err != nil {
		return nil, err
	}
	return message.New1905(message.TypeAPAutoconfigurationWSC, 0, ruidTLV, m2TLV, vendorTLV), nil
}
