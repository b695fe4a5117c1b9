// Package wsc implements the controller-join sub-protocol: the
// AP-Autoconfiguration WSC M1 announcement, M2 response parsing, the embedded
// vendor-specific join payloads, and the channel preference report.
package wsc

import (
	"encoding/json"

	"github.com/abelviageiro/prplMesh/errors"
	"github.com/abelviageiro/prplMesh/message"
)

// Multi-AP TLV types used by the join flow.
const (
	TLVTypeAPRadioIdentifier        uint8 = 0x82
	TLVTypeAPRadioBasicCapabilities uint8 = 0x85
	TLVTypeChannelPreference        uint8 = 0x8b
)

// OUIIntel is the vendor OUI carried on the join vendor TLV.
var OUIIntel = [3]byte{0x00, 0xa0, 0xc9}

// OperatingClassInfo is one operating-class capability entry.
type OperatingClassInfo struct {
	OperatingClass      uint8   `json:"operating_class"`
	MaxTxPowerDBM       int8    `json:"max_tx_power_dbm"`
	NonOperableChannels []uint8 `json:"non_operable_channels"`
}

// RadioBasicCapabilities is the AP radio basic capabilities TLV body.
type RadioBasicCapabilities struct {
	RadioUID         message.MAC          `json:"radio_uid"`
	MaxBSSSupported  uint8                `json:"max_bss_supported"`
	OperatingClasses []OperatingClassInfo `json:"operating_classes"`
}

// RadioIdentifier is the AP radio identifier TLV body.
type RadioIdentifier struct {
	RadioUID message.MAC `json:"radio_uid"`
}

// ChannelPreferenceEntry is one operating-class entry of a preference report.
type ChannelPreferenceEntry struct {
	OperatingClass uint8   `json:"operating_class"`
	Channels       []uint8 `json:"channels"`
	Preference     uint8   `json:"preference"`
	ReasonCode     uint8   `json:"reason_code"`
}

// ChannelPreference is the channel preference TLV body.
type ChannelPreference struct {
	RadioUID message.MAC              `json:"radio_uid"`
	Entries  []ChannelPreferenceEntry `json:"entries"`
}

// VendorTLV is the vendor-specific TLV wrapping a join payload: the embedded
// opcode tells the receiver which payload type follows.
type VendorTLV struct {
	OUI     [3]byte          `json:"oui"`
	Op      message.ActionOp `json:"action_op"`
	Payload json.RawMessage  `json:"payload"`
}

func marshalTLV(t uint8, body any) (message.TLV, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return message.TLV{}, errors.WrapInvalid(err, "wsc", "marshalTLV", "tlv body marshal")
	}
	return message.TLV{Type: t, Value: raw}, nil
}

func unmarshalTLV[T any](tlv message.TLV) (*T, error) {
	var out T
	if err := json.Unmarshal(tlv.Value, &out); err != nil {
		return nil, errors.WrapInvalid(err, "wsc", "unmarshalTLV", "tlv body unmarshal")
	}
	return &out, nil
}
