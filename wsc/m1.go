package wsc

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/abelviageiro/prplMesh/errors"
	"github.com/abelviageiro/prplMesh/message"
)

// WSC attribute flag values carried in M1.
const (
	AuthOpen uint16 = 0x0001
	AuthWPA2 uint16 = 0x0020
	EncrNone uint16 = 0x0001

	RFBand2G uint8 = 0x01
	RFBand5G uint8 = 0x02

	// DeviceTypeNetworkInfraAP is the primary device type category/subcategory.
	DeviceTypeNetworkInfraAP uint16 = 0x0601

	// BSS type bits advertised in the vendor extension.
	FronthaulBSS uint8 = 0x20
	BackhaulBSS  uint8 = 0x40
)

// Identity vendor strings carried in M1.
const (
	Manufacturer = "Intel"
	ModelName    = "Ubuntu"
	ModelNumber  = "18.04"
	DeviceName   = "prplMesh-agent"
	SerialNumber = "prpl12345"
)

// uuidNamespace anchors the deterministic enrolee UUID derivation.
var uuidNamespace = uuid.MustParse("8a3c52f0-39ab-42e1-9c4e-2f0a88d51b6e")

// M1 is the WSC enrolee frame carried in the join announcement.
type M1 struct {
	MAC               message.MAC `json:"mac"`
	Manufacturer      string      `json:"manufacturer"`
	ModelName         string      `json:"model_name"`
	ModelNumber       string      `json:"model_number"`
	DeviceName        string      `json:"device_name"`
	SerialNumber      string      `json:"serial_number"`
	UUIDE             [16]byte    `json:"uuid_e"`
	AuthFlags         uint16      `json:"auth_flags"`
	EncrFlags         uint16      `json:"encr_flags"`
	RFBand            uint8       `json:"rf_band"`
	PrimaryDeviceType uint16      `json:"primary_device_type"`
	BSSTypeFlags      uint8       `json:"bss_type_flags"`
	PublicKey         []byte      `json:"public_key,omitempty"`
}

// M1Params collects the inputs of a join announcement.
type M1Params struct {
	RadioUID     message.MAC
	IfaceMAC     message.MAC
	IfaceIs5GHz  bool
	Joined       *message.SlaveJoinedNotification
	Key          *KeyExchange
}

// maxBSSSupported is what the radio advertises until the HAL exposes it.
const maxBSSSupported = 4

// BuildM1 assembles the full AP_AUTOCONFIGURATION_WSC join CMDU: the radio
// basic capabilities TLV, the WSC M1 TLV, and the vendor TLV carrying the
// joined notification.
func BuildM1(p M1Params) (*message.CMDU, error) {
	caps := RadioBasicCapabilities{
		RadioUID:        p.RadioUID,
		MaxBSSSupported: maxBSSSupported,
	}
	for i := 0; i < maxBSSSupported; i++ {
		caps.OperatingClasses = append(caps.OperatingClasses, OperatingClassInfo{
			OperatingClass:      0,
			MaxTxPowerDBM:       1,
			NonOperableChannels: []uint8{1},
		})
	}
	capsTLV, err := marshalTLV(TLVTypeAPRadioBasicCapabilities, caps)
	if err != nil {
		return nil, err
	}

	rfBand := RFBand2G
	if p.IfaceIs5GHz {
		rfBand = RFBand5G
	}

	m1 := M1{
		MAC:               p.IfaceMAC,
		Manufacturer:      Manufacturer,
		ModelName:         ModelName,
		ModelNumber:       ModelNumber,
		DeviceName:        DeviceName,
		SerialNumber:      SerialNumber,
		UUIDE:             [16]byte(uuid.NewSHA1(uuidNamespace, p.IfaceMAC[:])),
		AuthFlags:         AuthOpen | AuthWPA2,
		EncrFlags:         EncrNone,
		RFBand:            rfBand,
		PrimaryDeviceType: DeviceTypeNetworkInfraAP,
		BSSTypeFlags:      FronthaulBSS | BackhaulBSS,
	}
	if p.Key != nil {
		m1.PublicKey = p.Key.PublicKey()
	}
	m1TLV, err := marshalTLV(message.TLVTypeWSC, m1)
	if err != nil {
		return nil, err
	}

	if p.Joined == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "wsc", "BuildM1", "joined notification check")
	}
	joinedRaw, err := json.Marshal(p.Joined)
	if err != nil {
		return nil, errors.WrapInvalid(err, "wsc", "BuildM1", "joined notification marshal")
	}
	vendorTLV, err := marshalTLV(message.TLVTypeVendorSpecific, VendorTLV{
		OUI:     OUIIntel,
		Op:      message.OpControlSlaveJoinedNotification,
		Payload: joinedRaw,
	})
	if err != nil {
		return nil, err
	}

	return message.New1905(message.TypeAPAutoconfigurationWSC, 0, capsTLV, m1TLV, vendorTLV), nil
}

// BuildChannelPreferenceReport answers a channel preference query. The single
// operating-class entry is a placeholder until a real channel-sounding
// pipeline exists.
func BuildChannelPreferenceReport(mid uint16, radioUID message.MAC) (*message.CMDU, error) {
	var channels []uint8
	for ch := uint8(36); ch < 50; ch += 2 {
		channels = append(channels, ch)
	}

	pref := ChannelPreference{
		RadioUID: radioUID,
		Entries: []ChannelPreferenceEntry{{
			OperatingClass: 80,
			Channels:       channels,
			Preference:     15,
			ReasonCode:     0, // unspecified
		}},
	}
	tlv, err := marshalTLV(TLVTypeChannelPreference, pref)
	if err != nil {
		return nil, err
	}
	return message.New1905(message.TypeChannelPreferenceReport, mid, tlv), nil
}
