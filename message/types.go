// Package message defines the CMDU model carried between the supervisor, its
// worker processes, and the mesh controller: 1905.1 message types, the
// vendor-specific action header, the full action opcode catalogue, and the
// typed payloads exchanged on the wire.
package message

import (
	"fmt"
	"strings"

	"github.com/abelviageiro/prplMesh/errors"
)

// MAC is a 48-bit hardware address.
type MAC [6]byte

// ZeroMAC is the all-zero hardware address.
var ZeroMAC = MAC{}

// String renders the address in colon-separated hex.
func (m MAC) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", m[0], m[1], m[2], m[3], m[4], m[5])
}

// IsZero reports whether the address is all zeros.
func (m MAC) IsZero() bool { return m == ZeroMAC }

// ParseMAC parses a colon-separated hex hardware address.
func ParseMAC(s string) (MAC, error) {
	var m MAC
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return m, errors.WrapInvalid(fmt.Errorf("bad mac %q", s), "message", "ParseMAC", "format check")
	}
	for i, p := range parts {
		var b int
		if _, err := fmt.Sscanf(p, "%02x", &b); err != nil {
			return m, errors.WrapInvalid(fmt.Errorf("bad mac octet %q", p), "message", "ParseMAC", "octet parse")
		}
		m[i] = byte(b)
	}
	return m, nil
}

// IPv4 is a 4-byte network address.
type IPv4 [4]byte

// ZeroIPv4 is the unspecified address.
var ZeroIPv4 = IPv4{}

func (ip IPv4) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", ip[0], ip[1], ip[2], ip[3])
}

// IsZero reports whether the first octet is zero, matching the original
// "unconnected client" test used by the RSSI routing rules.
func (ip IPv4) IsZero() bool { return ip[0] == 0 }

// Type is the 1905.1 CMDU message type.
type Type uint16

const (
	// TypeVendorSpecific carries the vendor action header and a typed payload.
	TypeVendorSpecific Type = 0x0004
	// TypeAPAutoconfigurationWSC carries WSC M1/M2 TLVs.
	TypeAPAutoconfigurationWSC Type = 0x0009
	// TypeChannelPreferenceQuery is the Multi-AP channel preference query.
	TypeChannelPreferenceQuery Type = 0x8004
	// TypeChannelPreferenceReport is the Multi-AP channel preference report.
	TypeChannelPreferenceReport Type = 0x8005
)

func (t Type) String() string {
	switch t {
	case TypeVendorSpecific:
		return "VENDOR_SPECIFIC"
	case TypeAPAutoconfigurationWSC:
		return "AP_AUTOCONFIGURATION_WSC"
	case TypeChannelPreferenceQuery:
		return "CHANNEL_PREFERENCE_QUERY"
	case TypeChannelPreferenceReport:
		return "CHANNEL_PREFERENCE_REPORT"
	default:
		return fmt.Sprintf("0x%04x", uint16(t))
	}
}

// Origin identifies a peer of the supervisor. It doubles as the endpoint kind
// and as the origin key in routing rules.
type Origin uint8

const (
	OriginController Origin = iota + 1
	OriginBackhaul
	OriginPlatform
	OriginAPManager
	OriginMonitor
)

func (o Origin) String() string {
	switch o {
	case OriginController:
		return "controller"
	case OriginBackhaul:
		return "backhaul"
	case OriginPlatform:
		return "platform"
	case OriginAPManager:
		return "ap-manager"
	case OriginMonitor:
		return "monitor"
	default:
		return fmt.Sprintf("origin(%d)", uint8(o))
	}
}

// Action classifies a vendor-specific CMDU by the module that consumes it.
type Action uint8

const (
	ActionControl Action = iota + 1
	ActionBackhaul
	ActionPlatform
	ActionAPManager
	ActionMonitor
)

func (a Action) String() string {
	switch a {
	case ActionControl:
		return "CONTROL"
	case ActionBackhaul:
		return "BACKHAUL"
	case ActionPlatform:
		return "PLATFORM"
	case ActionAPManager:
		return "APMANAGER"
	case ActionMonitor:
		return "MONITOR"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// Direction marks which way a vendor frame travels on the controller link.
type Direction uint8

const (
	// DirectionToAgent marks controller-originated frames.
	DirectionToAgent Direction = 0
	// DirectionToController marks agent-originated frames.
	DirectionToController Direction = 1
)

// RadioStatus reports the state of the AP or backhaul side of a radio.
type RadioStatus uint8

const (
	RadioStatusOff RadioStatus = iota
	RadioStatusAPOK
	RadioStatusAPDFSCAC
	RadioStatusBHWired
	RadioStatusBHScan
	RadioStatusBHSignalTooLow
	RadioStatusBHSignalOK
	RadioStatusBHSignalTooHigh
)

func (rs RadioStatus) String() string {
	switch rs {
	case RadioStatusOff:
		return "off"
	case RadioStatusAPOK:
		return "ap_ok"
	case RadioStatusAPDFSCAC:
		return "ap_dfs_cac"
	case RadioStatusBHWired:
		return "bh_wired"
	case RadioStatusBHScan:
		return "bh_scan"
	case RadioStatusBHSignalTooLow:
		return "bh_signal_too_low"
	case RadioStatusBHSignalOK:
		return "bh_signal_ok"
	case RadioStatusBHSignalTooHigh:
		return "bh_signal_too_high"
	default:
		return fmt.Sprintf("radio_status(%d)", uint8(rs))
	}
}

// IfaceOperation is an interface transition requested from the platform adapter.
type IfaceOperation int8

const (
	IfaceOperNoChange IfaceOperation = iota
	IfaceOperDisable
	IfaceOperEnable
	IfaceOperRestore
	IfaceOperRestart
)

func (op IfaceOperation) String() string {
	switch op {
	case IfaceOperNoChange:
		return "no_change"
	case IfaceOperDisable:
		return "disable"
	case IfaceOperEnable:
		return "enable"
	case IfaceOperRestore:
		return "restore"
	case IfaceOperRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// WiFiSec is the parsed security mode of a credential set.
type WiFiSec uint8

const (
	WiFiSecInvalid WiFiSec = iota
	WiFiSecNone
	WiFiSecWEP64
	WiFiSecWEP128
	WiFiSecWPAPSK
	WiFiSecWPA2PSK
	WiFiSecWPAWPA2PSK
)

// ParseWiFiSec maps the platform security strings to the WiFiSec enum.
// Unknown strings map to WiFiSecInvalid.
func ParseWiFiSec(sec string) WiFiSec {
	switch sec {
	case "None":
		return WiFiSecNone
	case "WEP-64":
		return WiFiSecWEP64
	case "WEP-128":
		return WiFiSecWEP128
	case "WPA-Personal":
		return WiFiSecWPAPSK
	case "WPA2-Personal":
		return WiFiSecWPA2PSK
	case "WPA-WPA2-Personal":
		return WiFiSecWPAWPA2PSK
	default:
		return WiFiSecInvalid
	}
}

// JoinErrCode classifies the controller's response to a join attempt.
type JoinErrCode uint8

const (
	JoinRespOK JoinErrCode = iota
	JoinRespReject
	JoinRespVersionMismatch
	JoinRespSSIDMismatch
	JoinRespAdvertiseSSIDFlagMismatch
)

// Source module tags carried in RSSI measurement responses relayed to the
// controller.
const (
	EntityAPManager       uint8 = 1
	EntityBackhaulManager uint8 = 2
	EntityMonitor         uint8 = 3
)

// Logging module targets for logging-level change requests.
const (
	ProcessAll      = "all"
	ProcessSlave    = "slave"
	ProcessMonitor  = "monitor"
	ProcessPlatform = "platform"
)

// DHCP monitor operations.
const (
	DHCPOpAdd uint8 = iota
	DHCPOpDel
	DHCPOpOld
)
