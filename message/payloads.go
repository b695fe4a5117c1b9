package message

// Payload structs are shared across action blocks: a translate-and-forward
// rule re-headers a CMDU with a new opcode while carrying the same payload
// value, so a forwarded message is structurally identical to its source.

// SONConfig carries the controller-issued tuning parameters for the monitor
// and the keep-alive discipline.
type SONConfig struct {
	MonitorTotalChLoadNotificationLoThPercent    uint8 `json:"monitor_total_ch_load_notification_lo_th_percent"`
	MonitorTotalChLoadNotificationHiThPercent    uint8 `json:"monitor_total_ch_load_notification_hi_th_percent"`
	MonitorTotalChLoadNotificationDeltaThPercent uint8 `json:"monitor_total_ch_load_notification_delta_th_percent"`
	MonitorMinActiveClients                      uint8 `json:"monitor_min_active_clients"`
	MonitorActiveClientTh                        uint8 `json:"monitor_active_client_th"`
	MonitorClientLoadNotificationDeltaThPercent  uint8 `json:"monitor_client_load_notification_delta_th_percent"`
	MonitorRxRSSINotificationThresholdDBM        int8  `json:"monitor_rx_rssi_notification_threshold_dbm"`
	MonitorRxRSSINotificationDeltaDB             uint8 `json:"monitor_rx_rssi_notification_delta_db"`
	MonitorAPIdleThresholdB                      uint32
	MonitorAPActiveThresholdB                    uint32 `json:"monitor_ap_active_threshold_b"`
	MonitorAPIdleStableTimeSec                   uint16 `json:"monitor_ap_idle_stable_time_sec"`
	MonitorDisableInitiativeArp                  uint8  `json:"monitor_disable_initiative_arp"`
	SlaveKeepAliveRetries                        uint8  `json:"slave_keep_alive_retries"`
}

// PlatformSettings is the role and credential state owned by the platform adapter.
type PlatformSettings struct {
	LocalMaster        bool     `json:"local_master"`
	LocalGW            bool     `json:"local_gw"`
	Onboarding         bool     `json:"onboarding"`
	PassiveModeEnabled bool     `json:"passive_mode_enabled"`
	WiredBackhaul      bool     `json:"wired_backhaul"`
	FrontSSID          string   `json:"front_ssid"`
	FrontPass          string   `json:"front_pass"`
	FrontSecurityType  string   `json:"front_security_type"`
	BackSSID           string   `json:"back_ssid"`
	BackPass           string   `json:"back_pass"`
	BackSecurityType   string   `json:"back_security_type"`
	BackhaulVapsBSSID  []MAC    `json:"backhaul_vaps_bssid,omitempty"`
}

// WlanSettings is the per-radio WLAN state owned by the platform adapter.
type WlanSettings struct {
	BandEnabled   bool   `json:"band_enabled"`
	ACSEnabled    bool   `json:"acs_enabled"`
	AdvertiseSSID bool   `json:"advertise_ssid"`
	SSID          string `json:"ssid"`
	Pass          string `json:"pass"`
	SecurityType  string `json:"security_type"`
}

// ScanMeasurement is one entry of the bounded backhaul scan history.
type ScanMeasurement struct {
	MAC     MAC   `json:"mac"`
	Channel uint8 `json:"channel"`
	RSSI    int8  `json:"rssi"`
}

// BackhaulConnectedParams is the payload of the backhaul connected notification.
type BackhaulConnectedParams struct {
	IsBackhaulManager   bool              `json:"is_backhaul_manager"`
	GWIPv4              IPv4              `json:"gw_ipv4"`
	GWBridgeMAC         MAC               `json:"gw_bridge_mac"`
	ControllerBridgeMAC MAC               `json:"controller_bridge_mac"`
	BridgeMAC           MAC               `json:"bridge_mac"`
	BridgeIPv4          IPv4              `json:"bridge_ipv4"`
	BackhaulMAC         MAC               `json:"backhaul_mac"`
	BackhaulIPv4        IPv4              `json:"backhaul_ipv4"`
	BackhaulBSSID       MAC               `json:"backhaul_bssid"`
	BackhaulChannel     uint8             `json:"backhaul_channel"`
	BackhaulIsWireless  bool              `json:"backhaul_is_wireless"`
	BackhaulIfaceType   string            `json:"backhaul_iface_type"`
	ScanMeasurements    []ScanMeasurement `json:"scan_measurements,omitempty"`
}

// BackhaulRegisterRequest registers this supervisor with the backhaul manager.
type BackhaulRegisterRequest struct {
	StaIface          string `json:"sta_iface"`
	HostapIface       string `json:"hostap_iface"`
	LocalMaster       bool   `json:"local_master"`
	LocalGW           bool   `json:"local_gw"`
	StaIfaceFilterLow bool   `json:"sta_iface_filter_low"`
	Onboarding        bool   `json:"onboarding"`
}

// BackhaulEnable asks the backhaul manager to bring the uplink up.
type BackhaulEnable struct {
	SSID              string  `json:"ssid"`
	Pass              string  `json:"pass"`
	SecurityType      WiFiSec `json:"security_type"`
	WireIface         string  `json:"wire_iface"`
	WireIfaceType     string  `json:"wire_iface_type"`
	WirelessIfaceType string  `json:"wireless_iface_type"`
	WiredBackhaul     bool    `json:"wired_backhaul"`
	IfaceMAC          MAC     `json:"iface_mac"`
	IfaceIs5GHz       bool    `json:"iface_is_5ghz"`
	PreferredBSSID    MAC     `json:"preferred_bssid"`
	APIface           string  `json:"ap_iface"`
	StaIface          string  `json:"sta_iface"`
	BridgeIface       string  `json:"bridge_iface"`
}

// BackhaulDisconnected reports an uplink loss; Stopped latches the supervisor.
type BackhaulDisconnected struct {
	Stopped bool `json:"stopped"`
}

// DlRssiReport is the periodic downlink RSSI sample from the backhaul manager.
type DlRssiReport struct {
	RSSI int8 `json:"rssi"`
}

// HostApParams is learned from the AP controller worker when it joins.
type HostApParams struct {
	IfaceName    string `json:"iface_name"`
	IfaceMAC     MAC    `json:"iface_mac"`
	IfaceIs5GHz  bool   `json:"iface_is_5ghz"`
	Capabilities uint32 `json:"capabilities"`
	AntGain      int8   `json:"ant_gain"`
}

// ChannelSwitchParams describes the radio's current channel configuration.
type ChannelSwitchParams struct {
	Channel          uint8 `json:"channel"`
	Bandwidth        uint8 `json:"bandwidth"`
	ChannelExtAbove  int8  `json:"channel_ext_above"`
	VHTCenterFreq    uint16
	TxPower          int8 `json:"tx_power"`
	IsDFSChannel     bool `json:"is_dfs_channel"`
}

// APManagerJoined is the payload of the AP worker joined notification.
type APManagerJoined struct {
	Params   HostApParams        `json:"params"`
	CSParams ChannelSwitchParams `json:"cs_params"`
}

// VapInfo describes one virtual AP on the radio.
type VapInfo struct {
	MAC  MAC    `json:"mac"`
	SSID string `json:"ssid"`
	Backhaul bool `json:"backhaul"`
}

// VapsList carries the current set of VAPs.
type VapsList struct {
	Vaps []VapInfo `json:"vaps"`
}

// VapID singles out a VAP; RadioVapID addresses the radio itself.
type VapID struct {
	VapID int8 `json:"vap_id"`
}

// RadioVapID is the VAP id addressing the whole radio.
const RadioVapID int8 = -1

// VapEvent carries a per-VAP enable notification.
type VapEvent struct {
	VapID   int8    `json:"vap_id"`
	VapInfo VapInfo `json:"vap_info"`
}

// ACSNotification reports an automatic channel selection outcome.
type ACSNotification struct {
	CSParams          ChannelSwitchParams `json:"cs_params"`
	SupportedChannels []uint8             `json:"supported_channels,omitempty"`
}

// CSANotification reports a channel switch announcement.
type CSANotification struct {
	CSParams ChannelSwitchParams `json:"cs_params"`
}

// DFSParams reports DFS CAC completion or channel availability.
type DFSParams struct {
	Channel      uint8  `json:"channel"`
	Bandwidth    uint8  `json:"bandwidth"`
	Success      bool   `json:"success"`
	TimeoutSec   uint16 `json:"timeout_sec,omitempty"`
}

// ClientAssociationParams describes a client (dis)association event.
type ClientAssociationParams struct {
	MAC          MAC    `json:"mac"`
	VapID        int8   `json:"vap_id"`
	Capabilities uint32 `json:"capabilities,omitempty"`
	Reason       uint16 `json:"reason,omitempty"`
	Source       uint8  `json:"source,omitempty"`
	Type         uint8  `json:"type,omitempty"`
}

// ClientMonitoringParams starts client monitoring.
type ClientMonitoringParams struct {
	MAC             MAC  `json:"mac"`
	BridgeFourAddr  MAC  `json:"bridge_4addr_mac"`
	IPv4            IPv4 `json:"ipv4"`
	IsIRE           bool `json:"is_ire"`
}

// ClientMAC addresses a single client.
type ClientMAC struct {
	MAC MAC `json:"mac"`
}

// RSSIMeasurementRequest asks for an RX RSSI measurement of a client.
type RSSIMeasurementRequest struct {
	MAC       MAC   `json:"mac"`
	IPv4      IPv4  `json:"ipv4"`
	Channel   uint8 `json:"channel"`
	Bandwidth uint8 `json:"bandwidth"`
	Cross     bool  `json:"cross"`
	MeasurementDelay uint16 `json:"measurement_delay,omitempty"`
}

// RSSIMeasurementResponse carries the measured RX RSSI; SrcModule is tagged
// with the entity that produced the measurement before the controller relay.
type RSSIMeasurementResponse struct {
	MAC       MAC   `json:"mac"`
	RxRSSI    int8  `json:"rx_rssi"`
	RxSNR     int8  `json:"rx_snr,omitempty"`
	RxPackets uint16 `json:"rx_packets,omitempty"`
	SrcModule uint8 `json:"src_module"`
}

// ClientDisallow blocks a client from the radio.
type ClientDisallow struct {
	MAC       MAC  `json:"mac"`
	RejectSta bool `json:"reject_sta"`
}

// ClientAllow re-admits a client.
type ClientAllow struct {
	MAC  MAC  `json:"mac"`
	IPv4 IPv4 `json:"ipv4"`
}

// ClientDisconnect forces a client off a VAP.
type ClientDisconnect struct {
	MAC    MAC    `json:"mac"`
	VapID  int8   `json:"vap_id"`
	Type   uint8  `json:"type"`
	Reason uint16 `json:"reason"`
}

// ClientDisconnectResult reports the outcome of a forced disconnect.
type ClientDisconnectResult struct {
	MAC     MAC   `json:"mac"`
	VapID   int8  `json:"vap_id"`
	Success bool  `json:"success"`
}

// BSSSteerRequest steers a client toward a target BSS.
type BSSSteerRequest struct {
	MAC             MAC    `json:"mac"`
	TargetBSSID     MAC    `json:"target_bssid"`
	TargetChannel   uint8  `json:"target_channel"`
	DisassocTimerMS uint16 `json:"disassoc_timer_ms"`
	DisassocImminent bool  `json:"disassoc_imminent"`
}

// BSSSteerResponse reports the client's BTM response.
type BSSSteerResponse struct {
	MAC        MAC   `json:"mac"`
	StatusCode uint8 `json:"status_code"`
}

// PingParams drives both ping directions; Data pads the frame to Size bytes.
type PingParams struct {
	Total uint16 `json:"total"`
	Seq   uint16 `json:"seq"`
	Size  uint16 `json:"size"`
	Data  []byte `json:"data,omitempty"`
}

// LoggingLevelParams changes a module's logging level.
type LoggingLevelParams struct {
	ModuleName string `json:"module_name"`
	LogLevel   string `json:"log_level"`
	Enable     bool   `json:"enable"`
}

// BackhaulRoamParams reconfigures the wireless uplink toward a BSSID.
type BackhaulRoamParams struct {
	BSSID   MAC   `json:"bssid"`
	Channel uint8 `json:"channel"`
}

// StatsMeasurementRequest triggers an AP statistics measurement.
type StatsMeasurementRequest struct {
	Sync bool `json:"sync"`
}

// APStats is the radio-wide statistics block.
type APStats struct {
	ActiveClientCount  uint8  `json:"active_client_count"`
	ChannelLoadPercent uint8  `json:"channel_load_percent"`
	BytesSent          uint64 `json:"bytes_sent"`
	BytesReceived      uint64 `json:"bytes_received"`
	PacketsSent        uint64 `json:"packets_sent"`
	PacketsReceived    uint64 `json:"packets_received"`
	ErrorsSent         uint32 `json:"errors_sent"`
	ErrorsReceived     uint32 `json:"errors_received"`
	RetransCount       uint32 `json:"retrans_count"`
}

// StaStats is a per-client statistics block.
type StaStats struct {
	MAC           MAC    `json:"mac"`
	RxRSSI        int8   `json:"rx_rssi"`
	TxPhyRate     uint16 `json:"tx_phy_rate"`
	RxPhyRate     uint16 `json:"rx_phy_rate"`
	BytesSent     uint64 `json:"bytes_sent"`
	BytesReceived uint64 `json:"bytes_received"`
}

// StatsMeasurementResponse carries AP plus per-client statistics.
type StatsMeasurementResponse struct {
	AP  APStats    `json:"ap"`
	Sta []StaStats `json:"sta,omitempty"`
}

// Neighbor11kParams adds or removes an 802.11k neighbor entry.
type Neighbor11kParams struct {
	BSSID   MAC   `json:"bssid"`
	MAC     MAC   `json:"mac,omitempty"`
	Channel uint8 `json:"channel"`
	VapID   int8  `json:"vap_id"`
}

// Beacon11kRequest requests an 802.11k beacon measurement from a client.
type Beacon11kRequest struct {
	MAC             MAC    `json:"mac"`
	BSSID           MAC    `json:"bssid"`
	Channel         uint8  `json:"channel"`
	SSID            string `json:"ssid,omitempty"`
	UseOptionalSSID bool   `json:"use_optional_ssid"`
	MeasurementMode uint8  `json:"measurement_mode"`
	DurationMS      uint16 `json:"duration_ms"`
}

// Beacon11kResponse is the client's beacon measurement report.
type Beacon11kResponse struct {
	MAC      MAC   `json:"mac"`
	BSSID    MAC   `json:"bssid"`
	Channel  uint8 `json:"channel"`
	RCPI     int8  `json:"rcpi"`
	RSNI     uint8 `json:"rsni"`
	RepMode  uint8 `json:"rep_mode"`
}

// ChannelLoad11kRequest requests a channel-load measurement.
type ChannelLoad11kRequest struct {
	MAC     MAC   `json:"mac"`
	Channel uint8 `json:"channel"`
}

// ChannelLoad11kResponse is the channel-load measurement report.
type ChannelLoad11kResponse struct {
	MAC         MAC   `json:"mac"`
	Channel     uint8 `json:"channel"`
	ChannelLoad uint8 `json:"channel_load"`
}

// Statistics11kRequest requests an 802.11k STA statistics report.
type Statistics11kRequest struct {
	MAC     MAC   `json:"mac"`
	GroupID uint8 `json:"group_id"`
}

// Statistics11kResponse is the STA statistics report.
type Statistics11kResponse struct {
	MAC            MAC      `json:"mac"`
	GroupID        uint8    `json:"group_id"`
	StatisticsList []uint32 `json:"statistics_list,omitempty"`
}

// StopOnFailureAttempts updates the failure budget.
type StopOnFailureAttempts struct {
	Attempts int `json:"attempts"`
}

// WifiCredentials is a credential triple used by update and unify flows.
type WifiCredentials struct {
	SSID string  `json:"ssid"`
	Pass string  `json:"pass"`
	Sec  WiFiSec `json:"sec"`
}

// Versions pairs the controller and agent software versions.
type Versions struct {
	MasterVersion string `json:"master_version"`
	SlaveVersion  string `json:"slave_version"`
}

// SteeringClientSetGroup configures a steering group.
type SteeringClientSetGroup struct {
	Remove             bool  `json:"remove"`
	SteeringGroupIndex uint32 `json:"steering_group_index"`
	BSSID              MAC   `json:"bssid"`
	UtilCheckIntervalSec   uint32 `json:"util_check_interval_sec"`
	UtilAvgCount           uint32 `json:"util_avg_count"`
	InactCheckIntervalSec  uint32 `json:"inact_check_interval_sec"`
	InactCheckThresholdSec uint32 `json:"inact_check_threshold_sec"`
}

// SteeringClientSet configures per-client steering thresholds.
type SteeringClientSet struct {
	Remove             bool   `json:"remove"`
	SteeringGroupIndex uint32 `json:"steering_group_index"`
	ClientMAC          MAC    `json:"client_mac"`
	BSSID              MAC    `json:"bssid"`
	SNRProbeHWM        int    `json:"snr_probe_hwm"`
	SNRProbeLWM        int    `json:"snr_probe_lwm"`
	SNRAuthHWM         int    `json:"snr_auth_hwm"`
	SNRAuthLWM         int    `json:"snr_auth_lwm"`
	SNRInactXing       int    `json:"snr_inact_xing"`
	SNRHighXing        int    `json:"snr_high_xing"`
	SNRLowXing         int    `json:"snr_low_xing"`
	AuthRejectReason   uint8  `json:"auth_reject_reason"`
}

// SteeringSetResult reports the outcome of a steering set operation.
type SteeringSetResult struct {
	Error uint8 `json:"error"`
}

// SteeringEventProbeReq reports a probe request seen during steering.
type SteeringEventProbeReq struct {
	MAC       MAC   `json:"mac"`
	SNR       uint8 `json:"snr"`
	Broadcast bool  `json:"broadcast"`
	Blocked   bool  `json:"blocked"`
}

// SteeringEventAuthFail reports a blocked or failed authentication.
type SteeringEventAuthFail struct {
	MAC     MAC   `json:"mac"`
	SNR     uint8 `json:"snr"`
	Reason  uint8 `json:"reason"`
	Blocked bool  `json:"blocked"`
	Reject  bool  `json:"reject"`
}

// SteeringEventClientActivity reports a client activity change.
type SteeringEventClientActivity struct {
	MAC    MAC  `json:"mac"`
	Active bool `json:"active"`
}

// SteeringEventSNRXing reports an SNR threshold crossing.
type SteeringEventSNRXing struct {
	MAC      MAC   `json:"mac"`
	SNR      uint8 `json:"snr"`
	InactXing uint8 `json:"inact_xing"`
	HighXing  uint8 `json:"high_xing"`
	LowXing   uint8 `json:"low_xing"`
}

// SlaveJoinedNotification announces this radio to the controller inside the
// WSC M1 vendor TLV.
type SlaveJoinedNotification struct {
	SlaveVersion       string                  `json:"slave_version"`
	Platform           string                  `json:"platform"`
	LowPassFilterOn    bool                    `json:"low_pass_filter_on"`
	EnableRepeaterMode bool                    `json:"enable_repeater_mode"`
	RadioIdentifier    MAC                     `json:"radio_identifier"`
	IsSlaveReconf      bool                    `json:"is_slave_reconf"`
	PlatformSettings   PlatformSettings        `json:"platform_settings"`
	WlanSettings       WlanSettings            `json:"wlan_settings"`
	Backhaul           BackhaulConnectedParams `json:"backhaul_params"`
	Hostap             HostApParams            `json:"hostap"`
	CSParams           ChannelSwitchParams     `json:"cs_params"`
}

// SlaveJoinedResponse is the controller's verdict on a join attempt.
type SlaveJoinedResponse struct {
	ErrCode       JoinErrCode `json:"err_code"`
	MasterVersion string      `json:"master_version"`
	Config        SONConfig   `json:"config"`
}

// ArpQueryParams identifies the node an ARP query concerns.
type ArpQueryParams struct {
	MAC  MAC  `json:"mac"`
	IPv4 IPv4 `json:"ipv4"`
}

// ArpMonitorParams reports an observed ARP state change.
type ArpMonitorParams struct {
	MAC    MAC    `json:"mac"`
	IPv4   IPv4   `json:"ipv4"`
	Iface  string `json:"iface"`
	State  uint8  `json:"state"`
	Source uint8  `json:"source"`
	Type   uint8  `json:"type"`
}

// DHCPMonitorNotification reports a DHCP lease event from the platform adapter.
type DHCPMonitorNotification struct {
	Op       uint8  `json:"op"`
	MAC      MAC    `json:"mac"`
	IPv4     IPv4   `json:"ipv4"`
	Hostname string `json:"hostname"`
}

// DHCPCompleteNotification relays a completed lease to the controller.
type DHCPCompleteNotification struct {
	MAC  MAC    `json:"mac"`
	IPv4 IPv4   `json:"ipv4"`
	Name string `json:"name"`
}

// OperationalNotification reports platform operational state; the relay to the
// controller adds the local bridge MAC.
type OperationalNotification struct {
	Operational bool `json:"operational"`
	BridgeMAC   MAC  `json:"bridge_mac,omitempty"`
}

// PlatformRegisterRequest registers the supervisor with the platform adapter.
type PlatformRegisterRequest struct {
	IfaceName string `json:"iface_name"`
}

// PlatformRegisterResponse returns the platform and WLAN settings.
type PlatformRegisterResponse struct {
	Valid            bool             `json:"valid"`
	PlatformSettings PlatformSettings `json:"platform_settings"`
	WlanSettings     WlanSettings     `json:"wlan_settings"`
}

// ResultResponse is a generic success/failure result.
type ResultResponse struct {
	Result bool `json:"result"`
}

// IfaceStateRequest asks the platform adapter to transition an interface.
type IfaceStateRequest struct {
	IfaceName string         `json:"iface_name"`
	Operation IfaceOperation `json:"operation"`
}

// IfaceStateResponse reports the transition outcome.
type IfaceStateResponse struct {
	IfaceName string         `json:"iface_name"`
	Operation IfaceOperation `json:"operation"`
	Success   bool           `json:"success"`
}

// CredentialsSetRequest writes credentials to an interface.
type CredentialsSetRequest struct {
	IfaceName    string `json:"iface_name"`
	SSID         string `json:"ssid"`
	Pass         string `json:"pass"`
	SecurityType string `json:"security_type"`
}

// CredentialsSetResponse reports the credential write outcome.
type CredentialsSetResponse struct {
	IfaceName string `json:"iface_name"`
	Success   bool   `json:"success"`
}

// IfaceNameRequest carries a bare interface name.
type IfaceNameRequest struct {
	IfaceName string `json:"iface_name"`
}

// RadioTxStateRequest enables or disables radio transmission.
type RadioTxStateRequest struct {
	IfaceName string `json:"iface_name"`
	Enable    bool   `json:"enable"`
}

// RadioTxStateResponse reports the TX transition outcome.
type RadioTxStateResponse struct {
	IfaceName string `json:"iface_name"`
	Enable    bool   `json:"enable"`
	Success   bool   `json:"success"`
}

// WlanParamsChangedNotification carries the new WLAN settings.
type WlanParamsChangedNotification struct {
	WlanSettings WlanSettings `json:"wlan_settings"`
}

// WifiConfigurationUpdateRequest signals start or completion of an external
// WiFi configuration change.
type WifiConfigurationUpdateRequest struct {
	ConfigStart bool `json:"config_start"`
}

// AdvertiseSSIDFlag flips the advertise-SSID flag on the platform.
type AdvertiseSSIDFlag struct {
	Flag bool `json:"flag"`
}

// PlatformErrorNotification surfaces a typed error to the platform adapter.
type PlatformErrorNotification struct {
	Code uint32 `json:"code"`
	Data string `json:"data,omitempty"`
}

// BackhaulConnectionComplete tells the platform adapter the uplink is up.
type BackhaulConnectionComplete struct {
	IsBackhaulManager bool `json:"is_backhaul_manager"`
}

// InterfaceStatusNotification reports radio status to the platform adapter.
type InterfaceStatusNotification struct {
	IfaceNameAP       string      `json:"iface_name_ap"`
	IfaceNameBH       string      `json:"iface_name_bh"`
	StatusAP          RadioStatus `json:"status_ap"`
	StatusBH          RadioStatus `json:"status_bh"`
	StatusBHWired     RadioStatus `json:"status_bh_wired"`
	IsBHManager       bool        `json:"is_bh_manager"`
	StatusOperational bool        `json:"status_operational"`
}

// HostapStatusChanged reports monitor-observed hostap state; -1 means
// unchanged.
type HostapStatusChanged struct {
	NewTxState            int8 `json:"new_tx_state"`
	NewHostapEnabledState int8 `json:"new_hostap_enabled_state"`
}

// MonitorError carries a typed monitor worker error code.
type MonitorError struct {
	ErrorCode uint8 `json:"error_code"`
}

// Monitor worker error codes.
const (
	MonitorErrHostapDisabled uint8 = iota + 1
	MonitorErrAttachFail
	MonitorErrSuddenDetach
	MonitorErrHALDisconnected
	MonitorErrReportProcessFail
)

// AP manager worker error codes.
const (
	APManagerErrNone uint8 = iota
	APManagerErrHostapDisabled
	APManagerErrAttachFail
	APManagerErrSuddenDetach
	APManagerErrHALDisconnected
	APManagerErrCACTimeout
)
