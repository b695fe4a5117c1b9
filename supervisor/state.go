// Package supervisor implements the per-radio slave supervisor: its finite
// state machine, the message-routing rules over the worker and controller
// endpoints, the liveness discipline, and the reset machinery.
package supervisor

import "time"

// State is the supervisor FSM state. Exactly one is active at any time;
// transitions happen only in the FSM step or as direct reactions to incoming
// messages.
type State int

const (
	StateWaitBeforeInit State = iota
	StateInit
	StateConnectToPlatformManager
	StateWaitForPlatformManagerRegisterResponse
	StateConnectToBackhaulManager
	StateWaitForBackhaulManagerRegisterResponse
	StateJoinInit
	StateGetWlanReadyStatus
	StateWaitForWlanReadyStatusResponse
	StateJoinInitBringUpInterfaces
	StateJoinInitWaitForIfaceChangeDone
	StateStartAPManager
	StateWaitForAPManagerInitDoneNotification
	StateWaitForAPManagerJoined
	StateAPManagerJoined
	StateUnifyWifiCredentials
	StateWaitForUnifyWifiCredentialsResponse
	StateStartMonitor
	StateWaitForMonitorJoined
	StateBackhaulEnable
	StateSendBackhaulManagerEnable
	StateWaitForBackhaulManagerConnectedNotification
	StateWaitBackhaulManagerBusy
	StateBackhaulManagerConnected
	StateWaitBeforeJoinMaster
	StateJoinMaster
	StateWaitForJoinedResponse
	StateUpdateMonitorSonConfig
	StateOperational
	StateOnboarding
	StateWaitForPlatformCredentialsUpdateResponse
	StateWaitForWifiConfigurationUpdateComplete
	StateWaitForAnotherWifiConfigurationUpdate
	StateVersionMismatch
	StateSSIDMismatch
	StateStopped
)

var stateNames = map[State]string{
	StateWaitBeforeInit:                              "WAIT_BEFORE_INIT",
	StateInit:                                        "INIT",
	StateConnectToPlatformManager:                    "CONNECT_TO_PLATFORM_MANAGER",
	StateWaitForPlatformManagerRegisterResponse:      "WAIT_FOR_PLATFORM_MANAGER_REGISTER_RESPONSE",
	StateConnectToBackhaulManager:                    "CONNECT_TO_BACKHAUL_MANAGER",
	StateWaitForBackhaulManagerRegisterResponse:      "WAIT_FOR_BACKHAUL_MANAGER_REGISTER_RESPONSE",
	StateJoinInit:                                    "JOIN_INIT",
	StateGetWlanReadyStatus:                          "GET_WLAN_READY_STATUS",
	StateWaitForWlanReadyStatusResponse:              "WAIT_FOR_WLAN_READY_STATUS_RESPONSE",
	StateJoinInitBringUpInterfaces:                   "JOIN_INIT_BRING_UP_INTERFACES",
	StateJoinInitWaitForIfaceChangeDone:              "JOIN_INIT_WAIT_FOR_IFACE_CHANGE_DONE",
	StateStartAPManager:                              "START_AP_MANAGER",
	StateWaitForAPManagerInitDoneNotification:        "WAIT_FOR_AP_MANAGER_INIT_DONE_NOTIFICATION",
	StateWaitForAPManagerJoined:                      "WAIT_FOR_AP_MANAGER_JOINED",
	StateAPManagerJoined:                             "AP_MANAGER_JOINED",
	StateUnifyWifiCredentials:                        "UNIFY_WIFI_CREDENTIALS",
	StateWaitForUnifyWifiCredentialsResponse:         "WAIT_FOR_UNIFY_WIFI_CREDENTIALS_RESPONSE",
	StateStartMonitor:                                "START_MONITOR",
	StateWaitForMonitorJoined:                        "WAIT_FOR_MONITOR_JOINED",
	StateBackhaulEnable:                              "BACKHAUL_ENABLE",
	StateSendBackhaulManagerEnable:                   "SEND_BACKHAUL_MANAGER_ENABLE",
	StateWaitForBackhaulManagerConnectedNotification: "WAIT_FOR_BACKHAUL_MANAGER_CONNECTED_NOTIFICATION",
	StateWaitBackhaulManagerBusy:                     "WAIT_BACKHAUL_MANAGER_BUSY",
	StateBackhaulManagerConnected:                    "BACKHAUL_MANAGER_CONNECTED",
	StateWaitBeforeJoinMaster:                        "WAIT_BEFORE_JOIN_MASTER",
	StateJoinMaster:                                  "JOIN_MASTER",
	StateWaitForJoinedResponse:                       "WAIT_FOR_JOINED_RESPONSE",
	StateUpdateMonitorSonConfig:                      "UPDATE_MONITOR_SON_CONFIG",
	StateOperational:                                 "OPERATIONAL",
	StateOnboarding:                                  "ONBOARDING",
	StateWaitForPlatformCredentialsUpdateResponse:    "WAIT_FOR_PLATFORM_CREDENTIALS_UPDATE_RESPONSE",
	StateWaitForWifiConfigurationUpdateComplete:      "WAIT_FOR_WIFI_CONFIGURATION_UPDATE_COMPLETE",
	StateWaitForAnotherWifiConfigurationUpdate:       "WAIT_FOR_ANOTHER_WIFI_CONFIGURATION_UPDATE",
	StateVersionMismatch:                             "VERSION_MISMATCH",
	StateSSIDMismatch:                                "SSID_MISMATCH",
	StateStopped:                                     "STOPPED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Supervisor timing constants.
const (
	SelectTimeout = 500 * time.Millisecond

	SlaveInitDelay                     = 4 * time.Second
	ConnectPlatformRetrySleep          = 1 * time.Second
	ConnectPlatformRetryMax            = 5
	PlatformRegisterResponseTimeout    = 10 * time.Second
	WlanReadyStatusResponseTimeout     = 10 * time.Second
	UnifyWifiCredentialsTimeout        = 60 * time.Second
	WaitBeforeSendBHEnable             = 1 * time.Second
	WaitBeforeJoinMasterDelay          = 4 * time.Second
	WaitForJoinedResponseTimeout       = 10 * time.Second
	CredentialsUpdateResponseTimeout   = 60 * time.Second
	WifiConfigurationCompleteTimeout   = 60 * time.Second
	WifiConfigurationAnotherTimeout    = 10 * time.Second
	MaxWirelessReconnectionTime        = 30 * time.Second

	// Downlink RSSI hysteresis thresholds.
	BHSignalRSSIThresholdLow        = -75
	BHSignalRSSIThresholdHigh       = -40
	BHSignalRSSIThresholdHysteresis = 2
)
