package message

import "fmt"

// ActionOp is a vendor-specific operation code. Opcodes are allocated in
// per-action blocks so the owning action is recoverable from the high byte.
type ActionOp uint16

// ActionFor returns the action block an opcode belongs to.
func ActionFor(op ActionOp) Action {
	return Action(op >> 8)
}

// Control opcodes (controller link).
const (
	OpControlArpQueryRequest ActionOp = 0x0100 + iota
	OpControlArpQueryResponse
	OpControlSonConfigUpdate
	OpControlHostapSetRestrictedFailsafeChannelRequest
	OpControlHostapSetRestrictedFailsafeChannelResponse
	OpControlHostapChannelSwitchACSStart
	OpControlClientStartMonitoringRequest
	OpControlClientStopMonitoringRequest
	OpControlClientRxRSSIMeasurementRequest
	OpControlClientRxRSSIMeasurementResponse
	OpControlClientRxRSSIMeasurementCmdResponse
	OpControlClientRxRSSIMeasurementStartNotification
	OpControlClientRxRSSIMeasurementNotification
	OpControlClientDisallowRequest
	OpControlClientAllowRequest
	OpControlClientDisconnectRequest
	OpControlClientDisconnectResponse
	OpControlClientBSSSteerRequest
	OpControlClientBSSSteerResponse
	OpControlControllerPingRequest
	OpControlControllerPingResponse
	OpControlAgentPingRequest
	OpControlAgentPingResponse
	OpControlChangeModuleLoggingLevel
	OpControlBackhaulRoamRequest
	OpControlBackhaulReset
	OpControlHostapTxOnRequest
	OpControlHostapTxOnResponse
	OpControlHostapTxOffRequest
	OpControlHostapStatsMeasurementRequest
	OpControlHostapStatsMeasurementResponse
	OpControlHostapSetNeighbor11kRequest
	OpControlHostapRemoveNeighbor11kRequest
	OpControlClientBeacon11kRequest
	OpControlClientBeacon11kResponse
	OpControlClientChannelLoad11kRequest
	OpControlClientChannelLoad11kResponse
	OpControlClientStatistics11kRequest
	OpControlClientStatistics11kResponse
	OpControlClientLinkMeasurement11kRequest
	OpControlClientLinkMeasurements11kResponse
	OpControlHostapUpdateStopOnFailureAttemptsRequest
	OpControlHostapDisabledByMaster
	OpControlWifiCredentialsUpdatePrepareRequest
	OpControlWifiCredentialsUpdatePrepareResponse
	OpControlWifiCredentialsUpdatePreCommitRequest
	OpControlWifiCredentialsUpdatePreCommitResponse
	OpControlWifiCredentialsUpdateCommitRequest
	OpControlWifiCredentialsUpdateAbortRequest
	OpControlVersionMismatchNotification
	OpControlSteeringClientSetGroupRequest
	OpControlSteeringClientSetGroupResponse
	OpControlSteeringClientSetRequest
	OpControlSteeringClientSetResponse
	OpControlSlaveJoinedNotification
	OpControlSlaveJoinedResponse
	OpControlClientAssociatedNotification
	OpControlClientDisconnectedNotification
	OpControlClientDHCPCompleteNotification
	OpControlClientArpMonitorNotification
	OpControlPlatformOperationalNotification
	OpControlBackhaulDlRssiReportNotification
	OpControlHostapAPDisabledNotification
	OpControlHostapAPEnabledNotification
	OpControlHostapVapsListUpdateNotification
	OpControlHostapACSNotification
	OpControlHostapCSANotification
	OpControlHostapCSAErrorNotification
	OpControlHostapDFSCACCompletedNotification
	OpControlHostapDFSChannelAvailableNotification
	OpControlClientNoResponseNotification
	OpControlClientNoActivityNotification
	OpControlHostapActivityNotification
	OpControlSteeringEventProbeReqNotification
	OpControlSteeringEventAuthFailNotification
	OpControlSteeringEventClientActivityNotification
	OpControlSteeringEventSNRXingNotification
)

// Backhaul opcodes (backhaul manager link).
const (
	OpBackhaulRegisterRequest ActionOp = 0x0200 + iota
	OpBackhaulRegisterResponse
	OpBackhaulEnable
	OpBackhaulConnectedNotification
	OpBackhaulBusyNotification
	OpBackhaulDisconnectedNotification
	OpBackhaulRoamRequest
	OpBackhaulReset
	OpBackhaulClientRxRSSIMeasurementRequest
	OpBackhaulClientRxRSSIMeasurementResponse
	OpBackhaulClientRxRSSIMeasurementCmdResponse
	OpBackhaulDlRssiReportNotification
	OpBackhaulUpdateStopOnFailureAttemptsRequest
)

// Platform opcodes (platform adapter link).
const (
	OpPlatformSonSlaveRegisterRequest ActionOp = 0x0300 + iota
	OpPlatformSonSlaveRegisterResponse
	OpPlatformGetWlanReadyStatusRequest
	OpPlatformGetWlanReadyStatusResponse
	OpPlatformWifiSetIfaceStateRequest
	OpPlatformWifiSetIfaceStateResponse
	OpPlatformWifiCredentialsSetRequest
	OpPlatformWifiCredentialsSetResponse
	OpPlatformPostInitConfigRequest
	OpPlatformPostInitConfigResponse
	OpPlatformWifiSetRadioTxStateRequest
	OpPlatformWifiSetRadioTxStateResponse
	OpPlatformArpQueryRequest
	OpPlatformArpQueryResponse
	OpPlatformArpMonitorNotification
	OpPlatformWlanParamsChangedNotification
	OpPlatformOperationalNotification
	OpPlatformDHCPMonitorNotification
	OpPlatformCredentialsUpdateRequest
	OpPlatformCredentialsUpdateResponse
	OpPlatformWifiConfigurationUpdateRequest
	OpPlatformAdvertiseSSIDFlagUpdateRequest
	OpPlatformAdvertiseSSIDFlagUpdateResponse
	OpPlatformErrorNotification
	OpPlatformVersionMismatchNotification
	OpPlatformMasterSlaveVersionsNotification
	OpPlatformBackhaulConnectionCompleteNotification
	OpPlatformWifiInterfaceStatusNotification
	OpPlatformChangeModuleLoggingLevel
)

// AP manager opcodes (AP controller worker link).
const (
	OpAPManagerInitDoneNotification ActionOp = 0x0400 + iota
	OpAPManagerJoinedNotification
	OpAPManagerHeartbeatNotification
	OpAPManagerHostapSetRestrictedFailsafeChannelRequest
	OpAPManagerHostapSetRestrictedFailsafeChannelResponse
	OpAPManagerHostapChannelSwitchACSStart
	OpAPManagerClientIreConnectedNotification
	OpAPManagerClientRxRSSIMeasurementRequest
	OpAPManagerClientRxRSSIMeasurementResponse
	OpAPManagerClientRxRSSIMeasurementCmdResponse
	OpAPManagerClientDisallowRequest
	OpAPManagerClientAllowRequest
	OpAPManagerClientDisconnectRequest
	OpAPManagerClientDisconnectResponse
	OpAPManagerClientBSSSteerRequest
	OpAPManagerClientBSSSteerResponse
	OpAPManagerHostapSetNeighbor11kRequest
	OpAPManagerHostapRemoveNeighbor11kRequest
	OpAPManagerHostapAPDisabledNotification
	OpAPManagerHostapAPEnabledNotification
	OpAPManagerHostapVapsListUpdateRequest
	OpAPManagerHostapVapsListUpdateNotification
	OpAPManagerHostapACSNotification
	OpAPManagerHostapCSANotification
	OpAPManagerHostapCSAErrorNotification
	OpAPManagerHostapDFSCACCompletedNotification
	OpAPManagerHostapDFSChannelAvailableNotification
	OpAPManagerClientAssociatedNotification
	OpAPManagerClientDisconnectedNotification
	OpAPManagerSteeringEventProbeReqNotification
	OpAPManagerSteeringEventAuthFailNotification
	OpAPManagerSteeringClientSetRequest
	OpAPManagerSteeringClientSetResponse
)

// Monitor opcodes (radio monitor worker link).
const (
	OpMonitorJoinedNotification ActionOp = 0x0500 + iota
	OpMonitorHeartbeatNotification
	OpMonitorSonConfigUpdate
	OpMonitorChangeModuleLoggingLevel
	OpMonitorClientStartMonitoringRequest
	OpMonitorClientStopMonitoringRequest
	OpMonitorClientRxRSSIMeasurementRequest
	OpMonitorClientRxRSSIMeasurementResponse
	OpMonitorClientRxRSSIMeasurementCmdResponse
	OpMonitorClientRxRSSIMeasurementStartNotification
	OpMonitorClientRxRSSIMeasurementNotification
	OpMonitorHostapStatsMeasurementRequest
	OpMonitorHostapStatsMeasurementResponse
	OpMonitorClientBeacon11kRequest
	OpMonitorClientBeacon11kResponse
	OpMonitorClientChannelLoad11kRequest
	OpMonitorClientChannelLoad11kResponse
	OpMonitorClientStatistics11kRequest
	OpMonitorClientStatistics11kResponse
	OpMonitorClientLinkMeasurement11kRequest
	OpMonitorClientLinkMeasurements11kResponse
	OpMonitorSteeringClientSetGroupRequest
	OpMonitorSteeringClientSetGroupResponse
	OpMonitorSteeringClientSetRequest
	OpMonitorSteeringClientSetResponse
	OpMonitorHostapAPDisabledNotification
	OpMonitorHostapStatusChangedNotification
	OpMonitorClientNoResponseNotification
	OpMonitorClientNoActivityNotification
	OpMonitorHostapActivityNotification
	OpMonitorErrorNotification
	OpMonitorErrorNotificationAck
	OpMonitorSteeringEventClientActivityNotification
	OpMonitorSteeringEventSNRXingNotification
)

func (op ActionOp) String() string {
	return fmt.Sprintf("%s:0x%04x", ActionFor(op), uint16(op))
}
