package message

// payloadRegistry maps a vendor opcode to a factory for its payload type, so
// the codec can decode frames into the typed payloads the router dispatches
// on. Opcodes without an entry carry no payload.
var payloadRegistry = map[ActionOp]func() any{
	// Control
	OpControlArpQueryRequest:                            func() any { return &ArpQueryParams{} },
	OpControlArpQueryResponse:                           func() any { return &ArpQueryParams{} },
	OpControlSonConfigUpdate:                            func() any { return &SONConfig{} },
	OpControlHostapSetRestrictedFailsafeChannelRequest:  func() any { return &ChannelSwitchParams{} },
	OpControlHostapSetRestrictedFailsafeChannelResponse: func() any { return &ResultResponse{} },
	OpControlHostapChannelSwitchACSStart:                func() any { return &ChannelSwitchParams{} },
	OpControlClientStartMonitoringRequest:               func() any { return &ClientMonitoringParams{} },
	OpControlClientStopMonitoringRequest:                func() any { return &ClientMAC{} },
	OpControlClientRxRSSIMeasurementRequest:             func() any { return &RSSIMeasurementRequest{} },
	OpControlClientRxRSSIMeasurementResponse:            func() any { return &RSSIMeasurementResponse{} },
	OpControlClientRxRSSIMeasurementCmdResponse:         func() any { return &ClientMAC{} },
	OpControlClientRxRSSIMeasurementStartNotification:   func() any { return &ClientMAC{} },
	OpControlClientRxRSSIMeasurementNotification:        func() any { return &RSSIMeasurementResponse{} },
	OpControlClientDisallowRequest:                      func() any { return &ClientDisallow{} },
	OpControlClientAllowRequest:                         func() any { return &ClientAllow{} },
	OpControlClientDisconnectRequest:                    func() any { return &ClientDisconnect{} },
	OpControlClientDisconnectResponse:                   func() any { return &ClientDisconnectResult{} },
	OpControlClientBSSSteerRequest:                      func() any { return &BSSSteerRequest{} },
	OpControlClientBSSSteerResponse:                     func() any { return &BSSSteerResponse{} },
	OpControlControllerPingRequest:                      func() any { return &PingParams{} },
	OpControlControllerPingResponse:                     func() any { return &PingParams{} },
	OpControlAgentPingRequest:                           func() any { return &PingParams{} },
	OpControlAgentPingResponse:                          func() any { return &PingParams{} },
	OpControlChangeModuleLoggingLevel:                   func() any { return &LoggingLevelParams{} },
	OpControlBackhaulRoamRequest:                        func() any { return &BackhaulRoamParams{} },
	OpControlHostapStatsMeasurementRequest:              func() any { return &StatsMeasurementRequest{} },
	OpControlHostapStatsMeasurementResponse:             func() any { return &StatsMeasurementResponse{} },
	OpControlHostapSetNeighbor11kRequest:                func() any { return &Neighbor11kParams{} },
	OpControlHostapRemoveNeighbor11kRequest:             func() any { return &Neighbor11kParams{} },
	OpControlClientBeacon11kRequest:                     func() any { return &Beacon11kRequest{} },
	OpControlClientBeacon11kResponse:                    func() any { return &Beacon11kResponse{} },
	OpControlClientChannelLoad11kRequest:                func() any { return &ChannelLoad11kRequest{} },
	OpControlClientChannelLoad11kResponse:               func() any { return &ChannelLoad11kResponse{} },
	OpControlClientStatistics11kRequest:                 func() any { return &Statistics11kRequest{} },
	OpControlClientStatistics11kResponse:                func() any { return &Statistics11kResponse{} },
	OpControlClientLinkMeasurement11kRequest:            func() any { return &ClientMAC{} },
	OpControlClientLinkMeasurements11kResponse:          func() any { return &ClientMAC{} },
	OpControlHostapUpdateStopOnFailureAttemptsRequest:   func() any { return &StopOnFailureAttempts{} },
	OpControlWifiCredentialsUpdatePrepareRequest:        func() any { return &WifiCredentials{} },
	OpControlVersionMismatchNotification:                func() any { return &Versions{} },
	OpControlSteeringClientSetGroupRequest:              func() any { return &SteeringClientSetGroup{} },
	OpControlSteeringClientSetGroupResponse:             func() any { return &SteeringSetResult{} },
	OpControlSteeringClientSetRequest:                   func() any { return &SteeringClientSet{} },
	OpControlSteeringClientSetResponse:                  func() any { return &SteeringSetResult{} },
	OpControlSlaveJoinedNotification:                    func() any { return &SlaveJoinedNotification{} },
	OpControlSlaveJoinedResponse:                        func() any { return &SlaveJoinedResponse{} },
	OpControlClientAssociatedNotification:               func() any { return &ClientAssociationParams{} },
	OpControlClientDisconnectedNotification:             func() any { return &ClientAssociationParams{} },
	OpControlClientDHCPCompleteNotification:             func() any { return &DHCPCompleteNotification{} },
	OpControlClientArpMonitorNotification:               func() any { return &ArpMonitorParams{} },
	OpControlPlatformOperationalNotification:            func() any { return &OperationalNotification{} },
	OpControlBackhaulDlRssiReportNotification:           func() any { return &DlRssiReport{} },
	OpControlHostapAPDisabledNotification:               func() any { return &VapID{} },
	OpControlHostapAPEnabledNotification:                func() any { return &VapEvent{} },
	OpControlHostapVapsListUpdateNotification:           func() any { return &VapsList{} },
	OpControlHostapACSNotification:                      func() any { return &ACSNotification{} },
	OpControlHostapCSANotification:                      func() any { return &CSANotification{} },
	OpControlHostapCSAErrorNotification:                 func() any { return &CSANotification{} },
	OpControlHostapDFSCACCompletedNotification:          func() any { return &DFSParams{} },
	OpControlHostapDFSChannelAvailableNotification:      func() any { return &DFSParams{} },
	OpControlClientNoResponseNotification:               func() any { return &ClientMAC{} },
	OpControlClientNoActivityNotification:               func() any { return &ClientMAC{} },
	OpControlHostapActivityNotification:                 func() any { return &APStats{} },
	OpControlSteeringEventProbeReqNotification:          func() any { return &SteeringEventProbeReq{} },
	OpControlSteeringEventAuthFailNotification:          func() any { return &SteeringEventAuthFail{} },
	OpControlSteeringEventClientActivityNotification:    func() any { return &SteeringEventClientActivity{} },
	OpControlSteeringEventSNRXingNotification:           func() any { return &SteeringEventSNRXing{} },

	// Backhaul
	OpBackhaulRegisterRequest:                    func() any { return &BackhaulRegisterRequest{} },
	OpBackhaulEnable:                             func() any { return &BackhaulEnable{} },
	OpBackhaulConnectedNotification:              func() any { return &BackhaulConnectedParams{} },
	OpBackhaulDisconnectedNotification:           func() any { return &BackhaulDisconnected{} },
	OpBackhaulRoamRequest:                        func() any { return &BackhaulRoamParams{} },
	OpBackhaulClientRxRSSIMeasurementRequest:     func() any { return &RSSIMeasurementRequest{} },
	OpBackhaulClientRxRSSIMeasurementResponse:    func() any { return &RSSIMeasurementResponse{} },
	OpBackhaulClientRxRSSIMeasurementCmdResponse: func() any { return &ClientMAC{} },
	OpBackhaulDlRssiReportNotification:           func() any { return &DlRssiReport{} },
	OpBackhaulUpdateStopOnFailureAttemptsRequest: func() any { return &StopOnFailureAttempts{} },

	// Platform
	OpPlatformSonSlaveRegisterRequest:                func() any { return &PlatformRegisterRequest{} },
	OpPlatformSonSlaveRegisterResponse:               func() any { return &PlatformRegisterResponse{} },
	OpPlatformGetWlanReadyStatusResponse:             func() any { return &ResultResponse{} },
	OpPlatformWifiSetIfaceStateRequest:               func() any { return &IfaceStateRequest{} },
	OpPlatformWifiSetIfaceStateResponse:              func() any { return &IfaceStateResponse{} },
	OpPlatformWifiCredentialsSetRequest:              func() any { return &CredentialsSetRequest{} },
	OpPlatformWifiCredentialsSetResponse:             func() any { return &CredentialsSetResponse{} },
	OpPlatformPostInitConfigRequest:                  func() any { return &IfaceNameRequest{} },
	OpPlatformPostInitConfigResponse:                 func() any { return &ResultResponse{} },
	OpPlatformWifiSetRadioTxStateRequest:             func() any { return &RadioTxStateRequest{} },
	OpPlatformWifiSetRadioTxStateResponse:            func() any { return &RadioTxStateResponse{} },
	OpPlatformArpQueryRequest:                        func() any { return &ArpQueryParams{} },
	OpPlatformArpQueryResponse:                       func() any { return &ArpQueryParams{} },
	OpPlatformArpMonitorNotification:                 func() any { return &ArpMonitorParams{} },
	OpPlatformWlanParamsChangedNotification:          func() any { return &WlanParamsChangedNotification{} },
	OpPlatformOperationalNotification:                func() any { return &OperationalNotification{} },
	OpPlatformDHCPMonitorNotification:                func() any { return &DHCPMonitorNotification{} },
	OpPlatformCredentialsUpdateRequest:               func() any { return &WifiCredentials{} },
	OpPlatformCredentialsUpdateResponse:              func() any { return &ResultResponse{} },
	OpPlatformWifiConfigurationUpdateRequest:         func() any { return &WifiConfigurationUpdateRequest{} },
	OpPlatformAdvertiseSSIDFlagUpdateRequest:         func() any { return &AdvertiseSSIDFlag{} },
	OpPlatformAdvertiseSSIDFlagUpdateResponse:        func() any { return &ResultResponse{} },
	OpPlatformErrorNotification:                      func() any { return &PlatformErrorNotification{} },
	OpPlatformVersionMismatchNotification:            func() any { return &Versions{} },
	OpPlatformMasterSlaveVersionsNotification:        func() any { return &Versions{} },
	OpPlatformBackhaulConnectionCompleteNotification: func() any { return &BackhaulConnectionComplete{} },
	OpPlatformWifiInterfaceStatusNotification:        func() any { return &InterfaceStatusNotification{} },
	OpPlatformChangeModuleLoggingLevel:               func() any { return &LoggingLevelParams{} },

	// AP manager
	OpAPManagerJoinedNotification:                         func() any { return &APManagerJoined{} },
	OpAPManagerHostapSetRestrictedFailsafeChannelRequest:  func() any { return &ChannelSwitchParams{} },
	OpAPManagerHostapSetRestrictedFailsafeChannelResponse: func() any { return &ResultResponse{} },
	OpAPManagerHostapChannelSwitchACSStart:                func() any { return &ChannelSwitchParams{} },
	OpAPManagerClientIreConnectedNotification:             func() any { return &ClientMAC{} },
	OpAPManagerClientRxRSSIMeasurementRequest:             func() any { return &RSSIMeasurementRequest{} },
	OpAPManagerClientRxRSSIMeasurementResponse:            func() any { return &RSSIMeasurementResponse{} },
	OpAPManagerClientRxRSSIMeasurementCmdResponse:         func() any { return &ClientMAC{} },
	OpAPManagerClientDisallowRequest:                      func() any { return &ClientDisallow{} },
	OpAPManagerClientAllowRequest:                         func() any { return &ClientAllow{} },
	OpAPManagerClientDisconnectRequest:                    func() any { return &ClientDisconnect{} },
	OpAPManagerClientDisconnectResponse:                   func() any { return &ClientDisconnectResult{} },
	OpAPManagerClientBSSSteerRequest:                      func() any { return &BSSSteerRequest{} },
	OpAPManagerClientBSSSteerResponse:                     func() any { return &BSSSteerResponse{} },
	OpAPManagerHostapSetNeighbor11kRequest:                func() any { return &Neighbor11kParams{} },
	OpAPManagerHostapRemoveNeighbor11kRequest:             func() any { return &Neighbor11kParams{} },
	OpAPManagerHostapAPDisabledNotification:               func() any { return &VapID{} },
	OpAPManagerHostapAPEnabledNotification:                func() any { return &VapEvent{} },
	OpAPManagerHostapVapsListUpdateNotification:           func() any { return &VapsList{} },
	OpAPManagerHostapACSNotification:                      func() any { return &ACSNotification{} },
	OpAPManagerHostapCSANotification:                      func() any { return &CSANotification{} },
	OpAPManagerHostapCSAErrorNotification:                 func() any { return &CSANotification{} },
	OpAPManagerHostapDFSCACCompletedNotification:          func() any { return &DFSParams{} },
	OpAPManagerHostapDFSChannelAvailableNotification:      func() any { return &DFSParams{} },
	OpAPManagerClientAssociatedNotification:               func() any { return &ClientAssociationParams{} },
	OpAPManagerClientDisconnectedNotification:             func() any { return &ClientAssociationParams{} },
	OpAPManagerSteeringEventProbeReqNotification:          func() any { return &SteeringEventProbeReq{} },
	OpAPManagerSteeringEventAuthFailNotification:          func() any { return &SteeringEventAuthFail{} },
	OpAPManagerSteeringClientSetRequest:                   func() any { return &SteeringClientSet{} },
	OpAPManagerSteeringClientSetResponse:                  func() any { return &SteeringSetResult{} },

	// Monitor
	OpMonitorSonConfigUpdate:                          func() any { return &SONConfig{} },
	OpMonitorChangeModuleLoggingLevel:                 func() any { return &LoggingLevelParams{} },
	OpMonitorClientStartMonitoringRequest:             func() any { return &ClientMonitoringParams{} },
	OpMonitorClientStopMonitoringRequest:              func() any { return &ClientMAC{} },
	OpMonitorClientRxRSSIMeasurementRequest:           func() any { return &RSSIMeasurementRequest{} },
	OpMonitorClientRxRSSIMeasurementResponse:          func() any { return &RSSIMeasurementResponse{} },
	OpMonitorClientRxRSSIMeasurementCmdResponse:       func() any { return &ClientMAC{} },
	OpMonitorClientRxRSSIMeasurementStartNotification: func() any { return &ClientMAC{} },
	OpMonitorClientRxRSSIMeasurementNotification:      func() any { return &RSSIMeasurementResponse{} },
	OpMonitorHostapStatsMeasurementRequest:            func() any { return &StatsMeasurementRequest{} },
	OpMonitorHostapStatsMeasurementResponse:           func() any { return &StatsMeasurementResponse{} },
	OpMonitorClientBeacon11kRequest:                   func() any { return &Beacon11kRequest{} },
	OpMonitorClientBeacon11kResponse:                  func() any { return &Beacon11kResponse{} },
	OpMonitorClientChannelLoad11kRequest:              func() any { return &ChannelLoad11kRequest{} },
	OpMonitorClientChannelLoad11kResponse:             func() any { return &ChannelLoad11kResponse{} },
	OpMonitorClientStatistics11kRequest:               func() any { return &Statistics11kRequest{} },
	OpMonitorClientStatistics11kResponse:              func() any { return &Statistics11kResponse{} },
	OpMonitorClientLinkMeasurement11kRequest:          func() any { return &ClientMAC{} },
	OpMonitorClientLinkMeasurements11kResponse:        func() any { return &ClientMAC{} },
	OpMonitorSteeringClientSetGroupRequest:            func() any { return &SteeringClientSetGroup{} },
	OpMonitorSteeringClientSetGroupResponse:           func() any { return &SteeringSetResult{} },
	OpMonitorSteeringClientSetRequest:                 func() any { return &SteeringClientSet{} },
	OpMonitorSteeringClientSetResponse:                func() any { return &SteeringSetResult{} },
	OpMonitorHostapAPDisabledNotification:             func() any { return &VapID{} },
	OpMonitorHostapStatusChangedNotification:          func() any { return &HostapStatusChanged{} },
	OpMonitorClientNoResponseNotification:             func() any { return &ClientMAC{} },
	OpMonitorClientNoActivityNotification:             func() any { return &ClientMAC{} },
	OpMonitorHostapActivityNotification:               func() any { return &APStats{} },
	OpMonitorErrorNotification:                        func() any { return &MonitorError{} },
	OpMonitorSteeringEventClientActivityNotification:  func() any { return &SteeringEventClientActivity{} },
	OpMonitorSteeringEventSNRXingNotification:         func() any { return &SteeringEventSNRXing{} },
}

// NewPayload returns a zero payload value for the opcode, or nil when the
// opcode carries no payload.
func NewPayload(op ActionOp) any {
	factory, ok := payloadRegistry[op]
	if !ok {
		return nil
	}
	return factory()
}
