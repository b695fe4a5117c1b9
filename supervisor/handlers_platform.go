package supervisor

import (
	"github.com/abelviageiro/prplMesh/message"
	"github.com/abelviageiro/prplMesh/router"
)

// registerPlatformRules installs the rules for platform-adapter messages.
func (s *Supervisor) registerPlatformRules() {
	reg := func(op message.ActionOp, h router.HandlerFunc) {
		s.table.Register(message.OriginPlatform, op, h)
	}

	reg(message.OpPlatformAdvertiseSSIDFlagUpdateResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		resp, err := payloadAs[message.ResultResponse](in)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("advertise ssid flag update response", "success", resp.Result)
		return nil, nil
	})

	reg(message.OpPlatformSonSlaveRegisterResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		if s.state != StateWaitForPlatformManagerRegisterResponse {
			s.logger.Error("unexpected platform register response", "state", s.state.String())
			return nil, nil
		}
		resp, err := payloadAs[message.PlatformRegisterResponse](in)
		if err != nil {
			return nil, err
		}

		if !resp.Valid {
			s.logger.Error("platform reported invalid configuration")
			s.platformNotifyError(ErrCodeConfigPlatformReportedInvalidConfiguration, "")
			s.stopOnFailureAttempts--
			s.slaveReset()
			return nil, nil
		}

		s.platformSettings = resp.PlatformSettings
		s.wlanSettings = resp.WlanSettings

		s.logger.Info("platform settings received",
			"local_master", s.platformSettings.LocalMaster,
			"local_gw", s.platformSettings.LocalGW,
			"onboarding", s.platformSettings.Onboarding)

		// Unification is needed when the radio's live credentials differ from
		// the platform's front credentials.
		if s.wlanSettings.SSID == s.platformSettings.FrontSSID &&
			s.wlanSettings.Pass == s.platformSettings.FrontPass &&
			s.wlanSettings.SecurityType == s.platformSettings.FrontSecurityType {
			s.logger.Debug("wlan credentials unification not required")
			s.isWlanCredentialsUnified = true
		} else if s.cfg.EnableCredentialsAutomaticUnify {
			s.logger.Debug("wlan credentials unification required",
				"wlan_ssid", s.wlanSettings.SSID, "front_ssid", s.platformSettings.FrontSSID)
			s.isWlanCredentialsUnified = false
		} else {
			s.logger.Debug("wlan credentials unification skipped by config")
			s.isWlanCredentialsUnified = true
		}

		s.setState(StateConnectToBackhaulManager)
		return nil, nil
	})

	reg(message.OpPlatformGetWlanReadyStatusResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		if s.state != StateWaitForWlanReadyStatusResponse {
			s.logger.Error("unexpected wlan ready status response", "state", s.state.String())
			return nil, nil
		}
		resp, err := payloadAs[message.ResultResponse](in)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("wlan ready status", "ready", resp.Result)
		if resp.Result {
			s.setState(StateJoinInitBringUpInterfaces)
		} else {
			s.setState(StateGetWlanReadyStatus)
		}
		return nil, nil
	})

	reg(message.OpPlatformWifiSetIfaceStateResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		resp, err := payloadAs[message.IfaceStateResponse](in)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("iface state response",
			"iface", resp.IfaceName, "operation", resp.Operation.String(), "success", resp.Success)

		if !resp.Success {
			s.platformNotifyError(ErrCodeSlaveIfaceChangeStateFailed, resp.IfaceName)
			s.stopOnFailureAttempts--
			s.slaveReset()
			return nil, nil
		}

		s.pendingActions.Resolve(resp.IfaceName)
		if resp.Operation != message.IfaceOperNoChange {
			s.updateIfaceStatus(s.apManager != nil, resp.Operation != message.IfaceOperDisable)
		}
		return nil, nil
	})

	reg(message.OpPlatformWifiCredentialsSetResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		if s.state != StateWaitForUnifyWifiCredentialsResponse {
			s.logger.Debug("credentials set response outside unify flow", "state", s.state.String())
			return nil, nil
		}
		resp, err := payloadAs[message.CredentialsSetResponse](in)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("set wifi credentials result", "success", resp.Success)

		s.isWlanCredentialsUnified = resp.Success
		if !resp.Success {
			s.platformNotifyError(ErrCodeSlaveWifiCredentialsSetFailed, resp.IfaceName)
			s.stopOnFailureAttempts--
			s.slaveReset()
			return nil, nil
		}
		if s.detachOnConfChange {
			s.logger.Debug("detach occurred during credentials set, resetting")
			s.slaveReset()
			return nil, nil
		}
		s.setState(StateStartMonitor)
		return nil, nil
	})

	reg(message.OpPlatformPostInitConfigResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		// A reset may have occurred while post-init configuration ran.
		if s.state != StateOperational {
			s.logger.Debug("post init config response outside operational", "state", s.state.String())
			return nil, nil
		}
		resp, err := payloadAs[message.ResultResponse](in)
		if err != nil {
			return nil, err
		}
		if !resp.Result {
			s.platformNotifyError(ErrCodeSlavePostInitConfigFailed, s.cfg.HostapIface)
			s.stopOnFailureAttempts--
			s.slaveReset()
		}
		return nil, nil
	})

	reg(message.OpPlatformWifiSetRadioTxStateResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		resp, err := payloadAs[message.RadioTxStateResponse](in)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("radio tx state response",
			"iface", resp.IfaceName, "enable", resp.Enable, "success", resp.Success)

		if !resp.Success {
			s.platformNotifyError(ErrCodeSlaveTxChangeStateFailed, resp.IfaceName)
			s.stopOnFailureAttempts--
			s.slaveReset()
			return nil, nil
		}

		s.updateIfaceStatus(s.apManager != nil, resp.Enable)
		if s.controllerAttached && resp.Enable {
			return router.Forward(message.OriginController,
				message.NewVendor(message.OpControlHostapTxOnResponse, nil)), nil
		}
		return nil, nil
	})

	reg(message.OpPlatformArpMonitorNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		if !s.controllerAttached {
			return nil, nil
		}
		return router.Forward(message.OriginController,
			router.Translate(in, message.OpControlClientArpMonitorNotification)), nil
	})

	reg(message.OpPlatformWlanParamsChangedNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		params, err := payloadAs[message.WlanParamsChangedNotification](in)
		if err != nil {
			return nil, err
		}
		// Only a band_enabled flip matters here.
		if s.wlanSettings.BandEnabled != params.WlanSettings.BandEnabled {
			s.logger.Debug("band_enabled changed, resetting")
			s.slaveReset()
		}
		return nil, nil
	})

	reg(message.OpPlatformOperationalNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		notif, err := payloadAs[message.OperationalNotification](in)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("platform operational notification",
			"operational", notif.Operational, "bridge_mac", s.backhaulParams.BridgeMAC.String())

		if !s.controllerAttached {
			return nil, nil
		}
		out := &message.OperationalNotification{
			Operational: notif.Operational,
			BridgeMAC:   s.backhaulParams.BridgeMAC,
		}
		return router.Forward(message.OriginController,
			message.NewVendor(message.OpControlPlatformOperationalNotification, out)), nil
	})

	reg(message.OpPlatformDHCPMonitorNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		notif, err := payloadAs[message.DHCPMonitorNotification](in)
		if err != nil {
			return nil, err
		}

		if notif.Op != message.DHCPOpAdd && notif.Op != message.DHCPOpOld {
			s.logger.Debug("dhcp monitor notification",
				"op", notif.Op, "mac", notif.MAC.String(), "ip", notif.IPv4.String())
			return nil, nil
		}

		s.logger.Debug("dhcp lease added",
			"mac", notif.MAC.String(), "ip", notif.IPv4.String(), "name", notif.Hostname)
		if !s.controllerAttached {
			return nil, nil
		}
		return router.Forward(message.OriginController,
			message.NewVendor(message.OpControlClientDHCPCompleteNotification,
				&message.DHCPCompleteNotification{
					MAC:  notif.MAC,
					IPv4: notif.IPv4,
					Name: notif.Hostname,
				})), nil
	})

	reg(message.OpPlatformCredentialsUpdateResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		resp, err := payloadAs[message.ResultResponse](in)
		if err != nil {
			return nil, err
		}
		if resp.Result {
			s.isCredentialsChangedOnDB = true
			return nil, nil
		}
		s.logger.Error("platform failed to update wifi credentials")
		s.isCredentialsChangedOnDB = false
		s.platformNotifyError(ErrCodeSlaveUpdateCredentialsFailed, "")
		s.stopOnFailureAttempts--
		s.slaveReset()
		return nil, nil
	})

	reg(message.OpPlatformWifiConfigurationUpdateRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		req, err := payloadAs[message.WifiConfigurationUpdateRequest](in)
		if err != nil {
			return nil, err
		}
		s.logger.Info("wifi configuration update request", "config_start", req.ConfigStart)

		switch {
		case s.state == StateWaitForUnifyWifiCredentialsResponse:
			s.logger.Debug("credentials set in progress, ignoring configuration update")

		case s.state != StateOperational &&
			s.state != StateWaitForWifiConfigurationUpdateComplete &&
			s.state != StateWaitForAnotherWifiConfigurationUpdate:
			s.logger.Debug("invalid state for configuration update", "state", s.state.String())

		case !req.ConfigStart:
			if s.detachOnConfChange {
				s.logger.Debug("detach occurred during configuration change, resetting")
				s.slaveReset()
			} else if s.controllerAttached {
				s.logger.Debug("wifi configuration update complete")
				s.setState(StateOperational)
			}

		case s.state == StateWaitForWifiConfigurationUpdateComplete:
			// A new update started before the previous one finished.
			s.setStateWithDeadline(StateWaitForAnotherWifiConfigurationUpdate, WifiConfigurationAnotherTimeout)

		default:
			s.setStateWithDeadline(StateWaitForWifiConfigurationUpdateComplete, WifiConfigurationCompleteTimeout)
		}
		return nil, nil
	})

	reg(message.OpPlatformArpQueryResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		if !s.controllerAttached {
			return nil, nil
		}
		return router.Forward(message.OriginController,
			router.Translate(in, message.OpControlArpQueryResponse)), nil
	})
}
