package supervisor

import (
	"github.com/abelviageiro/prplMesh/message"
)

// fsmStep advances the state machine by one step. It returns true when the
// next state should run immediately instead of waiting for the next loop
// iteration.
func (s *Supervisor) fsmStep() bool {
	switch s.state {
	case StateWaitBeforeInit:
		if s.deadlineExpired() {
			s.isBackhaulDisconnected = false
			s.isCredentialsChangedOnDB = false
			s.setState(StateInit)
		}

	case StateInit:
		s.setState(StateConnectToPlatformManager)

	case StateConnectToPlatformManager:
		s.connectToPlatformManager()

	case StateWaitForPlatformManagerRegisterResponse:
		if s.deadlineExpired() {
			s.logger.Error("platform manager register response timeout")
			s.platformNotifyError(ErrCodeSlavePlatformManagerRegisterTimeout, "")
			s.stopOnFailureAttempts--
			s.slaveReset()
		}

	case StateConnectToBackhaulManager:
		s.connectToBackhaulManager()

	case StateWaitForBackhaulManagerRegisterResponse:

	case StateJoinInit:
		s.joinInit()

	case StateGetWlanReadyStatus:
		s.sendTo(message.OriginPlatform, message.NewVendor(message.OpPlatformGetWlanReadyStatusRequest, nil))
		s.setStateWithDeadline(StateWaitForWlanReadyStatusResponse, WlanReadyStatusResponseTimeout)

	case StateWaitForWlanReadyStatusResponse:
		if s.deadlineExpired() {
			s.logger.Error("wlan ready status response timeout")
			s.platformNotifyError(ErrCodeSlaveTimeoutGetWlanReadyStatusRequest, "")
			s.stopOnFailureAttempts--
			s.slaveReset()
		}

	case StateJoinInitBringUpInterfaces:
		s.joinInitBringUpInterfaces()

	case StateJoinInitWaitForIfaceChangeDone:
		// Reached only once all pending iface actions resolved.
		s.isSlaveReset = false
		s.setState(StateStartAPManager)

	case StateStartAPManager:
		if err := s.workers.StartAPManager(); err != nil {
			s.logger.Error("ap manager start failed", "error", err)
			s.platformNotifyError(ErrCodeAPManagerStart, "")
			s.stopOnFailureAttempts--
			s.slaveReset()
			break
		}
		s.apHeartbeat.Rearm()
		s.setState(StateWaitForAPManagerInitDoneNotification)

	case StateWaitForAPManagerInitDoneNotification:

	case StateWaitForAPManagerJoined:

	case StateAPManagerJoined:
		if !s.isWlanCredentialsUnified && s.cfg.EnableCredentialsAutomaticUnify {
			s.setState(StateUnifyWifiCredentials)
		} else {
			s.setState(StateStartMonitor)
		}

	case StateUnifyWifiCredentials:
		s.unifyWifiCredentials()

	case StateWaitForUnifyWifiCredentialsResponse:
		if s.deadlineExpired() {
			s.logger.Error("unify wifi credentials response timeout")
			s.platformNotifyError(ErrCodeSlaveTimeoutWifiCredentialsSetRequest, "")
			s.stopOnFailureAttempts--
			s.slaveReset()
		}

	case StateStartMonitor:
		if err := s.workers.StartMonitor(); err != nil {
			s.logger.Error("monitor start failed", "error", err)
		}
		s.monHeartbeat.Rearm()
		s.setState(StateWaitForMonitorJoined)

	case StateWaitForMonitorJoined:

	case StateBackhaulEnable:
		s.backhaulEnable()

	case StateSendBackhaulManagerEnable:
		s.sendBackhaulManagerEnable()

	case StateWaitForBackhaulManagerConnectedNotification:

	case StateWaitBackhaulManagerBusy:
		if s.deadlineExpired() {
			s.setState(StateSendBackhaulManagerEnable)
		}

	case StateBackhaulManagerConnected:
		return s.backhaulManagerConnected()

	case StateWaitBeforeJoinMaster:
		if s.deadlineExpired() {
			s.setState(StateJoinMaster)
		}

	case StateJoinMaster:
		s.joinMaster()

	case StateWaitForJoinedResponse:
		if s.deadlineExpired() {
			s.logger.Info("joined response timeout, retrying join")
			s.setState(StateJoinMaster)
		}

	case StateUpdateMonitorSonConfig:
		s.sendTo(message.OriginMonitor,
			message.NewVendor(message.OpMonitorSonConfigUpdate, &s.sonConfig))
		s.setState(StateOperational)

	case StateOperational:
		s.processKeepAlive()

	case StateOnboarding:

	case StateWaitForPlatformCredentialsUpdateResponse:
		if s.isCredentialsChangedOnDB {
			s.logger.Info("credentials changed on db, resetting")
			s.slaveReset()
			break
		}
		if s.deadlineExpired() {
			s.logger.Error("platform credentials update response timeout")
			s.slaveReset()
		}

	case StateWaitForWifiConfigurationUpdateComplete:
		if s.deadlineExpired() {
			s.logger.Info("wifi configuration update complete timeout")
			s.platformNotifyError(ErrCodeWifiConfigurationChangeTimeout, "WIFI configuration timeout!")
			s.slaveReset()
		}

	case StateWaitForAnotherWifiConfigurationUpdate:
		if s.deadlineExpired() {
			// Expected when no further update follows.
			s.slaveReset()
		}

	case StateVersionMismatch, StateSSIDMismatch, StateStopped:

	default:
		s.logger.Error("unknown state", "state", int(s.state))
	}

	return false
}

func (s *Supervisor) connectToPlatformManager() {
	conn, err := s.connector.DialPlatform()
	if err != nil {
		s.logger.Warn("unable to connect to platform adapter", "error", err)
		s.connectPlatformRetryCounter++
		if s.connectPlatformRetryCounter >= ConnectPlatformRetryMax {
			s.logger.Error("failed connecting to platform adapter, resetting")
			s.platformNotifyError(ErrCodeSlaveFailedConnectToPlatformManager, "")
			s.stopOnFailureAttempts--
			s.slaveReset()
			s.connectPlatformRetryCounter = 0
		} else {
			s.clk.Sleep(ConnectPlatformRetrySleep)
		}
		return
	}

	s.platform = s.newEndpoint(message.OriginPlatform, conn)
	s.sendTo(message.OriginPlatform, message.NewVendor(message.OpPlatformSonSlaveRegisterRequest,
		&message.PlatformRegisterRequest{IfaceName: s.cfg.HostapIface}))
	s.setStateWithDeadline(StateWaitForPlatformManagerRegisterResponse, PlatformRegisterResponseTimeout)
}

func (s *Supervisor) connectToBackhaulManager() {
	if s.backhaul != nil {
		_ = s.backhaul.Close()
		s.backhaul = nil
	}

	conn, err := s.connector.DialBackhaul()
	if err != nil {
		s.logger.Error("unable to connect to backhaul manager", "error", err)
		s.platformNotifyError(ErrCodeSlaveConnectingToBackhaulManager,
			"iface="+s.cfg.BackhaulWirelessIface)
		s.stopOnFailureAttempts--
		s.slaveReset()
		return
	}
	s.backhaul = s.newEndpoint(message.OriginBackhaul, conn)

	req := &message.BackhaulRegisterRequest{
		HostapIface:       s.cfg.HostapIface,
		LocalMaster:       s.platformSettings.LocalMaster,
		LocalGW:           s.platformSettings.LocalGW,
		StaIfaceFilterLow: s.cfg.BackhaulWirelessIfaceFilterLow,
		Onboarding:        s.platformSettings.Onboarding,
	}
	if !s.platformSettings.LocalGW && s.cfg.BackhaulWirelessIface != "" {
		req.StaIface = s.cfg.BackhaulWirelessIface
	}

	s.logger.Info("registering with backhaul manager",
		"local_master", req.LocalMaster, "local_gw", req.LocalGW,
		"hostap_iface", req.HostapIface, "sta_iface", req.StaIface,
		"onboarding", req.Onboarding)
	s.sendTo(message.OriginBackhaul, message.NewVendor(message.OpBackhaulRegisterRequest, req))
	s.setState(StateWaitForBackhaulManagerRegisterResponse)
}

func (s *Supervisor) joinInit() {
	s.logger.Debug("join init", "onboarding", s.platformSettings.Onboarding)

	if s.platformSettings.Onboarding {
		s.setState(StateOnboarding)
		return
	}
	if !s.wlanSettings.BandEnabled {
		s.logger.Debug("band disabled, skipping radio bring-up")
		s.setState(StateBackhaulEnable)
		return
	}

	if s.isSlaveReset {
		// Restore interfaces to a state ready for enable.
		if !s.setWifiIfaceState(s.cfg.HostapIface, message.IfaceOperRestore) {
			s.platformNotifyError(ErrCodeSlaveIfaceChangeStateFailed, s.cfg.HostapIface)
			s.stopOnFailureAttempts--
			s.slaveReset()
			return
		}
		if s.cfg.BackhaulWirelessIface != "" && !s.platformSettings.LocalGW {
			if !s.setWifiIfaceState(s.cfg.BackhaulWirelessIface, message.IfaceOperRestore) {
				s.platformNotifyError(ErrCodeSlaveIfaceChangeStateFailed, s.cfg.BackhaulWirelessIface)
				s.stopOnFailureAttempts--
				s.slaveReset()
				return
			}
		}
	}

	if !s.platformSettings.LocalGW {
		s.isBackhaulManager = false
		s.statusBHWired = message.RadioStatusOff
	}
	s.operationalState = false

	s.setState(StateGetWlanReadyStatus)
}

func (s *Supervisor) joinInitBringUpInterfaces() {
	if !s.setWifiIfaceState(s.cfg.HostapIface, message.IfaceOperEnable) {
		s.platformNotifyError(ErrCodeSlaveIfaceChangeStateFailed, s.cfg.HostapIface)
		s.stopOnFailureAttempts--
		s.slaveReset()
		return
	}
	if s.cfg.BackhaulWirelessIface != "" && !s.platformSettings.LocalGW {
		if !s.setWifiIfaceState(s.cfg.BackhaulWirelessIface, message.IfaceOperEnable) {
			s.platformNotifyError(ErrCodeSlaveIfaceChangeStateFailed, s.cfg.BackhaulWirelessIface)
			s.stopOnFailureAttempts--
			s.slaveReset()
			return
		}
	}
	s.setState(StateJoinInitWaitForIfaceChangeDone)
}

func (s *Supervisor) unifyWifiCredentials() {
	iface := s.cfg.HostapIface
	if s.cfg.BackhaulWirelessIface != "" && !s.platformSettings.LocalGW {
		iface = s.cfg.BackhaulWirelessIface
	}

	s.logger.Info("unifying wlan credentials",
		"iface", iface, "ssid", s.platformSettings.FrontSSID,
		"security", s.platformSettings.FrontSecurityType)

	s.sendTo(message.OriginPlatform, message.NewVendor(message.OpPlatformWifiCredentialsSetRequest,
		&message.CredentialsSetRequest{
			IfaceName:    iface,
			SSID:         s.platformSettings.FrontSSID,
			Pass:         s.platformSettings.FrontPass,
			SecurityType: s.platformSettings.FrontSecurityType,
		}))
	s.setStateWithDeadline(StateWaitForUnifyWifiCredentialsResponse, UnifyWifiCredentialsTimeout)
}

func (s *Supervisor) backhaulEnable() {
	failed := false
	if s.cfg.BackhaulWireIface != "" && s.cfg.BackhaulWireIfaceType == "unsupported" {
		s.logger.Debug("wired backhaul iface type unsupported")
		s.platformNotifyError(ErrCodeConfigBackhaulWiredInterfaceIsUnsupported, "")
		failed = true
	}
	if s.cfg.BackhaulWirelessIface != "" && s.cfg.BackhaulWirelessIfaceType == "unsupported" {
		s.logger.Debug("wireless backhaul iface type unsupported")
		s.platformNotifyError(ErrCodeConfigBackhaulWirelessInterfaceIsUnsupported, "")
		failed = true
	}
	if s.cfg.BackhaulWireIface == "" && s.cfg.BackhaulWirelessIface == "" {
		s.logger.Debug("no valid backhaul iface")
		s.platformNotifyError(ErrCodeConfigNoValidBackhaulInterface, "")
		failed = true
	}

	if failed {
		s.stopOnFailureAttempts--
		s.slaveReset()
		return
	}
	s.setState(StateSendBackhaulManagerEnable)
}

func (s *Supervisor) sendBackhaulManagerEnable() {
	enable := &message.BackhaulEnable{
		IfaceMAC:    s.hostapParams.IfaceMAC,
		IfaceIs5GHz: s.hostapParams.IfaceIs5GHz,
		APIface:     s.cfg.HostapIface,
		StaIface:    s.cfg.BackhaulWirelessIface,
		BridgeIface: s.cfg.BridgeIface,
	}

	if !s.platformSettings.LocalGW {
		enable.SSID = s.platformSettings.BackSSID
		enable.Pass = s.platformSettings.BackPass
		enable.SecurityType = message.ParseWiFiSec(s.platformSettings.BackSecurityType)
		if s.platformSettings.WiredBackhaul {
			enable.WireIface = s.cfg.BackhaulWireIface
		}
		enable.WireIfaceType = s.cfg.BackhaulWireIfaceType
		enable.WirelessIfaceType = s.cfg.BackhaulWirelessIfaceType
		enable.WiredBackhaul = s.platformSettings.WiredBackhaul
	}
	if s.cfg.BackhaulPreferredBSSID != "" {
		if bssid, err := message.ParseMAC(s.cfg.BackhaulPreferredBSSID); err == nil {
			enable.PreferredBSSID = bssid
		}
	}

	s.logger.Debug("sending backhaul enable", "mac", enable.IfaceMAC.String())
	if err := s.sendVia(s.backhaul, message.NewVendor(message.OpBackhaulEnable, enable)); err != nil {
		s.logger.Error("backhaul enable send failed", "error", err)
		s.slaveReset()
		return
	}
	s.setState(StateWaitForBackhaulManagerConnectedNotification)
}

func (s *Supervisor) backhaulManagerConnected() bool {
	s.logger.Info("backhaul manager connected")

	if !s.wlanSettings.BandEnabled {
		s.operationalState = true
		s.controllerAttached = true
		s.statusAP = message.RadioStatusOff
		s.setState(StateOperational)
		return false
	}

	if s.isBackhaulManager {
		if s.backhaulParams.BackhaulIface == s.cfg.BackhaulWireIface && s.cfg.BackhaulWirelessIface != "" {
			s.logger.Debug("wired backhaul selected, disabling wireless backhaul iface",
				"iface", s.cfg.BackhaulWirelessIface)
			if !s.setWifiIfaceState(s.cfg.BackhaulWirelessIface, message.IfaceOperDisable) {
				s.slaveReset()
				return false
			}
		}
	} else if s.cfg.BackhaulWirelessIface != "" {
		if !s.setWifiIfaceState(s.cfg.BackhaulWirelessIface, message.IfaceOperDisable) {
			s.platformNotifyError(ErrCodeSlaveIfaceChangeStateFailed, s.cfg.BackhaulWirelessIface)
			s.stopOnFailureAttempts--
			s.slaveReset()
			return false
		}
	}

	if s.platformSettings.LocalGW {
		s.backhaulParams.BackhaulIface = s.cfg.BridgeIface
		s.backhaulParams.BackhaulBSSID = message.ZeroMAC
		s.backhaulParams.BackhaulChannel = 0
		s.backhaulParams.BackhaulIsWireless = false
		s.backhaulParams.BackhaulIfaceType = "gw_bridge"
		if s.isBackhaulManager {
			s.backhaulParams.BackhaulIface = s.cfg.BackhaulWireIface
		}
	}

	s.logger.Info("backhaul params",
		"gw_ipv4", s.backhaulParams.GWIPv4.String(),
		"controller_bridge_mac", s.backhaulParams.ControllerBridgeMAC.String(),
		"bridge_mac", s.backhaulParams.BridgeMAC.String(),
		"backhaul_iface", s.backhaulParams.BackhaulIface,
		"backhaul_channel", s.backhaulParams.BackhaulChannel,
		"backhaul_is_wireless", s.backhaulParams.BackhaulIsWireless,
		"is_backhaul_manager", s.isBackhaulManager)

	if s.isBackhaulManager {
		s.sendTo(message.OriginPlatform,
			message.NewVendor(message.OpPlatformBackhaulConnectionCompleteNotification,
				&message.BackhaulConnectionComplete{IsBackhaulManager: s.isBackhaulManager}))
	}

	s.controllerAttached = true
	s.keepAlive.Touch()
	s.setState(StateJoinMaster)
	return true
}
