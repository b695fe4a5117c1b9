package supervisor

import (
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/abelviageiro/prplMesh/errors"
	"github.com/abelviageiro/prplMesh/message"
	"github.com/abelviageiro/prplMesh/wsc"
)

// joinMaster builds and sends the AP_AUTOCONFIGURATION_WSC M1 announcement.
func (s *Supervisor) joinMaster() {
	if !s.controllerAttached {
		s.logger.Error("join attempted without controller attachment")
		s.platformNotifyError(ErrCodeSlaveInvalidMasterSocket, "Invalid master socket")
		s.stopOnFailureAttempts--
		s.slaveReset()
		return
	}

	key, err := wsc.NewKeyExchange()
	if err != nil {
		s.logger.Error("wsc key generation failed", "error", err)
		s.slaveReset()
		return
	}

	hostap := s.hostapParams
	hostap.AntGain = s.cfg.HostapAntGain

	joined := &message.SlaveJoinedNotification{
		SlaveVersion:       Version,
		Platform:           s.cfg.Platform,
		LowPassFilterOn:    s.cfg.BackhaulWirelessIfaceFilterLow,
		EnableRepeaterMode: s.cfg.EnableRepeaterMode,
		RadioIdentifier:    s.radioUID,
		IsSlaveReconf:      s.isBackhaulReconf,
		PlatformSettings:   s.platformSettings,
		WlanSettings:       s.wlanSettings,
		Backhaul: message.BackhaulConnectedParams{
			IsBackhaulManager:   s.isBackhaulManager,
			GWIPv4:              s.backhaulParams.GWIPv4,
			GWBridgeMAC:         s.backhaulParams.GWBridgeMAC,
			ControllerBridgeMAC: s.backhaulParams.ControllerBridgeMAC,
			BridgeMAC:           s.backhaulParams.BridgeMAC,
			BridgeIPv4:          s.backhaulParams.BridgeIPv4,
			BackhaulMAC:         s.backhaulParams.BackhaulMAC,
			BackhaulIPv4:        s.backhaulParams.BackhaulIPv4,
			BackhaulBSSID:       s.backhaulParams.BackhaulBSSID,
			BackhaulChannel:     s.backhaulParams.BackhaulChannel,
			BackhaulIsWireless:  s.backhaulParams.BackhaulIsWireless,
			BackhaulIfaceType:   s.backhaulParams.BackhaulIfaceType,
			ScanMeasurements:    s.scanMeasurements(),
		},
		Hostap:   hostap,
		CSParams: s.csParams,
	}
	s.isBackhaulReconf = false

	m1, err := wsc.BuildM1(wsc.M1Params{
		RadioUID:    s.radioUID,
		IfaceMAC:    s.hostapParams.IfaceMAC,
		IfaceIs5GHz: s.hostapParams.IfaceIs5GHz,
		Joined:      joined,
		Key:         key,
	})
	if err != nil {
		s.logger.Error("m1 build failed", "error", err)
		s.slaveReset()
		return
	}

	if err := s.sendToController(m1); err != nil {
		s.logger.Error("m1 send failed", "error", err)
		s.slaveReset()
		return
	}
	s.logger.Debug("sent slave joined notification")

	if !s.wlanSettings.ACSEnabled {
		s.sendPlatformIfaceStatusNotif(message.RadioStatusAPOK, true)
	}

	s.setStateWithDeadline(StateWaitForJoinedResponse, WaitForJoinedResponseTimeout)
}

// scanMeasurements snapshots the bounded backhaul scan history.
func (s *Supervisor) scanMeasurements() []message.ScanMeasurement {
	items := s.scanHistory.ReadBatch(s.scanHistory.Capacity())
	for _, it := range items {
		_ = s.scanHistory.Write(it)
	}
	return items
}

// handleAutoconfigurationWSC consumes an inbound AP_AUTOCONFIGURATION_WSC
// CMDU: a looped-back M1 is a no-op; an M2 for a peer radio is ignored; an M2
// for this radio carries the join response.
func (s *Supervisor) handleAutoconfigurationWSC(c *message.CMDU) error {
	if wsc.IsLoopbackM1(c) {
		return nil
	}

	resp, err := wsc.ParseJoinResponse(c, s.radioUID, s.cfg.AcceptManufacturers)
	if err != nil {
		if stderrors.Is(err, wsc.ErrNotForThisRadio) {
			return nil
		}
		return err
	}

	if s.state != StateWaitForJoinedResponse {
		return errors.WrapInvalid(errors.ErrProtocolSequence, "supervisor",
			"handleAutoconfigurationWSC", s.state.String())
	}

	return s.parseJoinResponse(resp)
}

func (s *Supervisor) parseJoinResponse(resp *message.SlaveJoinedResponse) error {
	if resp.ErrCode == message.JoinRespReject {
		s.logger.Debug("join rejected, retrying later")
		s.setStateWithDeadline(StateWaitBeforeJoinMaster, WaitBeforeJoinMasterDelay)
		return nil
	}

	// Request the current vap list from the AP worker.
	s.sendTo(message.OriginAPManager,
		message.NewVendor(message.OpAPManagerHostapVapsListUpdateRequest, nil))

	// Flush client associations captured while no controller was attached.
	for _, params := range s.pendingAssoc {
		p := params
		s.sendTo(message.OriginController,
			message.NewVendor(message.OpControlClientAssociatedNotification, &p))
	}
	s.pendingAssoc = make(map[string]message.ClientAssociationParams)

	s.masterVersion = resp.MasterVersion
	s.logger.Debug("join response versions", "master", s.masterVersion, "slave", Version)

	if versionLess(Version, s.masterVersion) {
		s.logger.Info("controller version is newer, notifying platform")
		s.sendTo(message.OriginPlatform,
			message.NewVendor(message.OpPlatformVersionMismatchNotification,
				&message.Versions{MasterVersion: s.masterVersion, SlaveVersion: Version}))
	}

	switch resp.ErrCode {
	case message.JoinRespVersionMismatch:
		s.logger.Error("fatal version mismatch",
			"slave_version", Version, "master_version", s.masterVersion)
		s.setState(StateVersionMismatch)

	case message.JoinRespSSIDMismatch:
		s.logger.Error("fatal ssid mismatch")
		s.setState(StateSSIDMismatch)

	case message.JoinRespAdvertiseSSIDFlagMismatch:
		s.logger.Info("advertise ssid flag mismatch, requesting flip")
		s.sendTo(message.OriginPlatform,
			message.NewVendor(message.OpPlatformAdvertiseSSIDFlagUpdateRequest,
				&message.AdvertiseSSIDFlag{Flag: !s.wlanSettings.AdvertiseSSID}))

	default:
		s.sendTo(message.OriginPlatform,
			message.NewVendor(message.OpPlatformMasterSlaveVersionsNotification,
				&message.Versions{MasterVersion: s.masterVersion, SlaveVersion: Version}))
		s.sonConfig = resp.Config
		s.setState(StateUpdateMonitorSonConfig)
	}

	return nil
}

// handleChannelPreferenceQuery replies with the placeholder channel
// preference report.
func (s *Supervisor) handleChannelPreferenceQuery(c *message.CMDU) error {
	report, err := wsc.BuildChannelPreferenceReport(c.MID, s.radioUID)
	if err != nil {
		return err
	}
	return s.sendToController(report)
}

// versionLess compares dotted major.minor.build versions.
func versionLess(a, b string) bool {
	av := parseVersion(a)
	bv := parseVersion(b)
	for i := 0; i < 3; i++ {
		if av[i] != bv[i] {
			return av[i] < bv[i]
		}
	}
	return false
}

func parseVersion(v string) [3]int {
	var out [3]int
	for i, part := range strings.SplitN(v, ".", 3) {
		if i >= 3 {
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			break
		}
		out[i] = n
	}
	return out
}
