package supervisor

import (
	"github.com/abelviageiro/prplMesh/message"
	"github.com/abelviageiro/prplMesh/router"
)

// registerBackhaulRules installs the rules for backhaul-manager messages.
func (s *Supervisor) registerBackhaulRules() {
	reg := func(op message.ActionOp, h router.HandlerFunc) {
		s.table.Register(message.OriginBackhaul, op, h)
	}

	reg(message.OpBackhaulRegisterResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		if s.state != StateWaitForBackhaulManagerRegisterResponse {
			s.logger.Error("unexpected backhaul register response", "state", s.state.String())
			return nil, nil
		}
		s.setState(StateJoinInit)
		return nil, nil
	})

	reg(message.OpBackhaulConnectedNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		params, err := payloadAs[message.BackhaulConnectedParams](in)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("backhaul connected notification")

		if s.state < StateWaitForBackhaulManagerConnectedNotification || s.state > StateOperational {
			s.logger.Warn("backhaul connected in unexpected state", "state", s.state.String())
			return nil, nil
		}

		// A join request already went out: this is a reconfiguration.
		if s.state >= StateWaitForJoinedResponse && s.state <= StateOperational {
			s.isBackhaulReconf = true
		}

		s.isBackhaulManager = params.IsBackhaulManager
		if s.isBackhaulManager {
			s.logger.Debug("selected as backhaul manager")
		}

		s.backhaulParams = BackhaulParams{
			GWIPv4:              params.GWIPv4,
			GWBridgeMAC:         params.GWBridgeMAC,
			ControllerBridgeMAC: params.ControllerBridgeMAC,
			BridgeMAC:           params.BridgeMAC,
			BridgeIPv4:          params.BridgeIPv4,
			BackhaulMAC:         params.BackhaulMAC,
			BackhaulIPv4:        params.BackhaulIPv4,
			BackhaulBSSID:       params.BackhaulBSSID,
			BackhaulChannel:     params.BackhaulChannel,
			BackhaulIsWireless:  params.BackhaulIsWireless,
			BackhaulIfaceType:   params.BackhaulIfaceType,
		}
		if params.BackhaulIsWireless {
			s.backhaulParams.BackhaulIface = s.cfg.BackhaulWirelessIface
		} else {
			s.backhaulParams.BackhaulIface = s.cfg.BackhaulWireIface
		}

		for _, m := range params.ScanMeasurements {
			if m.Channel > 0 {
				s.logger.Debug("scan measurement",
					"mac", m.MAC.String(), "channel", m.Channel, "rssi", m.RSSI)
				_ = s.scanHistory.Write(m)
			}
		}

		if s.isBackhaulManager {
			if params.BackhaulIsWireless {
				s.statusBH = message.RadioStatusBHSignalOK
				s.statusBHWired = message.RadioStatusOff
			} else {
				s.statusBH = message.RadioStatusOff
				s.statusBHWired = message.RadioStatusBHWired
			}
		} else {
			s.statusBH = message.RadioStatusOff
			s.statusBHWired = message.RadioStatusOff
		}

		s.setState(StateBackhaulManagerConnected)
		return nil, nil
	})

	reg(message.OpBackhaulBusyNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		if s.state != StateWaitForBackhaulManagerConnectedNotification {
			s.logger.Warn("backhaul busy in unexpected state", "state", s.state.String())
			return nil, nil
		}
		s.setStateWithDeadline(StateWaitBackhaulManagerBusy, WaitBeforeSendBHEnable)
		return nil, nil
	})

	reg(message.OpBackhaulDisconnectedNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		if s.isSlaveReset {
			return nil, nil
		}
		params, err := payloadAs[message.BackhaulDisconnected](in)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("backhaul disconnected notification", "stopped", params.Stopped)

		if params.Stopped {
			s.stopped = true
		}
		s.isBackhaulDisconnected = true
		s.operationalState = false
		s.updateIfaceStatus(false, false)
		s.controllerAttached = false
		s.armDeadline(MaxWirelessReconnectionTime)

		if s.state == StateWaitForPlatformCredentialsUpdateResponse {
			return nil, nil
		}
		s.slaveReset()
		return nil, nil
	})

	reg(message.OpBackhaulClientRxRSSIMeasurementResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		resp, err := payloadAs[message.RSSIMeasurementResponse](in)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("backhaul rssi measurement response",
			"mac", resp.MAC.String(), "rx_rssi", resp.RxRSSI, "id", in.Vendor.ID)

		out := *resp
		out.SrcModule = message.EntityBackhaulManager
		return router.Forward(message.OriginController,
			message.NewVendor(message.OpControlClientRxRSSIMeasurementResponse, &out).WithID(in.Vendor.ID)), nil
	})

	reg(message.OpBackhaulClientRxRSSIMeasurementCmdResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		return router.Forward(message.OriginController,
			router.Translate(in, message.OpControlClientRxRSSIMeasurementCmdResponse)), nil
	})

	// Hybrid: the DL-RSSI report updates the backhaul status through
	// hysteresis and is relayed to the controller.
	reg(message.OpBackhaulDlRssiReportNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		report, err := payloadAs[message.DlRssiReport](in)
		if err != nil {
			return nil, err
		}

		rssi := int(report.RSSI)
		if abs(s.lastReportedBackhaulRSSI-rssi) >= BHSignalRSSIThresholdHysteresis {
			s.lastReportedBackhaulRSSI = rssi
			switch {
			case rssi < BHSignalRSSIThresholdLow:
				s.statusBH = message.RadioStatusBHSignalTooLow
			case rssi < BHSignalRSSIThresholdHigh:
				s.statusBH = message.RadioStatusBHSignalOK
			default:
				s.statusBH = message.RadioStatusBHSignalTooHigh
			}
		}

		return router.Forward(message.OriginController,
			router.Translate(in, message.OpControlBackhaulDlRssiReportNotification)), nil
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
