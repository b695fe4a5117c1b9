package supervisor

import (
	"github.com/abelviageiro/prplMesh/message"
	"github.com/abelviageiro/prplMesh/router"
)

// registerMonitorRules installs the rules for monitor worker messages.
func (s *Supervisor) registerMonitorRules() {
	reg := func(op message.ActionOp, h router.HandlerFunc) {
		s.table.Register(message.OriginMonitor, op, h)
	}
	forward := func(op message.ActionOp, outOp message.ActionOp) {
		reg(op, func(in *message.CMDU) ([]router.Outbound, error) {
			return router.Forward(message.OriginController, router.Translate(in, outOp)), nil
		})
	}

	reg(message.OpMonitorJoinedNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		if s.state != StateWaitForMonitorJoined {
			s.logger.Error("monitor joined in unexpected state", "state", s.state.String())
			return nil, nil
		}
		s.logger.Info("monitor joined")
		ep := s.currentSource
		if ep == nil {
			return nil, nil
		}
		ep.SetOrigin(message.OriginMonitor)
		s.forgetUnidentified(ep)
		s.monitor = ep
		s.monHeartbeat.Rearm()
		if s.healthMon != nil {
			s.healthMon.UpdateHealthy("monitor", "joined")
		}
		s.setState(StateBackhaulEnable)
		return nil, nil
	})

	forward(message.OpMonitorClientRxRSSIMeasurementStartNotification,
		message.OpControlClientRxRSSIMeasurementStartNotification)
	forward(message.OpMonitorHostapStatsMeasurementResponse, message.OpControlHostapStatsMeasurementResponse)
	forward(message.OpMonitorClientNoResponseNotification, message.OpControlClientNoResponseNotification)
	forward(message.OpMonitorClientBeacon11kResponse, message.OpControlClientBeacon11kResponse)
	forward(message.OpMonitorClientChannelLoad11kResponse, message.OpControlClientChannelLoad11kResponse)
	forward(message.OpMonitorClientStatistics11kResponse, message.OpControlClientStatistics11kResponse)
	forward(message.OpMonitorClientLinkMeasurements11kResponse, message.OpControlClientLinkMeasurements11kResponse)
	forward(message.OpMonitorClientRxRSSIMeasurementCmdResponse, message.OpControlClientRxRSSIMeasurementCmdResponse)
	forward(message.OpMonitorClientNoActivityNotification, message.OpControlClientNoActivityNotification)
	forward(message.OpMonitorHostapActivityNotification, message.OpControlHostapActivityNotification)
	forward(message.OpMonitorClientRxRSSIMeasurementNotification, message.OpControlClientRxRSSIMeasurementNotification)
	forward(message.OpMonitorSteeringEventClientActivityNotification,
		message.OpControlSteeringEventClientActivityNotification)
	forward(message.OpMonitorSteeringEventSNRXingNotification, message.OpControlSteeringEventSNRXingNotification)
	forward(message.OpMonitorSteeringClientSetGroupResponse, message.OpControlSteeringClientSetGroupResponse)
	forward(message.OpMonitorSteeringClientSetResponse, message.OpControlSteeringClientSetResponse)

	reg(message.OpMonitorHostapAPDisabledNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		notif, err := payloadAs[message.VapID](in)
		if err != nil {
			return nil, err
		}
		s.logger.Info("monitor ap disabled notification", "vap_id", notif.VapID)

		if notif.VapID == message.RadioVapID {
			s.logger.Warn("ap disabled on radio, resetting")
			if !s.platformSettings.PassiveModeEnabled {
				s.stopOnFailureAttempts--
				s.platformNotifyError(ErrCodeMonitorHostapDisabled, s.cfg.HostapIface)
			}
			s.slaveReset()
		}
		return nil, nil
	})

	reg(message.OpMonitorHostapStatusChangedNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		notif, err := payloadAs[message.HostapStatusChanged](in)
		if err != nil {
			return nil, err
		}
		s.logger.Info("hostap status changed",
			"new_tx_state", notif.NewTxState,
			"new_hostap_enabled_state", notif.NewHostapEnabledState)

		var out []router.Outbound
		if s.state == StateOperational && notif.NewTxState == 1 && notif.NewHostapEnabledState == 1 {
			// Trigger post-init configuration and mark operational.
			out = append(out, router.Outbound{
				To: message.OriginPlatform,
				CMDU: message.NewVendor(message.OpPlatformPostInitConfigRequest,
					&message.IfaceNameRequest{IfaceName: s.cfg.HostapIface}),
			})
			s.operationalState = true
			s.resetsCounter = 0
		} else {
			s.operationalState = false
		}

		if s.state == StateOperational && notif.NewTxState == 0 && notif.NewHostapEnabledState == 1 {
			if !s.setWifiIfaceState(s.cfg.HostapIface, message.IfaceOperEnable) {
				s.logger.Error("error enabling hostap tx, resetting")
				s.platformNotifyError(ErrCodeSlaveIfaceChangeStateFailed, s.cfg.HostapIface)
				s.stopOnFailureAttempts--
				s.slaveReset()
			}
		}
		return out, nil
	})

	reg(message.OpMonitorClientRxRSSIMeasurementResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		resp, err := payloadAs[message.RSSIMeasurementResponse](in)
		if err != nil {
			return nil, err
		}
		s.logger.Info("monitor rssi measurement response",
			"mac", resp.MAC.String(), "rx_rssi", resp.RxRSSI, "id", in.Vendor.ID)

		out := *resp
		out.SrcModule = message.EntityMonitor
		return router.Forward(message.OriginController,
			message.NewVendor(message.OpControlClientRxRSSIMeasurementResponse, &out).WithID(in.Vendor.ID)), nil
	})

	reg(message.OpMonitorErrorNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		notif, err := payloadAs[message.MonitorError](in)
		if err != nil {
			return nil, err
		}
		s.logger.Info("monitor error notification", "error_code", notif.ErrorCode)

		if s.state == StateWaitForWifiConfigurationUpdateComplete ||
			s.state == StateWaitForAnotherWifiConfigurationUpdate ||
			s.state == StateWaitForUnifyWifiCredentialsResponse {
			s.logger.Info("wifi configuration update in progress, absorbing")
			s.detachOnConfChange = true
			return nil, nil
		}

		switch notif.ErrorCode {
		case message.MonitorErrHostapDisabled:
			s.platformNotifyError(ErrCodeMonitorHostapDisabled, "")
		case message.MonitorErrAttachFail:
			s.platformNotifyError(ErrCodeMonitorAttachFail, "")
		case message.MonitorErrSuddenDetach:
			s.platformNotifyError(ErrCodeMonitorSuddenDetach, "")
		case message.MonitorErrHALDisconnected:
			s.platformNotifyError(ErrCodeMonitorHALDisconnected, "")
		case message.MonitorErrReportProcessFail:
			s.platformNotifyError(ErrCodeMonitorReportProcessFail, "")
		}

		return router.Forward(message.OriginMonitor,
			message.NewVendor(message.OpMonitorErrorNotificationAck, nil)), nil
	})
}
