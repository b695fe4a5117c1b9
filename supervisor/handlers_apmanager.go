package supervisor

import (
	"github.com/abelviageiro/prplMesh/message"
	"github.com/abelviageiro/prplMesh/router"
)

// isDFSChannel reports whether a 5 GHz channel requires DFS.
func isDFSChannel(ch uint8) bool {
	return (ch >= 52 && ch <= 64) || (ch >= 100 && ch <= 144)
}

// registerAPManagerRules installs the rules for AP worker messages.
func (s *Supervisor) registerAPManagerRules() {
	reg := func(op message.ActionOp, h router.HandlerFunc) {
		s.table.Register(message.OriginAPManager, op, h)
	}
	forward := func(op message.ActionOp, outOp message.ActionOp) {
		reg(op, func(in *message.CMDU) ([]router.Outbound, error) {
			return router.Forward(message.OriginController, router.Translate(in, outOp)), nil
		})
	}

	reg(message.OpAPManagerInitDoneNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		s.logger.Info("ap manager init done")
		ep := s.currentSource
		if ep == nil {
			return nil, nil
		}
		ep.SetOrigin(message.OriginAPManager)
		s.forgetUnidentified(ep)
		s.apManager = ep
		s.apHeartbeat.Rearm()
		if s.healthMon != nil {
			s.healthMon.UpdateHealthy("ap-manager", "init done")
		}
		s.setState(StateWaitForAPManagerJoined)
		return nil, nil
	})

	reg(message.OpAPManagerJoinedNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		joined, err := payloadAs[message.APManagerJoined](in)
		if err != nil {
			return nil, err
		}
		s.logger.Info("ap manager joined",
			"iface_mac", joined.Params.IfaceMAC.String(),
			"is_5ghz", joined.Params.IfaceIs5GHz)

		s.hostapParams = joined.Params
		s.csParams = joined.CSParams
		if s.state == StateWaitForAPManagerJoined {
			s.setState(StateAPManagerJoined)
		} else {
			s.logger.Error("ap manager joined in unexpected state", "state", s.state.String())
		}
		return nil, nil
	})

	forward(message.OpAPManagerHostapSetRestrictedFailsafeChannelResponse,
		message.OpControlHostapSetRestrictedFailsafeChannelResponse)
	forward(message.OpAPManagerHostapAPEnabledNotification, message.OpControlHostapAPEnabledNotification)
	forward(message.OpAPManagerHostapVapsListUpdateNotification, message.OpControlHostapVapsListUpdateNotification)
	forward(message.OpAPManagerHostapACSNotification, message.OpControlHostapACSNotification)
	forward(message.OpAPManagerHostapCSAErrorNotification, message.OpControlHostapCSAErrorNotification)
	forward(message.OpAPManagerClientBSSSteerResponse, message.OpControlClientBSSSteerResponse)
	forward(message.OpAPManagerClientRxRSSIMeasurementCmdResponse, message.OpControlClientRxRSSIMeasurementCmdResponse)
	forward(message.OpAPManagerHostapDFSChannelAvailableNotification, message.OpControlHostapDFSChannelAvailableNotification)
	forward(message.OpAPManagerSteeringEventProbeReqNotification, message.OpControlSteeringEventProbeReqNotification)
	forward(message.OpAPManagerSteeringEventAuthFailNotification, message.OpControlSteeringEventAuthFailNotification)
	forward(message.OpAPManagerClientDisconnectResponse, message.OpControlClientDisconnectResponse)
	forward(message.OpAPManagerSteeringClientSetResponse, message.OpControlSteeringClientSetResponse)

	reg(message.OpAPManagerHostapAPDisabledNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		notif, err := payloadAs[message.VapID](in)
		if err != nil {
			return nil, err
		}
		s.logger.Info("ap disabled notification", "vap_id", notif.VapID)

		if notif.VapID != message.RadioVapID {
			return router.Forward(message.OriginController,
				router.Translate(in, message.OpControlHostapAPDisabledNotification)), nil
		}

		s.logger.Warn("ap disabled on radio, resetting")
		if s.state == StateWaitForWifiConfigurationUpdateComplete ||
			s.state == StateWaitForAnotherWifiConfigurationUpdate ||
			s.state == StateWaitForUnifyWifiCredentialsResponse {
			s.logger.Info("wifi configuration update in progress, absorbing")
			s.detachOnConfChange = true
		} else if !s.platformSettings.PassiveModeEnabled {
			s.stopOnFailureAttempts--
			s.platformNotifyError(ErrCodeAPManagerHostapDisabled, s.cfg.HostapIface)
		}
		s.slaveReset()
		return nil, nil
	})

	// Hybrid: the CSA notification updates the AP status and is relayed.
	reg(message.OpAPManagerHostapCSANotification, func(in *message.CMDU) ([]router.Outbound, error) {
		notif, err := payloadAs[message.CSANotification](in)
		if err != nil {
			return nil, err
		}
		s.csParams = notif.CSParams

		if isDFSChannel(notif.CSParams.Channel) {
			s.logger.Info("ap entered dfs channel", "channel", notif.CSParams.Channel)
			s.statusAP = message.RadioStatusAPDFSCAC
		} else {
			s.statusAP = message.RadioStatusAPOK
		}

		return router.Forward(message.OriginController,
			router.Translate(in, message.OpControlHostapCSANotification)), nil
	})

	reg(message.OpAPManagerClientRxRSSIMeasurementResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		resp, err := payloadAs[message.RSSIMeasurementResponse](in)
		if err != nil {
			return nil, err
		}
		s.logger.Info("ap manager rssi measurement response",
			"mac", resp.MAC.String(), "rx_rssi", resp.RxRSSI, "id", in.Vendor.ID)

		out := *resp
		out.SrcModule = message.EntityAPManager
		return router.Forward(message.OriginController,
			message.NewVendor(message.OpControlClientRxRSSIMeasurementResponse, &out).WithID(in.Vendor.ID)), nil
	})

	reg(message.OpAPManagerClientDisconnectedNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		notif, err := payloadAs[message.ClientAssociationParams](in)
		if err != nil {
			return nil, err
		}
		clientMAC := notif.MAC.String()
		s.logger.Info("client disconnected", "sta_mac", clientMAC)

		out := []router.Outbound{{
			To: message.OriginMonitor,
			CMDU: message.NewVendor(message.OpMonitorClientStopMonitoringRequest,
				&message.ClientMAC{MAC: notif.MAC}).WithID(in.Vendor.ID),
		}}

		if s.controllerAttached {
			out = append(out, router.Outbound{
				To:   message.OriginController,
				CMDU: router.Translate(in, message.OpControlClientDisconnectedNotification),
			})
		} else {
			// Never both forwarded and held: the stored association is simply
			// dropped.
			delete(s.pendingAssoc, clientMAC)
		}
		return out, nil
	})

	reg(message.OpAPManagerHostapDFSCACCompletedNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		s.statusAP = message.RadioStatusAPOK
		return router.Forward(message.OriginController,
			router.Translate(in, message.OpControlHostapDFSCACCompletedNotification)), nil
	})

	reg(message.OpAPManagerClientAssociatedNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		notif, err := payloadAs[message.ClientAssociationParams](in)
		if err != nil {
			return nil, err
		}
		clientMAC := notif.MAC.String()
		s.logger.Info("client associated", "sta_mac", clientMAC)

		if s.controllerAttached {
			return router.Forward(message.OriginController,
				router.Translate(in, message.OpControlClientAssociatedNotification)), nil
		}
		// Held until the next successful join.
		s.pendingAssoc[clientMAC] = *notif
		return nil, nil
	})
}
