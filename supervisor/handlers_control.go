package supervisor

import (
	"log/slog"

	"github.com/abelviageiro/prplMesh/errors"
	"github.com/abelviageiro/prplMesh/message"
	"github.com/abelviageiro/prplMesh/router"
)

func payloadAs[T any](in *message.CMDU) (*T, error) {
	p, ok := in.Payload.(*T)
	if !ok || p == nil {
		return nil, errors.WrapInvalid(errors.ErrMalformedFrame, "supervisor", "payloadAs", in.Op().String())
	}
	return p, nil
}

// registerControlRules installs the rules for controller-originated vendor
// messages.
func (s *Supervisor) registerControlRules() {
	reg := func(op message.ActionOp, h router.HandlerFunc) {
		s.table.Register(message.OriginController, op, h)
	}
	forward := func(op message.ActionOp, to message.Origin, outOp message.ActionOp) {
		reg(op, func(in *message.CMDU) ([]router.Outbound, error) {
			return router.Forward(to, router.Translate(in, outOp)), nil
		})
	}

	// Plain translate-and-forward rules.
	forward(message.OpControlArpQueryRequest, message.OriginPlatform, message.OpPlatformArpQueryRequest)
	forward(message.OpControlHostapSetRestrictedFailsafeChannelRequest,
		message.OriginAPManager, message.OpAPManagerHostapSetRestrictedFailsafeChannelRequest)
	forward(message.OpControlHostapChannelSwitchACSStart,
		message.OriginAPManager, message.OpAPManagerHostapChannelSwitchACSStart)
	forward(message.OpControlClientStopMonitoringRequest,
		message.OriginMonitor, message.OpMonitorClientStopMonitoringRequest)
	forward(message.OpControlClientDisallowRequest,
		message.OriginAPManager, message.OpAPManagerClientDisallowRequest)
	forward(message.OpControlClientAllowRequest,
		message.OriginAPManager, message.OpAPManagerClientAllowRequest)
	forward(message.OpControlClientDisconnectRequest,
		message.OriginAPManager, message.OpAPManagerClientDisconnectRequest)
	forward(message.OpControlClientBSSSteerRequest,
		message.OriginAPManager, message.OpAPManagerClientBSSSteerRequest)
	forward(message.OpControlHostapSetNeighbor11kRequest,
		message.OriginAPManager, message.OpAPManagerHostapSetNeighbor11kRequest)
	forward(message.OpControlHostapRemoveNeighbor11kRequest,
		message.OriginAPManager, message.OpAPManagerHostapRemoveNeighbor11kRequest)
	forward(message.OpControlClientChannelLoad11kRequest,
		message.OriginMonitor, message.OpMonitorClientChannelLoad11kRequest)
	forward(message.OpControlClientStatistics11kRequest,
		message.OriginMonitor, message.OpMonitorClientStatistics11kRequest)
	forward(message.OpControlClientLinkMeasurement11kRequest,
		message.OriginMonitor, message.OpMonitorClientLinkMeasurement11kRequest)
	forward(message.OpControlSteeringClientSetGroupRequest,
		message.OriginMonitor, message.OpMonitorSteeringClientSetGroupRequest)

	reg(message.OpControlSonConfigUpdate, func(in *message.CMDU) ([]router.Outbound, error) {
		cfg, err := payloadAs[message.SONConfig](in)
		if err != nil {
			return nil, err
		}
		s.sonConfig = *cfg
		s.logger.Debug("son config updated",
			"slave_keep_alive_retries", cfg.SlaveKeepAliveRetries)
		return nil, nil
	})

	reg(message.OpControlClientStartMonitoringRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		req, err := payloadAs[message.ClientMonitoringParams](in)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("client monitoring start",
			"mac", req.MAC.String(), "ip", req.IPv4.String(), "is_ire", req.IsIRE)

		var out []router.Outbound
		if req.IsIRE {
			out = append(out, router.Outbound{
				To: message.OriginAPManager,
				CMDU: message.NewVendor(message.OpAPManagerClientIreConnectedNotification,
					&message.ClientMAC{MAC: req.MAC}),
			})
		}
		out = append(out, router.Outbound{
			To:   message.OriginMonitor,
			CMDU: router.Translate(in, message.OpMonitorClientStartMonitoringRequest),
		})
		return out, nil
	})

	// The RSSI measurement destination depends on the backhaul role and the
	// client's connectivity.
	reg(message.OpControlClientRxRSSIMeasurementRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		req, err := payloadAs[message.RSSIMeasurementRequest](in)
		if err != nil {
			return nil, err
		}
		forBackhaul := s.isBackhaulManager && s.backhaulParams.BackhaulIsWireless

		s.logger.Info("rx rssi measurement request",
			"mac", req.MAC.String(), "ip", req.IPv4.String(),
			"channel", req.Channel, "cross", req.Cross, "id", in.Vendor.ID)

		switch {
		case req.Cross && req.IPv4.IsZero() && forBackhaul:
			return router.Forward(message.OriginBackhaul,
				router.Translate(in, message.OpBackhaulClientRxRSSIMeasurementRequest)), nil
		case req.Cross && req.IPv4.IsZero():
			return router.Forward(message.OriginAPManager,
				router.Translate(in, message.OpAPManagerClientRxRSSIMeasurementRequest)), nil
		default:
			return router.Forward(message.OriginMonitor,
				router.Translate(in, message.OpMonitorClientRxRSSIMeasurementRequest)), nil
		}
	})

	reg(message.OpControlControllerPingRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		req, err := payloadAs[message.PingParams](in)
		if err != nil {
			return nil, err
		}
		resp := &message.PingParams{Total: req.Total, Seq: req.Seq, Size: req.Size}
		if req.Size > 0 {
			resp.Data = make([]byte, req.Size)
		}
		return router.Forward(message.OriginController,
			message.NewVendor(message.OpControlControllerPingResponse, resp)), nil
	})

	reg(message.OpControlAgentPingResponse, func(in *message.CMDU) ([]router.Outbound, error) {
		resp, err := payloadAs[message.PingParams](in)
		if err != nil {
			return nil, err
		}
		if resp.Seq+1 >= resp.Total {
			return nil, nil
		}
		next := &message.PingParams{Total: resp.Total, Seq: resp.Seq + 1, Size: resp.Size}
		if resp.Size > 0 {
			next.Data = make([]byte, resp.Size)
		}
		return router.Forward(message.OriginController,
			message.NewVendor(message.OpControlAgentPingRequest, next)), nil
	})

	reg(message.OpControlChangeModuleLoggingLevel, func(in *message.CMDU) ([]router.Outbound, error) {
		req, err := payloadAs[message.LoggingLevelParams](in)
		if err != nil {
			return nil, err
		}
		all := req.ModuleName == message.ProcessAll

		if all || req.ModuleName == message.ProcessSlave {
			s.applyLogLevel(req)
		}
		var out []router.Outbound
		if all || req.ModuleName == message.ProcessMonitor {
			out = append(out, router.Outbound{
				To:   message.OriginMonitor,
				CMDU: router.Translate(in, message.OpMonitorChangeModuleLoggingLevel),
			})
		}
		if all || req.ModuleName == message.ProcessPlatform {
			out = append(out, router.Outbound{
				To:   message.OriginPlatform,
				CMDU: router.Translate(in, message.OpPlatformChangeModuleLoggingLevel),
			})
		}
		return out, nil
	})

	reg(message.OpControlBackhaulRoamRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		if !s.isBackhaulManager || !s.backhaulParams.BackhaulIsWireless {
			return nil, nil
		}
		req, err := payloadAs[message.BackhaulRoamParams](in)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("backhaul roam request",
			"bssid", req.BSSID.String(), "channel", req.Channel)
		return router.Forward(message.OriginBackhaul,
			router.Translate(in, message.OpBackhaulRoamRequest)), nil
	})

	reg(message.OpControlBackhaulReset, func(in *message.CMDU) ([]router.Outbound, error) {
		return router.Forward(message.OriginBackhaul,
			message.NewVendor(message.OpBackhaulReset, nil)), nil
	})

	reg(message.OpControlHostapTxOnRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		s.setRadioTxEnable(s.cfg.HostapIface, true)
		return nil, nil
	})

	reg(message.OpControlHostapTxOffRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		s.setRadioTxEnable(s.cfg.HostapIface, false)
		return nil, nil
	})

	reg(message.OpControlHostapStatsMeasurementRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		if s.monitor == nil {
			return nil, nil
		}
		return router.Forward(message.OriginMonitor,
			router.Translate(in, message.OpMonitorHostapStatsMeasurementRequest)), nil
	})

	reg(message.OpControlClientBeacon11kRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		req, err := payloadAs[message.Beacon11kRequest](in)
		if err != nil {
			return nil, err
		}
		// Substitute our front SSID when the controller left it open.
		if req.UseOptionalSSID && req.SSID == "" {
			req.SSID = s.platformSettings.FrontSSID
		}
		return router.Forward(message.OriginMonitor,
			router.Translate(in, message.OpMonitorClientBeacon11kRequest)), nil
	})

	reg(message.OpControlHostapUpdateStopOnFailureAttemptsRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		req, err := payloadAs[message.StopOnFailureAttempts](in)
		if err != nil {
			return nil, err
		}
		s.configuredStopOnFailure = req.Attempts
		s.logger.Debug("stop on failure attempts updated", "attempts", req.Attempts)
		if !s.isBackhaulManager {
			return nil, nil
		}
		return router.Forward(message.OriginBackhaul,
			router.Translate(in, message.OpBackhaulUpdateStopOnFailureAttemptsRequest)), nil
	})

	reg(message.OpControlHostapDisabledByMaster, func(in *message.CMDU) ([]router.Outbound, error) {
		s.logger.Debug("hostap disabled by controller, marking operational")
		s.operationalState = true
		return nil, nil
	})

	reg(message.OpControlWifiCredentialsUpdatePrepareRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		creds, err := payloadAs[message.WifiCredentials](in)
		if err != nil {
			return nil, err
		}
		s.newCredentials = *creds
		return router.Forward(message.OriginController,
			message.NewVendor(message.OpControlWifiCredentialsUpdatePrepareResponse, nil).WithID(in.Vendor.ID)), nil
	})

	reg(message.OpControlWifiCredentialsUpdatePreCommitRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		if s.newCredentials.SSID == "" {
			s.logger.Error("pre-commit with no prepared credentials")
			return nil, nil
		}
		creds := s.newCredentials
		return []router.Outbound{
			{To: message.OriginPlatform,
				CMDU: message.NewVendor(message.OpPlatformCredentialsUpdateRequest, &creds).WithID(in.Vendor.ID)},
			{To: message.OriginController,
				CMDU: message.NewVendor(message.OpControlWifiCredentialsUpdatePreCommitResponse, nil).WithID(in.Vendor.ID)},
		}, nil
	})

	reg(message.OpControlWifiCredentialsUpdateCommitRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		s.setStateWithDeadline(StateWaitForPlatformCredentialsUpdateResponse, CredentialsUpdateResponseTimeout)
		return nil, nil
	})

	reg(message.OpControlWifiCredentialsUpdateAbortRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		if !s.isCredentialsChangedOnDB {
			return nil, nil
		}
		sec := message.ParseWiFiSec(s.platformSettings.FrontSecurityType)
		if sec == message.WiFiSecInvalid {
			s.logger.Warn("unsupported wifi security, credentials rollover failed",
				"security", s.platformSettings.FrontSecurityType)
			return nil, nil
		}
		rollover := &message.WifiCredentials{
			SSID: s.platformSettings.FrontSSID,
			Pass: s.platformSettings.FrontPass,
			Sec:  sec,
		}
		s.newCredentials = *rollover
		return router.Forward(message.OriginPlatform,
			message.NewVendor(message.OpPlatformCredentialsUpdateRequest, rollover).WithID(in.Vendor.ID)), nil
	})

	reg(message.OpControlVersionMismatchNotification, func(in *message.CMDU) ([]router.Outbound, error) {
		return router.Forward(message.OriginPlatform,
			router.Translate(in, message.OpPlatformVersionMismatchNotification)), nil
	})

	// Steering client set fans out to both workers.
	reg(message.OpControlSteeringClientSetRequest, func(in *message.CMDU) ([]router.Outbound, error) {
		return []router.Outbound{
			{To: message.OriginMonitor, CMDU: router.Translate(in, message.OpMonitorSteeringClientSetRequest)},
			{To: message.OriginAPManager, CMDU: router.Translate(in, message.OpAPManagerSteeringClientSetRequest)},
		}, nil
	})
}

func (s *Supervisor) applyLogLevel(req *message.LoggingLevelParams) {
	if s.logLevel == nil {
		return
	}
	if !req.Enable {
		s.logLevel.Set(slog.LevelInfo)
		return
	}
	switch req.LogLevel {
	case "debug":
		s.logLevel.Set(slog.LevelDebug)
	case "info":
		s.logLevel.Set(slog.LevelInfo)
	case "warn":
		s.logLevel.Set(slog.LevelWarn)
	case "error":
		s.logLevel.Set(slog.LevelError)
	default:
		s.logger.Warn("unknown log level requested", "level", req.LogLevel)
	}
}
