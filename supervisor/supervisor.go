package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/abelviageiro/prplMesh/config"
	"github.com/abelviageiro/prplMesh/errors"
	"github.com/abelviageiro/prplMesh/health"
	"github.com/abelviageiro/prplMesh/liveness"
	"github.com/abelviageiro/prplMesh/message"
	"github.com/abelviageiro/prplMesh/metric"
	"github.com/abelviageiro/prplMesh/pkg/buffer"
	"github.com/abelviageiro/prplMesh/pkg/clock"
	"github.com/abelviageiro/prplMesh/router"
	"github.com/abelviageiro/prplMesh/transport"
)

// Version is the agent software version announced to the controller.
const Version = "1.0.0"

// Connector opens connections to the backhaul manager and platform adapter.
type Connector interface {
	DialPlatform() (net.Conn, error)
	DialBackhaul() (net.Conn, error)
}

// WorkerRunner owns the worker process lifecycles.
type WorkerRunner interface {
	StartAPManager() error
	StopAPManager()
	StartMonitor() error
	StopMonitor()
}

// EventSink receives agent lifecycle events for telemetry mirroring. A nil
// sink disables mirroring.
type EventSink interface {
	Publish(event string, fields map[string]any)
}

// BackhaulParams is the uplink state captured on a successful bring-up.
type BackhaulParams struct {
	GWIPv4              message.IPv4
	GWBridgeMAC         message.MAC
	ControllerBridgeMAC message.MAC
	BridgeMAC           message.MAC
	BridgeIPv4          message.IPv4
	BackhaulIface       string
	BackhaulMAC         message.MAC
	BackhaulIPv4        message.IPv4
	BackhaulBSSID       message.MAC
	BackhaulChannel     uint8
	BackhaulIsWireless  bool
	BackhaulIfaceType   string
}

// scanHistoryCapacity bounds the retained backhaul scan measurements.
const scanHistoryCapacity = 32

// Deps carries the runtime dependencies of a supervisor.
type Deps struct {
	Config    *config.Config
	Logger    *slog.Logger
	Clock     clock.Clock
	Metrics   *metric.Registry
	Health    *health.Monitor
	Connector Connector
	Workers   WorkerRunner
	Sink      EventSink
	// LogLevel, when set, lets controller logging-level requests retune the
	// process log level.
	LogLevel *slog.LevelVar
}

// Supervisor is the per-radio slave supervisor.
type Supervisor struct {
	cfg       *config.Config
	logger    *slog.Logger
	clk       clock.Clock
	metrics   *metric.Registry
	healthMon *health.Monitor
	connector Connector
	workers   WorkerRunner
	sink      EventSink
	logLevel  *slog.LevelVar
	radioUID  message.MAC

	table  *router.Table
	events chan transport.Event

	// Peer endpoints. The controller is reached through the backhaul
	// endpoint once the backhaul manager reports connected.
	platform  *transport.Endpoint
	backhaul  *transport.Endpoint
	apManager *transport.Endpoint
	monitor   *transport.Endpoint

	controllerAttached bool
	currentSource      *transport.Endpoint

	workersMu    sync.Mutex
	unidentified map[*transport.Endpoint]struct{}

	// FSM state. The deadline belongs to the active Wait* state.
	state          State
	deadline       time.Time
	deadlineArmed  bool

	stopped                  bool
	shouldStop               bool
	isSlaveReset             bool
	isBackhaulDisconnected   bool
	isCredentialsChangedOnDB bool
	isBackhaulManager        bool
	isBackhaulReconf         bool
	detachOnConfChange       bool
	isWlanCredentialsUnified bool

	operationalState     bool
	operationalStatePrev bool
	statusAP             message.RadioStatus
	statusAPPrev         message.RadioStatus
	statusBH             message.RadioStatus
	statusBHPrev         message.RadioStatus
	statusBHWired        message.RadioStatus
	statusBHWiredPrev    message.RadioStatus
	statusSent           bool

	lastReportedBackhaulRSSI int

	stopOnFailureAttempts       int
	configuredStopOnFailure     int
	connectPlatformRetryCounter int
	resetsCounter               int

	platformSettings message.PlatformSettings
	wlanSettings     message.WlanSettings
	backhaulParams   BackhaulParams
	scanHistory      buffer.Buffer[message.ScanMeasurement]
	hostapParams     message.HostApParams
	csParams         message.ChannelSwitchParams
	sonConfig        message.SONConfig
	masterVersion    string
	newCredentials   message.WifiCredentials

	pendingAssoc   map[string]message.ClientAssociationParams
	pendingActions *liveness.PendingActions
	keepAlive      *liveness.KeepAlive
	apHeartbeat    *liveness.HeartbeatTracker
	monHeartbeat   *liveness.HeartbeatTracker
}

// New builds a supervisor ready to Run.
func New(deps Deps) (*Supervisor, error) {
	if deps.Config == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "supervisor", "New", "config check")
	}
	if err := deps.Config.Validate(); err != nil {
		return nil, err
	}
	radioUID, err := deps.Config.RadioUID()
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "supervisor", "iface", deps.Config.HostapIface)

	clk := deps.Clock
	if clk == nil {
		clk = clock.NewReal()
	}

	scanHistory, err := buffer.NewCircular[message.ScanMeasurement](scanHistoryCapacity)
	if err != nil {
		return nil, err
	}

	s := &Supervisor{
		cfg:          deps.Config,
		logger:       logger,
		clk:          clk,
		metrics:      deps.Metrics,
		healthMon:    deps.Health,
		connector:    deps.Connector,
		workers:      deps.Workers,
		sink:         deps.Sink,
		logLevel:     deps.LogLevel,
		radioUID:     radioUID,
		events:       make(chan transport.Event, 256),
		unidentified: make(map[*transport.Endpoint]struct{}),
		state:        StateInit,
		scanHistory:  scanHistory,
		pendingAssoc: make(map[string]message.ClientAssociationParams),

		stopOnFailureAttempts:   deps.Config.StopOnFailureAttempts,
		configuredStopOnFailure: deps.Config.StopOnFailureAttempts,
	}

	s.pendingActions = liveness.NewPendingActions(clk, liveness.IfaceActionTimeout)
	s.keepAlive = liveness.NewKeepAlive(clk, liveness.KeepAliveInterval)
	s.apHeartbeat = liveness.NewHeartbeatTracker(clk, liveness.HeartbeatTimeout, liveness.HeartbeatRetries)
	s.monHeartbeat = liveness.NewHeartbeatTracker(clk, liveness.HeartbeatTimeout, liveness.HeartbeatRetries)

	s.table = router.NewTable(logger)
	s.registerControlRules()
	s.registerBackhaulRules()
	s.registerPlatformRules()
	s.registerAPManagerRules()
	s.registerMonitorRules()

	return s, nil
}

// State exposes the current FSM state.
func (s *Supervisor) State() State { return s.state }

// Events exposes the event channel endpoints publish into.
func (s *Supervisor) Events() chan transport.Event { return s.events }

// Run drives the supervisor until the context is cancelled or a fatal
// disconnect stops it.
func (s *Supervisor) Run(ctx context.Context) error {
	s.logger.Info("slave supervisor starting",
		"radio_uid", s.radioUID.String(),
		"hostap_iface_type", s.cfg.HostapIfaceType,
		"platform", s.cfg.Platform)

	for {
		if s.shouldStop {
			s.logger.Info("slave supervisor stopping")
			s.teardown()
			return nil
		}

		s.Tick()

		select {
		case <-ctx.Done():
			s.teardown()
			return ctx.Err()
		case ev := <-s.events:
			s.HandleEvent(ev)
			s.drainEvents()
		case <-s.clk.After(SelectTimeout):
		}
	}
}

func (s *Supervisor) drainEvents() {
	for {
		select {
		case ev := <-s.events:
			s.HandleEvent(ev)
		default:
			return
		}
	}
}

// Tick runs one supervision iteration: liveness checks, pending-action
// deadlines, the FSM step, and status notifications.
func (s *Supervisor) Tick() {
	if !s.monitorHeartbeatCheck() || !s.apManagerHeartbeatCheck() {
		s.slaveReset()
	}

	// No FSM progress while interface actions are pending.
	if s.pendingActions.Len() > 0 {
		if action, expired := s.pendingActions.Expired(); expired {
			s.logger.Error("iface action timed out",
				"iface", action.Iface, "operation", action.Operation.String())
			if code := ifaceTimeoutErrorCode(action.Operation); code != ErrCodeNone {
				s.platformNotifyError(code, action.Iface)
			}
			s.stopOnFailureAttempts--
			s.slaveReset()
		}
	} else {
		for s.fsmStep() {
			if s.pendingActions.Len() > 0 {
				break
			}
		}
		if s.cfg.EnableIfaceStatusNotifications && s.platform != nil && !s.platformSettings.Onboarding {
			s.sendIfaceStatusIfChanged()
		}
	}

	if s.metrics != nil {
		s.metrics.Core.SupervisorState.Set(float64(s.state))
		s.metrics.Core.PendingActions.Set(float64(s.pendingActions.Len()))
		s.metrics.Core.KeepAliveRetry.Set(float64(s.keepAlive.Retries()))
	}
}

func ifaceTimeoutErrorCode(op message.IfaceOperation) PlatformErrorCode {
	switch op {
	case message.IfaceOperDisable:
		return ErrCodeSlaveTimeoutIfaceDisableRequest
	case message.IfaceOperEnable:
		return ErrCodeSlaveTimeoutIfaceEnableRequest
	case message.IfaceOperRestore:
		return ErrCodeSlaveTimeoutIfaceRestoreRequest
	case message.IfaceOperRestart:
		return ErrCodeSlaveTimeoutIfaceRestartRequest
	default:
		return ErrCodeNone
	}
}

func (s *Supervisor) monitorHeartbeatCheck() bool {
	if s.monitor == nil {
		return true
	}
	if !s.monHeartbeat.Check() {
		s.logger.Info("monitor heartbeat retries exceeded")
		if s.healthMon != nil {
			s.healthMon.UpdateUnhealthy("monitor", "heartbeat retries exceeded")
		}
		return false
	}
	return true
}

func (s *Supervisor) apManagerHeartbeatCheck() bool {
	if s.apManager == nil {
		return true
	}
	if !s.apHeartbeat.Check() {
		s.logger.Info("ap manager heartbeat retries exceeded")
		if s.healthMon != nil {
			s.healthMon.UpdateUnhealthy("ap-manager", "heartbeat retries exceeded")
		}
		return false
	}
	return true
}

// AdoptWorkerConn wraps an accepted worker connection in an endpoint. The
// worker stays unidentified until its first identifying message arrives.
func (s *Supervisor) AdoptWorkerConn(conn net.Conn) *transport.Endpoint {
	var core *metric.CoreMetrics
	if s.metrics != nil {
		core = s.metrics.Core
	}
	ep := transport.NewEndpoint(transport.Deps{
		Conn:    conn,
		Events:  s.events,
		Logger:  s.logger,
		Metrics: core,
	})
	s.workersMu.Lock()
	s.unidentified[ep] = struct{}{}
	s.workersMu.Unlock()
	return ep
}

// ServeListener accepts worker connections until the listener closes.
func (s *Supervisor) ServeListener(l net.Listener) {
	for {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		s.AdoptWorkerConn(conn)
	}
}

func (s *Supervisor) forgetUnidentified(ep *transport.Endpoint) {
	s.workersMu.Lock()
	delete(s.unidentified, ep)
	s.workersMu.Unlock()
}

// HandleEvent processes one endpoint event.
func (s *Supervisor) HandleEvent(ev transport.Event) {
	if ev.Err != nil {
		s.socketDisconnected(ev.Source)
		return
	}
	if ev.CMDU == nil {
		return
	}
	if err := s.handleCMDU(ev.Source, ev.CMDU); err != nil {
		s.logger.Error("cmdu handling failed", "error", err)
		if s.metrics != nil {
			s.metrics.Core.FramesDropped.WithLabelValues(ev.Source.Origin().String()).Inc()
		}
	}
}

func (s *Supervisor) handleCMDU(src *transport.Endpoint, c *message.CMDU) error {
	s.currentSource = src
	defer func() { s.currentSource = nil }()

	if c.Type != message.TypeVendorSpecific {
		return s.handle1905(src, c)
	}
	if c.Vendor == nil {
		return errors.WrapInvalid(errors.ErrMalformedFrame, "supervisor", "handleCMDU", "vendor header check")
	}

	switch c.Vendor.Action {
	case message.ActionControl:
		return s.handleControlCMDU(src, c)
	case message.ActionBackhaul:
		return s.guardedDispatch(src, s.backhaul, message.OriginBackhaul, c)
	case message.ActionPlatform:
		return s.guardedDispatch(src, s.platform, message.OriginPlatform, c)
	case message.ActionAPManager:
		return s.handleAPManagerCMDU(src, c)
	case message.ActionMonitor:
		return s.handleMonitorCMDU(src, c)
	default:
		return errors.WrapInvalid(errors.ErrUnknownMessage, "supervisor", "handleCMDU",
			fmt.Sprintf("action %d", c.Vendor.Action))
	}
}

// handle1905 handles standardised 1905.1 messages arriving on the controller
// link.
func (s *Supervisor) handle1905(src *transport.Endpoint, c *message.CMDU) error {
	if !s.controllerAttached || src != s.backhaul {
		return nil
	}
	if s.state == StateStopped {
		return nil
	}

	s.keepAlive.Touch()

	switch c.Type {
	case message.TypeAPAutoconfigurationWSC:
		return s.handleAutoconfigurationWSC(c)
	case message.TypeChannelPreferenceQuery:
		return s.handleChannelPreferenceQuery(c)
	default:
		return errors.WrapInvalid(errors.ErrUnknownMessage, "supervisor", "handle1905", c.Type.String())
	}
}

func (s *Supervisor) handleControlCMDU(src *transport.Endpoint, c *message.CMDU) error {
	// To me or not to me.
	if c.Vendor.RadioMAC != s.hostapParams.IfaceMAC {
		return nil
	}
	if c.Vendor.Direction == message.DirectionToController {
		return nil
	}
	if !s.controllerAttached || src != s.backhaul {
		return nil
	}
	if s.state == StateStopped {
		return nil
	}

	s.keepAlive.Touch()

	return s.dispatch(message.OriginController, c)
}

func (s *Supervisor) guardedDispatch(src, expected *transport.Endpoint, origin message.Origin, c *message.CMDU) error {
	if expected == nil || src != expected {
		s.logger.Error("message from unknown socket",
			"origin", origin.String(), "action_op", c.Vendor.Op.String())
		return nil
	}
	return s.dispatch(origin, c)
}

func (s *Supervisor) handleAPManagerCMDU(src *transport.Endpoint, c *message.CMDU) error {
	if s.apManager == nil {
		if c.Vendor.Op != message.OpAPManagerInitDoneNotification {
			s.logger.Error("ap manager message before init done", "action_op", c.Vendor.Op.String())
			return nil
		}
	} else if src != s.apManager {
		s.logger.Error("ap manager message from unknown socket", "action_op", c.Vendor.Op.String())
		return nil
	} else if c.Vendor.Op == message.OpAPManagerHeartbeatNotification {
		s.apHeartbeat.Beat()
		if s.healthMon != nil {
			s.healthMon.UpdateHealthy("ap-manager", "heartbeat")
		}
		return nil
	}

	return s.dispatch(message.OriginAPManager, c)
}

func (s *Supervisor) handleMonitorCMDU(src *transport.Endpoint, c *message.CMDU) error {
	if s.monitor == nil {
		if c.Vendor.Op != message.OpMonitorJoinedNotification {
			s.logger.Error("monitor message before joined", "action_op", c.Vendor.Op.String())
			return nil
		}
	} else if src != s.monitor {
		s.logger.Error("monitor message from unknown socket", "action_op", c.Vendor.Op.String())
		return nil
	} else if c.Vendor.Op == message.OpMonitorHeartbeatNotification {
		s.monHeartbeat.Beat()
		if s.healthMon != nil {
			s.healthMon.UpdateHealthy("monitor", "heartbeat")
		}
		return nil
	}

	return s.dispatch(message.OriginMonitor, c)
}

func (s *Supervisor) dispatch(origin message.Origin, c *message.CMDU) error {
	outbound, err := s.table.Dispatch(origin, c)
	if err != nil {
		return err
	}
	for _, out := range outbound {
		s.sendTo(out.To, out.CMDU)
	}
	return nil
}

// sendTo routes one outbound message to its destination endpoint.
func (s *Supervisor) sendTo(to message.Origin, c *message.CMDU) {
	var err error
	switch to {
	case message.OriginController:
		err = s.sendToController(c)
	case message.OriginBackhaul:
		err = s.sendVia(s.backhaul, c)
	case message.OriginPlatform:
		err = s.sendVia(s.platform, c)
	case message.OriginAPManager:
		err = s.sendVia(s.apManager, c)
	case message.OriginMonitor:
		err = s.sendVia(s.monitor, c)
	default:
		err = errors.WrapInvalid(errors.ErrNoEndpoint, "supervisor", "sendTo", to.String())
	}
	if err != nil {
		s.logger.Error("send failed", "to", to.String(), "error", err)
	}
}

func (s *Supervisor) sendVia(ep *transport.Endpoint, c *message.CMDU) error {
	if ep == nil {
		return errors.WrapTransient(errors.ErrNoEndpoint, "supervisor", "sendVia", "endpoint check")
	}
	return ep.Send(c)
}

// sendToController stamps the controller direction and the local radio mac on
// vendor frames and sends them over the backhaul link.
func (s *Supervisor) sendToController(c *message.CMDU) error {
	if !s.controllerAttached || s.backhaul == nil {
		return errors.WrapTransient(errors.ErrNoEndpoint, "supervisor", "sendToController", "controller attach check")
	}
	if c.Type == message.TypeVendorSpecific && c.Vendor != nil {
		c.Vendor.Direction = message.DirectionToController
		c.Vendor.RadioMAC = s.hostapParams.IfaceMAC
	}
	return s.backhaul.Send(c)
}

func (s *Supervisor) platformNotifyError(code PlatformErrorCode, data string) {
	if s.platform == nil {
		s.logger.Error("platform error with no platform endpoint",
			"code", uint32(code), "data", data)
		return
	}
	err := s.sendVia(s.platform, message.NewVendor(message.OpPlatformErrorNotification,
		&message.PlatformErrorNotification{Code: uint32(code), Data: data}))
	if err != nil {
		s.logger.Error("platform error notification failed", "error", err)
	}
	if s.sink != nil {
		s.sink.Publish("platform_error", map[string]any{"code": uint32(code), "data": data})
	}
}

func (s *Supervisor) setState(next State) {
	if next == s.state {
		return
	}
	s.logger.Debug("state transition", "from", s.state.String(), "to", next.String())
	s.state = next
	s.deadlineArmed = false
	if s.sink != nil {
		s.sink.Publish("state", map[string]any{"state": next.String()})
	}
}

func (s *Supervisor) setStateWithDeadline(next State, d time.Duration) {
	s.setState(next)
	s.deadline = s.clk.Now().Add(d)
	s.deadlineArmed = true
}

func (s *Supervisor) deadlineExpired() bool {
	return s.deadlineArmed && s.clk.Now().After(s.deadline)
}

func (s *Supervisor) armDeadline(d time.Duration) {
	s.deadline = s.clk.Now().Add(d)
	s.deadlineArmed = true
}

// setWifiIfaceState records a pending action and asks the platform adapter
// for the transition. The FSM pauses until the matching response arrives.
func (s *Supervisor) setWifiIfaceState(iface string, op message.IfaceOperation) bool {
	if iface == "" {
		s.logger.Error("iface state request with empty iface")
		return false
	}

	added, conflict := s.pendingActions.Add(iface, op)
	if conflict {
		s.logger.Error("conflicting pending iface action", "iface", iface, "operation", op.String())
		return false
	}
	if !added {
		// Same operation already pending; nothing more to do.
		return true
	}

	err := s.sendVia(s.platform, message.NewVendor(message.OpPlatformWifiSetIfaceStateRequest,
		&message.IfaceStateRequest{IfaceName: iface, Operation: op}))
	if err != nil {
		s.logger.Error("iface state request failed", "iface", iface, "error", err)
		s.pendingActions.Resolve(iface)
		return false
	}
	return true
}

func (s *Supervisor) setRadioTxEnable(iface string, enable bool) bool {
	if iface == "" {
		s.logger.Error("radio tx request with empty iface")
		return false
	}
	err := s.sendVia(s.platform, message.NewVendor(message.OpPlatformWifiSetRadioTxStateRequest,
		&message.RadioTxStateRequest{IfaceName: iface, Enable: enable}))
	if err != nil {
		s.logger.Error("radio tx request failed", "iface", iface, "error", err)
		return false
	}
	return true
}

// updateIfaceStatus applies a simple up/down observation to the radio status
// slots.
func (s *Supervisor) updateIfaceStatus(isAP, up bool) {
	if up {
		if isAP {
			s.statusAP = message.RadioStatusAPOK
		} else {
			s.statusBH = message.RadioStatusBHScan
		}
	} else {
		s.statusAP = message.RadioStatusOff
		s.statusBH = message.RadioStatusOff
	}
}

func (s *Supervisor) sendIfaceStatusIfChanged() {
	if s.statusSent &&
		s.statusAP == s.statusAPPrev &&
		s.statusBH == s.statusBHPrev &&
		s.statusBHWired == s.statusBHWiredPrev &&
		s.operationalState == s.operationalStatePrev {
		return
	}
	s.sendPlatformIfaceStatusNotif(s.statusAP, s.operationalState)
}

func (s *Supervisor) sendPlatformIfaceStatusNotif(statusAP message.RadioStatus, operational bool) {
	err := s.sendVia(s.platform, message.NewVendor(message.OpPlatformWifiInterfaceStatusNotification,
		&message.InterfaceStatusNotification{
			IfaceNameAP:       s.cfg.HostapIface,
			IfaceNameBH:       s.cfg.BackhaulWirelessIface,
			StatusAP:          statusAP,
			StatusBH:          s.statusBH,
			StatusBHWired:     s.statusBHWired,
			IsBHManager:       s.isBackhaulManager,
			StatusOperational: operational,
		}))
	if err != nil {
		s.logger.Error("iface status notification failed", "error", err)
		return
	}
	s.statusAPPrev = s.statusAP
	s.statusBHPrev = s.statusBH
	s.statusBHWiredPrev = s.statusBHWired
	s.operationalStatePrev = s.operationalState
	s.statusSent = true
}

// socketDisconnected applies the endpoint-loss policy.
func (s *Supervisor) socketDisconnected(ep *transport.Endpoint) {
	s.forgetUnidentified(ep)

	// During a configuration-change quiescence window worker losses are
	// absorbed.
	if s.state == StateWaitForWifiConfigurationUpdateComplete ||
		s.state == StateWaitForAnotherWifiConfigurationUpdate ||
		s.state == StateWaitForUnifyWifiCredentialsResponse {
		s.logger.Debug("disconnect during wifi configuration update, absorbing")
		s.detachOnConfChange = true
		if ep == s.apManager || ep == s.monitor {
			s.apManagerStop()
			s.monitorStop()
		}
		return
	}

	switch ep {
	case s.backhaul:
		s.logger.Error("backhaul manager socket disconnected, stopping")
		s.platformNotifyError(ErrCodeSlaveBackhaulManagerDisconnected, "")
		s.stopSupervisor()
	case s.platform:
		s.logger.Error("platform adapter socket disconnected, stopping")
		s.stopSupervisor()
	case s.apManager, s.monitor:
		s.workerDisconnected(ep)
	default:
		// An unidentified worker connection dropped before identifying.
	}
}

func (s *Supervisor) workerDisconnected(ep *transport.Endpoint) {
	if ep == s.apManager {
		s.logger.Error("ap manager socket disconnected")
		if !s.platformSettings.PassiveModeEnabled {
			s.stopOnFailureAttempts--
			s.platformNotifyError(ErrCodeAPManagerDisconnected, "")
		}
	} else {
		s.logger.Error("monitor socket disconnected")
		if !s.platformSettings.PassiveModeEnabled {
			s.stopOnFailureAttempts--
			s.platformNotifyError(ErrCodeMonitorDisconnected, "")
		}
	}
	s.slaveReset()
}

// stopSupervisor latches the fatal stop flag; Run exits at the next loop turn.
func (s *Supervisor) stopSupervisor() {
	s.slaveReset()
	s.shouldStop = true
}

// slaveReset tears down endpoints and workers and picks the next state.
func (s *Supervisor) slaveReset() {
	s.resetsCounter++
	s.logger.Debug("slave reset", "count", s.resetsCounter)
	if s.metrics != nil {
		s.metrics.Core.ResetsTotal.Inc()
	}
	if s.sink != nil {
		s.sink.Publish("reset", map[string]any{"count": s.resetsCounter})
	}

	if !s.detachOnConfChange {
		s.backhaulManagerStop()
	}
	s.platformManagerStop()
	s.apManagerStop()
	s.monitorStop()
	s.pendingActions.Clear()
	s.isBackhaulManager = false
	s.operationalState = false
	s.detachOnConfChange = false

	if s.configuredStopOnFailure > 0 && s.stopOnFailureAttempts <= 0 {
		s.logger.Error("reached max stop on failure attempts")
		s.stopped = true
	}

	switch {
	case s.stopped && !s.isCredentialsChangedOnDB && s.state != StateInit:
		s.platformNotifyError(ErrCodeSlaveStopped, "")
		s.setState(StateStopped)
	case s.isCredentialsChangedOnDB || s.isBackhaulDisconnected:
		s.setStateWithDeadline(StateWaitBeforeInit, SlaveInitDelay)
	default:
		s.setState(StateInit)
	}

	s.isSlaveReset = true
}

func (s *Supervisor) backhaulManagerStop() {
	if s.backhaul != nil {
		_ = s.backhaul.Close()
		s.backhaul = nil
	}
	s.controllerAttached = false
	s.statusBH = message.RadioStatusOff
	s.statusBHWired = message.RadioStatusOff
}

func (s *Supervisor) platformManagerStop() {
	if s.platform != nil {
		_ = s.platform.Close()
		s.platform = nil
	}
}

func (s *Supervisor) apManagerStop() {
	if s.apManager != nil {
		_ = s.apManager.Close()
		s.apManager = nil
	}
	if s.workers != nil {
		s.workers.StopAPManager()
	}
	s.statusAP = message.RadioStatusOff
	if s.healthMon != nil {
		s.healthMon.Remove("ap-manager")
	}
}

func (s *Supervisor) monitorStop() {
	if s.monitor != nil {
		_ = s.monitor.Close()
		s.monitor = nil
	}
	if s.workers != nil {
		s.workers.StopMonitor()
	}
	if s.healthMon != nil {
		s.healthMon.Remove("monitor")
	}
}

func (s *Supervisor) teardown() {
	s.backhaulManagerStop()
	s.platformManagerStop()
	s.apManagerStop()
	s.monitorStop()
}

func (s *Supervisor) newEndpoint(origin message.Origin, conn net.Conn) *transport.Endpoint {
	var core *metric.CoreMetrics
	if s.metrics != nil {
		core = s.metrics.Core
	}
	return transport.NewEndpoint(transport.Deps{
		Origin:  origin,
		Conn:    conn,
		Events:  s.events,
		Logger:  s.logger,
		Metrics: core,
	})
}

// processKeepAlive evaluates the controller keep-alive while operational.
func (s *Supervisor) processKeepAlive() {
	if !s.cfg.EnableKeepAlive || s.sonConfig.SlaveKeepAliveRetries == 0 {
		return
	}
	if !s.controllerAttached {
		return
	}

	switch s.keepAlive.Process(int(s.sonConfig.SlaveKeepAliveRetries)) {
	case KeepAliveSendPing:
		err := s.sendToController(message.NewVendor(message.OpControlAgentPingRequest,
			&message.PingParams{Total: 1, Seq: 0, Size: 0}))
		if err != nil {
			s.logger.Error("keep-alive ping failed", "error", err)
		}
	case KeepAliveTimeout:
		s.logger.Debug("keep-alive retries exceeded")
		s.platformNotifyError(ErrCodeMasterKeepAliveTimeout,
			fmt.Sprintf("reached master keep-alive retries limit: %d", s.keepAlive.Retries()))
		s.stopOnFailureAttempts--
		s.slaveReset()
	}
}

// Keep-alive verdicts re-exported for readability at the call site.
const (
	KeepAliveSendPing = liveness.KeepAliveSendPing
	KeepAliveTimeout  = liveness.KeepAliveTimeout
)
