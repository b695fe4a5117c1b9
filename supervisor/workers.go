package supervisor

import (
	"log/slog"
	"net"
	"os/exec"
	"syscall"

	"github.com/abelviageiro/prplMesh/config"
	"github.com/abelviageiro/prplMesh/errors"
	"github.com/abelviageiro/prplMesh/transport"
)

// UDSConnector dials the platform adapter and backhaul manager over their
// unix sockets under the configured temp directory.
type UDSConnector struct {
	TempPath string
}

// DialPlatform connects to the platform adapter socket.
func (c UDSConnector) DialPlatform() (net.Conn, error) {
	return transport.Dial(transport.PlatformSocketPath(c.TempPath))
}

// DialBackhaul connects to the backhaul manager socket.
func (c UDSConnector) DialBackhaul() (net.Conn, error) {
	return transport.Dial(transport.BackhaulSocketPath(c.TempPath))
}

// APManagerFactory starts the in-process AP controller worker against the
// slave listener socket and returns its stop function.
type APManagerFactory func(socketPath string) (stop func(), err error)

// ExecRunner runs the workers: the monitor as a spawned process, the AP
// controller worker as an in-process child task that exposes itself only
// through the slave socket.
type ExecRunner struct {
	cfg     *config.Config
	logger  *slog.Logger
	factory APManagerFactory

	apStop     func()
	monitorCmd *exec.Cmd
}

// NewExecRunner creates the production worker runner. A nil factory means the
// AP worker is launched externally and connects on its own.
func NewExecRunner(cfg *config.Config, logger *slog.Logger, factory APManagerFactory) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{
		cfg:     cfg,
		logger:  logger.With("component", "worker-runner"),
		factory: factory,
	}
}

// StartAPManager starts the in-process AP controller worker.
func (r *ExecRunner) StartAPManager() error {
	if r.factory == nil {
		r.logger.Debug("no ap manager factory, expecting external worker")
		return nil
	}
	stop, err := r.factory(transport.SlaveSocketPath(r.cfg.TempPath, r.cfg.HostapIface))
	if err != nil {
		return errors.WrapTransient(err, "worker-runner", "StartAPManager", "worker start")
	}
	r.apStop = stop
	return nil
}

// StopAPManager stops the in-process AP controller worker.
func (r *ExecRunner) StopAPManager() {
	if r.apStop != nil {
		r.apStop()
		r.apStop = nil
		r.logger.Debug("ap manager stopped")
	}
}

// StartMonitor spawns the monitor worker binary against the managed radio.
func (r *ExecRunner) StartMonitor() error {
	r.StopMonitor()

	cmd := exec.Command(r.cfg.MonitorPath, "-i", r.cfg.HostapIface)
	if err := cmd.Start(); err != nil {
		return errors.WrapTransient(err, "worker-runner", "StartMonitor", "process spawn")
	}
	r.monitorCmd = cmd
	r.logger.Debug("monitor started", "pid", cmd.Process.Pid, "iface", r.cfg.HostapIface)

	// Reap the process when it exits on its own.
	go func() { _ = cmd.Wait() }()
	return nil
}

// StopMonitor kills the monitor worker process.
func (r *ExecRunner) StopMonitor() {
	if r.monitorCmd == nil || r.monitorCmd.Process == nil {
		return
	}
	if err := r.monitorCmd.Process.Signal(syscall.SIGTERM); err == nil {
		r.logger.Debug("monitor stop signalled", "pid", r.monitorCmd.Process.Pid)
	}
	r.monitorCmd = nil
}
