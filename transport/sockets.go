package transport

import (
	"net"
	"os"
	"path/filepath"

	"github.com/abelviageiro/prplMesh/errors"
)

// Socket basenames under the agent's temp directory. The slave listener path
// is suffixed with the radio interface name.
const (
	SlaveUDSPrefix     = "BEEROCKS_SLAVE_UDS"
	BackhaulManagerUDS = "BEEROCKS_BACKHAUL_MGR_UDS"
	PlatformManagerUDS = "BEEROCKS_PLAT_MGR_UDS"
)

// SlaveSocketPath returns the listener path for the given radio interface.
func SlaveSocketPath(tempDir, iface string) string {
	return filepath.Join(tempDir, SlaveUDSPrefix+"_"+iface)
}

// BackhaulSocketPath returns the backhaul manager socket path.
func BackhaulSocketPath(tempDir string) string {
	return filepath.Join(tempDir, BackhaulManagerUDS)
}

// PlatformSocketPath returns the platform adapter socket path.
func PlatformSocketPath(tempDir string) string {
	return filepath.Join(tempDir, PlatformManagerUDS)
}

// Dial connects to a peer's unix socket.
func Dial(path string) (net.Conn, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, errors.WrapTransient(err, "transport", "Dial", "unix dial")
	}
	return conn, nil
}

// Listen binds the slave listener socket, replacing a stale socket file left
// behind by a previous run.
func Listen(path string) (net.Listener, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, errors.WrapFatal(err, "transport", "Listen", "stale socket removal")
	}
	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, errors.WrapFatal(err, "transport", "Listen", "unix listen")
	}
	return l, nil
}
