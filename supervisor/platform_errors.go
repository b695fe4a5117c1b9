package supervisor

// PlatformErrorCode is the closed set of typed errors surfaced to the
// platform adapter.
type PlatformErrorCode uint32

const (
	ErrCodeNone PlatformErrorCode = iota
	ErrCodeSlaveStopped
	ErrCodeSlaveBackhaulManagerDisconnected
	ErrCodeSlaveFailedConnectToPlatformManager
	ErrCodeSlavePlatformManagerRegisterTimeout
	ErrCodeSlaveConnectingToBackhaulManager
	ErrCodeSlaveInvalidMasterSocket
	ErrCodeSlaveIfaceChangeStateFailed
	ErrCodeSlaveTimeoutIfaceEnableRequest
	ErrCodeSlaveTimeoutIfaceDisableRequest
	ErrCodeSlaveTimeoutIfaceRestoreRequest
	ErrCodeSlaveTimeoutIfaceRestartRequest
	ErrCodeSlaveTimeoutGetWlanReadyStatusRequest
	ErrCodeSlaveTimeoutWifiCredentialsSetRequest
	ErrCodeSlaveWifiCredentialsSetFailed
	ErrCodeSlaveUpdateCredentialsFailed
	ErrCodeSlavePostInitConfigFailed
	ErrCodeSlaveTxChangeStateFailed
	ErrCodeMasterKeepAliveTimeout
	ErrCodeWifiConfigurationChangeTimeout
	ErrCodeConfigPlatformReportedInvalidConfiguration
	ErrCodeConfigBackhaulWiredInterfaceIsUnsupported
	ErrCodeConfigBackhaulWirelessInterfaceIsUnsupported
	ErrCodeConfigNoValidBackhaulInterface
	ErrCodeAPManagerStart
	ErrCodeAPManagerDisconnected
	ErrCodeAPManagerHostapDisabled
	ErrCodeAPManagerAttachFail
	ErrCodeAPManagerSuddenDetach
	ErrCodeAPManagerHALDisconnected
	ErrCodeAPManagerCACTimeout
	ErrCodeMonitorDisconnected
	ErrCodeMonitorHostapDisabled
	ErrCodeMonitorAttachFail
	ErrCodeMonitorSuddenDetach
	ErrCodeMonitorHALDisconnected
	ErrCodeMonitorReportProcessFail
)
