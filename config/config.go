// Package config loads and validates the per-radio agent configuration.
// Configuration is built once at process start and never mutated.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abelviageiro/prplMesh/errors"
	"github.com/abelviageiro/prplMesh/message"
)

// Config is the immutable supervisor configuration.
type Config struct {
	// Radio under management.
	HostapIface     string `json:"hostap_iface" yaml:"hostap_iface"`
	HostapIfaceType string `json:"hostap_iface_type" yaml:"hostap_iface_type"`
	HostapAntGain   int8   `json:"hostap_ant_gain" yaml:"hostap_ant_gain"`
	RadioIdentifier string `json:"radio_identifier" yaml:"radio_identifier"`

	// Backhaul interfaces.
	BackhaulWireIface             string `json:"backhaul_wire_iface" yaml:"backhaul_wire_iface"`
	BackhaulWireIfaceType         string `json:"backhaul_wire_iface_type" yaml:"backhaul_wire_iface_type"`
	BackhaulWirelessIface         string `json:"backhaul_wireless_iface" yaml:"backhaul_wireless_iface"`
	BackhaulWirelessIfaceType     string `json:"backhaul_wireless_iface_type" yaml:"backhaul_wireless_iface_type"`
	BackhaulWirelessIfaceFilterLow bool  `json:"backhaul_wireless_iface_filter_low" yaml:"backhaul_wireless_iface_filter_low"`
	BackhaulPreferredBSSID        string `json:"backhaul_preferred_bssid" yaml:"backhaul_preferred_bssid"`
	BridgeIface                   string `json:"bridge_iface" yaml:"bridge_iface"`

	// Platform identity and paths.
	Platform    string `json:"platform" yaml:"platform"`
	TempPath    string `json:"temp_path" yaml:"temp_path"`
	MonitorPath string `json:"monitor_path" yaml:"monitor_path"`

	// Tunables.
	StopOnFailureAttempts             int  `json:"stop_on_failure_attempts" yaml:"stop_on_failure_attempts"`
	EnableKeepAlive                   bool `json:"enable_keep_alive" yaml:"enable_keep_alive"`
	EnableIfaceStatusNotifications    bool `json:"enable_bpl_iface_status_notifications" yaml:"enable_bpl_iface_status_notifications"`
	EnableCredentialsAutomaticUnify   bool `json:"enable_credentials_automatic_unify" yaml:"enable_credentials_automatic_unify"`
	EnableRepeaterMode                bool `json:"enable_repeater_mode" yaml:"enable_repeater_mode"`

	// Manufacturers accepted in WSC M2 frames. Defaults to Intel only; the
	// mixed-vendor policy is deliberately configuration.
	AcceptManufacturers []string `json:"accept_manufacturers" yaml:"accept_manufacturers"`

	Telemetry TelemetryConfig `json:"telemetry" yaml:"telemetry"`
	Gateway   GatewayConfig   `json:"gateway" yaml:"gateway"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// TelemetryConfig enables mirroring agent events onto a NATS subject.
type TelemetryConfig struct {
	Enabled       bool   `json:"enabled" yaml:"enabled"`
	URL           string `json:"url" yaml:"url"`
	SubjectPrefix string `json:"subject_prefix" yaml:"subject_prefix"`
}

// GatewayConfig enables the local status HTTP server.
type GatewayConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
}

// LogConfig selects the slog level and handler format.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Defaults returns a config with the defaults applied on top of zero values.
func Defaults() Config {
	return Config{
		TempPath:              "/tmp/beerocks",
		MonitorPath:           "BEEROCKS_MONITOR",
		StopOnFailureAttempts: 5,
		EnableKeepAlive:       true,
		EnableCredentialsAutomaticUnify: true,
		AcceptManufacturers:   []string{"Intel"},
		Telemetry:             TelemetryConfig{SubjectPrefix: "meshagent"},
		Gateway:               GatewayConfig{ListenAddr: "127.0.0.1:8091"},
		Log:                   LogConfig{Level: "info", Format: "text"},
	}
}

// RadioUID parses the configured radio identifier.
func (c *Config) RadioUID() (message.MAC, error) {
	return message.ParseMAC(c.RadioIdentifier)
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.HostapIface == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "config", "Validate", "hostap_iface check")
	}
	if c.HostapIfaceType == "" || c.HostapIfaceType == "unsupported" {
		return errors.WrapInvalid(fmt.Errorf("hostap_iface_type %q", c.HostapIfaceType),
			"config", "Validate", "hostap_iface_type check")
	}
	if _, err := c.RadioUID(); err != nil {
		return errors.WrapInvalid(err, "config", "Validate", "radio_identifier check")
	}
	if c.TempPath == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "config", "Validate", "temp_path check")
	}
	if c.StopOnFailureAttempts < 0 {
		return errors.WrapInvalid(fmt.Errorf("stop_on_failure_attempts %d", c.StopOnFailureAttempts),
			"config", "Validate", "stop_on_failure_attempts check")
	}
	if len(c.AcceptManufacturers) == 0 {
		return errors.WrapInvalid(errors.ErrMissingConfig, "config", "Validate", "accept_manufacturers check")
	}
	if c.BackhaulPreferredBSSID != "" {
		if _, err := message.ParseMAC(c.BackhaulPreferredBSSID); err != nil {
			return errors.WrapInvalid(err, "config", "Validate", "backhaul_preferred_bssid check")
		}
	}
	if c.Telemetry.Enabled && c.Telemetry.URL == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "config", "Validate", "telemetry url check")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.WrapInvalid(fmt.Errorf("log level %q", c.Log.Level), "config", "Validate", "log level check")
	}
	return nil
}

// Loader reads config files.
type Loader struct{}

// NewLoader creates a config loader.
func NewLoader() *Loader { return &Loader{} }

// LoadFile reads a JSON or YAML config file, applies defaults, environment
// overrides, and validates the result.
func (l *Loader) LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapInvalid(err, "config", "LoadFile", "config read")
	}

	cfg := Defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, errors.WrapInvalid(err, "config", "LoadFile", "yaml unmarshal")
		}
	default:
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, errors.WrapInvalid(err, "config", "LoadFile", "json unmarshal")
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MESHAGENT_TEMP_PATH"); v != "" {
		cfg.TempPath = v
	}
	if v := os.Getenv("MESHAGENT_NATS_URL"); v != "" {
		cfg.Telemetry.URL = v
	}
	if v := os.Getenv("MESHAGENT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
