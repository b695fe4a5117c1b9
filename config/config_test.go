package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Defaults()
	cfg.HostapIface = "wlan0"
	cfg.HostapIfaceType = "intel"
	cfg.RadioIdentifier = "02:aa:bb:cc:dd:ee"
	cfg.BackhaulWirelessIface = "wlan1"
	cfg.BackhaulWireIface = "eth1"
	return cfg
}

func TestValidateOK(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	uid, err := cfg.RadioUID()
	require.NoError(t, err)
	assert.Equal(t, "02:aa:bb:cc:dd:ee", uid.String())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing iface", func(c *Config) { c.HostapIface = "" }},
		{"unsupported iface type", func(c *Config) { c.HostapIfaceType = "unsupported" }},
		{"bad radio identifier", func(c *Config) { c.RadioIdentifier = "nope" }},
		{"missing temp path", func(c *Config) { c.TempPath = "" }},
		{"negative failure budget", func(c *Config) { c.StopOnFailureAttempts = -1 }},
		{"empty manufacturers", func(c *Config) { c.AcceptManufacturers = nil }},
		{"bad preferred bssid", func(c *Config) { c.BackhaulPreferredBSSID = "junk" }},
		{"telemetry without url", func(c *Config) { c.Telemetry.Enabled = true; c.Telemetry.URL = "" }},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.json")
	content := `{
		"hostap_iface": "wlan2",
		"hostap_iface_type": "intel",
		"radio_identifier": "02:01:02:03:04:05",
		"backhaul_wireless_iface": "wlan3",
		"stop_on_failure_attempts": 7
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "wlan2", cfg.HostapIface)
	assert.Equal(t, 7, cfg.StopOnFailureAttempts)
	// Defaults survive partial files.
	assert.Equal(t, []string{"Intel"}, cfg.AcceptManufacturers)
	assert.True(t, cfg.EnableKeepAlive)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.yaml")
	content := "hostap_iface: wlan0\n" +
		"hostap_iface_type: intel\n" +
		"radio_identifier: \"02:01:02:03:04:06\"\n" +
		"enable_repeater_mode: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "wlan0", cfg.HostapIface)
	assert.True(t, cfg.EnableRepeaterMode)
}

func TestLoadFileEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.json")
	content := `{
		"hostap_iface": "wlan0",
		"hostap_iface_type": "intel",
		"radio_identifier": "02:01:02:03:04:07"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("MESHAGENT_TEMP_PATH", "/var/run/meshagent")
	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/run/meshagent", cfg.TempPath)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := NewLoader().LoadFile("/does/not/exist.json")
	assert.Error(t, err)
}
