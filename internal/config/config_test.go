package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.RCON.Host = "mc.example.com"
	cfg.RCON.Password = "hunter2"
	cfg.Discord.Token = "token"
	cfg.Discord.ChannelID = "123456789012345678"
	return cfg
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yaml := `
rcon:
  host: "mc.example.com"
  port: 25580
  password: "secret"
discord:
  token: "bot-token"
  channel_id: "42"
poll_interval: 7s
notify_leave: true
log:
  sftp:
    host: "mc.example.com"
    username: "ops"
    password: "pw"
    path: "/logs/latest.log"
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.RCON.Port != 25580 {
		t.Errorf("RCON.Port = %d, want 25580", cfg.RCON.Port)
	}
	if cfg.PollInterval != 7*time.Second {
		t.Errorf("PollInterval = %s, want 7s", cfg.PollInterval)
	}
	if !cfg.NotifyLeave {
		t.Error("NotifyLeave = false, want true")
	}
	if !cfg.SFTPEnabled() {
		t.Error("SFTPEnabled() = false, want true")
	}

	// Defaults still applied for unspecified fields.
	if cfg.Log.SFTP.Port != 22 {
		t.Errorf("SFTP.Port = %d, want default 22", cfg.Log.SFTP.Port)
	}
	if cfg.Log.SFTP.ConnectTimeout != 10*time.Second {
		t.Errorf("SFTP.ConnectTimeout = %s, want default 10s", cfg.Log.SFTP.ConnectTimeout)
	}
	if cfg.CursorPath == "" {
		t.Error("CursorPath should have a default")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() on missing file error: %v", err)
	}
	if cfg.RCON.Port != 25575 {
		t.Errorf("RCON.Port = %d, want default 25575", cfg.RCON.Port)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %s, want default 5s", cfg.PollInterval)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("rcon:\n  host: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("RCON_HOST", "from-env")
	t.Setenv("POLL_SECONDS", "9")
	t.Setenv("NOTIFY_LOGOUT", "true")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.RCON.Host != "from-env" {
		t.Errorf("RCON.Host = %q, want env override", cfg.RCON.Host)
	}
	if cfg.PollInterval != 9*time.Second {
		t.Errorf("PollInterval = %s, want 9s from POLL_SECONDS", cfg.PollInterval)
	}
	if !cfg.NotifyLeave {
		t.Error("NotifyLeave = false, want true from NOTIFY_LOGOUT")
	}
}

func TestValidateReportsAllViolationsAtOnce(t *testing.T) {
	cfg := defaultConfig()
	cfg.RCON.Port = 0
	cfg.PollInterval = 0

	errs := cfg.Validate()
	wantFragments := []string{
		"discord token",
		"discord channel id",
		"rcon host",
		"rcon password",
		"rcon port",
		"poll_interval",
	}
	if len(errs) != len(wantFragments) {
		t.Fatalf("Validate() returned %d errors, want %d: %v", len(errs), len(wantFragments), errs)
	}
	for _, frag := range wantFragments {
		found := false
		for _, e := range errs {
			if strings.Contains(e, frag) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Validate() missing violation about %q: %v", frag, errs)
		}
	}
}

func TestValidatePasses(t *testing.T) {
	if errs := validConfig().Validate(); len(errs) != 0 {
		t.Errorf("Validate() on valid config = %v, want none", errs)
	}
}

func TestValidateNonNumericChannelID(t *testing.T) {
	cfg := validConfig()
	cfg.Discord.ChannelID = "general"
	errs := cfg.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0], "numeric") {
		t.Errorf("Validate() = %v, want a single numeric channel id violation", errs)
	}
}

func TestValidateSFTPNeedsPath(t *testing.T) {
	cfg := validConfig()
	cfg.Log.SFTP.Host = "mc.example.com"
	cfg.Log.SFTP.Username = "ops"
	cfg.Log.SFTP.Password = "pw"

	errs := cfg.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0], "sftp log path") {
		t.Errorf("Validate() = %v, want sftp log path violation", errs)
	}
}

func TestSFTPDisabledWhenIncomplete(t *testing.T) {
	cfg := validConfig()
	cfg.Log.SFTP.Host = "mc.example.com"
	// No username/password: tailing over SFTP stays off, no violation.
	if cfg.SFTPEnabled() {
		t.Error("SFTPEnabled() = true with incomplete credentials")
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v, want none", errs)
	}
}
