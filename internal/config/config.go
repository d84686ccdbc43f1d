// Package config loads and validates the watcher configuration from a
// YAML file with environment variable overrides.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	RCON         RCONConfig    `yaml:"rcon"`
	Discord      DiscordConfig `yaml:"discord"`
	PollInterval time.Duration `yaml:"poll_interval"`
	NotifyLeave  bool          `yaml:"notify_leave"`
	Log          LogConfig     `yaml:"log"`
	CursorPath   string        `yaml:"cursor_path"`
	Status       StatusConfig  `yaml:"status"`
}

type RCONConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
}

type DiscordConfig struct {
	Token     string `yaml:"token"`
	ChannelID string `yaml:"channel_id"`
}

type LogConfig struct {
	LocalPath string     `yaml:"local_path"`
	SFTP      SFTPConfig `yaml:"sftp"`
}

type SFTPConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	Path           string        `yaml:"path"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// StatusConfig controls the optional local observation endpoint. An empty
// listen address disables it entirely.
type StatusConfig struct {
	Listen string `yaml:"listen"`
}

func defaultConfig() *Config {
	return &Config{
		RCON: RCONConfig{
			Port: 25575,
		},
		PollInterval: 5 * time.Second,
		Log: LogConfig{
			SFTP: SFTPConfig{
				Port:           22,
				ConnectTimeout: 10 * time.Second,
			},
		},
		CursorPath: ".craftwatch-cursor",
	}
}

// Load reads the YAML file at path over the defaults and then applies
// environment variable overrides. A missing file is not an error — a pure
// environment deployment needs no config file at all.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays the environment variables used by existing
// deployments on top of the file values. Env wins over file.
func (c *Config) applyEnv() {
	setString(&c.RCON.Host, "RCON_HOST")
	setInt(&c.RCON.Port, "RCON_PORT")
	setString(&c.RCON.Password, "RCON_PASSWORD")
	setString(&c.Discord.Token, "DISCORD_TOKEN")
	setString(&c.Discord.ChannelID, "DISCORD_CHANNEL_ID")
	setString(&c.Log.LocalPath, "LOG_FILE_PATH")
	setString(&c.Log.SFTP.Host, "SFTP_HOST")
	setInt(&c.Log.SFTP.Port, "SFTP_PORT")
	setString(&c.Log.SFTP.Username, "SFTP_USERNAME")
	setString(&c.Log.SFTP.Password, "SFTP_PASSWORD")
	setString(&c.Log.SFTP.Path, "SFTP_LOG_PATH")
	setString(&c.Status.Listen, "STATUS_LISTEN")

	if v := os.Getenv("POLL_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.PollInterval = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("NOTIFY_LOGOUT"); v != "" {
		c.NotifyLeave = v == "true" || v == "1"
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Validate checks every required setting and returns all violations at
// once, so an operator fixes the whole environment in one pass instead of
// replaying startup failures one variable at a time.
func (c *Config) Validate() []string {
	var errs []string

	if c.Discord.Token == "" {
		errs = append(errs, "discord token is not set (DISCORD_TOKEN)")
	}
	if c.Discord.ChannelID == "" {
		errs = append(errs, "discord channel id is not set (DISCORD_CHANNEL_ID)")
	} else if _, err := strconv.ParseUint(c.Discord.ChannelID, 10, 64); err != nil {
		errs = append(errs, "discord channel id must be a numeric snowflake")
	}
	if c.RCON.Host == "" {
		errs = append(errs, "rcon host is not set (RCON_HOST)")
	}
	if c.RCON.Password == "" {
		errs = append(errs, "rcon password is not set (RCON_PASSWORD)")
	}
	if c.RCON.Port < 1 || c.RCON.Port > 65535 {
		errs = append(errs, fmt.Sprintf("rcon port %d out of range 1-65535", c.RCON.Port))
	}
	if c.PollInterval < time.Second {
		errs = append(errs, "poll_interval must be at least 1s")
	} else if c.PollInterval < 3*time.Second {
		log.Printf("[config] poll_interval %s is very low; consider >= 3s to reduce server load", c.PollInterval)
	}

	if c.SFTPEnabled() {
		if c.Log.SFTP.Port < 1 || c.Log.SFTP.Port > 65535 {
			errs = append(errs, fmt.Sprintf("sftp port %d out of range 1-65535", c.Log.SFTP.Port))
		}
		if c.Log.SFTP.Path == "" {
			errs = append(errs, "sftp log path is not set (SFTP_LOG_PATH)")
		}
	}

	return errs
}

// SFTPEnabled reports whether remote log tailing is configured. Remote
// mode wins over a local path when both are set.
func (c *Config) SFTPEnabled() bool {
	s := c.Log.SFTP
	return s.Host != "" && s.Username != "" && s.Password != ""
}
