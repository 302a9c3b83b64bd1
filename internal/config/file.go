package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors [StructuredConfig] for JSON and TOML config files.
// Durations are written as strings like "5m" or "30s".
type FileConfig struct {
	App struct {
		Version            string   `json:"version" toml:"version"`
		AdminTokenKey      string   `json:"admin_token_key" toml:"admin_token_key"`
		AdminTokenIssuer   string   `json:"admin_token_issuer" toml:"admin_token_issuer"`
		AdminTokenDuration Duration `json:"admin_token_duration" toml:"admin_token_duration"`
	} `json:"app,omitempty" toml:"app"`

	Storage struct {
		DataDir string `json:"data_dir" toml:"data_dir"`
		DB      struct {
			DSN string `json:"dsn" toml:"dsn"`
		} `json:"db,omitempty" toml:"db"`
	} `json:"storage,omitempty" toml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" toml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout"`
	} `json:"server,omitempty" toml:"server"`

	Adapter struct {
		RemoteURL      string   `json:"remote_url" toml:"remote_url"`
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout"`
	} `json:"adapter,omitempty" toml:"adapter"`

	Connectivity struct {
		ProbeAddress            string   `json:"probe_address" toml:"probe_address"`
		RetryInterval           Duration `json:"retry_interval" toml:"retry_interval"`
		AttemptsBeforeReconnect uint64   `json:"attempts_before_reconnect" toml:"attempts_before_reconnect"`
		ReconnectCommand        string   `json:"reconnect_command" toml:"reconnect_command"`
	} `json:"connectivity,omitempty" toml:"connectivity"`

	Workers struct {
		SyncInterval  Duration `json:"sync_interval" toml:"sync_interval"`
		SyncBatchSize int      `json:"sync_batch_size" toml:"sync_batch_size"`
	} `json:"workers,omitempty" toml:"workers"`

	Log struct {
		File       string `json:"file" toml:"file"`
		MaxSizeMB  int    `json:"max_size_mb" toml:"max_size_mb"`
		MaxBackups int    `json:"max_backups" toml:"max_backups"`
		MaxAgeDays int    `json:"max_age_days" toml:"max_age_days"`
		Level      string `json:"level" toml:"level"`
	} `json:"log,omitempty" toml:"log"`
}

// parseFile reads a config file and converts it to a [StructuredConfig].
// Files ending in .toml are decoded as TOML, anything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fileCfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err = toml.Unmarshal(content, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding toml configs: %w", err)
		}
	default:
		if err = json.Unmarshal(content, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fileCfg.structured(), nil
}

func (f *FileConfig) structured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:            f.App.Version,
			AdminTokenKey:      f.App.AdminTokenKey,
			AdminTokenIssuer:   f.App.AdminTokenIssuer,
			AdminTokenDuration: time.Duration(f.App.AdminTokenDuration),
		},
		Storage: Storage{
			DataDir: f.Storage.DataDir,
			DB:      DB{DSN: f.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    f.Server.HTTPAddress,
			RequestTimeout: time.Duration(f.Server.RequestTimeout),
		},
		Adapter: Adapter{
			RemoteURL:      f.Adapter.RemoteURL,
			RequestTimeout: time.Duration(f.Adapter.RequestTimeout),
		},
		Connectivity: Connectivity{
			ProbeAddress:            f.Connectivity.ProbeAddress,
			RetryInterval:           time.Duration(f.Connectivity.RetryInterval),
			AttemptsBeforeReconnect: f.Connectivity.AttemptsBeforeReconnect,
			ReconnectCommand:        f.Connectivity.ReconnectCommand,
		},
		Workers: Workers{
			SyncInterval:  time.Duration(f.Workers.SyncInterval),
			SyncBatchSize: f.Workers.SyncBatchSize,
		},
		Log: Log{
			File:       f.Log.File,
			MaxSizeMB:  f.Log.MaxSizeMB,
			MaxBackups: f.Log.MaxBackups,
			MaxAgeDays: f.Log.MaxAgeDays,
			Level:      f.Log.Level,
		},
	}
}

// Duration is a wrapper around time.Duration that supports unmarshaling
// from strings like "1h", "30s" in both JSON and TOML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

// UnmarshalText is used by the TOML decoder.
func (d *Duration) UnmarshalText(b []byte) error {
	tmp, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
