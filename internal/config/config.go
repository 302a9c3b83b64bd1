// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container of the
// attendance device agent. It aggregates all sub-configurations and is
// populated by merging defaults, environment variables, command-line flags,
// and an optional JSON or TOML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: version and admin token keys.
	App App `envPrefix:"APP_"`

	// Storage holds the dataset directory and the offsets database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the local device API settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote store settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Connectivity holds link probing and reconnect settings.
	Connectivity Connectivity `envPrefix:"CONNECTIVITY_"`

	// Workers holds background sync settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds log file rotation settings.
	Log Log `envPrefix:"LOG_"`

	// ConfigFilePath is the optional path to a JSON or TOML configuration
	// file, chosen by extension. Populated via the CONFIG environment
	// variable or the -c / -config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the version string reported by GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// AdminTokenKey is the HMAC key used to sign and verify admin JWTs.
	// The admin API is disabled when empty.
	// Env: APP_ADMIN_TOKEN_KEY
	AdminTokenKey string `env:"ADMIN_TOKEN_KEY"`

	// AdminTokenIssuer is the "iss" claim expected on admin JWTs.
	// Env: APP_ADMIN_TOKEN_ISSUER
	AdminTokenIssuer string `env:"ADMIN_TOKEN_ISSUER"`

	// AdminTokenDuration is the lifetime of tokens minted by cmd/admintoken.
	// Env: APP_ADMIN_TOKEN_DURATION
	AdminTokenDuration time.Duration `env:"ADMIN_TOKEN_DURATION"`
}

// Storage groups the device persistence settings.
type Storage struct {
	// DataDir is the directory holding the three dataset files.
	// Env: STORAGE_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// DB holds the offsets database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the SQLite offsets database.
type DB struct {
	// DSN is the SQLite database file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Server holds the local device API settings.
type Server struct {
	// HTTPAddress is the TCP address the device API listens on,
	// in "host:port" format. The API is disabled when empty.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling of a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the remote store settings.
type Adapter struct {
	// RemoteURL is the endpoint of the remote tabular store.
	// Env: ADAPTER_REMOTE_URL
	RemoteURL string `env:"REMOTE_URL"`

	// RequestTimeout is the maximum duration of a single remote request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Connectivity holds link validation settings.
type Connectivity struct {
	// ProbeAddress is the "host:port" dialled to check connectivity.
	// Defaults to the host of Adapter.RemoteURL.
	// Env: CONNECTIVITY_PROBE_ADDRESS
	ProbeAddress string `env:"PROBE_ADDRESS"`

	// RetryInterval is the fixed pause between probes.
	// Env: CONNECTIVITY_RETRY_INTERVAL
	RetryInterval time.Duration `env:"RETRY_INTERVAL"`

	// AttemptsBeforeReconnect is the number of failed probes after which
	// the link is declared down and the reconnect hook is invoked again.
	// Env: CONNECTIVITY_ATTEMPTS_BEFORE_RECONNECT
	AttemptsBeforeReconnect uint64 `env:"ATTEMPTS_BEFORE_RECONNECT"`

	// ReconnectCommand is an optional shell command that re-establishes
	// the network link (e.g. "wpa_cli -i wlan0 reconnect").
	// Env: CONNECTIVITY_RECONNECT_COMMAND
	ReconnectCommand string `env:"RECONNECT_COMMAND"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period between sync cycles.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// SyncBatchSize caps the number of lines sent in one remote request.
	// Zero means the whole unsynced tail is sent at once.
	// Env: WORKERS_SYNC_BATCH_SIZE
	SyncBatchSize int `env:"SYNC_BATCH_SIZE"`
}

// Log holds log file settings. Logs go to stdout when File is empty.
type Log struct {
	// Env: LOG_FILE
	File string `env:"FILE"`
	// Env: LOG_MAX_SIZE_MB
	MaxSizeMB int `env:"MAX_SIZE_MB"`
	// Env: LOG_MAX_BACKUPS
	MaxBackups int `env:"MAX_BACKUPS"`
	// Env: LOG_MAX_AGE_DAYS
	MaxAgeDays int `env:"MAX_AGE_DAYS"`
	// Level is a zerolog level name. Empty means debug.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON/TOML file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return LoadStructuredConfig(os.Args[1:])
}

// LoadStructuredConfig is [GetStructuredConfig] with explicit command-line
// arguments, for tools that parse their own flags first.
func LoadStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withFile().
		build()
}
