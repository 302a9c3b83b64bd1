package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"net"
	"strconv"
	"time"
)

var errInvalidAddress = errors.New("need address in a form `host:port`")

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a device API address in format [host]:[port]
//	-data-dir directory holding the dataset files
//	-d offsets database DSN
//	-r remote store URL
//	-probe-address address dialled to check connectivity
//	-reconnect-command command re-establishing the network link
//	-c/-config json or toml file path with configs
//	-admin-token-key admin token signing key
//	-sync-interval period between sync cycles (e.g., "5m")
//	-sync-batch-size max lines per remote request
//	-request-timeout remote request timeout (e.g., "30s", "1m")
//	-log-file rotating log file path
//	-log-level zerolog level name
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("device", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	var dataDir, databaseDSN, remoteURL string
	var probeAddress, reconnectCommand string
	var configPath string
	var adminTokenKey string
	var syncInterval, requestTimeout time.Duration
	var syncBatchSize int
	var logFile, logLevel string

	fs.Var(&serverAddress, "a", "Device API address host:port")
	fs.StringVar(&dataDir, "data-dir", "", "Dataset directory")
	fs.StringVar(&databaseDSN, "d", "", "Offsets database DSN")
	fs.StringVar(&remoteURL, "r", "", "Remote store URL")
	fs.StringVar(&probeAddress, "probe-address", "", "Connectivity probe address host:port")
	fs.StringVar(&reconnectCommand, "reconnect-command", "", "Command re-establishing the network link")
	fs.StringVar(&configPath, "c", "", "JSON/TOML config file path")
	fs.StringVar(&configPath, "config", "", "JSON/TOML config file path (alias)")
	fs.StringVar(&adminTokenKey, "admin-token-key", "", "Admin token signing key")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Sync interval (e.g., 5m)")
	fs.IntVar(&syncBatchSize, "sync-batch-size", 0, "Max lines per remote request")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 30s, 1m)")
	fs.StringVar(&logFile, "log-file", "", "Rotating log file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			AdminTokenKey: adminTokenKey,
		},
		Storage: Storage{
			DataDir: dataDir,
			DB:      DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Adapter: Adapter{
			RemoteURL:      remoteURL,
			RequestTimeout: requestTimeout,
		},
		Connectivity: Connectivity{
			ProbeAddress:     probeAddress,
			ReconnectCommand: reconnectCommand,
		},
		Workers: Workers{
			SyncInterval:  syncInterval,
			SyncBatchSize: syncBatchSize,
		},
		Log:            Log{File: logFile, Level: logLevel},
		ConfigFilePath: configPath,
	}, nil
}

// String renders the address as host:port, or "" when unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. The host must be an IP literal, "localhost" or
// empty (all interfaces). The port must be in 1..65535.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidAddress, err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil || port < 1 || port > math.MaxUint16 {
		return fmt.Errorf("%w: port %q is not in 1..65535", errInvalidAddress, rawPort)
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("%w: host %q is not an IP address", errInvalidAddress, host)
	}

	a.Host = host
	a.Port = port
	return nil
}
