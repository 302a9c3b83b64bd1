package config

import "time"

const (
	defaultDataDir       = "/var/lib/attendance"
	defaultDSN           = "/var/lib/attendance/sync.db"
	defaultHTTPAddress   = "127.0.0.1:8080"
	defaultServerTimeout = 10 * time.Second
	defaultRemoteTimeout = 30 * time.Second
	defaultRetryInterval = time.Second
	defaultAttempts      = 10
	defaultSyncInterval  = 5 * time.Minute
	defaultTokenIssuer   = "attendance-device"
	defaultTokenDuration = time.Hour
	defaultVersion       = "dev"
	defaultLogMaxSizeMB  = 5
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 30
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:            defaultVersion,
			AdminTokenIssuer:   defaultTokenIssuer,
			AdminTokenDuration: defaultTokenDuration,
		},
		Storage: Storage{
			DataDir: defaultDataDir,
			DB:      DB{DSN: defaultDSN},
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultServerTimeout,
		},
		Adapter: Adapter{
			RequestTimeout: defaultRemoteTimeout,
		},
		Connectivity: Connectivity{
			RetryInterval:           defaultRetryInterval,
			AttemptsBeforeReconnect: defaultAttempts,
		},
		Workers: Workers{
			SyncInterval: defaultSyncInterval,
		},
		Log: Log{
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}
