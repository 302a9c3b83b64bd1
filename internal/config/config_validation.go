// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net"
	"net/url"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup. A missing probe address is
// derived from the remote URL.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DataDir == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	remote, err := url.Parse(cfg.Adapter.RemoteURL)
	if cfg.Adapter.RemoteURL == "" || err != nil || remote.Host == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Connectivity.RetryInterval <= 0 || cfg.Connectivity.AttemptsBeforeReconnect == 0 {
		return ErrInvalidConnectivityConfigs
	}
	if cfg.Connectivity.ProbeAddress == "" {
		cfg.Connectivity.ProbeAddress = probeAddressFor(remote)
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.SyncBatchSize < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.AdminTokenKey != "" && cfg.App.AdminTokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}

func probeAddressFor(remote *url.URL) string {
	if remote.Port() != "" {
		return remote.Host
	}
	port := "443"
	if remote.Scheme == "http" {
		port = "80"
	}
	return net.JoinHostPort(remote.Hostname(), port)
}
