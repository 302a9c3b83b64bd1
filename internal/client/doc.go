// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the attendance device agent runtime.
//
// It wires storages, the remote store adapter, services, background workers
// and the local HTTP API into a single process lifecycle, and tears them down
// in reverse order on shutdown.
package client
