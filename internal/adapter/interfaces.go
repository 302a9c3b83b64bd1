// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport-layer abstractions the device uses
// to reach the remote tabular store.
//
// [RemoteStore] decouples the sync engine from the HTTP details of the remote
// script endpoint, and [Connectivity] blocks until the network link is usable
// again. The package ships an HTTP implementation ([NewHTTPRemoteStore]) and a
// TCP-probe based link monitor ([NewConnectivity]).
//
// Error values defined in errors.go let callers classify failures with
// [errors.Is]: [ErrConnectivity] for transport failures, [ErrRemoteRejection]
// for non-success statuses and [ErrMalformedPayload] for undecodable bodies.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-attendance-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RemoteStore is the client contract of the remote tabular store.
type RemoteStore interface {
	// FetchLists downloads the authoritative approved and pending user lists.
	// An empty but well-formed document is a success. A non-200 response, an
	// empty body, invalid JSON or a missing group is an error.
	FetchLists(ctx context.Context) (models.UserLists, error)

	// PostBatch uploads lines of dataset d as one text/csv document and returns
	// how many lines the remote store accepted: len(lines) on HTTP 200 and
	// zero otherwise.
	PostBatch(ctx context.Context, d models.Dataset, lines []string) (int, error)
}

// Connectivity validates the network link before remote operations.
type Connectivity interface {
	// EnsureConnected returns once the remote host is reachable. Unless
	// forceReconnect is set, a healthy link returns after a bounded number of
	// probes. Otherwise the link is reconnected and probed until it comes back.
	// Only context cancellation ends the wait early.
	EnsureConnected(ctx context.Context, forceReconnect bool) error
}

// Link re-establishes the underlying network link (Wi-Fi association,
// modem dial-up and so on).
type Link interface {
	Reconnect(ctx context.Context) error
}
