// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// device's HTTP handlers and middleware.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies to describe the outcome of an operation. Keeping them in
// one place keeps the wording consistent throughout the local API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgScanFailed is returned when a scan could not be checked or recorded.
	MsgScanFailed = "error handling scan"

	// MsgRegistrationCheckFailed is returned when the registration lookup
	// could not read the local lists.
	MsgRegistrationCheckFailed = "error checking registration"

	// MsgApprovalCheckFailed is returned when the approval lookup could not
	// read the allow list.
	MsgApprovalCheckFailed = "error checking approval"

	// MsgDatasetReadFailed is returned when an admin dataset dump fails.
	MsgDatasetReadFailed = "error reading dataset"

	// MsgUnauthorized is returned when an admin token is missing, malformed,
	// expired or signed with another key.
	MsgUnauthorized = "unauthorized"
)
