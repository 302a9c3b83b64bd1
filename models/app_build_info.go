// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

const unknownBuildValue = "N/A"

// AppBuildInfo is the linker-injected metadata of the device agent binary.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{version: version, date: date, commit: commit}
}

// Version returns the build version, or fallback when the binary was built
// without one.
func (a AppBuildInfo) Version(fallback string) string {
	if a.version == "" {
		return fallback
	}
	return a.version
}

// String renders the metadata for the startup banner.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s",
		orUnknown(a.version), orUnknown(a.date), orUnknown(a.commit))
}

func orUnknown(s string) string {
	if s == "" {
		return unknownBuildValue
	}
	return s
}
