// Package config provides configuration loading, merging, and validation
// facilities for the attendance device agent.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON or TOML config file
//
// The main entry point is [GetStructuredConfig].
package config
