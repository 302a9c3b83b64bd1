// Package server runs the device's local HTTP API.
//
// It owns the http.Server lifecycle: listening, request timeouts and graceful
// shutdown. Signal handling lives in the application runtime that drives it.
package server
