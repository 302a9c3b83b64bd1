// Package http implements the local HTTP API of the attendance device.
//
// It stands in for the scan sensor and registration front end: scans,
// registrations and membership checks are forwarded to the attendance
// service, sync requests to the background sync job. Maintenance routes
// (dataset dumps, wipe) sit behind admin JWT authentication. Request tracing
// and access logging are handled here before requests reach the service layer.
package http
