package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	userAgent    = "attendance-device"
	maxRedirects = 10
)

// HTTPClient embeds *resty.Client so callers build requests with R().
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client with its own connection pool. Every request
// is bounded by timeout (zero means no limit). Up to 10 redirects are
// followed because script endpoints hand the response off to a content host.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))

	return &HTTPClient{Client: client}
}
