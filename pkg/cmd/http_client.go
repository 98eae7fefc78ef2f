package cmd

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPClientConfig tunes the client shared by every webhook call.
type HTTPClientConfig struct {
	MaxIdleConns    int
	IdleConnTimeout time.Duration
	Tracing         bool
}

// NewHTTPClient builds the process-wide webhook client. Per-call timeouts are
// applied by the webhook handler through the request context.
func NewHTTPClient(config HTTPClientConfig) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if config.MaxIdleConns > 0 {
		transport.MaxIdleConns = config.MaxIdleConns
		transport.MaxIdleConnsPerHost = config.MaxIdleConns
	}

	if config.IdleConnTimeout > 0 {
		transport.IdleConnTimeout = config.IdleConnTimeout
	}

	var roundTripper http.RoundTripper = transport
	if config.Tracing {
		roundTripper = otelhttp.NewTransport(transport)
	}

	return &http.Client{Transport: roundTripper}
}
