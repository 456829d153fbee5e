// internal/common/http/client.go
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wordpress-posts/internal/common/metrics"
)

// Client is the outbound HTTP client shared by every WordPress call. Its
// transport reports request counts and latency to prometheus.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return NewClientWithTransport(timeout, http.DefaultTransport)
}

// NewClientWithTransport wraps next with the instrumented round trippers.
func NewClientWithTransport(timeout time.Duration, next http.RoundTripper) *Client {
	if next == nil {
		next = http.DefaultTransport
	}
	transport := promhttp.InstrumentRoundTripperInFlight(metrics.RemoteRequestsInFlight,
		promhttp.InstrumentRoundTripperCounter(metrics.RemoteRequests,
			promhttp.InstrumentRoundTripperDuration(metrics.RemoteRequestDuration, next),
		),
	)
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}
