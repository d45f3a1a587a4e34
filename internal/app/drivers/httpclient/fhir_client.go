// Package httpclient builds the HTTP client shared by the FHIR clients.
package httpclient

import (
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type Options struct {
	// Timeout bounds a whole request. Zero disables it.
	Timeout time.Duration
	// MaxRequestsPerSecond throttles outbound requests. Zero disables it.
	MaxRequestsPerSecond float64
	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

func NewFhirHTTPClient(options Options) *http.Client {
	transport := options.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if options.MaxRequestsPerSecond > 0 {
		transport = &rateLimitedTransport{
			next:    transport,
			limiter: rate.NewLimiter(rate.Limit(options.MaxRequestsPerSecond), int(math.Ceil(options.MaxRequestsPerSecond))),
		}
	}

	return &http.Client{
		Timeout:   options.Timeout,
		Transport: transport,
	}
}

// rateLimitedTransport waits for a token before each request. It never
// rejects or retries; a cancelled context aborts the wait.
type rateLimitedTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.next.RoundTrip(req)
}

func (t *rateLimitedTransport) CloseIdleConnections() {
	if closer, ok := t.next.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}
