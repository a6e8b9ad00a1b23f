package httpclient

import (
	"crypto/tls"
	"net/http"
	"time"

	"repo-resolver/internal/config"
)

// Options configures HTTP client creation
type Options struct {
	// Timeout is the request timeout duration (0 means no timeout)
	Timeout time.Duration
	// SkipSSLVerify disables SSL certificate verification (use with caution)
	SkipSSLVerify bool
}

// New creates an HTTP client with the specified options
func New(opts Options) *http.Client {
	client := &http.Client{
		Timeout: opts.Timeout,
	}

	// Only configure custom transport if SSL verification needs to be skipped
	if opts.SkipSSLVerify {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		}
	}

	return client
}

// FromConfig creates the client the providers share, honoring the configured
// request timeout. Timeout 0 delegates cancellation to the caller's context.
func FromConfig(cfg *config.Config) *http.Client {
	return New(Options{
		Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
	})
}
