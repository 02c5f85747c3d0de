// Package probe implements the health checks of routers: a single-target
// HTTP probe client and a bounded fan-out prober running it over many targets.
package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/vadimbarashkov/router-monitor/internal/entity"
)

const (
	defaultMaxRedirects = 3
	defaultUserAgent    = "router-monitor/1.0"
	maxDrainBytes       = 4 << 10
)

type Option func(*Client)

// WithMethod sets the HTTP method of the probe request. HEAD and GET are supported.
func WithMethod(method string) Option {
	return func(c *Client) {
		c.method = method
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithMaxRedirects bounds the number of redirects a probe follows. Once the
// bound is reached the last redirect response is taken as the probe result.
func WithMaxRedirects(n int) Option {
	return func(c *Client) {
		c.maxRedirects = n
	}
}

func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// Client probes a single router endpoint.
type Client struct {
	httpClient   *http.Client
	timeout      time.Duration
	method       string
	userAgent    string
	maxRedirects int
	now          func() time.Time
}

// NewClient creates a probe client. Every probe is bounded by timeout.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: timeout,
			},
		},
		timeout:      timeout,
		method:       http.MethodHead,
		userAgent:    defaultUserAgent,
		maxRedirects: defaultMaxRedirects,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient.CheckRedirect = func(_ *http.Request, via []*http.Request) error {
		if len(via) > c.maxRedirects {
			return http.ErrUseLastResponse
		}
		return nil
	}

	return c
}

// Probe checks the target and returns its outcome. It never fails: network
// errors and unexpected statuses are reported through the outcome.
//
// The probe ignores cancellation of ctx and only stops at its own timeout.
func (c *Client) Probe(ctx context.Context, target entity.ProbeTarget) entity.ProbeOutcome {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	status, elapsed, err := c.do(ctx, c.method, target.URL)
	if err == nil && c.method == http.MethodHead &&
		(status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
		status, elapsed, err = c.do(ctx, http.MethodGet, target.URL)
	}

	outcome := entity.ProbeOutcome{
		RouterID:  target.RouterID,
		CheckedAt: c.now().UTC(),
	}

	if err != nil {
		outcome.ErrorKind = classifyError(err)
		return outcome
	}

	outcome.HTTPStatus = &status

	if status < http.StatusOK || status >= http.StatusBadRequest {
		outcome.ErrorKind = entity.ErrorKindNon2xx
		return outcome
	}

	latency := elapsed.Milliseconds()
	outcome.Reachable = true
	outcome.LatencyMs = &latency

	return outcome
}

// do sends a single request and returns the status code and the time until the response headers arrived.
func (c *Client) do(ctx context.Context, method, url string) (int, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, err
	}
	elapsed := time.Since(start)

	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	return resp.StatusCode, elapsed, nil
}

func classifyError(err error) entity.ErrorKind {
	var (
		netErr      net.Error
		dnsErr      *net.DNSError
		certErr     *tls.CertificateVerificationError
		recordErr   tls.RecordHeaderError
		alertErr    tls.AlertError
		authErr     x509.UnknownAuthorityError
		hostErr     x509.HostnameError
		invalidCert x509.CertificateInvalidError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return entity.ErrorKindTimeout
	case errors.As(err, &dnsErr):
		if dnsErr.IsTimeout {
			return entity.ErrorKindTimeout
		}
		return entity.ErrorKindDNSFailure
	case errors.Is(err, syscall.ECONNREFUSED):
		return entity.ErrorKindConnectionRefused
	case errors.As(err, &certErr), errors.As(err, &recordErr), errors.As(err, &alertErr),
		errors.As(err, &authErr), errors.As(err, &hostErr), errors.As(err, &invalidCert):
		return entity.ErrorKindTLSFailure
	case errors.As(err, &netErr) && netErr.Timeout():
		return entity.ErrorKindTimeout
	default:
		return entity.ErrorKindUnknown
	}
}
