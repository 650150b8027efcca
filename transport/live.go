package transport

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Live sends requests over the network through an [http.Client].
type Live struct {
	c      *http.Client
	logger *slog.Logger
}

// NewLive constructs a Live transport. Without options it uses a fresh
// [http.Client] on top of [http.DefaultTransport].
func NewLive(optFns ...Option) (*Live, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying transport option: %w", err)
		}
	}

	l := &Live{
		c:      &http.Client{},
		logger: slog.Default(),
	}

	if opts.client != nil {
		cpy := *opts.client
		l.c = &cpy
	}

	if opts.logger != nil {
		l.logger = opts.logger
	}

	if opts.timeout != nil {
		l.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		l.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var rt http.RoundTripper
	switch {
	case opts.rt != nil:
		rt = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		rt = opts.client.Transport
	default:
		rt = http.DefaultTransport
	}
	if opts.userAgent != "" {
		rt = userAgent{value: opts.userAgent, base: rt}
	}
	l.c.Transport = rt

	return l, nil
}

// Send executes req and reads the whole response body into the [Reply].
func (l *Live) Send(req *http.Request) (*Reply, error) {
	l.logger.Debug("sending request", "method", req.Method, "url", req.URL.Redacted())

	resp, err := l.c.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			l.logger.Error("failed to discard unused body", "error", err)
		}
		if err := resp.Body.Close(); err != nil {
			l.logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	l.logger.Debug("received reply", "url", req.URL.Redacted(), "status", resp.StatusCode, "bytes", len(body))

	return &Reply{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
