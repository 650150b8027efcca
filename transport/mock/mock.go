package mock

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/adamwoolhether/courier/transport"
)

// Transport is a [transport.Transport] driven by a single scripted [Method].
// It records every request it receives.
type Transport struct {
	method Method
	logger *slog.Logger

	mu       sync.Mutex
	requests []*http.Request
}

// Option is a functional option for configuring a mock [Transport].
type Option func(*options) error

type options struct {
	logger *slog.Logger
}

// WithLogger injects a custom [slog.Logger].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// New constructs a Transport answering with method.
func New(method Method, optFns ...Option) (*Transport, error) {
	if method == nil {
		return nil, errors.New("method must not be nil")
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying mock option: %w", err)
		}
	}

	t := Transport{
		method: method,
		logger: slog.Default(),
	}
	if opts.logger != nil {
		t.logger = opts.logger
	}

	return &t, nil
}

// Send records req and returns the scripted outcome.
func (t *Transport) Send(req *http.Request) (*transport.Reply, error) {
	t.mu.Lock()
	t.requests = append(t.requests, req)
	t.mu.Unlock()

	reply, err := t.method.Respond(req)
	if err != nil {
		t.logger.Debug("mock transport failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return nil, err
	}

	t.logger.Debug("mock transport replied", "method", req.Method, "url", req.URL.String(), "hasReply", reply != nil)

	return reply, nil
}

// Requests returns the requests received so far, oldest first.
func (t *Transport) Requests() []*http.Request {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*http.Request, len(t.requests))
	copy(out, t.requests)
	return out
}
