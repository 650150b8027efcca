package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/courier/errs"
	"github.com/adamwoolhether/courier/request"
	"github.com/adamwoolhether/courier/response"
	"github.com/adamwoolhether/courier/transport"
)

// Manager performs requests relative to a base URL through a transport.
// It is safe for concurrent use.
type Manager struct {
	baseURL *url.URL
	tr      transport.Transport
	logger  *slog.Logger
	tracer  trace.Tracer

	mu      sync.RWMutex
	headers map[string]string
}

// New constructs a Manager. baseURL must be an absolute URL, otherwise
// New fails with an invalid-value error for [errs.FieldBaseURL]. A nil tr
// is reported as [errs.FieldErrors] on "transport".
func New(baseURL string, tr transport.Transport, optFns ...Option) (*Manager, error) {
	if err := errs.Validate(config{BaseURL: baseURL}); err != nil {
		return nil, errs.InvalidValue(baseURL, errs.FieldBaseURL)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errs.InvalidValue(baseURL, errs.FieldBaseURL)
	}

	if tr == nil {
		return nil, errs.NewFieldsError("transport", errors.New("This field is required"))
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying manager option: %w", err)
		}
	}

	m := Manager{
		baseURL: u,
		tr:      tr,
		logger:  slog.Default(),
		tracer:  noop.NewTracerProvider().Tracer(""),
		headers: make(map[string]string, len(opts.headers)),
	}

	if opts.logger != nil {
		m.logger = opts.logger
	}

	if opts.tracer != nil {
		m.tracer = opts.tracer
	}

	for k, v := range opts.headers {
		m.headers[k] = v
	}

	return &m, nil
}

// BaseURL returns a copy of the address requests are resolved against.
func (m *Manager) BaseURL() *url.URL {
	u := *m.baseURL
	return &u
}

// /////////////////////////////////////////////////////////////////
// Default headers

// AppendDefaultHeader adds a header sent with every request. When a
// default header with the same name (compared case-insensitively) exists,
// override decides whether value replaces it.
func (m *Manager) AppendDefaultHeader(key, value string, override bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := findHeader(m.headers, key)
	if ok && !override {
		return
	}
	if ok {
		delete(m.headers, existing)
	}
	m.headers[key] = value
}

// RemoveDefaultHeader removes a default header, compared case-insensitively.
func (m *Manager) RemoveDefaultHeader(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := findHeader(m.headers, key); ok {
		delete(m.headers, existing)
	}
}

// DefaultHeaders returns a snapshot of the default headers.
func (m *Manager) DefaultHeaders() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.headers)
}

func findHeader(headers map[string]string, key string) (string, bool) {
	for k := range headers {
		if strings.EqualFold(k, key) {
			return k, true
		}
	}

	return "", false
}

// /////////////////////////////////////////////////////////////////
// Raw calls

// Do performs r and blocks until the validated response is available
// or the call fails.
func (m *Manager) Do(ctx context.Context, r request.Request, opts ...DoOption) (response.Response[[]byte], error) {
	return m.Start(ctx, r, opts...).Wait()
}

// DoFunc performs r and hands the outcome to completion through the
// configured executor. The returned task can be used to cancel the call.
func (m *Manager) DoFunc(ctx context.Context, r request.Request, completion func(response.Response[[]byte], error), opts ...DoOption) *Task[response.Response[[]byte]] {
	settings, err := applyDoOptions(opts)
	if err != nil {
		task := failedTask[response.Response[[]byte]](err)
		notify(task, completion, runInline)
		return task
	}

	task := m.start(ctx, r, settings)
	notify(task, completion, settings.executor)
	return task
}

// Start performs r in the background and returns a handle to the call.
func (m *Manager) Start(ctx context.Context, r request.Request, opts ...DoOption) *Task[response.Response[[]byte]] {
	settings, err := applyDoOptions(opts)
	if err != nil {
		return failedTask[response.Response[[]byte]](err)
	}

	return m.start(ctx, r, settings)
}

func (m *Manager) start(ctx context.Context, r request.Request, settings doOpts) *Task[response.Response[[]byte]] {
	return startTask(ctx, func(ctx context.Context) (response.Response[[]byte], error) {
		return m.exec(ctx, r, settings)
	})
}

// exec runs one call through build, send and validation.
func (m *Manager) exec(ctx context.Context, r request.Request, settings doOpts) (response.Response[[]byte], error) {
	r = m.withDefaultHeaders(r)

	ctx, span := m.startSpan(ctx, r)
	defer span.End()

	resp, err := m.roundTrip(ctx, r, settings.validators)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		m.logger.Debug("request failed", "method", r.Method, "path", r.Path, "error", err)
		return response.Response[[]byte]{}, err
	}

	span.SetAttributes(attribute.Int("statusCode", resp.StatusCode))

	return resp, nil
}

func (m *Manager) roundTrip(ctx context.Context, r request.Request, validators []response.Validator) (response.Response[[]byte], error) {
	req, err := request.Build(ctx, m.baseURL, r)
	if err != nil {
		return response.Response[[]byte]{}, err
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	m.logger.Debug("performing request", "method", req.Method, "url", req.URL.Redacted())

	if err := ctx.Err(); err != nil {
		return response.Response[[]byte]{}, err
	}

	reply, err := m.tr.Send(req)
	if err != nil {
		return response.Response[[]byte]{}, err
	}
	if reply == nil {
		return response.Response[[]byte]{}, ErrInvalidResponse
	}

	resp := response.Response[[]byte]{
		StatusCode: reply.StatusCode,
		Headers:    response.FromHeader(reply.Header),
		Content:    reply.Body,
	}

	for _, v := range validators {
		if err := v.Validate(resp); err != nil {
			return response.Response[[]byte]{}, err
		}
	}

	return resp, nil
}

// withDefaultHeaders returns a copy of r carrying every default header r
// does not already set.
func (m *Manager) withDefaultHeaders(r request.Request) request.Request {
	defaults := m.DefaultHeaders()
	if len(defaults) == 0 {
		return r
	}

	r.Headers = maps.Clone(r.Headers)
	for k, v := range defaults {
		r.AppendHeader(k, v, false)
	}

	return r
}

// startSpan opens the span covering a single call.
func (m *Manager) startSpan(ctx context.Context, r request.Request) (context.Context, trace.Span) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	ctx, span := m.tracer.Start(ctx, "courier.perform", trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("method", method),
		attribute.String("path", r.Path),
		attribute.String("baseURL", m.baseURL.Redacted()),
	)

	return ctx, span
}

// notify hands the task's outcome to completion through executor once
// the task resolves.
func notify[T any](task *Task[T], completion func(T, error), executor func(func())) {
	if completion == nil {
		return
	}

	go func() {
		result, err := task.Wait()
		executor(func() { completion(result, err) })
	}()
}
