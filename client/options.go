package client

import (
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/courier/response"
)

// Option is a functional option for configuring a [Manager] via [New].
type Option func(*options) error

type options struct {
	headers map[string]string
	logger  *slog.Logger
	tracer  trace.Tracer
}

// WithDefaultHeaders sets the headers added to every request the
// [Manager] performs. A header set on the request itself takes precedence.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(o *options) error {
		o.headers = headers
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Manager].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used to open a span per call.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}

// DoOption is a functional option for a single call.
type DoOption func(*doOpts) error

type doOpts struct {
	validators    []response.Validator
	validatorsSet bool
	executor      func(func())
}

// WithValidators replaces the default validation, which accepts status
// codes in [200, 300). Validators run in order and the first failure wins.
// Calling it without arguments disables validation.
func WithValidators(validators ...response.Validator) DoOption {
	return func(o *doOpts) error {
		for _, v := range validators {
			if v == nil {
				return errors.New("validator must not be nil")
			}
		}
		o.validators = validators
		o.validatorsSet = true
		return nil
	}
}

// WithExecutor sets where completion callbacks run. The executor receives
// the callback and must invoke it exactly once. By default callbacks run on
// a goroutine owned by the call, as soon as it completes.
func WithExecutor(executor func(func())) DoOption {
	return func(o *doOpts) error {
		if executor == nil {
			return errors.New("executor must not be nil")
		}
		o.executor = executor
		return nil
	}
}

func applyDoOptions(optFns []DoOption) (doOpts, error) {
	settings := doOpts{
		executor: runInline,
	}
	for _, opt := range optFns {
		if err := opt(&settings); err != nil {
			return doOpts{}, err
		}
	}
	if !settings.validatorsSet {
		settings.validators = []response.Validator{response.DefaultStatusCodes()}
	}

	return settings, nil
}

func runInline(fn func()) { fn() }
