package client

import (
	"context"
	"errors"

	"github.com/adamwoolhether/courier/errs"
	"github.com/adamwoolhether/courier/parse"
	"github.com/adamwoolhether/courier/request"
	"github.com/adamwoolhether/courier/response"
)

// Perform performs r through m, then decodes the validated body with
// parser. It blocks until the parsed response is available or the call
// fails. A reply without a body fails with a missing-value error for
// [errs.FieldContent].
func Perform[T any](ctx context.Context, m *Manager, r request.Request, parser parse.Parser[T], opts ...DoOption) (response.Response[T], error) {
	return StartParsed(ctx, m, r, parser, opts...).Wait()
}

// PerformFunc is the callback form of [Perform].
func PerformFunc[T any](ctx context.Context, m *Manager, r request.Request, parser parse.Parser[T], completion func(response.Response[T], error), opts ...DoOption) *Task[response.Response[T]] {
	settings, err := applyDoOptions(opts)
	if err == nil && parser == nil {
		err = errors.New("parser must not be nil")
	}
	if err != nil {
		task := failedTask[response.Response[T]](err)
		notify(task, completion, runInline)
		return task
	}

	task := startParsed(ctx, m, r, parser, settings)
	notify(task, completion, settings.executor)
	return task
}

// StartParsed is the task form of [Perform].
func StartParsed[T any](ctx context.Context, m *Manager, r request.Request, parser parse.Parser[T], opts ...DoOption) *Task[response.Response[T]] {
	settings, err := applyDoOptions(opts)
	if err != nil {
		return failedTask[response.Response[T]](err)
	}
	if parser == nil {
		return failedTask[response.Response[T]](errors.New("parser must not be nil"))
	}

	return startParsed(ctx, m, r, parser, settings)
}

func startParsed[T any](ctx context.Context, m *Manager, r request.Request, parser parse.Parser[T], settings doOpts) *Task[response.Response[T]] {
	return startTask(ctx, func(ctx context.Context) (response.Response[T], error) {
		raw, err := m.exec(ctx, r, settings)
		if err != nil {
			return response.Response[T]{}, err
		}

		if raw.Content == nil {
			return response.Response[T]{}, errs.MissingValue(errs.FieldContent)
		}

		return parser.Parse(raw)
	})
}
