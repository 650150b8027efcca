package parse

import (
	"github.com/adamwoolhether/courier/errs"
	"github.com/adamwoolhether/courier/response"
)

// Parser transforms a raw response into a response with typed content.
type Parser[T any] interface {
	Parse(response.Response[[]byte]) (response.Response[T], error)
}

// Func adapts a function to a Parser.
type Func[T any] func(response.Response[[]byte]) (response.Response[T], error)

// Parse implements Parser.
func (f Func[T]) Parse(r response.Response[[]byte]) (response.Response[T], error) {
	return f(r)
}

// Data returns the response unchanged, failing only when it has no body.
func Data() Parser[[]byte] {
	return Func[[]byte](func(r response.Response[[]byte]) (response.Response[[]byte], error) {
		if r.Content == nil {
			return response.Response[[]byte]{}, errs.MissingValue(errs.FieldContent)
		}

		return r, nil
	})
}

func withContent[T any](r response.Response[[]byte], content T) response.Response[T] {
	return response.Response[T]{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Content:    content,
	}
}
