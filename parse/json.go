package parse

import (
	"bytes"
	"encoding/json"

	"github.com/adamwoolhether/courier/errs"
	"github.com/adamwoolhether/courier/response"
)

// Map decodes the body as a JSON object, optionally scoped by keyPath.
func Map(keyPath string) Parser[map[string]any] {
	return Func[map[string]any](func(r response.Response[[]byte]) (response.Response[map[string]any], error) {
		value, _, err := resolve(r.Content, keyPath)
		if err != nil {
			return response.Response[map[string]any]{}, err
		}

		content, ok := value.(map[string]any)
		if !ok {
			return response.Response[map[string]any]{}, errs.InvalidValue(value, errs.FieldContent)
		}

		return withContent(r, content), nil
	})
}

// Array decodes the body as a JSON array. With a keyPath the body must be
// an object and the value at keyPath an array.
func Array(keyPath string) Parser[[]any] {
	return Func[[]any](func(r response.Response[[]byte]) (response.Response[[]any], error) {
		value, _, err := resolve(r.Content, keyPath)
		if err != nil {
			return response.Response[[]any]{}, err
		}

		content, ok := value.([]any)
		if !ok {
			return response.Response[[]any]{}, errs.InvalidValue(value, errs.FieldContent)
		}

		return withContent(r, content), nil
	})
}

// Option configures the JSON decoder used by [Decode].
type Option func(*options)

type options struct {
	useJSONNumber         bool
	disallowUnknownFields bool
}

// WithJSONNumber tells the decoder to use [json.Decoder.UseNumber],
// preserving number precision as [json.Number] instead of float64.
func WithJSONNumber() Option {
	return func(opts *options) {
		opts.useJSONNumber = true
	}
}

// WithDisallowUnknownFields makes decoding fail on object keys that do not
// match a destination field.
func WithDisallowUnknownFields() Option {
	return func(opts *options) {
		opts.disallowUnknownFields = true
	}
}

// Decode decodes the body into T. With a keyPath the body must be an
// object; the value at keyPath is returned directly when it already is a T
// and decoded into T otherwise. A scalar at keyPath that cannot be decoded
// into T is reported as an invalid value, and so is a JSON null, at the key
// path or as the whole body.
func Decode[T any](keyPath string, optFns ...Option) Parser[T] {
	var opts options
	for _, opt := range optFns {
		opt(&opts)
	}

	return Func[T](func(r response.Response[[]byte]) (response.Response[T], error) {
		raw := r.Content
		if keyPath != "" {
			value, sub, err := resolve(r.Content, keyPath)
			if err != nil {
				return response.Response[T]{}, err
			}

			if value == nil {
				return response.Response[T]{}, errs.InvalidValue(nil, errs.FieldContent)
			}

			if content, ok := value.(T); ok && !opts.useJSONNumber {
				return withContent(r, content), nil
			}

			switch value.(type) {
			case map[string]any, []any:
				raw = sub
			default:
				content, err := decode[T](sub, opts)
				if err != nil {
					return response.Response[T]{}, errs.InvalidValue(value, errs.FieldContent)
				}
				return withContent(r, content), nil
			}
		}

		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return response.Response[T]{}, errs.InvalidValue(nil, errs.FieldContent)
		}

		content, err := decode[T](raw, opts)
		if err != nil {
			return response.Response[T]{}, err
		}

		return withContent(r, content), nil
	})
}

func decode[T any](raw []byte, opts options) (T, error) {
	var content T

	d := json.NewDecoder(bytes.NewReader(raw))
	if opts.useJSONNumber {
		d.UseNumber()
	}
	if opts.disallowUnknownFields {
		d.DisallowUnknownFields()
	}

	if err := d.Decode(&content); err != nil {
		return content, err
	}

	return content, nil
}
