// Package response holds the typed response envelope and the validators
// run against it before any parsing happens.
package response

import (
	"net/http"
	"strings"
)

// Response is the result of a performed request. Content is the raw body
// bytes before parsing and the decoded value afterwards.
type Response[T any] struct {
	StatusCode int
	Headers    map[string]string
	Content    T
}

// FromHeader flattens h to one value per key, taking the first value.
func FromHeader(h http.Header) map[string]string {
	headers := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return headers
}

// Map returns a Response carrying fn's result in place of the content.
func Map[T, U any](r Response[T], fn func(T) (U, error)) (Response[U], error) {
	content, err := fn(r.Content)
	if err != nil {
		return Response[U]{}, err
	}

	return Response[U]{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Content:    content,
	}, nil
}

// Header returns the value of key, compared case-insensitively.
func (r Response[T]) Header(key string) string {
	if v, ok := r.Headers[key]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}

	return ""
}
