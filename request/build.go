package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/adamwoolhether/courier/errs"
)

// ErrInvalidAddress is returned by [Build] when the resolved address
// cannot be parsed.
var ErrInvalidAddress = errors.New("invalid address")

// Build translates r into a wire request addressed relative to baseURL.
//
// Query items already present in r.Path come first, in their original
// order, followed by r.Parameters. Every query value is escaped with
// [EscapeQueryValue]. A Content-Type header is derived from the body only
// when r.Headers does not already carry one.
func Build(ctx context.Context, baseURL *url.URL, r Request) (*http.Request, error) {
	if baseURL == nil {
		return nil, fmt.Errorf("%w: missing base url", ErrInvalidAddress)
	}

	if err := errs.Validate(r); err != nil {
		return nil, fmt.Errorf("validating request: %w", err)
	}

	address, err := resolve(baseURL, r.Path)
	if err != nil {
		return nil, err
	}

	items, err := parseQuery(address.RawQuery)
	if err != nil {
		return nil, err
	}
	for _, param := range r.Parameters {
		items = append(items, queryItem{name: param.Key, value: fmt.Sprint(param.Value), hasValue: true})
	}

	address.RawQuery = encodeQuery(items)
	rawURL := address.String()
	if _, err := url.Parse(rawURL); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body.Data())
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	if r.Body != nil && req.Header.Get(HeaderContentType) == "" {
		req.Header.Set(HeaderContentType, r.Body.ContentType().Value())
	}

	return req, nil
}

// resolve appends p to baseURL's path with a single separating slash,
// keeping dot segments, then decodes the whole address once and re-parses
// it so a query string embedded in p is recognised as query items.
func resolve(baseURL *url.URL, p string) (*url.URL, error) {
	if _, err := url.PathUnescape(p); err != nil {
		return nil, fmt.Errorf("%w: path %q: %w", ErrInvalidAddress, p, err)
	}

	joined := *baseURL
	if p != "" {
		joined.Path = strings.TrimSuffix(baseURL.Path, "/") + "/" + strings.TrimPrefix(p, "/")
		joined.RawPath = ""
	}

	decoded, err := url.PathUnescape(joined.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	address, err := url.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return address, nil
}

type queryItem struct {
	name     string
	value    string
	hasValue bool
}

func parseQuery(rawQuery string) ([]queryItem, error) {
	if rawQuery == "" {
		return nil, nil
	}

	parts := strings.Split(rawQuery, "&")
	items := make([]queryItem, 0, len(parts))
	for _, part := range parts {
		name, value, hasValue := strings.Cut(part, "=")

		name, err := url.PathUnescape(name)
		if err != nil {
			return nil, fmt.Errorf("%w: query name: %w", ErrInvalidAddress, err)
		}

		value, err = url.PathUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("%w: query value: %w", ErrInvalidAddress, err)
		}

		items = append(items, queryItem{name: name, value: value, hasValue: hasValue})
	}

	return items, nil
}

func encodeQuery(items []queryItem) string {
	if len(items) == 0 {
		return ""
	}

	parts := make([]string, len(items))
	for i, item := range items {
		name := escapeQueryName(item.name)
		if !item.hasValue {
			parts[i] = name
			continue
		}
		parts[i] = name + "=" + EscapeQueryValue(item.value)
	}

	return strings.Join(parts, "&")
}

// EscapeQueryValue percent-escapes every byte of s except ASCII letters
// and digits. This is stricter than [url.QueryEscape]: '+', '/', ':', '-'
// and friends are all escaped.
func EscapeQueryValue(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlphanumeric(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}

	return b.String()
}

// escapeQueryName percent-escapes every byte of a query name except the
// RFC 3986 unreserved set. Spaces become %20, as in values.
func escapeQueryName(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlphanumeric(c) || c == '-' || c == '.' || c == '_' || c == '~' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}

	return b.String()
}

func isAlphanumeric(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
