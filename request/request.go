package request

import "strings"

// Standard header names.
const (
	HeaderAccept         = "Accept"
	HeaderAuthorization  = "Authorization"
	HeaderContentType    = "Content-Type"
	HeaderAcceptLanguage = "Accept-Language"
	HeaderUserAgent      = "User-Agent"
)

// Request describes the intent of a single HTTP request.
//
// Path is resolved against the base address given to [Build] and may
// carry its own query string, e.g. "items?id=1". It is appended as is:
// "." and ".." segments reach the server unchanged. An empty Method means GET.
type Request struct {
	Method     string `json:"method" validate:"omitempty,oneof=GET HEAD POST PUT DELETE CONNECT OPTIONS TRACE PATCH"`
	Path       string `json:"path"`
	Parameters Parameters
	Headers    map[string]string
	Body       *HTTPBody
}

// AppendHeader adds a header. When a header with the same name (compared
// case-insensitively) exists, override decides whether value replaces it.
func (r *Request) AppendHeader(key, value string, override bool) {
	existing, ok := lookupHeader(r.Headers, key)
	if ok && !override {
		return
	}

	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	if ok {
		delete(r.Headers, existing)
	}
	r.Headers[key] = value
}

// AppendParameter adds a query parameter, see [Parameters.Append].
func (r *Request) AppendParameter(key string, value any, override bool) {
	r.Parameters.Append(key, value, override)
}

func lookupHeader(headers map[string]string, key string) (string, bool) {
	if _, ok := headers[key]; ok {
		return key, true
	}
	for k := range headers {
		if strings.EqualFold(k, key) {
			return k, true
		}
	}

	return "", false
}

// Parameter is a single query parameter. Value is rendered with its
// natural textual form (fmt.Sprint).
type Parameter struct {
	Key   string
	Value any
}

// Parameters is an ordered list of query parameters. Order is kept on
// the wire.
type Parameters []Parameter

// Append adds key. When key is already present override decides whether
// value replaces the existing value in place.
func (p *Parameters) Append(key string, value any, override bool) {
	for i, param := range *p {
		if param.Key != key {
			continue
		}
		if override {
			(*p)[i].Value = value
		}
		return
	}

	*p = append(*p, Parameter{Key: key, Value: value})
}

// Get returns the value stored for key.
func (p Parameters) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}

	return nil, false
}
