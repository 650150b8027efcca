package transport

import "net/http"

// Transport sends a fully built request and reports what came back.
// Errors are returned as produced by the underlying network stack.
type Transport interface {
	Send(req *http.Request) (*Reply, error)
}

// Func adapts an ordinary function to the [Transport] interface.
type Func func(req *http.Request) (*Reply, error)

// Send calls f(req).
func (f Func) Send(req *http.Request) (*Reply, error) { return f(req) }

// Reply is the raw result of a single exchange.
// A nil Body means the peer sent no bytes at all.
type Reply struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}
