// Package transport defines how a built [net/http.Request] reaches a peer and
// what comes back.
//
// # Transports
//
// A [Transport] sends one request and returns the raw [Reply]: status code,
// headers and the whole body. Two implementations ship with the module:
//
//   - [Live], backed by an [net/http.Client], for real network traffic.
//   - [github.com/adamwoolhether/courier/transport/mock.Transport], which
//     answers every request from a scripted outcome.
//
// # Building a Live transport
//
//	tr, err := transport.NewLive(
//		transport.WithTimeout(10 * time.Second),
//		transport.WithUserAgent("myapp/1.0"),
//	)
//
// A nil [Reply] with a nil error means the peer answered with something that
// was not an HTTP response; callers decide how to report that.
package transport
