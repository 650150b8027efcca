// Package courier builds HTTP requests from plain descriptions, sends them
// through a swappable transport and validates and decodes the replies.
//
// The work is split across packages:
//
//   - [github.com/adamwoolhether/courier/request] describes requests and builds wire requests.
//   - [github.com/adamwoolhether/courier/transport] sends them, live or scripted.
//   - [github.com/adamwoolhether/courier/response] holds replies and validators.
//   - [github.com/adamwoolhether/courier/parse] decodes bodies, optionally at a key path.
//   - [github.com/adamwoolhether/courier/client] ties the stages together.
//
// This package only offers shortcuts for the two common setups.
package courier

import (
	"fmt"

	"github.com/adamwoolhether/courier/client"
	"github.com/adamwoolhether/courier/transport"
	"github.com/adamwoolhether/courier/transport/mock"
)

// NewManager instantiates a [client.Manager] sending over the network with
// a default [transport.Live]. Build the transport yourself and use
// [client.New] to tune it.
func NewManager(baseURL string, opts ...client.Option) (*client.Manager, error) {
	tr, err := transport.NewLive()
	if err != nil {
		return nil, fmt.Errorf("building transport: %w", err)
	}

	return client.New(baseURL, tr, opts...)
}

// NewMockManager instantiates a [client.Manager] that answers every
// request with method instead of touching the network.
func NewMockManager(baseURL string, method mock.Method, opts ...client.Option) (*client.Manager, error) {
	tr, err := mock.New(method)
	if err != nil {
		return nil, fmt.Errorf("building mock transport: %w", err)
	}

	return client.New(baseURL, tr, opts...)
}
