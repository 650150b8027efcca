package client_test

import (
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/adamwoolhether/courier/transport"
)

// requestMatcher collects predicates used with mock.MatchedBy to match an
// *http.Request by state rather than identity.
type requestMatcher struct {
	predicates []func(*http.Request) bool
}

func (rm *requestMatcher) match(p func(*http.Request) bool) *requestMatcher {
	rm.predicates = append(rm.predicates, p)
	return rm
}

func (rm *requestMatcher) method(v string) *requestMatcher {
	return rm.match(func(r *http.Request) bool { return r.Method == v })
}

func (rm *requestMatcher) url(v string) *requestMatcher {
	return rm.match(func(r *http.Request) bool { return r.URL != nil && r.URL.String() == v })
}

func (rm *requestMatcher) header(key, expected string) *requestMatcher {
	return rm.match(func(r *http.Request) bool { return r.Header.Get(key) == expected })
}

func (rm requestMatcher) matches(candidate *http.Request) bool {
	for _, p := range rm.predicates {
		if !p(candidate) {
			return false
		}
	}

	return true
}

// sendCall is a mocked Send call with clearer return helpers.
type sendCall struct {
	*mock.Call
}

func (c sendCall) reply(r *transport.Reply) *mock.Call {
	return c.Call.Return(r, error(nil))
}

// blockUntil holds the call until release is closed.
func (c sendCall) blockUntil(release <-chan struct{}) sendCall {
	c.Call.Run(func(mock.Arguments) { <-release })
	return c
}

func (c sendCall) error(err error) *mock.Call {
	return c.Call.Return((*transport.Reply)(nil), err)
}

// mockTransport is a testify backed transport.Transport.
type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Send(req *http.Request) (*transport.Reply, error) {
	args := m.Called(req)
	reply, _ := args.Get(0).(*transport.Reply)
	return reply, args.Error(1)
}

func (m *mockTransport) expect(matcher requestMatcher) sendCall {
	return sendCall{Call: m.On("Send", mock.MatchedBy(matcher.matches))}
}

func (m *mockTransport) expectAny() sendCall {
	return sendCall{Call: m.On("Send", mock.Anything)}
}
