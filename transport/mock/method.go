package mock

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"path"

	"github.com/adamwoolhether/courier/transport"
)

// defaultExtension is used by [File] when no extension is given.
const defaultExtension = "json"

// Method scripts the outcome of a mocked request.
type Method interface {
	Respond(req *http.Request) (*transport.Reply, error)
}

// MethodFunc adapts a function to the [Method] interface.
type MethodFunc func(req *http.Request) (*transport.Reply, error)

// Respond calls f(req).
func (f MethodFunc) Respond(req *http.Request) (*transport.Reply, error) { return f(req) }

// Response answers every request with reply as is. A nil reply simulates
// a peer that did not answer with an HTTP response.
func Response(reply *transport.Reply) Method {
	return MethodFunc(func(*http.Request) (*transport.Reply, error) {
		if reply == nil {
			return nil, nil
		}

		cpy := *reply
		if cpy.Header != nil {
			cpy.Header = reply.Header.Clone()
		}
		return &cpy, nil
	})
}

// Data answers with body and status. A nil body simulates a reply
// without any bytes.
func Data(body []byte, status int) Method {
	return MethodFunc(func(req *http.Request) (*transport.Reply, error) {
		return Response(&transport.Reply{
			StatusCode: status,
			Header:     http.Header{},
			Body:       body,
		}).Respond(req)
	})
}

// JSON serializes v and answers with it through [Data].
func JSON(v any, status int) Method {
	b, err := json.Marshal(v)
	return MethodFunc(func(req *http.Request) (*transport.Reply, error) {
		if err != nil {
			return nil, err
		}
		return Data(b, status).Respond(req)
	})
}

// File reads the fixture "name.ext" from fsys and answers with it through
// [Data]. An empty ext defaults to "json".
func File(fsys fs.FS, name, ext string, status int) Method {
	if ext == "" {
		ext = defaultExtension
	}
	filename := name + "." + ext

	return MethodFunc(func(req *http.Request) (*transport.Reply, error) {
		b, err := readFixture(fsys, filename)
		if err != nil {
			return nil, err
		}
		return Data(b, status).Respond(req)
	})
}

// Bundle resolves the fixture from the request itself: the file
// "{HTTPMethod}/{urlPath}.json" inside the directory bundle of fsys,
// answered with status 200. One Bundle can back many endpoints.
func Bundle(fsys fs.FS, bundle string) Method {
	return MethodFunc(func(req *http.Request) (*transport.Reply, error) {
		if fsys == nil {
			return nil, fileNotFound(bundle)
		}
		if fi, err := fs.Stat(fsys, bundle); err != nil || !fi.IsDir() {
			return nil, fileNotFound(bundle)
		}

		name := path.Join(bundle, req.Method, req.URL.Path)
		return File(fsys, name, defaultExtension, http.StatusOK).Respond(req)
	})
}

// Error fails every request with err, unchanged.
func Error(err error) Method {
	return MethodFunc(func(*http.Request) (*transport.Reply, error) {
		return nil, err
	})
}

func readFixture(fsys fs.FS, name string) ([]byte, error) {
	if fsys == nil || !fs.ValidPath(name) {
		return nil, fileNotFound(name)
	}

	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, fileNotFound(name)
		}
		return nil, err
	}

	return b, nil
}
