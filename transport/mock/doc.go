// Package mock provides a deterministic [transport.Transport] that answers
// every request from a scripted [Method] instead of the network.
//
// # Scripted outcomes
//
// Primitive methods return a fixed reply or error. Composite methods produce
// their bytes and then delegate to a primitive one:
//
//	mock.New(mock.Data([]byte(`{"id":1}`), http.StatusOK))
//	mock.New(mock.JSON(map[string]string{"id": "1"}, http.StatusOK))
//	mock.New(mock.File(fixtures, "user", "", http.StatusOK))  // user.json
//	mock.New(mock.Bundle(fixtures, "api"))                   // api/GET/users/1.json
//	mock.New(mock.Error(context.DeadlineExceeded))
//
// Fixtures are read from any [io/fs.FS], typically an [embed.FS] or a
// [testing/fstest.MapFS]. A missing fixture surfaces from Send as a
// [*FileNotFoundError].
package mock
