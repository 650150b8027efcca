// Package client orchestrates the full request pipeline: merge default
// headers, build the wire request, send it through a
// [github.com/adamwoolhether/courier/transport.Transport], validate the
// reply and, for parsed calls, decode it.
//
// # Building a Manager
//
//	tr, _ := transport.NewLive(transport.WithTimeout(10 * time.Second))
//	m, err := client.New("https://api.example.com/v1", tr,
//		client.WithDefaultHeaders(map[string]string{request.HeaderAccept: "application/json"}),
//	)
//
// # Calling conventions
//
// Every call runs on its own goroutine and is available in three forms:
//
//	resp, err := m.Do(ctx, req)                       // blocks until done
//	m.DoFunc(ctx, req, func(resp, err) { ... })      // completion callback
//	task := m.Start(ctx, req); resp, err := task.Wait() // task handle
//
// Parsed calls are package functions since methods cannot take type
// parameters:
//
//	user, err := client.Perform(ctx, m, req, parse.Decode[User]("data"))
//
// # Failure
//
// Nothing is retried. The first failing stage (build, send, validate,
// parse) ends the call and its error is reported as is. Transport errors
// are returned unchanged, a reply that is not an HTTP response is
// [ErrInvalidResponse], and a parsed call without a body fails with
// [github.com/adamwoolhether/courier/errs.MissingValue].
package client
