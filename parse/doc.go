// Package parse turns raw response bodies into typed content.
//
// Every strategy implements [Parser]:
//
//   - [Data] passes the bytes through, guaranteeing a body is present.
//   - [Map] decodes a JSON object into map[string]any.
//   - [Array] decodes a JSON array into []any.
//   - [Decode] decodes JSON into any Go type.
//
// Map, Array and Decode accept a key path, a dot-separated list of object
// keys, to scope decoding to a nested value:
//
//	// {"data": {"user": {"id": "1"}}}
//	p := parse.Decode[User]("data.user")
//
// Key paths descend into objects only; array elements cannot be
// addressed. An absent key yields [errs.ErrMissingValue], a value of the
// wrong shape yields [errs.ErrInvalidValue] carrying that value, both on
// the "content" field. Malformed JSON surfaces the [encoding/json] error
// as is.
package parse
