// Package request describes outgoing HTTP requests declaratively and
// translates them into wire-ready [net/http] requests.
//
// # Describing a Request
//
// A [Request] carries the method, a path relative to some base address,
// ordered query [Parameters], headers and an optional [HTTPBody]:
//
//	body, err := request.NewJSONBody(payload)
//	r := request.Request{
//		Method:     http.MethodPost,
//		Path:       "users?source=api",
//		Parameters: request.Parameters{{Key: "page", Value: 2}},
//		Headers:    map[string]string{request.HeaderAccept: "application/json"},
//		Body:       &body,
//	}
//
// # Building the Wire Request
//
// [Build] resolves the path against a base URL, merges the query items
// embedded in the path with the parameters, percent-encodes every query
// value leaving only ASCII letters and digits untouched, and derives the
// Content-Type header from the body unless one was given explicitly:
//
//	req, err := request.Build(ctx, baseURL, r)
//
// # Multipart Bodies
//
// [MultipartRequestBody] frames an ordered list of [MultipartItem] values
// using the multipart/form-data wire format:
//
//	mp := request.NewMultipartBody(
//		request.TextItem("hello", "greeting"),
//		request.BinaryItem(request.Binary{Data: img, ContentType: request.ImagePNG()}, "avatar"),
//	)
//	body := request.MultipartBody(mp)
package request
