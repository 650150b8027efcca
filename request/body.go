package request

import (
	"encoding/json"
	"fmt"
)

// Binary is a byte payload tagged with its content type.
type Binary struct {
	Data        []byte
	ContentType ContentType
}

// NewJSONBinary encodes v as JSON and tags it application/json.
func NewJSONBinary(v any) (Binary, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Binary{}, fmt.Errorf("encoding json binary: %w", err)
	}

	return Binary{Data: data, ContentType: JSON()}, nil
}

// HTTPBody is either a single binary payload or a multipart body.
// Use [BinaryBody], [MultipartBody], [NewBody] or [NewJSONBody] to create one.
type HTTPBody struct {
	binary    Binary
	multipart *MultipartRequestBody
}

// BinaryBody wraps a single binary payload.
func BinaryBody(b Binary) HTTPBody {
	return HTTPBody{binary: b}
}

// MultipartBody wraps a multipart body.
func MultipartBody(m MultipartRequestBody) HTTPBody {
	return HTTPBody{multipart: &m}
}

// NewBody wraps data with the given content type.
func NewBody(data []byte, ct ContentType) HTTPBody {
	return BinaryBody(Binary{Data: data, ContentType: ct})
}

// NewJSONBody encodes v as a JSON body.
func NewJSONBody(v any) (HTTPBody, error) {
	b, err := NewJSONBinary(v)
	if err != nil {
		return HTTPBody{}, err
	}

	return BinaryBody(b), nil
}

// Data returns the bytes sent on the wire.
func (b HTTPBody) Data() []byte {
	if b.multipart != nil {
		return b.multipart.Data()
	}

	return b.binary.Data
}

// ContentType returns the body's content type. Multipart bodies report
// multipart/form-data with their boundary.
func (b HTTPBody) ContentType() ContentType {
	if b.multipart != nil {
		return Multipart(b.multipart.Boundary)
	}

	return b.binary.ContentType
}

// Binary returns the binary payload, if the body is not multipart.
func (b HTTPBody) Binary() (Binary, bool) {
	return b.binary, b.multipart == nil
}

// Multipart returns the multipart body, if the body is multipart.
func (b HTTPBody) Multipart() (MultipartRequestBody, bool) {
	if b.multipart == nil {
		return MultipartRequestBody{}, false
	}

	return *b.multipart, true
}
