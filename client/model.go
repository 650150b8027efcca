package client

import "errors"

// ErrInvalidResponse is returned when the transport neither failed nor
// produced an HTTP reply.
var ErrInvalidResponse = errors.New("invalid response")

// config holds the constructor arguments checked by [New].
type config struct {
	BaseURL string `json:"baseURL" validate:"required,url"`
}
