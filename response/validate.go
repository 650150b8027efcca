package response

import (
	"github.com/adamwoolhether/courier/errs"
)

// Validator inspects a response before it is parsed. Returning an error
// aborts the pipeline.
type Validator interface {
	Validate(Response[[]byte]) error
}

// ValidatorFunc adapts a function to a Validator.
type ValidatorFunc func(Response[[]byte]) error

// Validate implements Validator.
func (f ValidatorFunc) Validate(r Response[[]byte]) error {
	return f(r)
}

// StatusCodeValidator accepts responses whose status code is in its set.
type StatusCodeValidator struct {
	codes map[int]struct{}
}

// StatusCodes accepts exactly the given codes.
func StatusCodes(codes ...int) StatusCodeValidator {
	set := make(map[int]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}

	return StatusCodeValidator{codes: set}
}

// StatusCodeRange accepts codes in [from, to).
func StatusCodeRange(from, to int) StatusCodeValidator {
	codes := make([]int, 0, max(to-from, 0))
	for code := from; code < to; code++ {
		codes = append(codes, code)
	}

	return StatusCodes(codes...)
}

// DefaultStatusCodes accepts every 2xx code.
func DefaultStatusCodes() StatusCodeValidator {
	return StatusCodeRange(200, 300)
}

// Accepts reports whether code is in the accepted set.
func (v StatusCodeValidator) Accepts(code int) bool {
	_, ok := v.codes[code]
	return ok
}

// Validate implements Validator. Rejected codes yield an invalid value
// error on the statusCode field.
func (v StatusCodeValidator) Validate(r Response[[]byte]) error {
	if !v.Accepts(r.StatusCode) {
		return errs.InvalidValue(r.StatusCode, errs.FieldStatusCode)
	}

	return nil
}
