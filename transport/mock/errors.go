package mock

import (
	"errors"
	"fmt"
)

// ErrFileNotFound is the sentinel error wrapped by [FileNotFoundError].
var ErrFileNotFound = errors.New("fixture not found")

// FileNotFoundError reports the fixture resource that could not be read.
type FileNotFoundError struct {
	Name string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Name)
}

func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

func fileNotFound(name string) error {
	return &FileNotFoundError{Name: name, Err: ErrFileNotFound}
}
