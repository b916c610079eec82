package datefmt

import (
	"errors"
	"fmt"
)

// Parse and format errors. Returned errors wrap one of these, test with errors.Is.
var (
	ErrInvalidInput          = errors.New("invalid date input")
	ErrUnknownFormat         = errors.New("unknown format")
	ErrInvalidFormatSelector = errors.New("invalid format selector")
)

// UnknownFormatError names the format that was not found in the merged registry.
// It unwraps to ErrUnknownFormat.
type UnknownFormatError struct {
	Name string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown format: %q not found in available formats", e.Name)
}

func (e *UnknownFormatError) Unwrap() error {
	return ErrUnknownFormat
}
