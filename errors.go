package pdfthumb

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by this package matches exactly one of
// these with errors.Is.
var (
	// ErrIO marks failures reading PDF bytes from the file system.
	ErrIO = errors.New("pdfthumb: io error")
	// ErrPlatform marks failures surfaced by the pdfium engine or the image
	// encoders: invalid PDF, bad page index, render or encode failure.
	ErrPlatform = errors.New("pdfthumb: platform error")
)

type wrappedError struct {
	kind  error
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *wrappedError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

func ioError(msg string, cause error) error {
	return &wrappedError{kind: ErrIO, msg: msg, cause: cause}
}

func platformError(msg string, cause error) error {
	return &wrappedError{kind: ErrPlatform, msg: msg, cause: cause}
}
