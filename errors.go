package mio

// Error represents a mapping error. For failures reported by the operating
// system, Err carries the platform error (errno on POSIX, the last-error
// value on Windows) unchanged, so callers can inspect it with errors.As or
// errors.Is.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "mio: " + e.Op + ": " + e.Err.Error()
	}
	return "mio: " + e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Common errors.
//
// The first five are argument and handle errors detected before any syscall
// is issued; a failed operation returning one of them has touched no state.
var (
	ErrEmptyPath     = &Error{Op: "empty path"}
	ErrInvalidHandle = &Error{Op: "invalid file handle"}
	ErrInvalidOffset = &Error{Op: "invalid offset"}
	ErrInvalidLength = &Error{Op: "invalid length"}
	ErrOutOfRange    = &Error{Op: "offset and length exceed file size"}
	ErrNotMapped     = &Error{Op: "not mapped"}
	ErrReadOnly      = &Error{Op: "mapping is read-only"}
)
