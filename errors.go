package hfrm

import "fmt"

// Error is a local failure with a stable negative code. Servers report the
// same codes, so a status received on the wire maps back to these values.
type Error struct {
	code int32
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Code is the numeric form of the error.
func (e *Error) Code() int32 { return e.code }

var (
	ErrInvalidParameter  = &Error{-2001, "invalid parameter"}
	ErrNotInitialized    = &Error{-2002, "module not initialized"}
	ErrInvalidCallback   = &Error{-2003, "invalid callback specified"}
	ErrAlreadyRegistered = &Error{-2004, "callback already registered"}
	ErrLockAcquisition   = &Error{-2005, "unable to acquire lock"}
	ErrDevicePoweredDown = &Error{-2006, "local device powered down"}
	ErrRoleNotSupported  = &Error{-2007, "connection type not supported"}
	ErrResponseInvalid   = &Error{-2008, "response message invalid"}
)

var knownErrors = []*Error{
	ErrInvalidParameter,
	ErrNotInitialized,
	ErrInvalidCallback,
	ErrAlreadyRegistered,
	ErrLockAcquisition,
	ErrDevicePoweredDown,
	ErrRoleNotSupported,
	ErrResponseInvalid,
}

// StackError is a negative status returned by the server.
type StackError struct {
	Code int32
}

func (e *StackError) Error() string {
	return fmt.Sprintf("server status %d", e.Code)
}

// ErrorFromStatus converts a server status. Zero and positive values are
// success; negative values map to the matching sentinel or a StackError.
func ErrorFromStatus(status int32) error {
	if status >= 0 {
		return nil
	}
	for _, e := range knownErrors {
		if e.code == status {
			return e
		}
	}
	return &StackError{Code: status}
}

// Code returns the numeric form of err, or 0 for nil and errors without one.
func Code(err error) int32 {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.code
		case *StackError:
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0
		}
		err = u.Unwrap()
	}
	return 0
}
