package advanced

import "github.com/pkg/errors"

// Threading errors up and down the contour walk and the simplifiers would add
// a lot of noise for conditions that can only arise from a broken invariant.
// Instead, those paths panic with an *Error, and the public API recovers to
// convert it back into an error.

type ErrorKind int

const (
	// InputError: the image or mask cannot be used (undecodable, bad
	// dimensions, fewer than three opaque pixels).
	InputError ErrorKind = iota + 1
	// GeometryError: the input was fine but no usable geometry came out of it.
	GeometryError
)

func (k ErrorKind) String() string {
	switch k {
	case InputError:
		return "input error"
	case GeometryError:
		return "geometry error"
	}
	return "unknown error"
}

type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Cause() error  { return e.Err }
func (e *Error) Unwrap() error { return e.Err }

func inputErrorf(format string, args ...interface{}) error {
	return &Error{Kind: InputError, Err: errors.Errorf(format, args...)}
}

func geometryErrorf(format string, args ...interface{}) error {
	return &Error{Kind: GeometryError, Err: errors.Errorf(format, args...)}
}

// WrapInput marks err as an InputError, keeping it as the cause.
func WrapInput(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: InputError, Err: errors.Wrap(err, message)}
}

func InputErrorf(format string, args ...interface{}) error {
	return inputErrorf(format, args...)
}

func GeometryErrorf(format string, args ...interface{}) error {
	return geometryErrorf(format, args...)
}

func kindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsInputError(err error) bool {
	return kindOf(err) == InputError
}

func IsGeometryError(err error) bool {
	return kindOf(err) == GeometryError
}

// Panic with a GeometryError.
func fatalf(format string, args ...interface{}) {
	panic(geometryErrorf(format, args...))
}

// HandlePanicRecover converts a recovered *Error back into an error. Any other
// panic is a real bug and is re-raised.
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if err, ok := r.(*Error); ok {
			return err
		}
		panic(r)
	}
	return nil
}
