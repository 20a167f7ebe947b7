package cache

import "errors"

// ErrUnavailable is the sentinel matched by every *UnavailableError.
var ErrUnavailable = errors.New("cache: store unavailable")

// UnavailableError reports that the cache store could not be reached.
type UnavailableError struct {
	Op  string
	Key string
	Err error
}

// NewUnavailableError wraps err unless it already is an *UnavailableError.
func NewUnavailableError(op, key string, err error) error {
	if err == nil {
		return nil
	}
	var existing *UnavailableError
	if errors.As(err, &existing) {
		return err
	}
	return &UnavailableError{Op: op, Key: key, Err: err}
}

func (e *UnavailableError) Error() string {
	msg := "cache: " + e.Op
	if e.Key != "" {
		msg += " " + e.Key
	}
	msg += ": store unavailable"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrUnavailable) match.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// IsUnavailable reports whether err came from an unreachable store.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
