package errors

import "errors"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// StoreUnavailable marks the backing store or channel as unreachable. Callers
// must not confuse it with NotFound: an outage is not "no data".
var StoreUnavailable = errors.New("store unavailable")

// Is reports whether err is an instance of custom error type T.
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

func NotFound(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: 404}
}

func Validation(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: 400}
}

// ThreadLocked rejects writes against a locked thread.
func ThreadLocked(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: 423}
}
