package boarderr

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain identifies the error domain for errdetails.ErrorInfo.
const Domain = "github.com/boardsmith/boardsmith"

// Error is the structured error type returned at every public boundary of
// the core. It is a value, not an exception: internal invariant violations
// (impossible states) are the only cases that use plain panics or
// errors.New instead.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

// New creates an Error with no metadata or cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata creates an Error carrying template metadata, used by i18n
// message formatting (e.g. the conflicting player's name).
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap creates an Error that carries an underlying cause, typically a panic
// recovered from an author's execute function (EXECUTE_THREW).
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Status converts the error to a gRPC status carrying an ErrorInfo detail,
// for adapters that front the engine with a gRPC or gateway transport. The
// core itself never constructs a status or dials a gRPC channel.
func (e *Error) Status(locale, userMessage string) error {
	st := status.New(e.Code.GRPCCode(), e.Message)
	withDetails, err := st.WithDetails(
		&errdetails.ErrorInfo{
			Reason:   string(e.Code),
			Domain:   Domain,
			Metadata: e.Metadata,
		},
		&errdetails.LocalizedMessage{
			Locale:  locale,
			Message: userMessage,
		},
	)
	if err != nil {
		return st.Err()
	}
	return withDetails.Err()
}
