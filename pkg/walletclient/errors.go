package walletclient

import "fmt"

// ErrorKind classifies gateway failures.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation" // client-side, never reached the network
	KindNetwork    ErrorKind = "network"    // transport failure
	KindTimeout    ErrorKind = "timeout"    // transport deadline exceeded
	KindServer     ErrorKind = "server"     // remote business-rule rejection
	KindCancelled  ErrorKind = "cancelled"  // superseded request, never displayed
)

// genericFailureMessage is shown when the server reports an error without
// a usable message.
const genericFailureMessage = "Something went wrong. Please try again."

// APIError is the typed error variant every gateway operation returns:
// a kind, a display-ready message, and the underlying cause.
type APIError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.Cause }

// IsCancelled reports whether err is a superseded-request error, which
// callers swallow rather than display.
func IsCancelled(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Kind == KindCancelled
}

func newValidationError(message string) *APIError {
	return &APIError{Kind: KindValidation, Message: message}
}
