package circle

import (
	"fmt"

	"github.com/pkg/errors"
)

// codeUserAlreadyInitialized is returned by the provider when
// POST /users/initialize is repeated for the same user.
const codeUserAlreadyInitialized = 155106

var (
	// ErrConfiguration is returned before any network access when no usable
	// API key is configured.
	ErrConfiguration = errors.New("circle API key is not configured, set CIRCLE_API_KEY")

	// ErrUnsupportedMethod is returned for verbs other than GET and POST.
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")

	// ErrAbsent means the provider answered successfully without a data payload.
	ErrAbsent = errors.New("provider returned no data")

	ErrUserAlreadyInitialized = errors.New("user already initialized")
)

// RemoteError is an HTTP-level rejection by the provider.
type RemoteError struct {
	StatusCode int
	// Code and Message are taken from the provider's error envelope when present.
	Code    int
	Message string
	Body    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider responded with status %d (code %d): %s", e.StatusCode, e.Code, e.Message)
	}

	return fmt.Sprintf("provider responded with status %d", e.StatusCode)
}

// TransportError covers everything between us and a decoded response:
// encoding, dialing, timeouts and malformed bodies.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
