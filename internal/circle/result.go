package circle

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeAbsent
	OutcomeRemoteError
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeAbsent:
		return "absent"
	case OutcomeRemoteError:
		return "remote_error"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of a provider request. Data is only set for
// OutcomeOK; Cause carries a *RemoteError or *TransportError for the failure
// outcomes.
type Result struct {
	Outcome    Outcome
	StatusCode int
	Data       json.RawMessage
	Cause      error
}

// Absent reports whether the request yielded no data, for whatever reason.
func (r Result) Absent() bool {
	return r.Outcome != OutcomeOK
}

// Err converts a non-OK result into an error, nil otherwise.
func (r Result) Err() error {
	switch r.Outcome {
	case OutcomeOK:
		return nil
	case OutcomeAbsent:
		return ErrAbsent
	default:
		if r.Cause != nil {
			return r.Cause
		}

		return ErrAbsent
	}
}

// Decode unmarshals the data payload into v.
func (r Result) Decode(v any) error {
	if err := r.Err(); err != nil {
		return err
	}

	if err := json.Unmarshal(r.Data, v); err != nil {
		return &TransportError{Op: "decode data", Err: err}
	}

	return nil
}

// Map returns the data payload as a generic mapping, nil if absent.
func (r Result) Map() map[string]any {
	if r.Absent() {
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal(r.Data, &m); err != nil {
		return nil
	}

	return m
}

func isNullOrEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func errorsAsRemote(err error) (*RemoteError, bool) {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr, true
	}

	return nil, false
}
