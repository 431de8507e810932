package sink

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is returned whenever a sink fails to insert a batch, whatever the reason (connectivity, authentication,
// rejected writes). Transient and permanent failures are not distinguished.
type Error struct {
	// Name of the sink that failed, e.g. "mongo"
	Sink string
	// Number of records in the rejected batch
	Records int
	// Underlying cause
	Err error
}

func newError(sink string, records int, err error) *Error {
	return &Error{
		Sink:    sink,
		Records: records,
		Err:     errors.WithStack(err),
	}
}

func (err *Error) Error() string {
	return fmt.Sprintf("sink %s failed to insert %d records: %v", err.Sink, err.Records, err.Err)
}

func (err *Error) Unwrap() error {
	return err.Err
}

// Cause lets pkg/errors, and the stack trace extraction built on it, see through the sink error.
func (err *Error) Cause() error {
	return err.Err
}

// IsSinkError returns true if err, or any error it wraps, is a sink *Error.
func IsSinkError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
