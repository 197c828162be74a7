package instance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Error kinds. Match them with errors.Is.
var (
	ErrIO              = errors.New("io error")
	ErrSerialization   = errors.New("serialization error")
	ErrDeserialization = errors.New("deserialization error")
	ErrNotFound        = errors.New("instance not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// Error describes a failed catalog operation.
type Error struct {
	Kind error     // one of the Err* kinds above
	Op   string    // operation, e.g. "create dir" or "read index"
	ID   uuid.UUID // instance involved, zero when not applicable
	Path string    // file or directory involved, empty when not applicable
	Err  error     // underlying cause, may be nil
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.ID != uuid.Nil {
		fmt.Fprintf(&b, " %s", e.ID)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " (%s)", e.Path)
	}
	fmt.Fprintf(&b, ": %v", e.Kind)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func ioErr(op string, id uuid.UUID, path string, err error) error {
	return &Error{Kind: ErrIO, Op: op, ID: id, Path: path, Err: err}
}

func notFound(id uuid.UUID) error {
	return &Error{Kind: ErrNotFound, Op: "find instance", ID: id}
}
