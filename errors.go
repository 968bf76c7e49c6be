package nfd

import (
	"fmt"

	"github.com/go-errors/errors"
)

var (
	// ErrCancelled is returned when the user dismissed the dialog without
	// selecting anything. It is a normal outcome, not a failure.
	ErrCancelled = errors.New("nfd: cancelled by user")

	// ErrProgrammatic is matched by every *ProgrammaticError.
	ErrProgrammatic = errors.New("nfd: native dialog error")

	// ErrMalformedPathset is matched by every *MalformedPathsetError.
	ErrMalformedPathset = errors.New("nfd: malformed pathset")

	// ErrInvalidArgument is returned when a filter list or default path
	// cannot be passed to the native layer.
	ErrInvalidArgument = errors.New("nfd: invalid argument")

	// ErrUnknownBackend is returned by BackendByName.
	ErrUnknownBackend = errors.New("nfd: unknown backend")
)

// ProgrammaticError reports a native-layer failure. Detail holds the
// native diagnostic captured right after the failing call.
type ProgrammaticError struct {
	Op     string
	Detail string
}

func (e *ProgrammaticError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("nfd: %s: native dialog error", e.Op)
	}
	return fmt.Sprintf("nfd: %s: %s", e.Op, e.Detail)
}

func (e *ProgrammaticError) Is(target error) bool {
	return target == ErrProgrammatic
}

// MalformedPathsetError means the native layer handed back a pathset that
// breaks its own layout contract. Index is the entry being decoded and
// Offset its start offset in the buffer, when known.
type MalformedPathsetError struct {
	Index  int
	Offset uint
	Reason string
}

func (e *MalformedPathsetError) Error() string {
	return fmt.Sprintf("nfd: malformed pathset: entry %d at offset %d: %s", e.Index, e.Offset, e.Reason)
}

func (e *MalformedPathsetError) Is(target error) bool {
	return target == ErrMalformedPathset
}

func malformed(index int, offset uint, format string, args ...interface{}) error {
	return errors.Wrap(&MalformedPathsetError{
		Index:  index,
		Offset: offset,
		Reason: fmt.Sprintf(format, args...),
	}, 1)
}
