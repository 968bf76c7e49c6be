package nfd

import (
	"sort"
	"sync"

	"github.com/go-errors/errors"
)

// Result is the outcome code of a native dialog call.
type Result int

const (
	ResultError Result = iota
	ResultOkay
	ResultCancel
)

func (r Result) String() string {
	switch r {
	case ResultError:
		return "error"
	case ResultOkay:
		return "okay"
	case ResultCancel:
		return "cancel"
	}
	return "unknown"
}

// NativeString is a string owned by the native layer. Bytes is a borrowed
// view that is only valid until Release; decoding stops at the first NUL.
type NativeString interface {
	Bytes() []byte
	Release()
}

// PathSet is a native multi-selection result: a packed buffer of
// NUL-terminated paths and the byte offset where each one starts. Buffer
// and Indices are borrowed views that are only valid until Release, which
// frees the index array, the buffer and the handle itself.
type PathSet interface {
	Count() int
	Buffer() []byte
	Indices() []uint
	Release()
}

// Backend is the boundary to a native dialog implementation. An empty
// filterList or defaultPath means the argument is absent. On ResultOkay the
// returned value is non-nil and the caller owns its release; on any other
// result it is nil.
type Backend interface {
	OpenDialog(filterList, defaultPath string) (Result, NativeString)
	SaveDialog(filterList, defaultPath string) (Result, NativeString)
	OpenDialogMultiple(filterList, defaultPath string) (Result, PathSet)
	PickFolder(defaultPath string) (Result, NativeString)
	// GetError returns the diagnostic for the last ResultError. The bytes are
	// borrowed and must not be retained.
	GetError() []byte
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Backend{}
)

// Register makes a backend constructor available to BackendByName.
func Register(name string, fn func() Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// BackendByName constructs the named backend.
func BackendByName(name string) (Backend, error) {
	registryMu.RLock()
	fn, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.Errorf("%s: %w", name, ErrUnknownBackend)
	}
	return fn(), nil
}

// Backends lists the names of the compiled-in backends.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lastError is the per-backend equivalent of the native last-error slot.
type lastError struct {
	mu  sync.Mutex
	msg string
}

func (l *lastError) set(msg string) {
	l.mu.Lock()
	l.msg = msg
	l.mu.Unlock()
}

func (l *lastError) setErr(err error) {
	l.set(err.Error())
}

func (l *lastError) get() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return []byte(l.msg)
}
