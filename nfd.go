// Package nfd opens the operating system's native file dialogs.
//
// Every call blocks until the user closes the dialog. A dismissed dialog is
// reported as ErrCancelled, a failure inside the native layer as a
// *ProgrammaticError whose text is also available from GetError.
//
// Filter lists use the native library's format: extensions within a group
// are separated by commas and groups by semicolons, e.g. "png,jpg;pdf".
// They are passed through unchanged. An empty filter list or default path
// means none.
package nfd

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-errors/errors"
)

// Dialog runs dialogs through a single backend.
type Dialog struct {
	backend Backend
}

// New returns a Dialog bound to b.
func New(b Backend) *Dialog {
	return &Dialog{backend: b}
}

// Backend returns the backend the dialog runs on.
func (d *Dialog) Backend() Backend {
	return d.backend
}

// OpenDialog asks the user for one existing file.
func (d *Dialog) OpenDialog(filterList, defaultPath string) (string, error) {
	if err := checkArgs(filterList, defaultPath); err != nil {
		return "", err
	}
	res, ns := d.backend.OpenDialog(filterList, defaultPath)
	return d.single("open", res, ns)
}

// SaveDialog asks the user for a file to write. The native layer asks for
// confirmation before an existing file is chosen.
func (d *Dialog) SaveDialog(filterList, defaultPath string) (string, error) {
	if err := checkArgs(filterList, defaultPath); err != nil {
		return "", err
	}
	res, ns := d.backend.SaveDialog(filterList, defaultPath)
	return d.single("save", res, ns)
}

// PickFolder asks the user for a directory.
func (d *Dialog) PickFolder(defaultPath string) (string, error) {
	if err := checkArgs("", defaultPath); err != nil {
		return "", err
	}
	res, ns := d.backend.PickFolder(defaultPath)
	return d.single("pick folder", res, ns)
}

// OpenDialogMultiple asks the user for one or more existing files. Paths
// come back in the order the native dialog reported them.
func (d *Dialog) OpenDialogMultiple(filterList, defaultPath string) ([]string, error) {
	if err := checkArgs(filterList, defaultPath); err != nil {
		return nil, err
	}
	res, ps := d.backend.OpenDialogMultiple(filterList, defaultPath)
	switch res {
	case ResultOkay:
		if ps == nil {
			return nil, &ProgrammaticError{Op: "open multiple", Detail: "native layer returned no pathset"}
		}
		return DecodePathSet(ps)
	case ResultCancel:
		if ps != nil {
			ps.Release()
		}
		return nil, ErrCancelled
	default:
		if ps != nil {
			ps.Release()
		}
		return nil, d.programmatic("open multiple")
	}
}

// GetError returns the diagnostic for the most recent native error. It
// panics if the native layer produced text that is not valid UTF-8.
func (d *Dialog) GetError() string {
	b := d.backend.GetError()
	if !utf8.Valid(b) {
		panic(errors.Errorf("nfd: native error message is not valid UTF-8: %q", b))
	}
	return string(b)
}

func (d *Dialog) single(op string, res Result, ns NativeString) (string, error) {
	switch res {
	case ResultOkay:
		if ns == nil {
			return "", &ProgrammaticError{Op: op, Detail: "native layer returned no path"}
		}
		return decodeNativeString(ns), nil
	case ResultCancel:
		if ns != nil {
			ns.Release()
		}
		return "", ErrCancelled
	default:
		if ns != nil {
			ns.Release()
		}
		return "", d.programmatic(op)
	}
}

func (d *Dialog) programmatic(op string) error {
	return &ProgrammaticError{Op: op, Detail: strings.ToValidUTF8(string(d.backend.GetError()), "�")}
}

func checkArgs(filterList, defaultPath string) error {
	if strings.IndexByte(filterList, 0) >= 0 {
		return errors.Errorf("filter list contains a NUL byte: %w", ErrInvalidArgument)
	}
	if strings.IndexByte(defaultPath, 0) >= 0 {
		return errors.Errorf("default path contains a NUL byte: %w", ErrInvalidArgument)
	}
	return nil
}

var (
	defaultMu     sync.RWMutex
	defaultDialog *Dialog
)

// SetDefault selects the backend used by the package-level functions.
func SetDefault(b Backend) {
	defaultMu.Lock()
	defaultDialog = New(b)
	defaultMu.Unlock()
}

// Default returns the Dialog used by the package-level functions.
func Default() *Dialog {
	defaultMu.RLock()
	d := defaultDialog
	defaultMu.RUnlock()
	if d != nil {
		return d
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultDialog == nil {
		defaultDialog = New(newDefaultBackend())
	}
	return defaultDialog
}

// OpenDialog runs Default().OpenDialog.
func OpenDialog(filterList, defaultPath string) (string, error) {
	return Default().OpenDialog(filterList, defaultPath)
}

// SaveDialog runs Default().SaveDialog.
func SaveDialog(filterList, defaultPath string) (string, error) {
	return Default().SaveDialog(filterList, defaultPath)
}

// OpenDialogMultiple runs Default().OpenDialogMultiple.
func OpenDialogMultiple(filterList, defaultPath string) ([]string, error) {
	return Default().OpenDialogMultiple(filterList, defaultPath)
}

// PickFolder runs Default().PickFolder.
func PickFolder(defaultPath string) (string, error) {
	return Default().PickFolder(defaultPath)
}

// GetError runs Default().GetError.
func GetError() string {
	return Default().GetError()
}
